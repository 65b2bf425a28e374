package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field returns err annotated with the name of the message or model field it
// was produced for, or nil if err is nil. An optional description is
// formatted with args.
//
// Field names follow Go naming. Nested fields are joined with a dot and
// elements of a collection are referenced by their index, for example
// InitialBalances.2.Address.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: name, desc: description}
}

// AppendField adds the field error, if any, to errs.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc != "" {
		return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
	}
	return fmt.Sprintf("field %q: %s", e.field, e.parent)
}

func (e *fieldError) Cause() error  { return e.parent }
func (e *fieldError) Field() string { return e.field }

// FieldErrors returns all errors created for the given field name, looking
// through wrapped and appended errors.
func FieldErrors(err error, name string) []error {
	switch e := err.(type) {
	case nil:
		return nil
	case fielder:
		if e.Field() == name {
			return []error{err}
		}
	}
	if isNilErr(err) {
		return nil
	}
	if u, ok := err.(unpacker); ok {
		var res []error
		for _, child := range u.Unpack() {
			res = append(res, FieldErrors(child, name)...)
		}
		return res
	}
	if c, ok := err.(causer); ok {
		return FieldErrors(c.Cause(), name)
	}
	return nil
}

type fielder interface {
	Field() string
}
