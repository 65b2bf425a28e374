package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no error or only nil values are provided, nil is returned.
// If only one non nil error is provided, it is returned unchanged.
//
// Returned error ABCICode and Cause are those of the first error, so that the
// fail fast order of validation is kept.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		// Flatten so that a growing chain of Append calls does not
		// produce a deeply nested structure.
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type multiErr []error

func (errs multiErr) Error() string {
	points := make([]string, len(errs))
	for i, err := range errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(errs), strings.Join(points, "\n\t"))
}

func (errs multiErr) ABCICode() uint32 {
	return abciCode(errs[0])
}

func (errs multiErr) Cause() error {
	return errs[0]
}

// Unpack implements unpacker interface.
func (errs multiErr) Unpack() []error {
	return errs
}

// unpacker is implemented by errors that contain more than one child error.
type unpacker interface {
	Unpack() []error
}
