package assert

import (
	"testing"

	"github.com/iov-one/suitdrop/errors"
)

func TestIsErr(t *testing.T) {
	var typedNil *errors.Error

	cases := map[string]struct {
		want     error
		got      error
		wantFail bool
	}{
		"same root error":           {want: errors.ErrEmpty, got: errors.ErrEmpty},
		"both nil":                  {want: nil, got: nil},
		"typed nil matches nil":     {want: typedNil, got: nil},
		"wrapped error":             {want: errors.ErrEmpty, got: errors.Wrap(errors.ErrEmpty, "owner")},
		"nil want with an error":    {want: nil, got: errors.ErrEmpty, wantFail: true},
		"typed nil with an error":   {want: typedNil, got: errors.ErrEmpty, wantFail: true},
		"other kind":                {want: errors.ErrEmpty, got: errors.Wrap(errors.ErrAmount, "x"), wantFail: true},
		"error expected, none seen": {want: errors.ErrNotFound, got: nil, wantFail: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.want, tc.got)
			if failed := mock.failcalls > 0; failed != tc.wantFail {
				t.Fatalf("want fail %v, got %d failures", tc.wantFail, mock.failcalls)
			}
		})
	}
}

func TestFieldError(t *testing.T) {
	ownerEmpty := errors.Field("Owner", errors.ErrEmpty, "owner is required")

	cases := map[string]struct {
		err      error
		field    string
		want     *errors.Error
		wantFail bool
	}{
		"single error found": {
			err:   ownerEmpty,
			field: "Owner",
			want:  errors.ErrEmpty,
		},
		"no error for another field": {
			err:   ownerEmpty,
			field: "TokenAddress",
			want:  nil,
		},
		"unexpected error": {
			err:      ownerEmpty,
			field:    "Owner",
			want:     nil,
			wantFail: true,
		},
		"wrong kind": {
			err:      ownerEmpty,
			field:    "Owner",
			want:     errors.ErrInput,
			wantFail: true,
		},
		"missing error": {
			err:      nil,
			field:    "Owner",
			want:     errors.ErrEmpty,
			wantFail: true,
		},
		"two errors for one field": {
			err: errors.Append(
				errors.Field("Owner", errors.ErrEmpty, "first"),
				errors.Field("Owner", errors.ErrEmpty, "second"),
			),
			field:    "Owner",
			want:     errors.ErrEmpty,
			wantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			FieldError(mock, tc.err, tc.field, tc.want)
			if failed := mock.failcalls > 0; failed != tc.wantFail {
				t.Fatalf("want fail %v, got %d failures", tc.wantFail, mock.failcalls)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var (
		nilMap   map[string]int
		nilSlice []byte
		nilErr   *errors.Error
	)

	cases := map[string]struct {
		value   interface{}
		wantNil bool
	}{
		"nil":           {value: nil, wantNil: true},
		"nil map":       {value: nilMap, wantNil: true},
		"nil slice":     {value: nilSlice, wantNil: true},
		"nil pointer":   {value: nilErr, wantNil: true},
		"zero int":      {value: 0, wantNil: false},
		"empty string":  {value: "", wantNil: false},
		"non nil error": {value: errors.ErrEmpty, wantNil: false},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			Nil(mock, tc.value)
			if isNil := mock.failcalls == 0; isNil != tc.wantNil {
				t.Fatalf("Nil: want nil %v", tc.wantNil)
			}

			mock = &tmock{TB: t}
			NotNil(mock, tc.value)
			if isNil := mock.failcalls > 0; isNil != tc.wantNil {
				t.Fatalf("NotNil: want nil %v", tc.wantNil)
			}
		})
	}
}

func TestPanics(t *testing.T) {
	mock := &tmock{TB: t}
	Panics(mock, func() { panic("boom") })
	if mock.failcalls != 0 {
		t.Fatal("panic not detected")
	}

	Panics(mock, func() {})
	if mock.failcalls != 1 {
		t.Fatal("missing panic not reported")
	}
}

// tmock counts failures instead of stopping the test.
type tmock struct {
	testing.TB
	failcalls int
}

func (t *tmock) Error(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Errorf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}

func (t *tmock) Fatal(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}
