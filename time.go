package suitdrop

import (
	"encoding/json"
	"time"

	"github.com/iov-one/suitdrop/errors"
)

// UnixTime is a point in time as POSIX time, with seconds precision. It is
// represented in JSON as a number. Zero means the time was never set, for
// example the claim time of an account that never claimed.
type UnixTime int64

// AsUnixTime returns the UNIX time of t.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

func (t UnixTime) String() string {
	return t.Time().String()
}

// Validate returns an error for times before the epoch.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

// UnmarshalJSON accepts a number of seconds or an RFC 3339 string, which is
// more convenient in genesis files.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var v UnixTime
	var unix int64
	var std time.Time
	switch {
	case json.Unmarshal(raw, &unix) == nil:
		v = UnixTime(unix)
	case json.Unmarshal(raw, &std) == nil:
		v = AsUnixTime(std)
	default:
		return errors.Wrap(errors.ErrInput, "invalid time format")
	}
	if v < 0 {
		return errors.Wrap(errors.ErrInput, "time before epoch")
	}
	*t = v
	return nil
}
