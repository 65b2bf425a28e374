package droptest

import (
	"testing"

	"github.com/iov-one/suitdrop"
)

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// suitdrop.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) suitdrop.Address {
	t.Helper()

	addr, err := suitdrop.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
