package orm

import (
	"github.com/iov-one/suitdrop"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	suitdrop.Persistent
	Validate() error
}

// validBucketName returns true if given name can be used as a bucket name.
func validBucketName(name string) bool {
	if len(name) < 3 || len(name) > 20 {
		return false
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && r != '_' {
			return false
		}
	}
	return true
}
