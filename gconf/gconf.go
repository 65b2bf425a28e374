package gconf

import (
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
)

// ReadStore is the part of suitdrop.ReadOnlyKVStore used by Load.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of suitdrop.KVStore used by Save.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// ValidMarshaler is a configuration that can be validated and serialized.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Unmarshaler is a configuration that can be loaded from its serialized
// form.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration can be both saved and loaded.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates src and writes it as the configuration of pkg.
func Save(db Store, pkg string, src ValidMarshaler) error {
	k := key(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validate %q", k)
	}
	raw, err := src.Marshal()
	if err == nil {
		err = db.Set(k, raw)
	}
	return errors.Wrapf(err, "save %q", k)
}

// Load reads the configuration of pkg into dst. ErrNotFound is returned if
// nothing was saved.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	k := key(pkg)
	switch raw, err := db.Get(k); {
	case err != nil:
		return errors.Wrapf(err, "load %q", k)
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "load %q", k)
	default:
		return errors.Wrapf(dst.Unmarshal(raw), "unmarshal %q", k)
	}
}

// InitConfig saves the genesis section opts["conf"][pkg] as the
// configuration of pkg. ErrNotFound is returned if the genesis does not
// declare one.
func InitConfig(db Store, opts suitdrop.Options, pkg string, conf Configuration) error {
	var sections suitdrop.Options
	if err := opts.ReadOptions("conf", &sections); err != nil {
		return errors.Wrap(err, "genesis conf")
	}
	if _, ok := sections[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "genesis conf for %q", pkg)
	}
	if err := sections.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "genesis conf for %q", pkg)
	}
	return Save(db, pkg, conf)
}
