package migration

import (
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/gconf"
)

// pkg is the configuration name under which the version record is stored.
const pkg = "migration"

// SetContractVersion stores the version record of the contract instance,
// overwriting any previous record.
func SetContractVersion(db suitdrop.KVStore, contract, version string) error {
	v := ContractVersion{Contract: contract, Version: version}
	if err := gconf.Save(db, pkg, &v); err != nil {
		return errors.Wrap(err, "contract version")
	}
	return nil
}

// GetContractVersion returns the version record of the contract instance.
// ErrNotFound is returned if the instance was never initialized.
func GetContractVersion(db suitdrop.ReadOnlyKVStore) (*ContractVersion, error) {
	var v ContractVersion
	if err := gconf.Load(db, pkg, &v); err != nil {
		return nil, errors.Wrap(err, "contract version")
	}
	return &v, nil
}

// Upgrade ensures that the state of the instance is owned by given
// contract code and records the new version. It returns the version record
// that was stored before the upgrade.
func Upgrade(db suitdrop.KVStore, contract, version string) (*ContractVersion, error) {
	prev, err := GetContractVersion(db)
	if err != nil {
		return nil, err
	}
	if prev.Contract != contract {
		return nil, errors.Wrapf(ErrContractMismatch, "state owned by %q, cannot migrate to %q", prev.Contract, contract)
	}
	if err := SetContractVersion(db, contract, version); err != nil {
		return nil, err
	}
	return prev, nil
}
