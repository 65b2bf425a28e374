package token

import (
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/coin"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/orm"
)

// Controller manages the balances of a token instance.
type Controller struct {
	bucket orm.ModelBucket
}

// NewController returns a controller operating on the balance bucket.
func NewController() Controller {
	return Controller{bucket: NewBalanceBucket()}
}

// Balance returns the amount held by given address. An address that never
// received any tokens has a zero balance.
func (c Controller) Balance(db suitdrop.ReadOnlyKVStore, addr suitdrop.Address) (coin.Amount, error) {
	var b Balance
	switch err := c.bucket.One(db, addr, &b); {
	case err == nil:
		return b.Amount, nil
	case errors.ErrNotFound.Is(err):
		return coin.Amount{}, nil
	default:
		return coin.Amount{}, errors.Wrap(err, "balance")
	}
}

// MoveCoins moves the given amount from src to dest. It fails if src does
// not hold enough tokens.
func (c Controller) MoveCoins(db suitdrop.KVStore, src, dest suitdrop.Address, amount coin.Amount) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "non positive amount")
	}
	have, err := c.Balance(db, src)
	if err != nil {
		return err
	}
	left, err := have.Subtract(amount)
	if err != nil {
		return errors.Wrapf(ErrInsufficientFunds, "have %s, need %s", have, amount)
	}
	if err := c.save(db, src, left); err != nil {
		return err
	}
	return c.IssueCoins(db, dest, amount)
}

// IssueCoins adds the given amount to the balance of dest. It fails if the
// balance would overflow.
func (c Controller) IssueCoins(db suitdrop.KVStore, dest suitdrop.Address, amount coin.Amount) error {
	have, err := c.Balance(db, dest)
	if err != nil {
		return err
	}
	total, err := have.Add(amount)
	if err != nil {
		return errors.Wrap(err, "recipient balance")
	}
	return c.save(db, dest, total)
}

func (c Controller) save(db suitdrop.KVStore, addr suitdrop.Address, amount coin.Amount) error {
	if amount.IsZero() {
		if err := c.bucket.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return c.bucket.Put(db, addr, &Balance{Amount: amount})
}
