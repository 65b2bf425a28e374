package app

import (
	"context"
	"testing"

	"github.com/iov-one/suitdrop/droptest"
	"github.com/iov-one/suitdrop/droptest/assert"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/store"
)

func TestRouter(t *testing.T) {
	var (
		ctx = context.Background()
		db  = store.MemStore()
	)

	r := NewRouter()

	msg := &droptest.Msg{RoutePath: "good"}
	handler := &droptest.Handler{}
	r.Handle(msg, handler)

	if _, err := r.Check(ctx, db, &droptest.Tx{Msg: msg}); err != nil {
		t.Fatalf("check failed: %s", err)
	}
	if _, err := r.Deliver(ctx, db, &droptest.Tx{Msg: msg}); err != nil {
		t.Fatalf("deliver failed: %s", err)
	}
	assert.Equal(t, 2, handler.CallCount())
}

func TestRouterNoHandler(t *testing.T) {
	var (
		ctx = context.Background()
		db  = store.MemStore()
		r   = NewRouter()
	)

	tx := &droptest.Tx{Msg: &droptest.Msg{RoutePath: "not-registered"}}

	_, err := r.Check(ctx, db, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Deliver(ctx, db, tx)
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = r.Deliver(ctx, db, &droptest.Tx{Err: errors.ErrMsg})
	assert.IsErr(t, errors.ErrMsg, err)
}

func TestRouterPanics(t *testing.T) {
	r := NewRouter()
	r.Handle(&droptest.Msg{RoutePath: "mint"}, &droptest.Handler{})

	assert.Panics(t, func() {
		r.Handle(&droptest.Msg{RoutePath: "mint"}, &droptest.Handler{})
	})
	assert.Panics(t, func() {
		r.Handle(&droptest.Msg{RoutePath: "l:7"}, &droptest.Handler{})
	})
}
