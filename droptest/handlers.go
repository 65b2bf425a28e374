package droptest

import "github.com/iov-one/suitdrop"

// Handler is a mock implementation of the suitdrop.Handler interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding
// method. Each method call is counted.
type Handler struct {
	checkCall   int
	CheckResult suitdrop.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult suitdrop.DeliverResult
	DeliverErr    error
}

var _ suitdrop.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
