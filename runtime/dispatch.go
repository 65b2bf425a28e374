package runtime

import (
	"encoding/json"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/store"
)

// ContractAddressKey is the event attribute set by the runtime to the
// address of the contract that emitted the event.
const ContractAddressKey = "_contract_address"

// execution is the state of a single top level message. All contracts
// involved share the same store.
type execution struct {
	r     *Runtime
	db    suitdrop.KVStore
	block suitdrop.Context
}

func (e *execution) instanceStore(addr suitdrop.Address) suitdrop.KVStore {
	return store.NewPrefixStore(e.db, instancePrefix(addr))
}

func (e *execution) contractCtx(addr, sender suitdrop.Address) suitdrop.Context {
	ctx := suitdrop.WithContract(e.block, addr)
	ctx = suitdrop.WithLogInfo(ctx, "contract", addr.String())
	if len(sender) != 0 {
		ctx = Auth.SetSigners(ctx, sender)
	}
	return suitdrop.WithQuerier(ctx, querier{e: e, depth: 1})
}

// code returns the contract code of an existing instance.
func (e *execution) code(addr suitdrop.Address) (suitdrop.Contract, error) {
	var info ContractInfo
	if err := e.r.contracts.One(e.db, addr, &info); err != nil {
		return nil, errors.Wrapf(err, "contract %s", addr)
	}
	code, ok := e.r.codes[info.CodeID]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCode, "code %d of %s", info.CodeID, addr)
	}
	return code, nil
}

func (e *execution) instantiate(
	depth int,
	codeID uint64,
	creator suitdrop.Address,
	msg json.RawMessage,
	label string,
	admin suitdrop.Address,
) (suitdrop.Address, *suitdrop.DeliverResult, []suitdrop.Event, error) {
	code, ok := e.r.codes[codeID]
	if !ok {
		return nil, nil, nil, errors.Wrapf(ErrUnknownCode, "code %d", codeID)
	}
	n, err := e.r.instances.NextInt(e.db)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "instance sequence")
	}
	addr := ContractAddress(codeID, n)
	switch err := e.r.contracts.Has(e.db, addr); {
	case err == nil:
		return nil, nil, nil, errors.Wrapf(errors.ErrDuplicate, "contract %s", addr)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, nil, err
	}
	info := ContractInfo{
		CodeID:  codeID,
		Creator: creator,
		Admin:   admin,
		Label:   label,
	}
	if err := e.r.contracts.Put(e.db, addr, &info); err != nil {
		return nil, nil, nil, errors.Wrap(err, "contract info")
	}

	res, err := code.Instantiate(e.contractCtx(addr, creator), e.instanceStore(addr), msg)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "instantiate code %d", codeID)
	}
	if res == nil {
		res = &suitdrop.DeliverResult{}
	}
	events, err := e.process(depth, addr, res)
	if err != nil {
		return nil, nil, nil, err
	}
	return addr, res, events, nil
}

func (e *execution) execute(depth int, addr, sender suitdrop.Address, msg json.RawMessage) (*suitdrop.DeliverResult, []suitdrop.Event, error) {
	code, err := e.code(addr)
	if err != nil {
		return nil, nil, err
	}
	res, err := code.Execute(e.contractCtx(addr, sender), e.instanceStore(addr), msg)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "execute %s", addr)
	}
	if res == nil {
		res = &suitdrop.DeliverResult{}
	}
	events, err := e.process(depth, addr, res)
	if err != nil {
		return nil, nil, err
	}
	return res, events, nil
}

// process collects the events of a handler result and executes all its
// effects in order. A reply requested by an effect is delivered to the
// emitter before the next effect is executed.
func (e *execution) process(depth int, emitter suitdrop.Address, res *suitdrop.DeliverResult) ([]suitdrop.Event, error) {
	if res == nil {
		return nil, nil
	}
	events := tagEvents(emitter, res.Events)
	for i, sub := range res.Effects {
		data, evs, err := e.dispatch(depth+1, emitter, sub.Effect)
		if err != nil {
			return nil, errors.Wrapf(err, "effect %d", i)
		}
		events = append(events, evs...)

		if sub.ReplyOn != suitdrop.ReplySuccess {
			continue
		}
		evs, err = e.reply(depth, emitter, suitdrop.Reply{ID: sub.ID, Data: data, Events: evs})
		if err != nil {
			return nil, errors.Wrapf(err, "reply %d", sub.ID)
		}
		events = append(events, evs...)
	}
	return events, nil
}

// dispatch executes a single effect with the emitting contract as the
// sender. It returns the result data and all events of the effect.
func (e *execution) dispatch(depth int, sender suitdrop.Address, effect suitdrop.Effect) ([]byte, []suitdrop.Event, error) {
	if depth > int(e.r.conf.MaxDepth) {
		return nil, nil, errors.Wrapf(ErrRecursion, "depth %d", depth)
	}
	switch eff := effect.(type) {
	case suitdrop.ExecuteEffect:
		e.r.metrics.effect(eff.Kind())
		res, events, err := e.execute(depth, eff.Contract, sender, eff.Msg)
		if err != nil {
			return nil, nil, err
		}
		return res.Data, events, nil
	case suitdrop.InstantiateEffect:
		e.r.metrics.effect(eff.Kind())
		addr, res, events, err := e.instantiate(depth, eff.CodeID, sender, eff.Msg, eff.Label, eff.Admin)
		if err != nil {
			return nil, nil, err
		}
		resp := suitdrop.InstantiateResponse{ContractAddress: addr.String(), Data: res.Data}
		data, err := resp.Marshal()
		if err != nil {
			return nil, nil, errors.Wrap(err, "instantiate response")
		}
		return data, events, nil
	default:
		return nil, nil, errors.Wrapf(errors.ErrHuman, "unsupported effect %T", effect)
	}
}

func (e *execution) reply(depth int, addr suitdrop.Address, reply suitdrop.Reply) ([]suitdrop.Event, error) {
	code, err := e.code(addr)
	if err != nil {
		return nil, err
	}
	replier, ok := code.(suitdrop.Replier)
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "%s requested a reply but cannot receive it", addr)
	}
	e.r.metrics.reply()
	res, err := replier.Reply(e.contractCtx(addr, nil), e.instanceStore(addr), reply)
	if err != nil {
		return nil, err
	}
	return e.process(depth, addr, res)
}

func (e *execution) query(depth int, addr suitdrop.Address, msg json.RawMessage) ([]byte, error) {
	if depth > int(e.r.conf.MaxDepth) {
		return nil, errors.Wrapf(ErrRecursion, "query depth %d", depth)
	}
	code, err := e.code(addr)
	if err != nil {
		return nil, err
	}
	ctx := suitdrop.WithQuerier(e.contractCtx(addr, nil), querier{e: e, depth: depth + 1})
	return code.Query(ctx, e.instanceStore(addr), msg)
}

// querier gives contracts read access to other instances, within the
// state of the message being processed.
type querier struct {
	e     *execution
	depth int
}

var _ suitdrop.Querier = querier{}

func (q querier) QueryContract(ctx suitdrop.Context, addr suitdrop.Address, msg []byte) ([]byte, error) {
	return q.e.query(q.depth, addr, msg)
}

// tagEvents returns a copy of events with the emitter address attached.
func tagEvents(emitter suitdrop.Address, events []suitdrop.Event) []suitdrop.Event {
	if len(events) == 0 {
		return nil
	}
	tagged := make([]suitdrop.Event, len(events))
	for i, ev := range events {
		tagged[i] = ev.Add(ContractAddressKey, emitter.String())
	}
	return tagged
}
