package suitdrop

import (
	"encoding/json"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/suitdrop/codec"
	"github.com/iov-one/suitdrop/errors"
)

// Effect is an instruction returned by a contract that the runtime executes
// after the contract returns. A contract must never assume an effect was
// executed before its handler returns.
type Effect interface {
	// Kind returns a short name of the effect, used in logs and metrics.
	Kind() string
}

// ExecuteEffect calls the execute entry point of another contract instance,
// with the emitting contract as the sender.
type ExecuteEffect struct {
	Contract Address
	Msg      json.RawMessage
}

func (ExecuteEffect) Kind() string { return "execute" }

// InstantiateEffect creates a new contract instance from a registered code.
type InstantiateEffect struct {
	CodeID uint64
	Msg    json.RawMessage
	Label  string
	// Admin may migrate the instance. No admin means the instance cannot be
	// migrated.
	Admin Address
}

func (InstantiateEffect) Kind() string { return "instantiate" }

// ReplyOn declares when the emitting contract should receive a reply for
// its sub message.
type ReplyOn int

const (
	ReplyNever ReplyOn = iota
	ReplySuccess
)

func (r ReplyOn) String() string {
	switch r {
	case ReplyNever:
		return "never"
	case ReplySuccess:
		return "success"
	default:
		return "unknown"
	}
}

// SubMsg wraps an effect with the correlation tag of the reply.
type SubMsg struct {
	// ID is returned in the Reply so that the contract can correlate the
	// result with the request.
	ID      uint64
	Effect  Effect
	ReplyOn ReplyOn
}

// NewSubMsg returns a sub message that never results in a reply.
func NewSubMsg(e Effect) SubMsg {
	return SubMsg{Effect: e, ReplyOn: ReplyNever}
}

// ReplyOnSuccess returns a sub message that results in a reply with given id
// once the effect was successfully executed.
func ReplyOnSuccess(id uint64, e Effect) SubMsg {
	return SubMsg{ID: id, Effect: e, ReplyOn: ReplySuccess}
}

// Reply is delivered by the runtime to the contract that emitted a sub
// message requesting it.
type Reply struct {
	ID uint64
	// Data is the result data of the executed effect. For an instantiation
	// this is the serialized InstantiateResponse.
	Data   []byte
	Events []Event
}

// InstantiateResponse is the result data of an instantiate effect.
type InstantiateResponse struct {
	ContractAddress string
	Data            []byte
}

var _ Persistent = (*InstantiateResponse)(nil)

// Marshal serializes the response using protobuf wire format, field 1 being
// the address and field 2 the instantiated contract data.
func (r *InstantiateResponse) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.String(1, r.ContractAddress)
	e.Bytes(2, r.Data)
	return e.Result()
}

func (r *InstantiateResponse) Unmarshal(raw []byte) error {
	*r = InstantiateResponse{}
	d := codec.NewDecoder(raw)
	for d.More() {
		field, wire, err := d.Key()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
			r.ContractAddress, err = d.String()
		case 2:
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
			r.Data, err = d.Bytes()
		default:
			err = d.Skip(wire)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ParseInstantiateResponse decodes the reply data of an instantiate effect
// and validates the created contract address.
func ParseInstantiateResponse(data []byte) (*InstantiateResponse, Address, error) {
	var res InstantiateResponse
	if err := res.Unmarshal(data); err != nil {
		return nil, nil, errors.Wrap(err, "instantiate response")
	}
	if res.ContractAddress == "" {
		return nil, nil, errors.Wrap(errors.ErrEmpty, "contract address")
	}
	addr, err := ParseAddress(res.ContractAddress)
	if err != nil {
		return nil, nil, errors.Wrap(err, "contract address")
	}
	return &res, addr, nil
}
