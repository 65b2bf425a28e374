/*
Package codec reads and writes the protobuf wire format of persisted models.

Models implement Marshal and Unmarshal by listing their fields explicitly:

	func (m *Config) Marshal() ([]byte, error) {
		e := codec.NewEncoder()
		e.Bytes(1, m.Owner)
		e.Uint64(2, m.Amount)
		return e.Result()
	}

	func (m *Config) Unmarshal(raw []byte) error {
		*m = Config{}
		d := codec.NewDecoder(raw)
		for d.More() {
			field, wire, err := d.Key()
			...
		}
		return nil
	}

Zero values are omitted, as proto3 does.
*/
package codec

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/suitdrop/errors"
)

// Marshaller is implemented by nested messages.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Encoder writes protobuf wire encoded fields. The first error is kept and
// returned by Result, all following writes are ignored.
type Encoder struct {
	buf *proto.Buffer
	err error
}

// NewEncoder returns an encoder writing into a new buffer.
func NewEncoder() *Encoder {
	return &Encoder{buf: proto.NewBuffer(nil)}
}

func (e *Encoder) key(field int, wire int) {
	if e.err != nil {
		return
	}
	e.err = e.buf.EncodeVarint(uint64(field)<<3 | uint64(wire))
}

// Uint64 writes a varint field.
func (e *Encoder) Uint64(field int, v uint64) {
	if v == 0 {
		return
	}
	e.key(field, proto.WireVarint)
	if e.err == nil {
		e.err = e.buf.EncodeVarint(v)
	}
}

// Int64 writes a varint field. Negative values use ten bytes, as protobuf
// int64 does.
func (e *Encoder) Int64(field int, v int64) {
	e.Uint64(field, uint64(v))
}

// Bool writes a varint field holding 1.
func (e *Encoder) Bool(field int, v bool) {
	if v {
		e.Uint64(field, 1)
	}
}

// Bytes writes a length delimited field.
func (e *Encoder) Bytes(field int, b []byte) {
	if len(b) == 0 {
		return
	}
	e.key(field, proto.WireBytes)
	if e.err == nil {
		e.err = e.buf.EncodeRawBytes(b)
	}
}

// String writes a length delimited field.
func (e *Encoder) String(field int, s string) {
	if s == "" {
		return
	}
	e.key(field, proto.WireBytes)
	if e.err == nil {
		e.err = e.buf.EncodeStringBytes(s)
	}
}

// Strings writes a repeated string field.
func (e *Encoder) Strings(field int, ss []string) {
	for _, s := range ss {
		e.key(field, proto.WireBytes)
		if e.err == nil {
			e.err = e.buf.EncodeStringBytes(s)
		}
	}
}

// Message writes a nested message. A nil message is omitted.
func (e *Encoder) Message(field int, m Marshaller) {
	if e.err != nil || m == nil {
		return
	}
	raw, err := m.Marshal()
	if err != nil {
		e.err = err
		return
	}
	e.key(field, proto.WireBytes)
	if e.err == nil {
		e.err = e.buf.EncodeRawBytes(raw)
	}
}

// Result returns the encoded bytes or the first error.
func (e *Encoder) Result() ([]byte, error) {
	if e.err != nil {
		return nil, errors.Wrap(errors.ErrCodec, e.err.Error())
	}
	raw := e.buf.Bytes()
	if raw == nil {
		// Stores do not accept nil values.
		raw = []byte{}
	}
	return raw, nil
}

// Decoder reads protobuf wire encoded fields.
type Decoder struct {
	raw []byte
	pos int
}

// NewDecoder returns a decoder reading given bytes.
func NewDecoder(raw []byte) *Decoder {
	return &Decoder{raw: raw}
}

// More returns true if there is unread data left.
func (d *Decoder) More() bool {
	return d.pos < len(d.raw)
}

// Key reads the next field number and its wire type.
func (d *Decoder) Key() (field int, wire int, err error) {
	v, err := d.varint()
	if err != nil {
		return 0, 0, err
	}
	field = int(v >> 3)
	if field <= 0 {
		return 0, 0, errors.Wrapf(errors.ErrCodec, "invalid field number %d", field)
	}
	return field, int(v & 7), nil
}

func (d *Decoder) varint() (uint64, error) {
	v, n := proto.DecodeVarint(d.raw[d.pos:])
	if n == 0 {
		return 0, errors.Wrap(errors.ErrCodec, "malformed varint")
	}
	d.pos += n
	return v, nil
}

// Uint64 reads a varint value.
func (d *Decoder) Uint64() (uint64, error) {
	return d.varint()
}

// Int64 reads a varint value.
func (d *Decoder) Int64() (int64, error) {
	v, err := d.varint()
	return int64(v), err
}

// Bool reads a varint value.
func (d *Decoder) Bool() (bool, error) {
	v, err := d.varint()
	return v != 0, err
}

// Bytes reads a length delimited value. Returned slice is a copy.
func (d *Decoder) Bytes() ([]byte, error) {
	size, err := d.varint()
	if err != nil {
		return nil, err
	}
	end := d.pos + int(size)
	if size > uint64(len(d.raw)) || end > len(d.raw) || end < d.pos {
		return nil, errors.Wrap(errors.ErrCodec, "length exceeds buffer")
	}
	b := make([]byte, size)
	copy(b, d.raw[d.pos:end])
	d.pos = end
	return b, nil
}

// String reads a length delimited value.
func (d *Decoder) String() (string, error) {
	b, err := d.Bytes()
	return string(b), err
}

// Skip ignores the value of an unknown field.
func (d *Decoder) Skip(wire int) error {
	switch wire {
	case proto.WireVarint:
		_, err := d.varint()
		return err
	case proto.WireBytes:
		_, err := d.Bytes()
		return err
	case proto.WireFixed64:
		return d.advance(8)
	case proto.WireFixed32:
		return d.advance(4)
	default:
		return errors.Wrapf(errors.ErrCodec, "unsupported wire type %d", wire)
	}
}

func (d *Decoder) advance(n int) error {
	if d.pos+n > len(d.raw) {
		return errors.Wrap(errors.ErrCodec, "unexpected end of data")
	}
	d.pos += n
	return nil
}

// Expect returns an error if the wire type of a known field is not the
// expected one.
func Expect(field, wire, want int) error {
	if wire != want {
		return errors.Wrapf(errors.ErrCodec, "field %d: wire type %d, want %d", field, wire, want)
	}
	return nil
}
