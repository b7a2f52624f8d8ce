package valuesummary

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"psym/solver"
)

// Run-local binary snapshots of value summaries.
//
// The format is explicit: varint-framed, length-prefixed, no reliance
// on language-level object serialization. Guards are not encoded
// structurally; they are written as indices into a guard table that
// the encoder accumulates and the decoder is handed back. Snapshots
// therefore round-trip only within the run that produced them, which
// is all backtracking needs.

// SnapshotHandle is implemented by handle values (machines, events,
// states) carried inside primitive summaries, so that the codec can
// write a stable reference instead of a pointer.
type SnapshotHandle interface {
	// SnapshotRef returns a kind discriminator and a name/index pair
	// that identifies the handle within the run.
	SnapshotRef() (kind string, name string, index int)
}

const (
	tagBool byte = iota + 1
	tagInt
	tagString
	tagHandle
	tagUnionType
)

// A SnapshotEncoder writes summaries into a byte buffer and collects
// the guard table.
type SnapshotEncoder struct {
	buf    bytes.Buffer
	guards []solver.Guard
	index  map[int]int
}

// NewSnapshotEncoder returns an empty encoder.
func NewSnapshotEncoder() *SnapshotEncoder {
	return &SnapshotEncoder{index: map[int]int{}}
}

// Bytes returns the encoded stream.
func (e *SnapshotEncoder) Bytes() []byte { return e.buf.Bytes() }

// GuardTable returns the guards referenced by the stream, in first-use
// order.
func (e *SnapshotEncoder) GuardTable() []solver.Guard { return e.guards }

func (e *SnapshotEncoder) uvarint(v uint64) {
	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scratch[:], v)
	e.buf.Write(scratch[:n])
}

func (e *SnapshotEncoder) varint(v int64) {
	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutVarint(scratch[:], v)
	e.buf.Write(scratch[:n])
}

func (e *SnapshotEncoder) str(s string) {
	e.uvarint(uint64(len(s)))
	e.buf.WriteString(s)
}

func (e *SnapshotEncoder) guard(g solver.Guard) {
	id := g.NodeID()
	if g.IsZero() {
		// Guard.NodeID reports 0 for the zero guard, which is the
		// formula engine's true constant; -1 is used instead. The
		// formula engine's false constant also has id -1, so the two
		// share a table entry, which is harmless since both are false.
		id = -1
	}
	idx, ok := e.index[id]
	if !ok {
		idx = len(e.guards)
		e.guards = append(e.guards, g)
		e.index[id] = idx
	}
	e.uvarint(uint64(idx))
}

func (e *SnapshotEncoder) value(v any) {
	switch x := v.(type) {
	case bool:
		e.buf.WriteByte(tagBool)
		if x {
			e.buf.WriteByte(1)
		} else {
			e.buf.WriteByte(0)
		}
	case int:
		e.buf.WriteByte(tagInt)
		e.varint(int64(x))
	case string:
		e.buf.WriteByte(tagString)
		e.str(x)
	case *UnionType:
		e.buf.WriteByte(tagUnionType)
		e.str(x.Class)
		e.uvarint(uint64(len(x.Fields)))
		for _, f := range x.Fields {
			e.str(f)
		}
	case SnapshotHandle:
		kind, name, index := x.SnapshotRef()
		e.buf.WriteByte(tagHandle)
		e.str(kind)
		e.str(name)
		e.varint(int64(index))
	default:
		panic(invariantf("value %v (%T) has no snapshot encoding", v, v))
	}
}

// A SnapshotDecoder reads summaries back from a stream and its guard
// table. Handles are resolved through ResolveHandle, which must be
// set before decoding summaries that carry them.
type SnapshotDecoder struct {
	r      *bytes.Reader
	guards []solver.Guard

	ResolveHandle func(kind string, name string, index int) (any, error)
}

// NewSnapshotDecoder wraps an encoded stream and its guard table.
func NewSnapshotDecoder(data []byte, guards []solver.Guard) *SnapshotDecoder {
	return &SnapshotDecoder{r: bytes.NewReader(data), guards: guards}
}

func (d *SnapshotDecoder) uvarint() (uint64, error) {
	return binary.ReadUvarint(d.r)
}

func (d *SnapshotDecoder) varint() (int64, error) {
	return binary.ReadVarint(d.r)
}

func (d *SnapshotDecoder) str() (string, error) {
	n, err := d.uvarint()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := d.r.Read(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func (d *SnapshotDecoder) guard() (solver.Guard, error) {
	idx, err := d.uvarint()
	if err != nil {
		return solver.Guard{}, err
	}
	if int(idx) >= len(d.guards) {
		return solver.Guard{}, fmt.Errorf("valuesummary: guard index %d outside table of %d", idx, len(d.guards))
	}
	return d.guards[idx], nil
}

func (d *SnapshotDecoder) value() (any, error) {
	tag, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagBool:
		b, err := d.r.ReadByte()
		if err != nil {
			return nil, err
		}
		return b == 1, nil
	case tagInt:
		v, err := d.varint()
		return int(v), err
	case tagString:
		return d.str()
	case tagUnionType:
		class, err := d.str()
		if err != nil {
			return nil, err
		}
		n, err := d.uvarint()
		if err != nil {
			return nil, err
		}
		var fields []string
		for i := uint64(0); i < n; i++ {
			f, err := d.str()
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		return GetUnionType(class, fields), nil
	case tagHandle:
		kind, err := d.str()
		if err != nil {
			return nil, err
		}
		name, err := d.str()
		if err != nil {
			return nil, err
		}
		index, err := d.varint()
		if err != nil {
			return nil, err
		}
		if d.ResolveHandle == nil {
			return nil, fmt.Errorf("valuesummary: handle %s/%s encountered with no resolver", kind, name)
		}
		return d.ResolveHandle(kind, name, int(index))
	default:
		return nil, fmt.Errorf("valuesummary: unknown value tag %d", tag)
	}
}

func (p Prim[T]) Snapshot(e *SnapshotEncoder) {
	e.uvarint(uint64(len(p.entries)))
	for _, entry := range p.entries {
		e.guard(entry.Guard)
		e.value(entry.Value)
	}
}

// DecodePrim reads back a primitive summary written by Snapshot.
func DecodePrim[T comparable](d *SnapshotDecoder) (Prim[T], error) {
	n, err := d.uvarint()
	if err != nil {
		return Prim[T]{}, err
	}
	out := Prim[T]{}
	for i := uint64(0); i < n; i++ {
		g, err := d.guard()
		if err != nil {
			return Prim[T]{}, err
		}
		raw, err := d.value()
		if err != nil {
			return Prim[T]{}, err
		}
		v, ok := raw.(T)
		if !ok {
			return Prim[T]{}, fmt.Errorf("valuesummary: decoded %T where %T expected", raw, v)
		}
		out.entries = append(out.entries, GuardedValue[T]{Guard: g, Value: v})
	}
	return out, nil
}

func (l List[T]) Snapshot(e *SnapshotEncoder) {
	l.size.Snapshot(e)
	e.uvarint(uint64(len(l.items)))
	for _, item := range l.items {
		item.Snapshot(e)
	}
}

// DecodeList reads back a list summary; elem decodes one element.
func DecodeList[T Summary](d *SnapshotDecoder, elem func(*SnapshotDecoder) (T, error)) (List[T], error) {
	size, err := DecodePrim[int](d)
	if err != nil {
		return List[T]{}, err
	}
	n, err := d.uvarint()
	if err != nil {
		return List[T]{}, err
	}
	out := List[T]{size: size}
	for i := uint64(0); i < n; i++ {
		item, err := elem(d)
		if err != nil {
			return List[T]{}, err
		}
		out.items = append(out.items, item)
	}
	return out, nil
}

func (s Set[T]) Snapshot(e *SnapshotEncoder) {
	s.elements.Snapshot(e)
}

// DecodeSet reads back a set summary; elem decodes one element.
func DecodeSet[T Summary](d *SnapshotDecoder, elem func(*SnapshotDecoder) (T, error)) (Set[T], error) {
	elements, err := DecodeList(d, elem)
	if err != nil {
		return Set[T]{}, err
	}
	return Set[T]{elements: elements}, nil
}

func (m Map[K, V]) Snapshot(e *SnapshotEncoder) {
	m.keys.Snapshot(e)
	m.values.Snapshot(e)
}

// DecodeMap reads back a map summary; value decodes one value.
func DecodeMap[K comparable, V Summary](d *SnapshotDecoder, value func(*SnapshotDecoder) (V, error)) (Map[K, V], error) {
	keys, err := DecodeList(d, DecodePrim[K])
	if err != nil {
		return Map[K, V]{}, err
	}
	values, err := DecodeList(d, value)
	if err != nil {
		return Map[K, V]{}, err
	}
	return Map[K, V]{keys: keys, values: values}, nil
}

func (t Tuple) Snapshot(e *SnapshotEncoder) {
	e.guard(t.universe)
	e.uvarint(uint64(len(t.fields)))
	for _, f := range t.fields {
		f.Snapshot(e)
	}
}

// DecodeTuple reads back a tuple summary; fields decode the fields in
// order and must match the encoded arity.
func DecodeTuple(d *SnapshotDecoder, fields ...func(*SnapshotDecoder) (Summary, error)) (Tuple, error) {
	universe, err := d.guard()
	if err != nil {
		return Tuple{}, err
	}
	n, err := d.uvarint()
	if err != nil {
		return Tuple{}, err
	}
	if int(n) != len(fields) {
		return Tuple{}, fmt.Errorf("valuesummary: tuple arity %d does not match %d decoders", n, len(fields))
	}
	out := Tuple{universe: universe}
	for _, dec := range fields {
		f, err := dec(d)
		if err != nil {
			return Tuple{}, err
		}
		out.fields = append(out.fields, f)
	}
	return out, nil
}

func (u Union) Snapshot(e *SnapshotEncoder) {
	u.tag.Snapshot(e)
	tags := u.tags()
	e.uvarint(uint64(len(tags)))
	for _, t := range tags {
		e.value(t)
		u.payloads[t].Snapshot(e)
	}
}

// DecodeUnion reads back a union summary; payload decodes the payload
// for the given tag.
func DecodeUnion(d *SnapshotDecoder, payload func(*SnapshotDecoder, *UnionType) (Summary, error)) (Union, error) {
	tag, err := DecodePrim[*UnionType](d)
	if err != nil {
		return Union{}, err
	}
	n, err := d.uvarint()
	if err != nil {
		return Union{}, err
	}
	out := Union{tag: tag, payloads: map[*UnionType]Summary{}}
	for i := uint64(0); i < n; i++ {
		raw, err := d.value()
		if err != nil {
			return Union{}, err
		}
		t, ok := raw.(*UnionType)
		if !ok {
			return Union{}, fmt.Errorf("valuesummary: decoded %T where union type expected", raw)
		}
		p, err := payload(d, t)
		if err != nil {
			return Union{}, err
		}
		out.payloads[t] = p
	}
	return out, nil
}
