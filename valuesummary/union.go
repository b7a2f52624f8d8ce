package valuesummary

import (
	"sort"
	"strings"
	"sync"

	"psym/solver"
)

// UnionType describes one variant of a tagged union: a class name and
// an optional named-field vector. Descriptors are interned so that
// handle equality is type equality.
type UnionType struct {
	Class  string
	Fields []string
}

var (
	unionTypesMu sync.Mutex
	unionTypes   = map[string]*UnionType{}
)

// GetUnionType interns the descriptor for the given class and field
// names.
func GetUnionType(class string, fields []string) *UnionType {
	key := class
	if fields != nil {
		key += "[" + strings.Join(fields, ",") + "]"
	}
	unionTypesMu.Lock()
	defer unionTypesMu.Unlock()
	if t, ok := unionTypes[key]; ok {
		return t
	}
	t := &UnionType{Class: class, Fields: fields}
	unionTypes[key] = t
	return t
}

func (t *UnionType) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Fields == nil {
		return t.Class
	}
	return t.Class + "[" + strings.Join(t.Fields, ",") + "]"
}

// Union is a tagged sum: a guarded tag plus one payload summary per
// tag. Distinct tags are always under disjoint guards.
type Union struct {
	tag      Prim[*UnionType]
	payloads map[*UnionType]Summary
}

// EmptyUnion returns the union with no variants.
func EmptyUnion() Union {
	return Union{payloads: map[*UnionType]Summary{}}
}

// UnionOf returns a union holding payload tagged with t under
// payload's universe.
func UnionOf(t *UnionType, payload Summary) Union {
	return Union{
		tag:      PrimUnder(payload.Universe(), t),
		payloads: map[*UnionType]Summary{t: payload},
	}
}

// Tag returns the guarded type descriptor.
func (u Union) Tag() Prim[*UnionType] { return u.tag }

// HasTag returns the guard under which the union carries tag t.
func (u Union) HasTag(t *UnionType) solver.Guard { return u.tag.GetGuardFor(t) }

// Payload returns the payload for tag t restricted to the tag's
// guard. Accessing a tag the union never carries under a satisfiable
// guard within pc is a model error.
func (u Union) Payload(pc solver.Guard, t *UnionType) Summary {
	has := u.HasTag(t)
	missing := pc.And(u.Universe())
	if !has.IsZero() {
		missing = missing.And(has.Not())
	}
	if !missing.IsZero() && missing.IsSat() {
		panic(&ModelError{
			Message: "union payload of type " + t.String() + " requested where a different variant is carried",
			Guard:   missing,
		})
	}
	p, ok := u.payloads[t]
	if !ok {
		return EmptyUnion()
	}
	return p.Restrict(pc)
}

// tags returns the carried descriptors in a deterministic order.
func (u Union) tags() []*UnionType {
	out := make([]*UnionType, 0, len(u.payloads))
	for t := range u.payloads {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func (u Union) Universe() solver.Guard { return u.tag.Universe() }

func (u Union) IsEmptyVS() bool { return u.tag.IsEmptyVS() }

func (u Union) Restrict(g solver.Guard) Summary {
	if g.IsTrue() {
		return u
	}
	out := Union{tag: Restrict(u.tag, g), payloads: map[*UnionType]Summary{}}
	for _, t := range u.tags() {
		p := u.payloads[t].Restrict(g)
		if !p.IsEmptyVS() {
			out.payloads[t] = p
		}
	}
	return out
}

func (u Union) Merge(others ...Summary) Summary {
	out := Union{tag: u.tag, payloads: map[*UnionType]Summary{}}
	for t, p := range u.payloads {
		out.payloads[t] = p
	}
	for _, o := range others {
		ou, ok := o.(Union)
		if !ok {
			panic(invariantf("merging %T into %T", o, u))
		}
		out.tag = Merge2(out.tag, ou.tag)
		for _, t := range ou.tags() {
			p := ou.payloads[t]
			if existing, ok := out.payloads[t]; ok {
				out.payloads[t] = existing.Merge(p)
			} else {
				out.payloads[t] = p
			}
		}
	}
	return out
}

func (u Union) UpdateUnderGuard(g solver.Guard, update Summary) Summary {
	if g.IsZero() || g.IsFalse() {
		return u
	}
	return u.Restrict(g.Not()).Merge(update.Restrict(g))
}

// SymbolicEquals holds where the tags agree and the payloads under
// the shared tag are equal.
func (u Union) SymbolicEquals(other Summary, pc solver.Guard) Prim[bool] {
	ou, ok := other.(Union)
	if !ok {
		panic(invariantf("comparing %T with %T", u, other))
	}
	var equal solver.Guard
	for _, t := range u.tags() {
		shared := u.HasTag(t).And(ou.HasTag(t))
		if shared.IsZero() || shared.IsFalse() {
			continue
		}
		op, ok := ou.payloads[t]
		if !ok {
			continue
		}
		equal = equal.Or(TrueGuard(u.payloads[t].SymbolicEquals(op, shared)))
	}
	domain := pc.And(u.Universe()).And(ou.Universe())
	return boolUnder(domain, equal)
}

func (u Union) String() string {
	var b strings.Builder
	b.WriteString("Union{")
	for i, t := range u.tags() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
		b.WriteString(": ")
		b.WriteString(u.payloads[t].String())
	}
	b.WriteString("}")
	return b.String()
}
