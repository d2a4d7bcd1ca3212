// Package value implements the self-describing dynamic value tree shared
// by arguments, coerced variables, and executor output: a tagged union
// over null, bool, int32, float64, string, enum symbol, opaque id, list,
// ordered map, and wrapped scalar.
package value

import (
	"encoding/json"
	"fmt"
	"math"
)

// Kind tags which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindEnum
	KindID
	KindList
	KindMap
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindEnum:
		return "Enum"
	case KindID:
		return "Id"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	case KindScalar:
		return "Scalar"
	default:
		return "Unknown"
	}
}

// Value is a tagged union. The zero Value is Null. A Value owns its
// contents exclusively: assigning a Value copies the tag and a reference
// to its payload, mirroring the "moving invalidates the source" contract
// of the reference implementation for the mutable container kinds (List,
// Map) — callers that need independent copies should call Clone.
type Value struct {
	kind Kind
	data any
}

// Null is the zero value.
var Null = Value{kind: KindNull}

func NewBool(b bool) Value       { return Value{kind: KindBool, data: b} }
func NewInt(i int32) Value       { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value   { return Value{kind: KindFloat, data: f} }
func NewString(s string) Value   { return Value{kind: KindString, data: s} }
func NewEnum(s string) Value     { return Value{kind: KindEnum, data: s} }
func NewID(b []byte) Value       { return Value{kind: KindID, data: append([]byte(nil), b...)} }
func NewScalar(inner Value) Value { return Value{kind: KindScalar, data: inner} }

func NewList(items ...Value) Value {
	return Value{kind: KindList, data: append([]Value(nil), items...)}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Bool() (bool, bool) {
	b, ok := v.data.(bool)
	return b, ok && v.kind == KindBool
}

func (v Value) Int() (int32, bool) {
	i, ok := v.data.(int32)
	return i, ok && v.kind == KindInt
}

func (v Value) Float() (float64, bool) {
	f, ok := v.data.(float64)
	return f, ok && v.kind == KindFloat
}

func (v Value) String() (string, bool) {
	s, ok := v.data.(string)
	return s, ok && (v.kind == KindString || v.kind == KindEnum)
}

func (v Value) ID() ([]byte, bool) {
	b, ok := v.data.([]byte)
	return b, ok && v.kind == KindID
}

func (v Value) List() ([]Value, bool) {
	l, ok := v.data.([]Value)
	return l, ok && v.kind == KindList
}

func (v Value) Scalar() (Value, bool) {
	inner, ok := v.data.(Value)
	return inner, ok && v.kind == KindScalar
}

// Map is an insertion-ordered string-keyed map. Re-inserting an existing
// key is rejected by Set, matching the response-object semantics of
// "rejects duplicate keys on insert".
type Map struct {
	keys   []string
	fields map[string]Value
}

func NewMap() *Map {
	return &Map{fields: make(map[string]Value)}
}

// Set inserts key/val. It reports false without mutating the map if key
// is already present.
func (m *Map) Set(key string, val Value) bool {
	if _, exists := m.fields[key]; exists {
		return false
	}
	m.keys = append(m.keys, key)
	m.fields[key] = val
	return true
}

// Replace sets key/val whether or not key already exists, preserving the
// original insertion position if key is already present.
func (m *Map) Replace(key string, val Value) {
	if _, exists := m.fields[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.fields[key] = val
}

func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.fields[key]
	return v, ok
}

func (m *Map) Keys() []string { return m.keys }

func (m *Map) Len() int { return len(m.keys) }

func NewMapValue(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMap, data: m}
}

func (v Value) Map() (*Map, bool) {
	m, ok := v.data.(*Map)
	return m, ok && v.kind == KindMap
}

// Clone produces a deep, independent copy so a caller may retain the
// original after handing this Value off to an owning resolver or sink.
func (v Value) Clone() Value {
	switch v.kind {
	case KindID:
		b, _ := v.data.([]byte)
		return NewID(b)
	case KindList:
		items, _ := v.data.([]Value)
		out := make([]Value, len(items))
		for i, it := range items {
			out[i] = it.Clone()
		}
		return Value{kind: KindList, data: out}
	case KindMap:
		m, _ := v.data.(*Map)
		clone := NewMap()
		if m != nil {
			for _, k := range m.keys {
				val, _ := m.Get(k)
				clone.Set(k, val.Clone())
			}
		}
		return NewMapValue(clone)
	case KindScalar:
		inner, _ := v.data.(Value)
		return NewScalar(inner.Clone())
	default:
		return v
	}
}

// Equal reports structural equality between two Values.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		ab, _ := a.Bool()
		bb, _ := b.Bool()
		return ab == bb
	case KindInt:
		ai, _ := a.Int()
		bi, _ := b.Int()
		return ai == bi
	case KindFloat:
		af, _ := a.Float()
		bf, _ := b.Float()
		return af == bf
	case KindString, KindEnum:
		as, _ := a.String()
		bs, _ := b.String()
		return as == bs
	case KindID:
		ab, _ := a.ID()
		bb, _ := b.ID()
		return ToBase64(ab) == ToBase64(bb)
	case KindList:
		al, _ := a.List()
		bl, _ := b.List()
		if len(al) != len(bl) {
			return false
		}
		for i := range al {
			if !Equal(al[i], bl[i]) {
				return false
			}
		}
		return true
	case KindMap:
		am, _ := a.Map()
		bm, _ := b.Map()
		if am.Len() != bm.Len() {
			return false
		}
		for _, k := range am.Keys() {
			av, _ := am.Get(k)
			bv, ok := bm.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindScalar:
		ai, _ := a.Scalar()
		bi, _ := b.Scalar()
		return Equal(ai, bi)
	}
	return false
}

// FromJSONNumber converts a decoded JSON number to an Int value when it
// fits in a signed 32-bit integer, or a Float value otherwise. This
// implements the "promote Int overflow to Float" policy chosen for this
// runtime (see design notes).
func FromJSONNumber(n json.Number) Value {
	if i, err := n.Int64(); err == nil && i >= math.MinInt32 && i <= math.MaxInt32 {
		return NewInt(int32(i))
	}
	f, _ := n.Float64()
	return NewFloat(f)
}

// MarshalJSON implements the JSON response serialisation rules: Null,
// List, and Map recurse structurally; String and EnumValue both become
// JSON strings; Id becomes its Base64 string form; Scalar serialises its
// inner value transparently.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		b, _ := v.Bool()
		return json.Marshal(b)
	case KindInt:
		i, _ := v.Int()
		return json.Marshal(i)
	case KindFloat:
		f, _ := v.Float()
		return json.Marshal(f)
	case KindString, KindEnum:
		s, _ := v.String()
		return json.Marshal(s)
	case KindID:
		b, _ := v.ID()
		return json.Marshal(ToBase64(b))
	case KindList:
		items, _ := v.List()
		return json.Marshal(items)
	case KindMap:
		m, _ := v.Map()
		buf := []byte{'{'}
		for i, k := range m.keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf = append(buf, kb...)
			buf = append(buf, ':')
			val, _ := m.Get(k)
			vb, err := val.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf = append(buf, vb...)
		}
		buf = append(buf, '}')
		return buf, nil
	case KindScalar:
		inner, _ := v.Scalar()
		return inner.MarshalJSON()
	default:
		return nil, fmt.Errorf("value: unknown kind %v", v.kind)
	}
}
