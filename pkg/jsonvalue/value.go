// Package jsonvalue defines the value tree produced by the repair engine.
//
// A Value is a closed variant over the six JSON kinds. Numbers keep the
// distinction between floating values and arbitrary-precision integers so
// large integers survive a repair without truncation.
package jsonvalue

import (
	"encoding/json"
	"math/big"
)

// Kind identifies which variant a Value holds.
type Kind uint8

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a parsed JSON value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	f    float64
	i    *big.Int // non-nil for integer numbers
	s    string
	arr  []Value
	obj  *Map
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Float wraps a floating point number.
func Float(f float64) Value { return Value{kind: KindNumber, f: f} }

// Int wraps an arbitrary-precision integer. A nil n is treated as zero.
func Int(n *big.Int) Value {
	if n == nil {
		n = new(big.Int)
	}
	return Value{kind: KindNumber, i: n}
}

// IntFromInt64 wraps a machine integer.
func IntFromInt64(n int64) Value { return Int(big.NewInt(n)) }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps a sequence of values. The slice is retained, not copied.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// Object wraps an ordered map. A nil map becomes an empty object.
func Object(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindObject, obj: m}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean held by v, false for other kinds.
func (v Value) Bool() bool { return v.kind == KindBool && v.b }

// IsInt reports whether v is an integer number.
func (v Value) IsInt() bool { return v.kind == KindNumber && v.i != nil }

// Float returns v as a float64. Integers are converted, other kinds yield 0.
func (v Value) Float() float64 {
	if v.kind != KindNumber {
		return 0
	}
	if v.i != nil {
		f, _ := new(big.Float).SetInt(v.i).Float64()
		return f
	}
	return v.f
}

// BigInt returns the integer held by v, or nil when v is not an integer.
func (v Value) BigInt() *big.Int {
	if !v.IsInt() {
		return nil
	}
	return v.i
}

// Text returns the string held by v, "" for other kinds.
func (v Value) Text() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// Items returns the elements of an array, nil for other kinds.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Map returns the members of an object, nil for other kinds.
func (v Value) Map() *Map {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Len returns the number of elements, members or runes in v.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	case KindString:
		return len([]rune(v.s))
	default:
		return 0
	}
}

// String renders v as minified JSON.
func (v Value) String() string { return string(Encode(v)) }

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) { return Encode(v), nil }

// Interface converts v to plain Go values: nil, bool, json.Number, string,
// []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return json.Number(appendNumber(nil, v))
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		v.obj.Range(func(key string, val Value) bool {
			out[key] = val.Interface()
			return true
		})
		return out
	default:
		return nil
	}
}

// IsStrictlyEmpty reports whether v is an empty string, array or object.
// Falsy values such as 0, false and null are not strictly empty.
func IsStrictlyEmpty(v Value) bool {
	switch v.kind {
	case KindString:
		return v.s == ""
	case KindArray:
		return len(v.arr) == 0
	case KindObject:
		return v.obj.Len() == 0
	default:
		return false
	}
}

// SameShape reports whether a and b have the same structure: objects with
// the same key set whose values share a shape, arrays of equal length with
// pairwise matching elements, or scalars of the same type. Integer and
// floating numbers are different types.
func SameShape(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		same := true
		a.obj.Range(func(key string, av Value) bool {
			bv, ok := b.obj.Get(key)
			if !ok || !SameShape(av, bv) {
				same = false
				return false
			}
			return true
		})
		return same
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !SameShape(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindNumber:
		return a.IsInt() == b.IsInt()
	default:
		return true
	}
}
