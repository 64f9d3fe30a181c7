package jsonvalue

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ParseNumber converts a numeric literal to a number Value.
//
// The literal is normalized first: underscores are dropped, a leading '+' is
// removed, ".5" reads as 0.5 and "1." as 1. Literals containing '.', 'e' or
// 'E' become floats; everything else is an integer of arbitrary precision.
// It reports false when the literal is not a number or overflows a float.
func ParseNumber(raw string) (Value, bool) {
	text := strings.ReplaceAll(raw, "_", "")
	text = strings.TrimPrefix(text, "+")
	if text == "" || text == "-" {
		return Value{}, false
	}
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Value{}, false
		}
		// ErrRange on underflow still yields a usable zero
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return Value{}, false
		}
		return Float(f), true
	}
	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return Value{}, false
	}
	return Int(n), true
}
