package jsonvalue

import (
	"math"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// Encode renders v as minified JSON. Non-ASCII runes are written as UTF-8.
func Encode(v Value) []byte {
	return Append(nil, v, false)
}

// EncodeASCII renders v as minified JSON with every non-ASCII rune escaped.
func EncodeASCII(v Value) []byte {
	return Append(nil, v, true)
}

// Append appends the minified encoding of v to dst.
func Append(dst []byte, v Value, ensureASCII bool) []byte {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		if v.b {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case KindNumber:
		return appendNumber(dst, v)
	case KindString:
		return AppendString(dst, v.s, ensureASCII)
	case KindArray:
		dst = append(dst, '[')
		for i, item := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = Append(dst, item, ensureASCII)
		}
		return append(dst, ']')
	case KindObject:
		dst = append(dst, '{')
		first := true
		v.obj.Range(func(key string, item Value) bool {
			if !first {
				dst = append(dst, ',')
			}
			first = false
			dst = AppendString(dst, key, ensureASCII)
			dst = append(dst, ':')
			dst = Append(dst, item, ensureASCII)
			return true
		})
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}

func appendNumber(dst []byte, v Value) []byte {
	if v.i != nil {
		return v.i.Append(dst, 10)
	}
	return AppendFloat(dst, v.f)
}

// AppendFloat writes f in its shortest round-trip form. Plain decimal
// notation is used for 1e-7 <= |f| < 1e21, exponent notation otherwise.
// Integral values carry no fractional part and negative zero is written
// as 0. NaN and infinities become null.
func AppendFloat(dst []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(dst, "null"...)
	}
	if f == 0 {
		return append(dst, '0')
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-7 || abs >= 1e21) {
		format = 'e'
	}
	dst = strconv.AppendFloat(dst, f, format, -1, 64)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}

// AppendString writes s as a quoted JSON string.
func AppendString(dst []byte, s string, ensureASCII bool) []byte {
	dst = append(dst, '"')
	for _, r := range s {
		switch r {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			switch {
			case r < 0x20:
				dst = appendUnicodeEscape(dst, r)
			case ensureASCII && r > 0x7f:
				if r > 0xffff {
					hi, lo := utf16.EncodeRune(r)
					dst = appendUnicodeEscape(dst, hi)
					dst = appendUnicodeEscape(dst, lo)
				} else {
					dst = appendUnicodeEscape(dst, r)
				}
			default:
				dst = utf8.AppendRune(dst, r)
			}
		}
	}
	return append(dst, '"')
}

func appendUnicodeEscape(dst []byte, r rune) []byte {
	return append(dst, '\\', 'u',
		hexDigits[(r>>12)&0xf], hexDigits[(r>>8)&0xf],
		hexDigits[(r>>4)&0xf], hexDigits[r&0xf])
}
