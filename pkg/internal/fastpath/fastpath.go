// Package fastpath decodes input that is already valid JSON without going
// through the repair engine.
package fastpath

import (
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/goccy/go-json"

	"github.com/deepankarm/jsonrepair/pkg/jsonvalue"
)

var errNumber = errors.New("number out of range")

// Valid reports whether data is a single well-formed JSON document. Raw
// control characters inside string literals make it invalid.
func Valid(data []byte) bool {
	return json.Valid(data) && !hasRawControl(data)
}

// hasRawControl reports whether a string literal in data holds a byte
// below 0x20.
func hasRawControl(data []byte) bool {
	inString, escaped := false, false
	for _, c := range data {
		switch {
		case !inString:
			inString = c == '"'
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inString = false
		case c < 0x20:
			return true
		}
	}
	return false
}

// Decode returns the value tree of data when data is valid JSON. Object
// members keep their document order; a repeated key keeps its first
// position and its last value. Decode reports false for anything the
// engine has to look at, including numbers that overflow a float64.
func Decode(data []byte) (jsonvalue.Value, bool) {
	if !Valid(data) {
		return jsonvalue.Value{}, false
	}
	raw, typ, _, err := jsonparser.Get(data)
	if err != nil {
		return jsonvalue.Value{}, false
	}
	v, err := convert(raw, typ)
	if err != nil {
		return jsonvalue.Value{}, false
	}
	return v, true
}

func convert(raw []byte, typ jsonparser.ValueType) (jsonvalue.Value, error) {
	switch typ {
	case jsonparser.Null:
		return jsonvalue.Null(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		return jsonvalue.Bool(b), err
	case jsonparser.Number:
		v, ok := jsonvalue.ParseNumber(string(raw))
		if !ok {
			return jsonvalue.Value{}, fmt.Errorf("%w: %s", errNumber, raw)
		}
		return v, nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		return jsonvalue.String(s), err
	case jsonparser.Array:
		return convertArray(raw)
	case jsonparser.Object:
		return convertObject(raw)
	default:
		return jsonvalue.Value{}, fmt.Errorf("unexpected value type %s", typ)
	}
}

func convertArray(raw []byte) (jsonvalue.Value, error) {
	items := []jsonvalue.Value{}
	var walkErr error
	_, err := jsonparser.ArrayEach(raw, func(value []byte, typ jsonparser.ValueType, _ int, err error) {
		if walkErr != nil {
			return
		}
		if err != nil {
			walkErr = err
			return
		}
		item, err := convert(value, typ)
		if err != nil {
			walkErr = err
			return
		}
		items = append(items, item)
	})
	if err != nil {
		return jsonvalue.Value{}, err
	}
	if walkErr != nil {
		return jsonvalue.Value{}, walkErr
	}
	return jsonvalue.Array(items...), nil
}

func convertObject(raw []byte) (jsonvalue.Value, error) {
	m := jsonvalue.NewMap()
	// ObjectEach hands over keys already unescaped
	err := jsonparser.ObjectEach(raw, func(key, value []byte, typ jsonparser.ValueType, _ int) error {
		item, err := convert(value, typ)
		if err != nil {
			return err
		}
		m.Set(string(key), item)
		return nil
	})
	if err != nil {
		return jsonvalue.Value{}, err
	}
	return jsonvalue.Object(m), nil
}
