package engine

import (
	"slices"

	"github.com/deepankarm/jsonrepair/pkg/internal/errors"
	"github.com/deepankarm/jsonrepair/pkg/jsonvalue"
)

// parseObject reads members until a closing brace or the end of input. The
// opening brace has already been consumed.
func (p *jsonParser) parseObject() jsonvalue.Value {
	obj := jsonvalue.NewMap()
	for {
		p.skipWhitespace()
		ch, ok := p.peek(0)
		if !ok || ch == '}' {
			break
		}
		if ch == ']' && p.ctx.contains(ctxArray) {
			p.logf("Object was closed by ']', ending it here")
			p.index--
			break
		}
		if ch == ':' {
			p.logf("Found ':' before a key, dropping it")
			p.index++
		}

		p.ctx.push(ctxObjectKey)
		rollbackIndex := p.index
		key := ""
		for {
			ch, ok := p.peek(0)
			if !ok {
				break
			}
			rollbackIndex = p.index
			if ch == '[' && key == "" && p.extendLastArray(obj) {
				continue
			}
			key = p.parseString().Text()
			if key == "" {
				p.skipWhitespace()
			}
			if key != "" || p.peekIs(0, ':', '}') {
				break
			}
		}

		if p.ctx.contains(ctxArray) && obj.Has(key) {
			// a new object started without its opening brace
			p.logf("Found duplicate key %q, closing the object and starting a new one", key)
			p.pushPath(key)
			p.violate(errors.ErrorTypeDuplicateKey, "duplicate key, started a new object")
			p.popPath()
			p.ctx.pop()
			p.index = rollbackIndex
			p.pendingObject = true
			return jsonvalue.Object(obj)
		}

		p.skipWhitespace()
		if ch, ok := p.peek(0); !ok || ch == '}' {
			p.ctx.pop()
			continue
		}
		if !p.peekIs(0, ':') {
			p.logf("Missing ':' after key %q", key)
			p.pushPath(key)
			p.violate(errors.ErrorTypeMissingColon, "missing ':' after key")
			p.popPath()
		}
		p.index++
		p.ctx.pop()
		p.ctx.push(ctxObjectValue)
		p.skipWhitespace()

		p.pushPath(key)
		var value jsonvalue.Value
		if ch, ok := p.peek(0); ok && (ch == ',' || ch == '}') {
			p.logf("Found a stray %q where a value should be, using null", ch)
			p.violate(errors.ErrorTypeEmptyValue, "missing value, used null")
			value = jsonvalue.Null()
		} else {
			value = p.parseValue()
			if prev, ok := p.peek(-1); isNoValue(value) && (!ok || !isDelimiter(prev)) {
				p.violate(errors.ErrorTypeEmptyValue, "missing value, used an empty string")
			}
		}
		if key == "" {
			p.violate(errors.ErrorTypeEmptyKey, "empty key")
		}
		p.popPath()
		p.ctx.pop()
		obj.Set(key, value)

		if p.pendingObject {
			// the brace of a cut-short nested object is not repeated here
			p.pendingObject = false
		} else if p.peekIs(0, ',', '\'', '"') {
			p.index++
		}
	}
	p.index++

	if !p.ctx.empty() {
		if p.peekIs(0, '}') && p.ctx.current() == ctxArray {
			p.logf("Found an extra closing brace, skipping it")
			p.index++
		}
		return jsonvalue.Object(obj)
	}

	// {"a": 1}, "b": 2 continues the object
	i := p.skipWhitespaceAt(0)
	if !p.peekIs(i, ',') {
		return jsonvalue.Object(obj)
	}
	i = p.skipWhitespaceAt(i + 1)
	if next, ok := p.peek(i); !ok || !isDelimiter(next) {
		return jsonvalue.Object(obj)
	}
	p.logf("Found more members after the object closed, merging them in")
	p.index += i
	obj.Merge(p.parseObject().Map())
	return jsonvalue.Object(obj)
}

// extendLastArray handles an array met in key position right after a
// member whose value is an array: the new items are appended to it. It
// reports false, without consuming anything, when the last value is not an
// array.
func (p *jsonParser) extendLastArray(obj *jsonvalue.Map) bool {
	last, ok := obj.LastKey()
	if !ok {
		return false
	}
	prev, _ := obj.Get(last)
	if prev.Kind() != jsonvalue.KindArray {
		return false
	}

	p.logf("Found an array in key position, appending it to %q", last)
	p.index++
	items := p.parseArray().Items()
	if len(items) == 1 && items[0].Kind() == jsonvalue.KindArray {
		items = items[0].Items()
	}
	obj.Set(last, jsonvalue.Array(slices.Concat(prev.Items(), items)...))

	p.skipWhitespace()
	if p.peekIs(0, ',') {
		p.index++
	}
	p.skipWhitespace()
	return true
}
