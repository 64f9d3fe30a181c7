package engine

import (
	"strconv"
	"unicode"

	"github.com/deepankarm/jsonrepair/pkg/jsonvalue"
)

// parseArray reads items until a closing bracket, a closing brace or the
// end of input. The opening bracket has already been consumed.
func (p *jsonParser) parseArray() jsonvalue.Value {
	p.ctx.push(ctxArray)
	defer p.ctx.pop()

	var items []jsonvalue.Value
	for {
		p.skipWhitespace()
		ch, ok := p.peek(0)
		if !p.pendingObject && (!ok || ch == ']' || ch == '}') {
			break
		}

		p.pushPath("[" + strconv.Itoa(len(items)) + "]")
		var value jsonvalue.Value
		switch {
		case p.pendingObject:
			p.pendingObject = false
			value = p.parseObject()
		case isDelimiter(ch):
			// a quoted string followed by ':' is the first key of an object
			// missing its opening brace
			rDelim := ch
			if ch == '“' {
				rDelim = '”'
			}
			i := p.skipWhitespaceAt(p.skipTo(1, rDelim) + 1)
			if p.peekIs(i, ':') {
				p.logf("Found a key inside an array, parsing an object")
				value = p.parseObject()
			} else {
				value = p.parseString()
			}
		default:
			value = p.parseValue()
		}
		p.popPath()

		switch {
		case jsonvalue.IsStrictlyEmpty(value):
			p.index++
		case value.Kind() == jsonvalue.KindString && value.Text() == "..." && p.peekIs(-1, '.'):
			p.logf("Found a '...' placeholder in the array, dropping it")
		default:
			items = append(items, value)
		}

		for {
			ch, ok := p.peek(0)
			if !ok || ch == ']' || (!unicode.IsSpace(ch) && ch != ',') {
				break
			}
			p.index++
		}
	}

	if p.peekIs(0, '}') {
		p.logf("Array was closed by '}'")
	} else if p.index >= len(p.text) {
		p.logf("Array has no closing ']'")
	}
	p.index++
	return jsonvalue.Array(items...)
}
