package engine

import (
	"unicode"

	"github.com/deepankarm/jsonrepair/pkg/jsonvalue"
)

// parseLiteral matches true, false or null case-insensitively. The word
// must not run on into more letters, digits or underscores. On any mismatch
// the cursor is restored and false is returned.
func (p *jsonParser) parseLiteral() (jsonvalue.Value, bool) {
	start := p.index
	ch, ok := p.peek(0)
	if !ok {
		return jsonvalue.Value{}, false
	}

	var word string
	var value jsonvalue.Value
	switch unicode.ToLower(ch) {
	case 't':
		word, value = "true", jsonvalue.Bool(true)
	case 'f':
		word, value = "false", jsonvalue.Bool(false)
	case 'n':
		word, value = "null", jsonvalue.Null()
	default:
		return jsonvalue.Value{}, false
	}

	for _, want := range word {
		r, ok := p.peek(0)
		if !ok || unicode.ToLower(r) != want {
			p.index = start
			return jsonvalue.Value{}, false
		}
		p.index++
	}
	if r, ok := p.peek(0); ok && (isAlnum(r) || r == '_') {
		p.index = start
		return jsonvalue.Value{}, false
	}
	return value, true
}
