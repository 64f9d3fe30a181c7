package engine

import "github.com/deepankarm/jsonrepair/pkg/jsonvalue"

// parseComment skips a #, // or /* */ comment. A line comment also ends at
// a structural rune of any enclosing region, so it cannot swallow the
// closing bracket of the array or object it sits in. At top level the next
// value is parsed; elsewhere the comment yields no value.
func (p *jsonParser) parseComment() jsonvalue.Value {
	terminators := []rune{'\n', '\r'}
	if p.ctx.contains(ctxArray) {
		terminators = append(terminators, ']')
	}
	if p.ctx.contains(ctxObjectValue) {
		terminators = append(terminators, '}')
	}
	if p.ctx.contains(ctxObjectKey) {
		terminators = append(terminators, ':')
	}

	start := p.index
	switch {
	case p.peekIs(0, '#'):
		p.skipLineComment(terminators)
		p.logf("Skipped line comment %q", string(p.text[start:p.index]))
	case p.peekIs(0, '/') && p.peekIs(1, '/'):
		p.index += 2
		p.skipLineComment(terminators)
		p.logf("Skipped line comment %q", string(p.text[start:p.index]))
	case p.peekIs(0, '/') && p.peekIs(1, '*'):
		p.index += 2
		for {
			if p.index >= len(p.text) {
				p.logf("Block comment was never closed, skipped to the end of input")
				break
			}
			if p.peekIs(0, '*') && p.peekIs(1, '/') {
				p.index += 2
				break
			}
			p.index++
		}
		p.logf("Skipped block comment %q", string(p.text[start:min(p.index, len(p.text))]))
	default:
		// a lone '/'
		p.index++
	}

	if p.ctx.empty() {
		return p.parseValue()
	}
	return noValue
}

func (p *jsonParser) skipLineComment(terminators []rune) {
	for p.index < len(p.text) && !p.peekIs(0, terminators...) {
		p.index++
	}
}
