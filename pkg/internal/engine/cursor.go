package engine

import "unicode"

// peek returns the rune at index+offset without moving the cursor.
func (p *jsonParser) peek(offset int) (rune, bool) {
	i := p.index + offset
	if i < 0 || i >= len(p.text) {
		return 0, false
	}
	return p.text[i], true
}

// peekIs reports whether the rune at index+offset is one of targets.
func (p *jsonParser) peekIs(offset int, targets ...rune) bool {
	r, ok := p.peek(offset)
	if !ok {
		return false
	}
	for _, t := range targets {
		if r == t {
			return true
		}
	}
	return false
}

// skipWhitespace advances the cursor past whitespace.
func (p *jsonParser) skipWhitespace() {
	for p.index < len(p.text) && unicode.IsSpace(p.text[p.index]) {
		p.index++
	}
}

// skipWhitespaceAt returns the first offset at or after offset that is not
// whitespace. The cursor does not move.
func (p *jsonParser) skipWhitespaceAt(offset int) int {
	for {
		r, ok := p.peek(offset)
		if !ok || !unicode.IsSpace(r) {
			return offset
		}
		offset++
	}
}

// skipTo returns the offset of the first unescaped rune in targets at or
// after offset. When none is found the returned offset is past the end of
// the input, so peek on it reports false.
func (p *jsonParser) skipTo(offset int, targets ...rune) int {
	for {
		r, ok := p.peek(offset)
		if !ok {
			return offset
		}
		for _, t := range targets {
			if r == t && !p.escapedAt(offset) {
				return offset
			}
		}
		offset++
	}
}

// escapedAt reports whether the rune at offset is preceded by an odd run of
// backslashes. Only runes from the cursor onward are considered.
func (p *jsonParser) escapedAt(offset int) bool {
	n := 0
	for k := offset - 1; k >= 0; k-- {
		r, ok := p.peek(k)
		if !ok || r != '\\' {
			break
		}
		n++
	}
	return n%2 == 1
}

// isDelimiter reports whether r can open or close a string.
func isDelimiter(r rune) bool {
	return r == '"' || r == '\'' || r == '“' || r == '”'
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
