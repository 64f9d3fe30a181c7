package engine

import (
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/deepankarm/jsonrepair/pkg/internal/errors"
	"github.com/deepankarm/jsonrepair/pkg/jsonvalue"
)

// nullIdentifiers are bare words that stand for a missing value.
var nullIdentifiers = map[string]bool{
	"nan":       true,
	"infinity":  true,
	"undefined": true,
	"none":      true,
}

// parseString reads a string that may lack either quote, use single or
// curly quotes, or contain unescaped quotes. Every quote met along the way
// is checked against what follows it to decide whether it closes the string
// or belongs to it.
func (p *jsonParser) parseString() jsonvalue.Value {
	// a brace cut short by a repeated key is not repeated in key position
	p.pendingObject = false

	ch, ok := p.peek(0)
	if ok && (ch == '#' || ch == '/') {
		return p.parseComment()
	}
	for ok && !isDelimiter(ch) && !isAlnum(ch) {
		p.index++
		ch, ok = p.peek(0)
	}
	if !ok {
		return noValue
	}

	cur := p.ctx.current()
	missingQuotes := false
	doubledQuotes := false
	lDelim, rDelim := '"', '"'
	switch {
	case ch == '\'':
		lDelim, rDelim = '\'', '\''
	case ch == '“':
		lDelim, rDelim = '“', '”'
	case isAlnum(ch):
		lower := unicode.ToLower(ch)
		if (lower == 't' || lower == 'f' || lower == 'n') && cur != ctxObjectKey {
			if v, ok := p.parseLiteral(); ok {
				return v
			}
		}
		p.logf("String has no opening quote")
		missingQuotes = true
	}
	if !missingQuotes {
		p.index++
	}

	if p.peekIs(0, lDelim) {
		switch {
		case (cur == ctxObjectKey && p.peekIs(p.skipWhitespaceAt(1), ':')) ||
			(cur == ctxObjectValue && p.peekIs(1, ',', '}')):
			// plain empty string
			p.index++
			return noValue
		case p.peekIs(1, lDelim):
			p.logf("Found three quotes in a row, ignoring them")
			p.violate(errors.ErrorTypeDoubledQuotes, "three quotes in a row")
			return noValue
		}
		i := p.skipTo(1, rDelim)
		if _, found := p.peek(i); found && p.peekIs(i+1, rDelim) {
			p.logf("String is wrapped in doubled quotes")
			p.violate(errors.ErrorTypeDoubledQuotes, "string wrapped in doubled quotes")
			doubledQuotes = true
			p.index++
		} else {
			i = p.skipWhitespaceAt(1)
			next, ok := p.peek(i)
			switch {
			case ok && (isDelimiter(next) || next == '{' || next == '['):
				p.logf("Found a doubled quote followed by another value, ignoring it")
				p.index++
				return noValue
			case !ok || (next != ',' && next != ']' && next != '}'):
				p.logf("Found a stray doubled quote, dropping one")
				p.violate(errors.ErrorTypeDoubledQuotes, "stray doubled quote")
				p.index++
			}
		}
	}

	var acc []rune
	unmatchedDelimiter := false
	closed := false
scan:
	for {
		ch, ok := p.peek(0)
		if !ok {
			break
		}
		if ch == rDelim {
			closed = true
			break
		}
		if missingQuotes {
			if cur == ctxObjectKey && (ch == ':' || unicode.IsSpace(ch)) {
				p.logf("Unquoted key ended at %q", ch)
				break
			}
			if cur == ctxArray && (ch == ']' || ch == ',') {
				p.logf("Unquoted array item ended at %q", ch)
				break
			}
		}
		if !p.streamStable && cur == ctxObjectValue && (ch == ',' || ch == '}') &&
			(len(acc) == 0 || acc[len(acc)-1] != rDelim) {
			if p.valueMissingRightQuote(acc, lDelim, rDelim) {
				p.logf("String value has no closing quote, ended it at %q", ch)
				break
			}
		}
		if !p.streamStable && ch == ']' && p.ctx.contains(ctxArray) &&
			len(acc) > 0 && acc[len(acc)-1] != rDelim {
			if _, found := p.peek(p.skipTo(0, rDelim)); !found {
				break
			}
		}

		if ch == '\\' {
			acc = p.parseEscape(acc, rDelim)
			continue
		}
		acc = append(acc, ch)
		p.index++

		ch, ok = p.peek(0)
		if !ok {
			break
		}
		if ch == ':' && !missingQuotes && cur == ctxObjectKey && p.keyMissingRightQuote(lDelim, rDelim) {
			p.logf("Key has no closing quote, ended it at ':'")
			break
		}
		if ch != rDelim {
			continue
		}

		// ch may close the string or be a quote inside it
		switch {
		case doubledQuotes && p.peekIs(1, rDelim):
			p.logf("Found the closing doubled quote")
			p.index++
		case missingQuotes && cur == ctxObjectValue:
			i := 1
			next, ok := p.peek(i)
			for ok && next != rDelim && next != lDelim {
				i++
				next, ok = p.peek(i)
			}
			if ok && p.peekIs(p.skipWhitespaceAt(i+1), ':') {
				// the quote opens the next key
				p.logf("Unquoted value ran into the next key, ending it")
				break scan
			}
		case unmatchedDelimiter:
			if p.quoteEndsValue(cur) {
				unmatchedDelimiter = false
				continue
			}
			p.logf("Quote pairs with an earlier inner quote, keeping it")
			unmatchedDelimiter = false
			acc = append(acc, ch)
			p.index++
		default:
			switch p.classifyInnerQuote(cur, lDelim, rDelim) {
			case quoteContent:
				p.logf("Quote does not end the string here, keeping it")
				acc = append(acc, ch)
				p.index++
			case quoteUnmatched:
				p.logf("Quote does not end the string here, keeping it")
				unmatchedDelimiter = !unmatchedDelimiter
				acc = append(acc, ch)
				p.index++
			}
		}
	}

	if c, ok := p.peek(0); ok && missingQuotes && cur == ctxObjectKey && unicode.IsSpace(c) && !closed {
		p.skipWhitespace()
		if !p.peekIs(0, ':', ',') {
			p.logf("Unquoted key is followed by more words, treating it as a comment")
			return noValue
		}
	}

	if closed {
		p.index++
	} else if !p.streamStable {
		p.logf("String has no closing quote")
		acc = trimRightSpace(acc)
	}
	if !p.streamStable && (missingQuotes || (len(acc) > 0 && acc[len(acc)-1] == '\n')) {
		acc = trimRightSpace(acc)
	}

	s := string(acc)
	if missingQuotes && cur != ctxObjectKey && nullIdentifiers[strings.ToLower(s)] {
		p.logf("Found %q, using null", s)
		return jsonvalue.Null()
	}
	return jsonvalue.String(s)
}

type innerQuote uint8

const (
	quoteCloses innerQuote = iota
	quoteContent
	quoteUnmatched
)

// classifyInnerQuote looks past the quote at the cursor and decides whether
// it closes the string. The cursor does not move.
func (p *jsonParser) classifyInnerQuote(cur contextTag, lDelim, rDelim rune) innerQuote {
	i := 1
	next, ok := p.peek(i)
	checkComma := true
	for ok && next != rDelim && next != lDelim {
		// a word after the quote means a comma further on is prose
		if checkComma && unicode.IsLetter(next) {
			checkComma = false
		}
		if (p.ctx.contains(ctxObjectKey) && (next == ':' || next == '}')) ||
			(p.ctx.contains(ctxObjectValue) && next == '}') ||
			(p.ctx.contains(ctxArray) && (next == ']' || next == ',')) ||
			(checkComma && cur == ctxObjectValue && next == ',') {
			break
		}
		i++
		next, ok = p.peek(i)
	}

	if ok && next == ',' && cur == ctxObjectValue {
		// "lorem "ipsum", "next": the quote is content when another
		// quote closes the value before the next , or }
		i = p.skipTo(i+1, rDelim)
		i = p.skipWhitespaceAt(i + 1)
		if p.peekIs(i, '}', ',') {
			return quoteContent
		}
		return quoteCloses
	}
	if !ok || next != rDelim || p.escapedAt(i) {
		return quoteCloses
	}

	// only whitespace up to the next quote: this one closes
	onlySpace := true
	for j := 1; j < i; j++ {
		if r, _ := p.peek(j); !unicode.IsSpace(r) {
			onlySpace = false
			break
		}
	}
	if onlySpace {
		return quoteCloses
	}

	switch cur {
	case ctxObjectValue:
		i = p.skipWhitespaceAt(i + 1)
		if p.peekIs(i, ',') {
			// "va"lue", "key": ... keeps the quote when a key follows
			i = p.skipTo(i+1, lDelim)
			i = p.skipTo(i+2, rDelim)
			i = p.skipWhitespaceAt(i + 1)
			if p.peekIs(i, ':') {
				return quoteContent
			}
		}
		i = p.skipTo(i+1, rDelim) + 1
		next, ok = p.peek(i)
		for ok && next != ':' {
			if next == ',' || next == ']' || next == '}' || (next == rDelim && !p.escapedAt(i)) {
				break
			}
			i++
			next, ok = p.peek(i)
		}
		if !ok || next != ':' {
			return quoteUnmatched
		}
		return quoteCloses
	case ctxArray:
		// an even run of quotes before ] means quoted words inside the item
		i = p.skipTo(i+1, rDelim, ']')
		next, ok = p.peek(i)
		even := ok && next == rDelim
		for even && ok && next == rDelim {
			i = p.skipTo(i+1, rDelim, ']')
			i = p.skipTo(i+1, rDelim, ']')
			next, ok = p.peek(i)
		}
		if even && (!ok || next != ']') {
			return quoteUnmatched
		}
		return quoteCloses
	case ctxObjectKey:
		return quoteContent
	}
	return quoteCloses
}

// quoteEndsValue reports whether the quote at the cursor is followed by the
// end of input or a rune that ends a value in the current region.
func (p *jsonParser) quoteEndsValue(cur contextTag) bool {
	i := p.skipWhitespaceAt(1)
	next, ok := p.peek(i)
	if !ok {
		return true
	}
	switch cur {
	case ctxObjectValue:
		return next == ',' || next == '}'
	case ctxArray:
		return next == ',' || next == ']'
	case ctxObjectKey:
		return next == ':'
	}
	return false
}

// valueMissingRightQuote decides, at a , or } inside an object value,
// whether the value simply lacks its closing quote.
func (p *jsonParser) valueMissingRightQuote(acc []rune, lDelim, rDelim rune) bool {
	missing := true
	if p.peekIs(1, '\\') {
		missing = false
	}
	i := p.skipTo(1, rDelim)
	if _, found := p.peek(i); found {
		i = p.skipWhitespaceAt(i + 1)
		next, ok := p.peek(i)
		if !ok || next == ',' || next == '}' {
			return false
		}
		// garbage after the quote: only a new opening quote that is not
		// followed by ':' keeps the string going
		i = p.skipTo(i, lDelim)
		if _, found := p.peek(i); !found {
			return false
		}
		i = p.skipWhitespaceAt(i + 1)
		if next, ok := p.peek(i); ok && next != ':' {
			return false
		}
		return missing
	}

	// no closing quote anywhere: a later ':' means the following members
	// lack quotes too
	if _, found := p.peek(p.skipTo(1, ':')); found {
		return true
	}
	i = p.skipWhitespaceAt(1)
	j := p.skipTo(i, '}')
	if j-i > 1 {
		return false
	}
	if _, found := p.peek(j); found {
		for k := len(acc) - 1; k >= 0; k-- {
			if acc[k] == '{' {
				return false
			}
		}
	}
	return missing
}

// keyMissingRightQuote decides, at a ':' inside a quoted key, whether the
// key lacks its closing quote: true when a complete quoted value followed
// by , or } comes next, or when no other quote follows at all.
func (p *jsonParser) keyMissingRightQuote(lDelim, rDelim rune) bool {
	i := p.skipTo(1, lDelim)
	if _, found := p.peek(i); !found {
		return true
	}
	i = p.skipTo(i+1, rDelim)
	if _, found := p.peek(i); !found {
		return false
	}
	i = p.skipWhitespaceAt(i + 1)
	return p.peekIs(i, ',', '}')
}

// parseEscape consumes the escape sequence at the cursor and appends what
// it stands for to acc. Unknown escapes lose their backslash and the
// escaped rune is read again as ordinary content.
func (p *jsonParser) parseEscape(acc []rune, rDelim rune) []rune {
	next, ok := p.peek(1)
	if !ok {
		p.index++
		if p.streamStable {
			// the escape may still be completed by more input
			return acc
		}
		return append(acc, '\\')
	}

	switch next {
	case rDelim, '"', '\\', '/':
		p.index += 2
		return append(acc, next)
	case 'b', 'f', 'n', 'r', 't':
		p.index += 2
		return append(acc, controlEscapes[next])
	case 'u', 'x':
		width := 4
		if next == 'x' {
			width = 2
		}
		r, ok := p.hexAt(2, width)
		if !ok {
			p.logf("Invalid \\%c escape, dropping the backslash", next)
			p.index++
			return acc
		}
		p.index += 2 + width
		if next == 'u' && utf16.IsSurrogate(r) {
			r = p.completeSurrogate(r)
		}
		return append(acc, r)
	}
	if isDelimiter(next) {
		p.index += 2
		return append(acc, next)
	}
	p.logf("Stray backslash before %q, dropping it", next)
	p.index++
	return acc
}

var controlEscapes = map[rune]rune{
	'b': '\b',
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
}

// completeSurrogate pairs a high surrogate with a following \uXXXX low
// surrogate. Unpaired halves become U+FFFD.
func (p *jsonParser) completeSurrogate(hi rune) rune {
	if hi < 0xd800 || hi > 0xdbff || !p.peekIs(0, '\\') || !p.peekIs(1, 'u') {
		return utf8.RuneError
	}
	lo, ok := p.hexAt(2, 4)
	if !ok || lo < 0xdc00 || lo > 0xdfff {
		return utf8.RuneError
	}
	p.index += 6
	return utf16.DecodeRune(hi, lo)
}

// hexAt decodes width hex digits starting at offset.
func (p *jsonParser) hexAt(offset, width int) (rune, bool) {
	var r rune
	for k := 0; k < width; k++ {
		c, ok := p.peek(offset + k)
		if !ok {
			return 0, false
		}
		d, ok := hexValue(c)
		if !ok {
			return 0, false
		}
		r = r<<4 | d
	}
	return r, true
}

func hexValue(c rune) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func trimRightSpace(acc []rune) []rune {
	for len(acc) > 0 && unicode.IsSpace(acc[len(acc)-1]) {
		acc = acc[:len(acc)-1]
	}
	return acc
}
