package engine

import (
	"strings"

	"github.com/deepankarm/jsonrepair/pkg/internal/expr"
	"github.com/deepankarm/jsonrepair/pkg/jsonvalue"
)

// parseNumber scans a numeric token and classifies it. Inside an array a
// comma always ends the token; elsewhere it is kept so "105,12" survives
// as text. A token followed by a letter is re-read as a string.
func (p *jsonParser) parseNumber() jsonvalue.Value {
	start := p.index
	inArray := p.ctx.current() == ctxArray

	var token []rune
	depth := 0
	for {
		ch, ok := p.peek(0)
		if !ok || !isNumberRune(ch) || (inArray && ch == ',') {
			break
		}
		if ch == '/' && p.peekIs(1, '/', '*') {
			break
		}
		if ch == ')' {
			if depth == 0 {
				break
			}
			depth--
		}
		if ch == '(' {
			depth++
		}
		token = append(token, ch)
		p.index++
	}

	next, hasNext := p.peek(0)
	if hasNext && isLetter(next) && len(token) == 1 && (token[0] == '-' || token[0] == '+') {
		// a signed identifier such as -Infinity
		p.index = start
		return p.parseString()
	}
	if n := len(token); n > 0 && isDanglingNumberRune(token[n-1]) {
		p.logf("Number ended with %q, dropped it", token[n-1])
		token = token[:n-1]
		p.index--
	} else if hasNext && isLetter(next) {
		p.logf("Number ran into a letter, parsing it as a string instead")
		p.index = start
		return p.parseString()
	}
	return classifyNumber(string(token))
}

// classifyNumber turns a scanned token into a value:
//   - a token with a comma is a list or a localized number and stays text;
//   - a token with * % ( ) or a binary + is evaluated, failures become null;
//   - a fraction or a range (binary / or -) stays text when it evaluates to
//     something finite and becomes null otherwise, so 1/3 is kept verbatim
//     and 1/0 is dropped;
//   - several dots make a version-like string;
//   - anything else is a float or an arbitrary-precision integer.
func classifyNumber(token string) jsonvalue.Value {
	switch {
	case token == "":
		return noValue
	case strings.ContainsRune(token, ','):
		return jsonvalue.String(token)
	case hasArithmetic(token):
		f, ok := expr.Evaluate(token)
		if !ok {
			return jsonvalue.Null()
		}
		return jsonvalue.Float(f)
	case strings.Count(token, ".") > 1:
		return jsonvalue.String(token)
	case hasFractionOrRange(token):
		if _, ok := expr.Evaluate(token); !ok {
			return jsonvalue.Null()
		}
		return jsonvalue.String(token)
	}
	if v, ok := jsonvalue.ParseNumber(token); ok {
		return v
	}
	return jsonvalue.String(token)
}

func isNumberRune(r rune) bool {
	if isDigit(r) {
		return true
	}
	switch r {
	case '-', '.', 'e', 'E', '/', ',', '+', '*', '%', '(', ')', '_':
		return true
	}
	return false
}

func isDanglingNumberRune(r rune) bool {
	switch r {
	case '-', 'e', 'E', '/', ',', '+', '*', '%':
		return true
	}
	return false
}

// hasArithmetic reports whether token uses * % ( ) or a + that is neither
// leading nor an exponent sign.
func hasArithmetic(token string) bool {
	var prev rune
	for i, r := range token {
		switch r {
		case '*', '%', '(', ')':
			return true
		case '+':
			if i > 0 && prev != 'e' && prev != 'E' {
				return true
			}
		}
		prev = r
	}
	return false
}

// hasFractionOrRange reports whether token has a / or a - that is neither
// leading nor an exponent sign.
func hasFractionOrRange(token string) bool {
	var prev rune
	for i, r := range token {
		switch r {
		case '/':
			return true
		case '-':
			if i > 0 && prev != 'e' && prev != 'E' {
				return true
			}
		}
		prev = r
	}
	return false
}
