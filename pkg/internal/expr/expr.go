// Package expr evaluates the small arithmetic subset allowed in repaired
// values: numbers, unary and binary + -, binary * / %, and parentheses.
package expr

import (
	"math"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/v2/stacks/arraystack"
)

type tokenKind uint8

const (
	tokNumber tokenKind = iota
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
}

// Unary operators get their own spellings once classified.
const (
	opUnaryPlus  = "u+"
	opUnaryMinus = "u-"
)

// Evaluate computes expression with float64 arithmetic. It reports false
// for malformed input, unmatched parentheses, missing operands and results
// that are NaN or infinite.
func Evaluate(expression string) (float64, bool) {
	postfix, ok := toPostfix(expression)
	if !ok {
		return 0, false
	}
	return evalPostfix(postfix)
}

// toPostfix runs the shunting-yard conversion.
func toPostfix(expression string) ([]token, bool) {
	lx := lexer{src: expression}
	ops := arraystack.New[token]()
	var out []token
	var prev *token

	for {
		t, ok, done := lx.next()
		if done {
			break
		}
		if !ok {
			return nil, false
		}
		switch t.kind {
		case tokNumber:
			out = append(out, t)
		case tokOp:
			if (t.text == "+" || t.text == "-") && (prev == nil || prev.kind == tokOp || prev.kind == tokLParen) {
				t = token{kind: tokOp, text: "u" + t.text}
			}
			for {
				top, ok := ops.Peek()
				if !ok || top.kind != tokOp {
					break
				}
				if precedence(top.text) > precedence(t.text) ||
					(precedence(top.text) == precedence(t.text) && leftAssociative(t.text)) {
					ops.Pop()
					out = append(out, top)
					continue
				}
				break
			}
			ops.Push(t)
		case tokLParen:
			ops.Push(t)
		case tokRParen:
			matched := false
			for !ops.Empty() {
				top, _ := ops.Pop()
				if top.kind == tokLParen {
					matched = true
					break
				}
				out = append(out, top)
			}
			if !matched {
				return nil, false
			}
		}
		prev = &t
	}

	for !ops.Empty() {
		top, _ := ops.Pop()
		if top.kind == tokLParen {
			return nil, false
		}
		out = append(out, top)
	}
	return out, true
}

func evalPostfix(postfix []token) (float64, bool) {
	st := arraystack.New[float64]()
	for _, t := range postfix {
		if t.kind == tokNumber {
			f, err := strconv.ParseFloat(t.text, 64)
			if err != nil {
				return 0, false
			}
			st.Push(f)
			continue
		}

		if t.text == opUnaryPlus || t.text == opUnaryMinus {
			a, ok := st.Pop()
			if !ok {
				return 0, false
			}
			if t.text == opUnaryMinus {
				a = -a
			}
			st.Push(a)
			continue
		}

		if st.Size() < 2 {
			return 0, false
		}
		b, _ := st.Pop()
		a, _ := st.Pop()
		var r float64
		switch t.text {
		case "+":
			r = a + b
		case "-":
			r = a - b
		case "*":
			r = a * b
		case "/":
			r = a / b
		case "%":
			r = math.Mod(a, b)
		default:
			return 0, false
		}
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return 0, false
		}
		st.Push(r)
	}

	if st.Size() != 1 {
		return 0, false
	}
	r, _ := st.Pop()
	return r, true
}

func precedence(op string) int {
	switch op {
	case opUnaryPlus, opUnaryMinus:
		return 4
	case "*", "/", "%":
		return 3
	case "+", "-":
		return 2
	default:
		return 0
	}
}

// Unary operators are right-associative, everything else associates left.
func leftAssociative(op string) bool {
	return op != opUnaryPlus && op != opUnaryMinus
}

type lexer struct {
	src string
	pos int
}

// next returns the following token. done is set at end of input and ok is
// false when an unexpected character is found.
func (lx *lexer) next() (t token, ok bool, done bool) {
	for lx.pos < len(lx.src) && isSpace(lx.src[lx.pos]) {
		lx.pos++
	}
	if lx.pos >= len(lx.src) {
		return token{}, true, true
	}

	c := lx.src[lx.pos]
	switch {
	case isDigit(c) || c == '.':
		return lx.number()
	case c == '+' || c == '-' || c == '*' || c == '/' || c == '%':
		lx.pos++
		return token{kind: tokOp, text: string(c)}, true, false
	case c == '(':
		lx.pos++
		return token{kind: tokLParen, text: "("}, true, false
	case c == ')':
		lx.pos++
		return token{kind: tokRParen, text: ")"}, true, false
	}
	return token{}, false, false
}

// number scans digits [. digits] [e [+-] digits], skipping underscores.
func (lx *lexer) number() (token, bool, bool) {
	var sb strings.Builder
	sawDot, sawExp := false, false
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == '_':
			lx.pos++
			continue
		case isDigit(c):
			sb.WriteByte(c)
			lx.pos++
			continue
		case c == '.' && !sawDot && !sawExp:
			sawDot = true
			sb.WriteByte(c)
			lx.pos++
			continue
		case (c == 'e' || c == 'E') && !sawExp:
			sawExp = true
			sb.WriteByte(c)
			lx.pos++
			if lx.pos < len(lx.src) && (lx.src[lx.pos] == '+' || lx.src[lx.pos] == '-') {
				sb.WriteByte(lx.src[lx.pos])
				lx.pos++
			}
			continue
		}
		break
	}
	if sb.Len() == 0 {
		return token{}, false, false
	}
	return token{kind: tokNumber, text: sb.String()}, true, false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
