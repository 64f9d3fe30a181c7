package engine

import (
	"github.com/deepankarm/jsonrepair/pkg/internal/errors"
	"github.com/deepankarm/jsonrepair/pkg/jsonvalue"
)

// Options tune a Parser.
type Options struct {
	// StreamStable keeps the tail of an unterminated string untouched so
	// repairs of a growing prefix never retract output.
	StreamStable bool

	// Logging records a LogEntry for every repair.
	Logging bool

	// Strict records violations for inputs that needed structural repair.
	// It never changes the repaired value.
	Strict bool
}

// Parser repairs malformed JSON text. A Parser holds no per-call state and
// is safe for concurrent use.
type Parser struct {
	opts Options
}

// NewParser creates a parser with the given options.
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Parse repairs text into a value tree. It never fails: anything it cannot
// make sense of degrades to null, an empty container or a string.
func (p *Parser) Parse(text string) *ParseResult {
	jp := &jsonParser{
		text:         []rune(text),
		streamStable: p.opts.StreamStable,
		logging:      p.opts.Logging,
		strict:       p.opts.Strict,
	}
	return jp.parse()
}

type jsonParser struct {
	text         []rune
	index        int
	ctx          contextStack
	streamStable bool
	logging      bool
	strict       bool

	// pendingObject is set when an object was cut short by a repeated key.
	// The next value position parses a new object starting at index.
	pendingObject bool

	// Result tracking
	log        []LogEntry
	violations errors.RepairErrors
	path       []string
}

// noValue is what a sub-parser yields when it produced nothing.
var noValue = jsonvalue.String("")

func isNoValue(v jsonvalue.Value) bool {
	return v.Kind() == jsonvalue.KindString && v.Text() == ""
}

// parse runs the top-level driver. Values found one after another are
// collected; a value shaped exactly like its predecessor replaces it.
func (p *jsonParser) parse() *ParseResult {
	var values []jsonvalue.Value
	for p.index < len(p.text) || p.pendingObject {
		v := p.parseValue()
		if isNoValue(v) || v.IsNull() {
			p.index++
			continue
		}
		if n := len(values); n > 0 && jsonvalue.SameShape(values[n-1], v) {
			p.logf("Found a value shaped like the previous one, replacing it")
			values[n-1] = v
			continue
		}
		if len(values) > 0 {
			p.logf("Found another top-level value after the first one")
		}
		values = append(values, v)
	}

	result := &ParseResult{Found: len(values) > 0}
	switch len(values) {
	case 0:
		result.Value = jsonvalue.Null()
	case 1:
		result.Value = values[0]
	default:
		p.violate(errors.ErrorTypeMultipleValues, "input holds several top-level values, wrapped them in an array")
		result.Value = jsonvalue.Array(values...)
	}
	result.Log = p.log
	result.Violations = p.violations
	return result
}

// parseValue dispatches on the current rune and context. Runes no parser
// accepts are dropped.
func (p *jsonParser) parseValue() jsonvalue.Value {
	for {
		if p.pendingObject {
			p.pendingObject = false
			return p.parseObject()
		}
		ch, ok := p.peek(0)
		if !ok {
			return noValue
		}
		switch {
		case ch == '{':
			p.index++
			return p.parseObject()
		case ch == '[':
			p.index++
			return p.parseArray()
		case ch == '#' || ch == '/':
			return p.parseComment()
		case !p.ctx.empty() && (isDelimiter(ch) || isLetter(ch)):
			return p.parseString()
		case !p.ctx.empty() && (isDigit(ch) || ch == '-' || ch == '.' || ch == '+' || ch == '('):
			return p.parseNumber()
		}
		p.index++
	}
}
