// Package jsonrepair turns malformed JSON, typically produced by language
// models, into valid JSON.
//
// Repair never fails. Input that holds no recognizable value repairs to
// null, and every malformed construct degrades to the closest value that
// can be built from it.
//
// Example:
//
//	out := jsonrepair.Repair("{'name': 'John', age: 30,")
//	// out == `{"name":"John","age":30}`
package jsonrepair

import (
	"fmt"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/deepankarm/jsonrepair/pkg/internal/engine"
	"github.com/deepankarm/jsonrepair/pkg/internal/errors"
	"github.com/deepankarm/jsonrepair/pkg/internal/fastpath"
	"github.com/deepankarm/jsonrepair/pkg/internal/preprocess"
	"github.com/deepankarm/jsonrepair/pkg/jsonvalue"
)

// LogEntry is one repair event: what was done and the input around the
// cursor when it happened.
type LogEntry = engine.LogEntry

// Repairer repairs JSON with a fixed set of options. A Repairer is safe for
// concurrent use.
type Repairer struct {
	cfg config
}

// New creates a Repairer.
func New(opts ...Option) *Repairer {
	return &Repairer{cfg: newConfig(opts)}
}

// Repair returns input as valid, minified JSON.
func Repair(input string, opts ...Option) string {
	return New(opts...).Repair(input)
}

// RepairBytes is Repair for raw bytes. A UTF-8 or UTF-16 byte order mark
// selects the input encoding.
func RepairBytes(input []byte, opts ...Option) []byte {
	return New(opts...).RepairBytes(input)
}

// Loads returns the repaired value tree instead of its text.
func Loads(input string, opts ...Option) jsonvalue.Value {
	return New(opts...).Loads(input)
}

// RepairWithLog returns the repaired text and the repairs applied to get it.
func RepairWithLog(input string, opts ...Option) (string, []LogEntry) {
	return New(opts...).RepairWithLog(input)
}

// Unmarshal repairs input and decodes the result into v.
func Unmarshal(input string, v any, opts ...Option) error {
	return New(opts...).Unmarshal(input, v)
}

// Repair returns input as valid, minified JSON.
func (r *Repairer) Repair(input string) string {
	return r.encode(input, r.run(input, r.cfg).Value)
}

// RepairBytes is Repair for raw bytes.
func (r *Repairer) RepairBytes(input []byte) []byte {
	return []byte(r.Repair(r.decode(input)))
}

// Result is the complete outcome of Process.
type Result struct {
	Output     []byte
	Log        []LogEntry   // Empty unless logging is enabled
	Violations RepairErrors // Empty unless strict mode is enabled
}

// Process repairs raw bytes and returns the output together with the log
// and violations the Repairer options ask for.
func (r *Repairer) Process(input []byte) Result {
	text := r.decode(input)
	res := r.run(text, r.cfg)
	return Result{
		Output:     []byte(r.encode(text, res.Value)),
		Log:        res.Log,
		Violations: res.Violations,
	}
}

// Loads returns the repaired value tree.
func (r *Repairer) Loads(input string) jsonvalue.Value {
	return r.run(input, r.cfg).Value
}

// RepairWithLog returns the repaired text and its repair log. Logging is
// enabled for the call whatever the Repairer options say.
func (r *Repairer) RepairWithLog(input string) (string, []LogEntry) {
	cfg := r.cfg
	cfg.engine.Logging = true
	res := r.run(input, cfg)
	return r.encode(input, res.Value), res.Log
}

// Validate repairs input in strict mode. The returned error is a
// RepairErrors listing every structural problem found, or nil when the
// input needed no structural repair. The repaired text is returned either
// way.
func (r *Repairer) Validate(input string) (string, error) {
	cfg := r.cfg
	cfg.engine.Strict = true
	res := r.run(input, cfg)
	out := r.encode(input, res.Value)
	if len(res.Violations) > 0 {
		return out, res.Violations
	}
	return out, nil
}

// Unmarshal repairs input and decodes the result into v.
func (r *Repairer) Unmarshal(input string, v any) error {
	data := jsonvalue.Encode(r.run(input, r.cfg).Value)
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding repaired JSON: %w", err)
	}
	return nil
}

// run is the pipeline shared by every entry point: sanitize, unwrap
// markdown, try the fast path and fall back to the engine.
func (r *Repairer) run(input string, cfg config) (res *engine.ParseResult) {
	defer func() {
		if p := recover(); p != nil {
			r.debug("repair panicked, returning null", zap.Any("panic", p))
			res = &engine.ParseResult{Value: jsonvalue.Null()}
			if cfg.engine.Strict {
				res.Violations = errors.RepairErrors{{
					Position: -1,
					Message:  fmt.Sprintf("internal error: %v", p),
					Type:     errors.ErrorTypeInternal,
				}}
			}
		}
	}()

	text := preprocess.StripMarkdown(preprocess.Sanitize(input))
	if !cfg.skipFastPath {
		if v, ok := fastpath.Decode([]byte(text)); ok {
			return &engine.ParseResult{Value: v, Found: true}
		}
	}

	res = engine.NewParser(cfg.engine).Parse(text)
	if r.cfg.logger != nil {
		for _, entry := range res.Log {
			r.cfg.logger.Debug(entry.Text, zap.String("context", entry.Context))
		}
	}
	return res
}

func (r *Repairer) decode(input []byte) string {
	text, err := preprocess.Decode(input)
	if err != nil {
		r.debug("input decoding failed, reading it as UTF-8", zap.Error(err))
		return string(input)
	}
	return text
}

// encode writes v, falling back to the original input if encoding fails.
func (r *Repairer) encode(input string, v jsonvalue.Value) (out string) {
	defer func() {
		if p := recover(); p != nil {
			r.debug("encoding failed, returning the input", zap.Any("panic", p))
			out = input
		}
	}()
	if r.cfg.ensureASCII {
		return string(jsonvalue.EncodeASCII(v))
	}
	return string(jsonvalue.Encode(v))
}

func (r *Repairer) debug(msg string, fields ...zap.Field) {
	if r.cfg.logger != nil {
		r.cfg.logger.Debug(msg, fields...)
	}
}
