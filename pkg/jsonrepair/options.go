package jsonrepair

import (
	"go.uber.org/zap"

	"github.com/deepankarm/jsonrepair/pkg/internal/engine"
)

// Option configures a Repairer
type Option interface {
	apply(*config)
}

// config holds the settings of a Repairer
type config struct {
	engine       engine.Options
	logger       *zap.Logger // Mirrors repair log entries when set
	skipFastPath bool        // Always run the engine
	ensureASCII  bool        // Escape non-ASCII runes in the output
}

type optionFunc func(*config)

func (f optionFunc) apply(cfg *config) { f(cfg) }

// WithStreamStable keeps the output of a growing prefix stable: the tail of
// an unterminated string is kept as-is instead of being trimmed back to a
// likely closing point. Use it when re-repairing a buffer as chunks arrive.
func WithStreamStable() Option {
	return optionFunc(func(cfg *config) { cfg.engine.StreamStable = true })
}

// WithLogging records a LogEntry for every repair the engine applies.
func WithLogging() Option {
	return optionFunc(func(cfg *config) { cfg.engine.Logging = true })
}

// WithLogger mirrors each repair log entry to logger at debug level. It
// implies WithLogging.
//
// Example:
//
//	logger, _ := zap.NewDevelopment()
//	r := jsonrepair.New(jsonrepair.WithLogger(logger))
//	out := r.Repair(`{"a": 1,}`)
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(cfg *config) {
		cfg.logger = logger
		cfg.engine.Logging = logger != nil || cfg.engine.Logging
	})
}

// WithSkipFastPath sends valid JSON through the repair engine too.
func WithSkipFastPath() Option {
	return optionFunc(func(cfg *config) { cfg.skipFastPath = true })
}

// WithStrict records a violation whenever the input needed structural
// repair. The repaired output is the same with or without it.
func WithStrict() Option {
	return optionFunc(func(cfg *config) { cfg.engine.Strict = true })
}

// WithEnsureASCII escapes every non-ASCII rune in the output as \uXXXX.
func WithEnsureASCII() Option {
	return optionFunc(func(cfg *config) { cfg.ensureASCII = true })
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}
	return cfg
}
