package engine

import (
	"github.com/deepankarm/jsonrepair/pkg/internal/errors"
	"github.com/deepankarm/jsonrepair/pkg/jsonvalue"
)

// ParseResult contains the repaired value and what was done to get it.
type ParseResult struct {
	// Value is the repaired tree. It is null when the input held no value.
	Value jsonvalue.Value

	// Found is false when nothing in the input produced a value
	Found bool

	// Log lists the repairs applied, in order. Empty unless logging is on.
	Log []LogEntry

	// Violations lists structural problems, recorded only in strict mode
	Violations errors.RepairErrors
}

// LogEntry is one repair event.
type LogEntry struct {
	Text    string `json:"text"`    // What was repaired
	Context string `json:"context"` // Input around the cursor when it happened
}
