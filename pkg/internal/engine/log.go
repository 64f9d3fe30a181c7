package engine

import (
	"fmt"
	"slices"

	"github.com/deepankarm/jsonrepair/pkg/internal/errors"
)

// logWindow is how many runes on each side of the cursor a log entry keeps.
const logWindow = 10

// logf records a repair event when logging is enabled.
func (p *jsonParser) logf(format string, args ...any) {
	if !p.logging {
		return
	}
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	end := min(p.index+logWindow, len(p.text))
	start := min(max(p.index-logWindow, 0), end)
	p.log = append(p.log, LogEntry{Text: text, Context: string(p.text[start:end])})
}

// violate records a strict-mode violation at the current path and offset.
func (p *jsonParser) violate(typ errors.ErrorType, message string) {
	if !p.strict {
		return
	}
	p.violations = append(p.violations, errors.RepairError{
		Loc:      slices.Clone(p.path),
		Position: p.index,
		Message:  message,
		Type:     typ,
	})
}

func (p *jsonParser) pushPath(segment string) {
	p.path = append(p.path, segment)
}

func (p *jsonParser) popPath() {
	if len(p.path) > 0 {
		p.path = p.path[:len(p.path)-1]
	}
}
