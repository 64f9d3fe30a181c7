package ginrepair

import (
	"github.com/deepankarm/jsonrepair/pkg/internal/errors"
	"github.com/deepankarm/jsonrepair/pkg/jsonrepair"
)

// RepairRequest is the body of POST /v1/repair.
type RepairRequest struct {
	Input        string `json:"input" jsonschema:"required,description=Text to repair"`
	StreamStable bool   `json:"stream_stable,omitempty" jsonschema:"description=Keep the tail of an unterminated string as-is"`
	Strict       bool   `json:"strict,omitempty" jsonschema:"description=Report structural problems found in the input"`
	EnsureASCII  bool   `json:"ensure_ascii,omitempty" jsonschema:"description=Escape non-ASCII characters in the output"`
	Log          bool   `json:"log,omitempty" jsonschema:"description=Return the list of repairs applied"`
}

// RepairResponse is the answer of POST /v1/repair.
type RepairResponse struct {
	Output     string                `json:"output" jsonschema:"description=Repaired JSON text"`
	Logs       []jsonrepair.LogEntry `json:"logs,omitempty"`
	Violations []Violation           `json:"violations,omitempty"`
}

// Violation is the wire form of a repair error.
type Violation struct {
	Loc      []string `json:"loc"`
	Position int      `json:"position"`
	Message  string   `json:"message"`
	Type     string   `json:"type"`
}

// ErrorResponse is returned for requests that could not be served.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details []Violation `json:"details,omitempty"`
}

// HealthResponse is the answer of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func toViolations(errs errors.RepairErrors) []Violation {
	if len(errs) == 0 {
		return nil
	}
	out := make([]Violation, 0, len(errs))
	for _, e := range errs {
		loc := e.Loc
		if loc == nil {
			loc = []string{}
		}
		out = append(out, Violation{
			Loc:      loc,
			Position: e.Position,
			Message:  e.Message,
			Type:     string(e.Type),
		})
	}
	return out
}
