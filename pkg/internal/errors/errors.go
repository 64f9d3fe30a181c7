// Package errors defines shared error types for jsonrepair.
package errors

import (
	"fmt"
	"strings"
)

// ErrorType is an enum for repair error categories.
type ErrorType string

// Error type constants.
const (
	ErrorTypeReadInput      ErrorType = "read_input"      // Input could not be read
	ErrorTypeDecodeRequest  ErrorType = "decode_request"  // HTTP request body could not be decoded
	ErrorTypeEncode         ErrorType = "encode"          // Repaired value could not be encoded
	ErrorTypeInternal       ErrorType = "internal"        // Internal error (recovered panic, bad state)
	ErrorTypeMultipleValues ErrorType = "multiple_values" // Top-level values had to be wrapped in an array
	ErrorTypeEmptyKey       ErrorType = "empty_key"       // Object member has an empty key
	ErrorTypeDuplicateKey   ErrorType = "duplicate_key"   // Key repeated, a new object was started
	ErrorTypeMissingColon   ErrorType = "missing_colon"   // Colon between key and value was inserted
	ErrorTypeEmptyValue     ErrorType = "empty_value"     // Member value was missing and became null
	ErrorTypeDoubledQuotes  ErrorType = "doubled_quotes"  // Doubled delimiters were collapsed
)

// RepairError describes one problem found in the input, with location
// information pointing at the value it concerns.
type RepairError struct {
	Loc      []string  // Path to the value, e.g., ["items", "2", "name"]
	Position int       // Rune offset into the input, -1 when unknown
	Message  string    // Human-readable error message
	Type     ErrorType // Error category
}

// Error implements the error interface.
func (e RepairError) Error() string {
	msg := e.Message
	if e.Position >= 0 {
		msg = fmt.Sprintf("%s (at offset %d)", e.Message, e.Position)
	}
	if len(e.Loc) == 0 {
		return msg
	}
	return fmt.Sprintf("%s: %s", strings.Join(e.Loc, "."), msg)
}

// RepairErrors is a slice of RepairError that implements error.
type RepairErrors []RepairError

// Error implements the error interface.
func (es RepairErrors) Error() string {
	if len(es) == 0 {
		return "repair errors: (none)"
	}
	if len(es) == 1 {
		return es[0].Error()
	}
	var msgs []string
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("repair errors (%d): %s", len(es), strings.Join(msgs, "; "))
}

// Unwrap returns the errors as a slice for errors.As/errors.Is compatibility.
func (es RepairErrors) Unwrap() []error {
	errs := make([]error, len(es))
	for i, e := range es {
		errs[i] = e
	}
	return errs
}

// Has reports whether any error is of the given type.
func (es RepairErrors) Has(typ ErrorType) bool {
	for _, e := range es {
		if e.Type == typ {
			return true
		}
	}
	return false
}
