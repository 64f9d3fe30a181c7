package errors

import (
	"errors"
	"testing"
)

func TestRepairError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      RepairError
		expected string
	}{
		{"with path", RepairError{Loc: []string{"user", "email"}, Position: -1, Message: "empty key"}, "user.email: empty key"},
		{"empty path", RepairError{Loc: []string{}, Position: -1, Message: "empty key"}, "empty key"},
		{"with position", RepairError{Loc: []string{"name"}, Position: 12, Message: "missing colon"}, "name: missing colon (at offset 12)"},
		{"position only", RepairError{Position: 0, Message: "bad"}, "bad (at offset 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRepairErrors_Error(t *testing.T) {
	tests := []struct {
		name     string
		errs     RepairErrors
		expected string
	}{
		{"empty", RepairErrors{}, "repair errors: (none)"},
		{"single", RepairErrors{{Loc: []string{"a"}, Position: -1, Message: "empty value"}}, "a: empty value"},
		{
			"multiple",
			RepairErrors{
				{Loc: []string{"a"}, Position: -1, Message: "empty key"},
				{Loc: []string{"b"}, Position: -1, Message: "missing colon"},
			},
			"repair errors (2): a: empty key; b: missing colon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.errs.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRepairErrors_Unwrap(t *testing.T) {
	errs := RepairErrors{
		{Loc: []string{"A"}, Position: -1, Message: "err1", Type: ErrorTypeEmptyKey},
		{Loc: []string{"B"}, Position: -1, Message: "err2", Type: ErrorTypeMissingColon},
	}
	unwrapped := errs.Unwrap()
	if len(unwrapped) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(unwrapped))
	}

	var re RepairError
	if !errors.As(errs, &re) {
		t.Fatal("errors.As should find a RepairError")
	}
	if re.Type != ErrorTypeEmptyKey {
		t.Errorf("errors.As found %q, want %q", re.Type, ErrorTypeEmptyKey)
	}
}

func TestRepairErrors_Has(t *testing.T) {
	tests := []struct {
		name     string
		errs     RepairErrors
		typ      ErrorType
		expected bool
	}{
		{"empty", RepairErrors{}, ErrorTypeDuplicateKey, false},
		{"present", RepairErrors{{Type: ErrorTypeDuplicateKey}}, ErrorTypeDuplicateKey, true},
		{"absent", RepairErrors{{Type: ErrorTypeEmptyKey}}, ErrorTypeDuplicateKey, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.errs.Has(tt.typ); got != tt.expected {
				t.Errorf("Has() = %v, want %v", got, tt.expected)
			}
		})
	}
}
