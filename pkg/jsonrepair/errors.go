package jsonrepair

import "github.com/deepankarm/jsonrepair/pkg/internal/errors"

// Strict-mode violation types returned by Repairer.Validate.
type (
	ErrorType    = errors.ErrorType
	RepairError  = errors.RepairError
	RepairErrors = errors.RepairErrors
)

// Violation kinds.
const (
	ErrorTypeInternal       = errors.ErrorTypeInternal
	ErrorTypeMultipleValues = errors.ErrorTypeMultipleValues
	ErrorTypeEmptyKey       = errors.ErrorTypeEmptyKey
	ErrorTypeDuplicateKey   = errors.ErrorTypeDuplicateKey
	ErrorTypeMissingColon   = errors.ErrorTypeMissingColon
	ErrorTypeEmptyValue     = errors.ErrorTypeEmptyValue
	ErrorTypeDoubledQuotes  = errors.ErrorTypeDoubledQuotes
)
