package error

import "errors"

// Ledger entry domain errors.
var (
	// ErrEntryNotFound is returned when an expense or income is absent from the caller's scope.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrInvalidAmount is returned for negative amounts or amounts with more than two fraction digits.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAmountTooLarge is returned when the amount has more than eight integer digits.
	ErrAmountTooLarge = errors.New("amount too large")

	// ErrInvalidEntryDate is returned when the entry date cannot be parsed.
	ErrInvalidEntryDate = errors.New("invalid entry date")

	// ErrInvalidFilter is returned when a list filter cannot be parsed.
	ErrInvalidFilter = errors.New("invalid filter")
)

// EntryErrorCode defines error codes for ledger entry errors.
// Format: ENT-XXYYYY where XX is category and YYYY is specific error.
type EntryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount      EntryErrorCode = "ENT-010001"
	ErrCodeAmountTooLarge     EntryErrorCode = "ENT-010002"
	ErrCodeInvalidEntryDate   EntryErrorCode = "ENT-010003"
	ErrCodeEntryCategoryScope EntryErrorCode = "ENT-010004"
	ErrCodeMissingEntryFields EntryErrorCode = "ENT-010005"
	ErrCodeInvalidFilter      EntryErrorCode = "ENT-010006"

	// Lookup errors (02XXXX)
	ErrCodeEntryNotFound EntryErrorCode = "ENT-020001"
)

// EntryError represents a ledger entry error with code and message.
type EntryError struct {
	Code    EntryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EntryError) Unwrap() error {
	return e.Err
}

// NewEntryError creates a new EntryError with the given code and message.
func NewEntryError(code EntryErrorCode, message string, err error) *EntryError {
	return &EntryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
