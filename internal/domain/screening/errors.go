package screening

import "errors"

var (
	// Input errors
	ErrMissingTransactionID = errors.New("missing transaction id")
	ErrMissingUserID        = errors.New("missing user id")
	ErrInvalidCountryCode   = errors.New("invalid country code: expected ISO-3166 alpha-2")
	ErrNegativeAmount       = errors.New("transaction amount must not be negative")
	ErrInvalidAmount        = errors.New("transaction amount is not a valid decimal")
	ErrInvalidTimestamp     = errors.New("transaction timestamp is not valid RFC 3339")
	ErrDuplicateTransaction = errors.New("duplicate transaction id in screening request")

	// Resolution errors
	ErrUnresolvedCountry = errors.New("locator could not be resolved to a country")

	// Batch errors
	ErrBatchEmpty    = errors.New("batch contains no transactions")
	ErrBatchTooLarge = errors.New("batch exceeds maximum row count")

	// Row errors
	ErrRowTimeout = errors.New("row evaluation exceeded its deadline")

	// Verdict errors
	ErrVerdictNotFound = errors.New("risk verdict not found")
)

// Row error codes surfaced in batch results
const (
	RowErrInput     = "input_error"
	RowErrTimeout   = "timeout"
	RowErrCancelled = "cancelled"
	RowErrInternal  = "internal_error"
)

// IsInputError reports whether err is a per-row input validation error
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingTransactionID) ||
		errors.Is(err, ErrMissingUserID) ||
		errors.Is(err, ErrInvalidCountryCode) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidTimestamp) ||
		errors.Is(err, ErrDuplicateTransaction)
}
