package errcodes

// ErrorCode identifies a class of failure across the whole engine. Codes
// travel inside domain.AppError and decide HTTP statuses and retry policy.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

const (
	InternalServerError ErrorCode = "InternalServerError"
	TimeoutExceeded     ErrorCode = "TimeoutExceeded"
	Forbidden           ErrorCode = "Forbidden"
	ValidationError     ErrorCode = "ValidationError"
	NotFound            ErrorCode = "NotFound"

	// Quote intake and fair-value estimation.
	InvalidOdds      ErrorCode = "InvalidOdds"      // quote priced at or below 1.0
	InsufficientData ErrorCode = "InsufficientData" // too few books to estimate a fair line
	InvalidSelection ErrorCode = "InvalidSelection" // selection text carries no parsable direction or line

	// Transport to external collaborators (odds feed, document store,
	// Telegram, results API). Retryable.
	TransportError ErrorCode = "TransportError"

	// Lifecycle tracking.
	DuplicateBet ErrorCode = "DuplicateBet" // dedupe key already tracked
	BetNotFound  ErrorCode = "BetNotFound"
	StaleState   ErrorCode = "StaleState" // transition attempted on a terminal record

	// Settlement.
	Unresolvable  ErrorCode = "Unresolvable" // no statistic can grade this market, needs manual settle
	InvalidResult ErrorCode = "InvalidResult"
)
