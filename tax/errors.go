package tax

import "errors"

// All three error kinds are fatal: downstream years depend on Ledger and
// exemption-carry continuity, so the whole multi-year run is aborted
// rather than skipping the offending transaction or year.
var (
	// A sale requested more units than currently held. Signals corrupt
	// or incomplete input data.
	ErrInsufficientLotQuantity = errors.New("insufficient lot quantity")

	// Indexation was requested for a year with no CPI entry.
	ErrMissingCPIYear = errors.New("no CPI entry for year")

	// A transaction had an unrecognized action.
	ErrInvalidTransactionType = errors.New("invalid transaction type")
)
