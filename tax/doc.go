// Package tax implements the Belgian capital-gains liability engine
// effective 2026: FIFO lot accounting, wash-sale loss deferral between
// substantially identical securities, step-up basis for pre-regime
// holdings, the CPI-indexed annual exemption with bounded carry-forward,
// and the deemed-disposal exit tax on residency change.
//
// The engine is a deterministic, single-threaded replay of one
// taxpayer's transactions. All monetary values are euros. One caveat:
// transactions dated before the regime cutoff year are excluded from the
// replay, so pre-cutoff buys never enter the ledger. Pre-cutoff holdings
// that should benefit from the step-up rule must instead be supplied as
// buy transactions dated in the cutoff year or later, carrying lots with
// their original acquisition dates.
package tax
