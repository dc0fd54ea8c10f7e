package tax

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pdeclercq/becgt/date"
)

// Parameters of the Belgian capital-gains regime effective 2026-01-01.

// Flat rate on net realized capital gains.
var CgtRate = decimal.NewFromFloat(0.10)

// Reynders tax rate on the interest component of bond-fund proceeds.
var ReyndersRate = decimal.NewFromFloat(0.30)

// Tax on stock exchange transactions (TOB), by asset regime.
// Unknown regimes get a zero rate.
var TobRates = map[TaxRegime]decimal.Decimal{
	RegimeStandard: decimal.NewFromFloat(0.0035),
	RegimeFund:     decimal.NewFromFloat(0.0132),
	RegimeOther:    decimal.NewFromFloat(0.0012),
}

// The date the regime becomes effective. Lots acquired before this date
// are eligible for the step-up basis rule.
var CutoffDate = date.New(2026, time.January, 1)

const CutoffYear = 2026

// Per-person exemption amounts for the inaugural year, in 2026 euros.
// Indexed by CPI for later years.
var (
	BaseExemption2026 = decimal.NewFromInt(10000)
	MaxExemption2026  = decimal.NewFromInt(15000)
)

// Maximum unused exemption carried into the next year. Applied as a
// nominal (2026-euro) amount; deliberately not re-indexed.
var CarryIncrement = decimal.NewFromInt(1000)

// Days before and after a loss sale in which a purchase of a
// substantially identical security defers the loss.
const WashWindowDays = 30

// Reference "health index" from December 2025, the indexation base.
var BaseCPI = decimal.NewFromFloat(128.10)

// year -> CPI value
type CPITable map[int]decimal.Decimal

// assetId -> price per unit, for one valuation date
type FMVTable map[string]decimal.Decimal

// valuation date (YYYY-MM-DD) -> assetId -> price per unit
type DatedFMVTable map[string]FMVTable

func DefaultCPITable() CPITable {
	return CPITable{
		2025: decimal.NewFromFloat(128.10),
		2026: decimal.NewFromFloat(131.20),
		2027: decimal.NewFromFloat(134.50),
		2028: decimal.NewFromFloat(138.00),
	}
}
