package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pdeclercq/becgt/util"
)

type MaritalStatus string

const (
	Single MaritalStatus = "single"
	Couple MaritalStatus = "couple"
)

// ExemptionTracker holds the one piece of state that spans tax years:
// the unused-exemption carry, denominated in 2026 euros. Instantiate one
// per taxpayer run and discard it afterwards; it is never shared between
// runs or taxpayers.
type ExemptionTracker struct {
	carry decimal.Decimal
	cpi   CPITable
}

func NewExemptionTracker(cpi CPITable) *ExemptionTracker {
	return &ExemptionTracker{carry: decimal.Zero, cpi: cpi}
}

// Carry returns the current carry-forward balance, in 2026 euros.
func (t *ExemptionTracker) Carry() decimal.Decimal {
	return t.carry
}

// Indexed converts a 2026-euro amount to its equivalent in the target
// year, by the ratio of that year's CPI to the base CPI.
func (t *ExemptionTracker) Indexed(amount decimal.Decimal, year int) (decimal.Decimal, error) {
	cpi, ok := t.cpi[year]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrMissingCPIYear, year)
	}
	return amount.Mul(cpi).Div(BaseCPI), nil
}

// PerPersonCap is the maximum possible per-person exemption for a year,
// carry-forward included, indexed.
func (t *ExemptionTracker) PerPersonCap(year int) (decimal.Decimal, error) {
	return t.Indexed(MaxExemption2026, year)
}

// AnnualBase is the base per-person exemption for a year, indexed.
func (t *ExemptionTracker) AnnualBase(year int) (decimal.Decimal, error) {
	return t.Indexed(BaseExemption2026, year)
}

// ClampCarry caps the carry so base + carry can never exceed the year's
// indexed per-person cap.
func (t *ExemptionTracker) ClampCarry(year int) error {
	perCap, err := t.PerPersonCap(year)
	if err != nil {
		return err
	}
	base, err := t.AnnualBase(year)
	if err != nil {
		return err
	}
	t.carry = util.DecimalMin(t.carry, perCap.Sub(base))
	return nil
}

// Available returns the taxpayer's total exemption for the year. The
// per-person amount (base plus clamped carry, capped) is doubled for
// couples.
func (t *ExemptionTracker) Available(year int, marital MaritalStatus) (decimal.Decimal, error) {
	if err := t.ClampCarry(year); err != nil {
		return decimal.Zero, err
	}
	perCap, err := t.PerPersonCap(year)
	if err != nil {
		return decimal.Zero, err
	}
	base, err := t.AnnualBase(year)
	if err != nil {
		return decimal.Zero, err
	}
	perPerson := util.DecimalMin(base.Add(t.carry), perCap)
	multiplier := util.Tern(marital == Couple,
		decimal.NewFromInt(2), decimal.NewFromInt(1))
	return perPerson.Mul(multiplier), nil
}

// UpdateCarry rolls the year's unused exemption into next year's carry.
// The increment is the smallest of the nominal CarryIncrement limit, the
// actual unused amount, and the room left under next year's cap.
func (t *ExemptionTracker) UpdateCarry(unused decimal.Decimal, year int) error {
	nextCap, err := t.PerPersonCap(year + 1)
	if err != nil {
		return err
	}
	nextBase, err := t.AnnualBase(year + 1)
	if err != nil {
		return err
	}
	maxCarryNext := nextCap.Sub(nextBase)
	increment := util.DecimalMin(CarryIncrement, unused, maxCarryNext.Sub(t.carry))
	t.carry = util.DecimalMin(t.carry.Add(increment), maxCarryNext)
	return nil
}
