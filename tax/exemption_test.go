package tax_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdeclercq/becgt/tax"
)

func TestIndexation(t *testing.T) {
	rq := require.New(t)
	tracker := tax.NewExemptionTracker(tax.DefaultCPITable())

	// 2025 is the base year: no drift.
	base2025, err := tracker.AnnualBase(2025)
	rq.NoError(err)
	rq.Equal("10000.00", base2025.StringFixed(2))

	// 10000 x 131.20 / 128.10
	base2026, err := tracker.AnnualBase(2026)
	rq.NoError(err)
	rq.Equal("10242.00", base2026.StringFixed(2))

	cap2026, err := tracker.PerPersonCap(2026)
	rq.NoError(err)
	rq.Equal("15363.00", cap2026.StringFixed(2))

	base2027, err := tracker.AnnualBase(2027)
	rq.NoError(err)
	rq.Equal("10499.61", base2027.StringFixed(2))
}

func TestMissingCPIYearIsFatal(t *testing.T) {
	rq := require.New(t)
	tracker := tax.NewExemptionTracker(tax.DefaultCPITable())

	_, err := tracker.AnnualBase(2030)
	rq.Error(err)
	rq.True(errors.Is(err, tax.ErrMissingCPIYear))

	_, err = tracker.Available(2030, tax.Single)
	rq.True(errors.Is(err, tax.ErrMissingCPIYear))

	rq.True(errors.Is(tracker.UpdateCarry(dec("500"), 2028), tax.ErrMissingCPIYear))
}

func TestAvailableSingleAndCouple(t *testing.T) {
	rq := require.New(t)
	tracker := tax.NewExemptionTracker(tax.DefaultCPITable())

	single, err := tracker.Available(2026, tax.Single)
	rq.NoError(err)
	base2026, err := tracker.AnnualBase(2026)
	rq.NoError(err)
	// No carry yet: the base alone.
	rq.True(single.Equal(base2026))

	couple, err := tracker.Available(2026, tax.Couple)
	rq.NoError(err)
	rq.True(couple.Equal(single.Mul(dec("2"))))
}

func TestCarryAccumulatesNominally(t *testing.T) {
	rq := require.New(t)
	tracker := tax.NewExemptionTracker(tax.DefaultCPITable())

	// Plenty unused, but each year's increment is capped at the nominal
	// 1000, not an indexed amount.
	rq.NoError(tracker.UpdateCarry(dec("8000"), 2025))
	reqDecEq(t, "1000", tracker.Carry())
	rq.NoError(tracker.UpdateCarry(dec("8000"), 2026))
	reqDecEq(t, "2000", tracker.Carry())

	// A small unused amount limits the increment instead.
	rq.NoError(tracker.UpdateCarry(dec("250"), 2027))
	reqDecEq(t, "2250", tracker.Carry())
}

func TestCarryNeverExceedsCapRoom(t *testing.T) {
	rq := require.New(t)

	// A flat CPI table makes cap - base exactly 5000 every year.
	flat := tax.CPITable{}
	for year := 2025; year <= 2045; year++ {
		flat[year] = tax.BaseCPI
	}
	tracker := tax.NewExemptionTracker(flat)

	for year := 2025; year <= 2040; year++ {
		rq.NoError(tracker.UpdateCarry(dec("9999"), year))
		rq.NoError(tracker.ClampCarry(year + 1))
		cap, err := tracker.PerPersonCap(year + 1)
		rq.NoError(err)
		base, err := tracker.AnnualBase(year + 1)
		rq.NoError(err)
		rq.True(tracker.Carry().LessThanOrEqual(cap.Sub(base)),
			"carry %s exceeds cap room in %d", tracker.Carry(), year+1)
	}
	// 1000/year for 16 years would be 16000; the cap holds it at 5000.
	reqDecEq(t, "5000", tracker.Carry())

	// Available caps out at the per-person maximum.
	avail, err := tracker.Available(2041, tax.Single)
	rq.NoError(err)
	reqDecEq(t, "15000", avail)
}
