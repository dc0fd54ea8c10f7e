package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pdeclercq/becgt/log"
	"github.com/pdeclercq/becgt/util"
)

// Country code of the home tax residency.
const HomeCountry = "BE"

type CalcOptions struct {
	Marital MaritalStatus
	// year -> country code at the start of that year. Years absent from
	// the map are assumed home-country residency.
	Residency map[int]string
	// nil means DefaultCPITable().
	CPI CPITable
	// 2025-12-31 fair market values, for the step-up basis rule.
	StepUpFMV FMVTable
	// Exit-date fair market values, keyed by valuation date.
	ExitFMV DatedFMVTable
}

func residencyAt(residency map[int]string, year int) string {
	if country, ok := residency[year]; ok {
		return country
	}
	return HomeCountry
}

// CalcAnnualTax runs the full multi-year liability computation for one
// taxpayer and returns per-year results keyed by tax year.
//
// Phase 1 replays all transactions chronologically (stable tie-break on
// input order): buys append their lot to the ledger, sells realize
// gains and interest into per-year totals. Transactions dated before
// the regime cutoff year are skipped entirely, so pre-cutoff buys never
// enter the ledger; see the step-up caveat in the package docs.
//
// Phase 2 walks every year present in the gains or residency data, in
// ascending order, applying the Reynders tax on interest, the CGT on
// gains net of the available exemption, the carry-forward update, and
// the exit tax when residency leaves the home country at year end.
//
// Any error aborts the run; the results accumulated so far are returned
// alongside it for debugging.
func CalcAnnualTax(txs []*Tx, opts CalcOptions) (map[int]*YearlyResult, error) {
	cpi := opts.CPI
	if cpi == nil {
		cpi = DefaultCPITable()
	}

	sorted := SortTxs(txs)
	ledger := NewLedger()
	tracker := NewExemptionTracker(cpi)
	results := make(map[int]*YearlyResult)

	yearResult := func(year int) *YearlyResult {
		r, ok := results[year]
		if !ok {
			r = &YearlyResult{
				RealizedGain:   decimal.Zero,
				InterestIncome: decimal.Zero,
				TaxDue:         decimal.Zero,
			}
			results[year] = r
		}
		return r
	}

	for _, tx := range sorted {
		if tx.Date.Year() < CutoffYear {
			continue
		}
		switch tx.Action {
		case BUY:
			util.Assertf(tx.Lot != nil, "BUY of %s on %s has no lot\n", tx.AssetId, tx.Date)
			ledger.AddLot(tx.AssetId, tx.Lot)
		case SELL:
			gain, interest, err := RealizedGain(tx, ledger, sorted, opts.StepUpFMV)
			if err != nil {
				return results, err
			}
			r := yearResult(tx.Date.Year())
			r.RealizedGain = r.RealizedGain.Add(gain)
			r.InterestIncome = r.InterestIncome.Add(interest)
			log.Tracef("calc", "%s sell %s x %s: gain %s, interest %s",
				tx.Date, tx.AssetId, tx.Qty, gain, interest)
		default:
			return results, fmt.Errorf("%w: transaction of %s on %s",
				ErrInvalidTransactionType, tx.AssetId, tx.Date)
		}
	}

	years := make(map[int]bool, len(results)+len(opts.Residency))
	for year := range results {
		years[year] = true
	}
	for year := range opts.Residency {
		years[year] = true
	}

	for _, year := range util.SortedIntKeys(years) {
		r := yearResult(year)

		interestTax := r.InterestIncome.Mul(ReyndersRate).Round(2)
		r.TaxDue = r.TaxDue.Add(interestTax)

		exempt, err := tracker.Available(year, opts.Marital)
		if err != nil {
			return results, err
		}
		taxableGain := util.DecimalMax(decimal.Zero, r.RealizedGain.Sub(exempt))
		r.TaxDue = r.TaxDue.Add(taxableGain.Mul(CgtRate).Round(2))

		unused := util.DecimalMax(decimal.Zero, exempt.Sub(r.RealizedGain))
		if err := tracker.UpdateCarry(unused, year); err != nil {
			return results, err
		}

		if residencyAt(opts.Residency, year) == HomeCountry &&
			residencyAt(opts.Residency, year+1) != HomeCountry {
			exitDate := fmt.Sprintf("%d-12-31", year)
			exitTax := CalcExitTax(ledger, opts.ExitFMV[exitDate], opts.StepUpFMV)
			log.Tracef("calc", "exit tax at %s: %s", exitDate, exitTax)
			r.TaxDue = r.TaxDue.Add(exitTax)
		}
	}

	return results, nil
}

// TaxDueByYear reduces full results to the year -> tax due mapping.
func TaxDueByYear(results map[int]*YearlyResult) map[int]decimal.Decimal {
	due := make(map[int]decimal.Decimal, len(results))
	for year, r := range results {
		due[year] = r.TaxDue
	}
	return due
}
