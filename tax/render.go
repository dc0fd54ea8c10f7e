package tax

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/pdeclercq/becgt/util"
)

// RenderTable is the presentation-neutral table model consumed by the
// output writers.
type RenderTable struct {
	Header []string
	Rows   [][]string
	Footer []string
	Notes  []string
	Errors []error
}

// RenderTaxTable lays out per-year results, ascending by year, with a
// grand total footer.
func RenderTaxTable(results map[int]*YearlyResult) *RenderTable {
	table := &RenderTable{
		Header: []string{"Year", "Realized Gain", "Interest Income", "Tax Due"},
	}

	totalDue := decimal.Zero
	for _, year := range util.SortedIntKeys(results) {
		r := results[year]
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(year),
			r.RealizedGain.StringFixed(2),
			r.InterestIncome.StringFixed(2),
			r.TaxDue.StringFixed(2),
		})
		totalDue = totalDue.Add(r.TaxDue)
	}
	table.Footer = []string{"Total", "", "", totalDue.StringFixed(2)}
	return table
}
