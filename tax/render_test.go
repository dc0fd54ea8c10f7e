package tax_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdeclercq/becgt/tax"
)

func TestRenderTaxTable(t *testing.T) {
	rq := require.New(t)

	results := map[int]*tax.YearlyResult{
		2027: {RealizedGain: dec("19926.50"), InterestIncome: dec("0"), TaxDue: dec("842.69")},
		2026: {RealizedGain: dec("-31.07"), InterestIncome: dec("20"), TaxDue: dec("6.00")},
	}

	table := tax.RenderTaxTable(results)
	rq.Equal([]string{"Year", "Realized Gain", "Interest Income", "Tax Due"}, table.Header)
	rq.Equal([][]string{
		{"2026", "-31.07", "20.00", "6.00"},
		{"2027", "19926.50", "0.00", "842.69"},
	}, table.Rows)
	rq.Equal([]string{"Total", "", "", "848.69"}, table.Footer)
}
