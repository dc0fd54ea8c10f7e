package tax_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pdeclercq/becgt/date"
	"github.com/pdeclercq/becgt/tax"
)

func mkDateYD(year uint32, day int) date.Date {
	tm := date.New(year, time.January, 1)
	return tm.AddDays(day)
}

// Day offsets from 2026-01-01, the regime cutoff.
func mkDate(day int) date.Date {
	return mkDateYD(2026, day)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func reqDecEq(t *testing.T, exp string, actual decimal.Decimal) {
	t.Helper()
	require.True(t, actual.Equal(dec(exp)),
		"expected %s, got %s", exp, actual.String())
}

func mkLot(assetId string, acquired date.Date, qty string, basis string) *tax.Lot {
	return &tax.Lot{
		AssetId:          assetId,
		Acquired:         acquired,
		Qty:              dec(qty),
		CostBasisPerUnit: dec(basis),
	}
}

func buyTx(assetId string, d date.Date, qty string, price string, sec tax.SecurityInfo) *tax.Tx {
	return &tax.Tx{
		AssetId: assetId, Date: d, Action: tax.BUY,
		Qty: dec(qty), PricePerUnit: dec(price),
		TobRegime: tax.RegimeStandard, Security: sec,
		Lot: mkLot(assetId, d, qty, price),
	}
}

func sellTx(assetId string, d date.Date, qty string, price string,
	regime tax.TaxRegime, sec tax.SecurityInfo) *tax.Tx {
	return &tax.Tx{
		AssetId: assetId, Date: d, Action: tax.SELL,
		Qty: dec(qty), PricePerUnit: dec(price),
		TobRegime: regime, Security: sec,
	}
}

func benchmarkSec(benchmarkId string) tax.SecurityInfo {
	return tax.SecurityInfo{BenchmarkId: benchmarkId}
}
