package tax_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdeclercq/becgt/tax"
)

func TestFifoConsumptionOrder(t *testing.T) {
	rq := require.New(t)

	ledger := tax.NewLedger()
	ledger.AddLot("FOO", mkLot("FOO", mkDate(1), "10", "100"))
	ledger.AddLot("FOO", mkLot("FOO", mkDate(2), "5", "110"))
	ledger.AddLot("FOO", mkLot("FOO", mkDate(3), "5", "120"))
	reqDecEq(t, "20", ledger.TotalQty("FOO"))

	// Spans the first lot entirely and splits the second.
	consumed, err := ledger.ConsumeQty("FOO", dec("12"))
	rq.NoError(err)
	rq.Len(consumed, 2)
	reqDecEq(t, "10", consumed[0].Qty)
	reqDecEq(t, "100", consumed[0].BasisPerUnit)
	reqDecEq(t, "2", consumed[1].Qty)
	reqDecEq(t, "110", consumed[1].BasisPerUnit)

	// The oldest lot is gone; the split lot keeps its position and the
	// surviving sequence preserves acquisition order.
	held := ledger.Holdings("FOO")
	rq.Len(held, 2)
	rq.True(held[0].Acquired.Equal(mkDate(2)))
	reqDecEq(t, "3", held[0].Qty)
	rq.True(held[1].Acquired.Equal(mkDate(3)))
	reqDecEq(t, "5", held[1].Qty)
	reqDecEq(t, "8", ledger.TotalQty("FOO"))
}

func TestConsumeExactLotBoundary(t *testing.T) {
	rq := require.New(t)

	ledger := tax.NewLedger()
	ledger.AddLot("FOO", mkLot("FOO", mkDate(1), "10", "100"))
	ledger.AddLot("FOO", mkLot("FOO", mkDate(2), "5", "110"))

	consumed, err := ledger.ConsumeQty("FOO", dec("10"))
	rq.NoError(err)
	rq.Len(consumed, 1)
	reqDecEq(t, "10", consumed[0].Qty)

	// A lot leaves the sequence exactly when its quantity hits zero.
	held := ledger.Holdings("FOO")
	rq.Len(held, 1)
	rq.True(held[0].Acquired.Equal(mkDate(2)))
}

func TestConsumeInsufficientQuantity(t *testing.T) {
	rq := require.New(t)

	ledger := tax.NewLedger()
	ledger.AddLot("FOO", mkLot("FOO", mkDate(1), "10", "100"))

	_, err := ledger.ConsumeQty("FOO", dec("11"))
	rq.Error(err)
	rq.True(errors.Is(err, tax.ErrInsufficientLotQuantity))
	// The ledger is untouched on failure.
	reqDecEq(t, "10", ledger.TotalQty("FOO"))

	_, err = ledger.ConsumeQty("BAR", dec("1"))
	rq.True(errors.Is(err, tax.ErrInsufficientLotQuantity))
}

func TestConsumedLotAliasesLedgerState(t *testing.T) {
	rq := require.New(t)

	ledger := tax.NewLedger()
	lot := mkLot("FOO", mkDate(1), "10", "100")
	ledger.AddLot("FOO", lot)

	consumed, err := ledger.ConsumeQty("FOO", dec("4"))
	rq.NoError(err)
	rq.Same(lot, consumed[0].Lot)

	// Adjusting through the ledger is visible on the held lot.
	ledger.AdjustBasis(consumed[0].Lot, dec("2.50"))
	reqDecEq(t, "102.50", ledger.Holdings("FOO")[0].CostBasisPerUnit)
}

func TestAssetsSorted(t *testing.T) {
	rq := require.New(t)

	ledger := tax.NewLedger()
	ledger.AddLot("ZZZ", mkLot("ZZZ", mkDate(1), "1", "10"))
	ledger.AddLot("AAA", mkLot("AAA", mkDate(1), "1", "10"))
	ledger.AddLot("MMM", mkLot("MMM", mkDate(1), "1", "10"))
	rq.Equal([]string{"AAA", "MMM", "ZZZ"}, ledger.Assets())

	// Fully consumed assets drop out of Assets.
	_, err := ledger.ConsumeQty("MMM", dec("1"))
	rq.NoError(err)
	rq.Equal([]string{"AAA", "ZZZ"}, ledger.Assets())
}
