package tax

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pdeclercq/becgt/util"
)

// ConsumedLot records one lot's contribution to a sale: the quantity
// taken from it and its recorded basis at consumption time. Lot still
// points at the ledger-owned lot, so a wash-sale basis adjustment made
// through Ledger.AdjustBasis is visible to later sales.
type ConsumedLot struct {
	Qty          decimal.Decimal
	BasisPerUnit decimal.Decimal
	Lot          *Lot
}

// Ledger tracks every currently held lot, per asset, in acquisition
// order. One Ledger belongs to exactly one computation run; it must not
// be shared across runs for different taxpayers.
type Ledger struct {
	lots map[string][]*Lot
}

func NewLedger() *Ledger {
	return &Ledger{lots: make(map[string][]*Lot)}
}

// AddLot appends lot to the tail of the asset's holding sequence,
// preserving acquisition (FIFO) order.
func (l *Ledger) AddLot(assetId string, lot *Lot) {
	util.Assertf(lot != nil, "AddLot: nil lot for %s\n", assetId)
	l.lots[assetId] = append(l.lots[assetId], lot)
}

// Holdings returns the asset's currently held lots in acquisition order.
// The returned slice is owned by the Ledger and must not be modified.
func (l *Ledger) Holdings(assetId string) []*Lot {
	return l.lots[assetId]
}

// Assets returns all asset ids with at least one held lot, sorted.
func (l *Ledger) Assets() []string {
	assets := make([]string, 0, len(l.lots))
	for assetId, lots := range l.lots {
		if len(lots) > 0 {
			assets = append(assets, assetId)
		}
	}
	sort.Strings(assets)
	return assets
}

func (l *Ledger) TotalQty(assetId string) decimal.Decimal {
	total := decimal.Zero
	for _, lot := range l.lots[assetId] {
		total = total.Add(lot.Qty)
	}
	return total
}

// ConsumeQty removes qty units of the asset starting from the oldest
// lot, splitting the head lot when it holds more than the remaining
// amount needed. A lot is dropped from the sequence exactly when its
// quantity reaches zero. Returns one ConsumedLot per (partially or
// fully) consumed lot, oldest first.
//
// Wraps ErrInsufficientLotQuantity if qty exceeds the total held
// quantity; the ledger is left unchanged in that case.
func (l *Ledger) ConsumeQty(assetId string, qty decimal.Decimal) ([]ConsumedLot, error) {
	if qty.GreaterThan(l.TotalQty(assetId)) {
		return nil, fmt.Errorf(
			"%w: sale of %s units of %s exceeds the %s currently held",
			ErrInsufficientLotQuantity, qty, assetId, l.TotalQty(assetId))
	}

	consumed := make([]ConsumedLot, 0, 1)
	remaining := qty
	held := l.lots[assetId]
	for len(held) > 0 && remaining.IsPositive() {
		lot := held[0]
		sellQty := util.DecimalMin(lot.Qty, remaining)
		consumed = append(consumed, ConsumedLot{
			Qty:          sellQty,
			BasisPerUnit: lot.CostBasisPerUnit,
			Lot:          lot,
		})
		lot.Qty = lot.Qty.Sub(sellQty)
		remaining = remaining.Sub(sellQty)
		if lot.Qty.IsZero() {
			held = held[1:]
		}
	}
	l.lots[assetId] = held
	return consumed, nil
}

// AdjustBasis raises lot's cost basis by perUnitDelta. This is the only
// sanctioned way to mutate a held lot's basis; the wash-sale resolver
// hands out lot references, but the adjustment itself goes through the
// owning Ledger.
func (l *Ledger) AdjustBasis(lot *Lot, perUnitDelta decimal.Decimal) {
	util.Assertf(!perUnitDelta.IsNegative(),
		"AdjustBasis: basis may only increase (delta %s)\n", perUnitDelta)
	lot.CostBasisPerUnit = lot.CostBasisPerUnit.Add(perUnitDelta)
}
