package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pdeclercq/becgt/log"
	"github.com/pdeclercq/becgt/util"
)

// EffectiveBasis returns the per-unit basis to tax the lot against.
// Lots acquired before the regime cutoff get their basis stepped up to
// the 2025-12-31 fair market value when one is on file for the asset.
// The step-up never lowers a basis.
func EffectiveBasis(lot *Lot, stepUpFMV FMVTable) decimal.Decimal {
	basis := lot.CostBasisPerUnit
	if lot.Acquired.Before(CutoffDate) {
		if fmv, ok := stepUpFMV[lot.AssetId]; ok {
			basis = util.DecimalMax(basis, fmv)
		}
	}
	return basis
}

// RealizedGain computes the realized capital gain and interest income of
// one SELL transaction, consuming the sold quantity from the ledger in
// FIFO order.
//
// The sale's interest component (bond-fund income) is split out first
// and taxed separately by the caller. Sale-side TOB is deducted from
// gross proceeds at the rate of the transaction's regime. Every consumed
// lot is priced at a single average realized price per unit; intra-sale
// price variation across lots is deliberately not modeled.
//
// A net loss with a substantially identical purchase inside the wash
// window is deferred in full: the replacement lot's basis is raised by
// |loss|/lotQty per unit and the sale's gain becomes exactly zero.
// Without a replacement, the loss stands.
func RealizedGain(tx *Tx, ledger *Ledger, allTxs []*Tx, stepUpFMV FMVTable) (
	decimal.Decimal, decimal.Decimal, error) {

	if tx.Action != SELL {
		return decimal.Zero, decimal.Zero, fmt.Errorf(
			"%w: RealizedGain called for %s of %s on %s",
			ErrInvalidTransactionType, tx.Action, tx.AssetId, tx.Date)
	}

	interestIncome := tx.InterestComponent.GetOr(decimal.Zero)

	// Purchase-side TOB is assumed to be included in each lot's basis.
	tobRate := TobRates[tx.TobRegime]
	grossProceeds := tx.Qty.Mul(tx.PricePerUnit)
	saleTob := grossProceeds.Mul(tobRate)
	capitalProceeds := grossProceeds.Sub(interestIncome).Sub(saleTob)

	consumed, err := ledger.ConsumeQty(tx.AssetId, tx.Qty)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf(
			"sale on %s: %w", tx.Date, err)
	}

	avgPricePerUnit := capitalProceeds.Div(tx.Qty)
	gain := decimal.Zero
	for _, c := range consumed {
		basis := EffectiveBasis(c.Lot, stepUpFMV)
		gain = gain.Add(avgPricePerUnit.Sub(basis).Mul(c.Qty))
	}

	if gain.IsNegative() {
		replacement := FindReplacementLot(tx, allTxs)
		if replacement != nil {
			disallowedLoss := gain.Abs()
			ledger.AdjustBasis(replacement, disallowedLoss.Div(replacement.Qty))
			log.Tracef("gains", "wash sale on %s %s: deferred %s onto lot acquired %s",
				tx.Date, tx.AssetId, disallowedLoss, replacement.Acquired)
			gain = decimal.Zero
		}
	}

	return gain, interestIncome, nil
}
