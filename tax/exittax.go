package tax

import (
	"github.com/shopspring/decimal"
)

// CalcExitTax computes the deemed-disposal tax owed when residency
// leaves the home country: every currently held lot is treated as sold
// at the exit-date fair market value.
//
// Each lot's basis goes through the same step-up rule as a real sale.
// An asset with no exit-date value on file is valued at its basis, i.e.
// assumed to carry no gain; that fallback is deliberate and not an
// error. Only positive per-lot gains are summed; losses are ignored
// rather than netted. The annual exemption does not apply.
func CalcExitTax(ledger *Ledger, exitFMV FMVTable, stepUpFMV FMVTable) decimal.Decimal {
	unrealizedGains := decimal.Zero
	for _, assetId := range ledger.Assets() {
		for _, lot := range ledger.Holdings(assetId) {
			basis := EffectiveBasis(lot, stepUpFMV)
			fmvPerUnit, ok := exitFMV[assetId]
			if !ok {
				fmvPerUnit = basis
			}
			gain := fmvPerUnit.Sub(basis).Mul(lot.Qty)
			if gain.IsPositive() {
				unrealizedGains = unrealizedGains.Add(gain)
			}
		}
	}
	return unrealizedGains.Mul(CgtRate).Round(2)
}
