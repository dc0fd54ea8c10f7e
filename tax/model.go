package tax

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pdeclercq/becgt/date"
	"github.com/pdeclercq/becgt/util"
)

type TxAction int

const (
	NO_ACTION TxAction = iota
	BUY
	SELL
)

func (a TxAction) String() string {
	switch a {
	case BUY:
		return "Buy"
	case SELL:
		return "Sell"
	default:
		return "Unknown"
	}
}

// TOB regime of an asset. Determines the transaction-tax rate applied
// to the gross proceeds of a sale.
type TaxRegime string

const (
	RegimeStandard TaxRegime = "standard"
	RegimeFund     TaxRegime = "fund"
	RegimeOther    TaxRegime = "other"
)

// SecurityInfo describes a security for the purpose of the wash-sale
// "substantially identical" test. Immutable once attached to a Tx.
type SecurityInfo struct {
	// Formal benchmark index the security tracks, if any.
	BenchmarkId string
	// Identifiers of the security's top holdings.
	TopHoldings []string
}

// Lot is a single acquisition of an asset. Lots are owned by the Ledger:
// Qty only ever decreases (FIFO consumption) and CostBasisPerUnit only
// ever increases (wash-sale deferral), both through Ledger methods.
type Lot struct {
	AssetId          string
	Acquired         date.Date
	Qty              decimal.Decimal
	CostBasisPerUnit decimal.Decimal
}

type Tx struct {
	AssetId      string
	Date         date.Date
	Action       TxAction
	Qty          decimal.Decimal
	PricePerUnit decimal.Decimal
	// Interest income embedded in a bond-fund sale, taxed separately
	// from the capital gain. Absent for plain sales.
	InterestComponent util.Optional[decimal.Decimal]
	TobRegime         TaxRegime
	Security          SecurityInfo
	// Pre-constructed lot for BUY transactions. Appended to the Ledger
	// when the buy is processed.
	Lot *Lot
}

// YearlyResult accumulates one tax year's totals. Finalized by
// CalcAnnualTax and not mutated afterwards.
type YearlyResult struct {
	RealizedGain   decimal.Decimal
	InterestIncome decimal.Decimal
	TaxDue         decimal.Decimal
}

type txSorter struct {
	Txs []*Tx
}

func (s *txSorter) Len() int {
	return len(s.Txs)
}

func (s *txSorter) Swap(i, j int) {
	s.Txs[i], s.Txs[j] = s.Txs[j], s.Txs[i]
}

func (s *txSorter) Less(i, j int) bool {
	return s.Txs[i].Date.Before(s.Txs[j].Date)
}

// SortTxs returns a copy of txs in chronological order. The sort is
// stable: same-date transactions keep their input order, which is the
// defined tie-break for FIFO and wash-sale evaluation.
func SortTxs(txs []*Tx) []*Tx {
	sorted := make([]*Tx, len(txs))
	copy(sorted, txs)
	sorter := txSorter{Txs: sorted}
	sort.Stable(&sorter)
	return sorter.Txs
}
