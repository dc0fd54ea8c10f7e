package tax

import (
	"github.com/pdeclercq/becgt/date"
)

// FindReplacementLot scans allTxs, in the given order, for the first BUY
// of a security substantially identical to the loss sale's, settled
// within WashWindowDays before or after the sale (both boundaries
// inclusive, so a 61-day window centered on the sale).
//
// The first match in iteration order wins, not the nearest in time, and
// a single match absorbs the entire deferred loss. When several
// purchases fall inside the window this is a defined choice; no
// proportional split across candidates is performed. Returns nil when
// no candidate matches.
//
// A buy whose lot has been fully consumed is not a candidate: it has no
// units left to carry a basis adjustment. In particular this excludes
// the loss sale's own source lot, whose purchase always falls inside
// the window.
func FindReplacementLot(lossTx *Tx, allTxs []*Tx) *Lot {
	key := SimilarityKey(lossTx.Security)
	for _, tx := range allTxs {
		if tx.Action != BUY || tx.Lot == nil || !tx.Lot.Qty.IsPositive() {
			continue
		}
		if SimilarityKey(tx.Security) != key {
			continue
		}
		days := date.DaysBetween(lossTx.Date, tx.Date)
		if days < 0 {
			days = -days
		}
		if days <= WashWindowDays {
			return tx.Lot
		}
	}
	return nil
}
