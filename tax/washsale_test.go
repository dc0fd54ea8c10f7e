package tax_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdeclercq/becgt/tax"
)

func TestWindowBoundariesInclusive(t *testing.T) {
	rq := require.New(t)

	sec := benchmarkSec("SP500")
	// 2026-02-01
	loss := sellTx("FOO", mkDate(31), "10", "90", tax.RegimeStandard, sec)

	// Exactly 30 days after the sale: in the window.
	buyAt30 := buyTx("FOO", mkDate(61), "5", "95", sec)
	rq.Same(buyAt30.Lot, tax.FindReplacementLot(loss, []*tax.Tx{loss, buyAt30}))

	// 31 days after: out.
	buyAt31 := buyTx("FOO", mkDate(62), "5", "95", sec)
	rq.Nil(tax.FindReplacementLot(loss, []*tax.Tx{loss, buyAt31}))

	// Exactly 30 days before: in.
	buyBefore30 := buyTx("FOO", mkDate(1), "5", "95", sec)
	rq.Same(buyBefore30.Lot, tax.FindReplacementLot(loss, []*tax.Tx{buyBefore30, loss}))

	// 31 days before: out.
	buyBefore31 := buyTx("FOO", mkDate(0), "5", "95", sec)
	rq.Nil(tax.FindReplacementLot(loss, []*tax.Tx{buyBefore31, loss}))
}

func TestFirstMatchInInputOrderWins(t *testing.T) {
	rq := require.New(t)

	sec := benchmarkSec("SP500")
	loss := sellTx("FOO", mkDate(31), "10", "90", tax.RegimeStandard, sec)
	early := buyTx("FOO", mkDate(10), "5", "95", sec)
	// Nearer in time to the sale, but later in the supplied ordering.
	near := buyTx("FOO", mkDate(30), "5", "96", sec)

	rq.Same(early.Lot, tax.FindReplacementLot(loss, []*tax.Tx{early, near, loss}))
}

func TestNonCandidatesSkipped(t *testing.T) {
	rq := require.New(t)

	sec := benchmarkSec("SP500")
	loss := sellTx("FOO", mkDate(31), "10", "90", tax.RegimeStandard, sec)

	// Sells of the same security are not replacements.
	otherSell := sellTx("FOO", mkDate(40), "5", "95", tax.RegimeStandard, sec)
	// A different similarity class never matches.
	otherSec := buyTx("BAR", mkDate(40), "5", "95", benchmarkSec("STOXX50"))
	rq.Nil(tax.FindReplacementLot(loss, []*tax.Tx{loss, otherSell, otherSec}))
}

func TestExhaustedLotIsNotACandidate(t *testing.T) {
	rq := require.New(t)

	sec := benchmarkSec("SP500")
	spent := buyTx("FOO", mkDate(20), "5", "95", sec)
	spent.Lot.Qty = dec("0")
	loss := sellTx("FOO", mkDate(31), "10", "90", tax.RegimeStandard, sec)
	fresh := buyTx("FOO", mkDate(50), "5", "95", sec)

	// The spent lot is first in order but has nothing left to absorb a
	// deferral; the next candidate wins.
	rq.Same(fresh.Lot, tax.FindReplacementLot(loss, []*tax.Tx{spent, loss, fresh}))
}
