package app

import (
	"io"

	"github.com/pdeclercq/becgt/app/outfmt"
	"github.com/pdeclercq/becgt/log"
	"github.com/pdeclercq/becgt/tax"
)

type DescribedReader struct {
	Desc   string
	Reader io.Reader
}

type Options struct {
	Marital   tax.MaritalStatus
	Residency map[int]string
	CPI       tax.CPITable
	StepUpFMV tax.FMVTable
	ExitFMV   tax.DatedFMVTable
}

// RunTaxApp parses the given transaction CSVs, computes the full
// multi-year liability, and prints the per-year table through writer.
// A computation error is printed alongside the state computed so far,
// mirroring what the engine managed before aborting.
func RunTaxApp(
	csvReaders []DescribedReader,
	options Options,
	errPrinter log.ErrorPrinter,
	writer outfmt.TaxWriter) error {

	allTxs := make([]*tax.Tx, 0, 20)
	for _, csvReader := range csvReaders {
		txs, err := tax.ParseTxCsv(csvReader.Reader, csvReader.Desc)
		if err != nil {
			errPrinter.Ln("Error:", err)
			return err
		}
		log.Verbosef("Parsed %d transactions from %s\n", len(txs), csvReader.Desc)
		allTxs = append(allTxs, txs...)
	}

	results, calcErr := tax.CalcAnnualTax(allTxs, tax.CalcOptions{
		Marital:   options.Marital,
		Residency: options.Residency,
		CPI:       options.CPI,
		StepUpFMV: options.StepUpFMV,
		ExitFMV:   options.ExitFMV,
	})

	table := tax.RenderTaxTable(results)
	if calcErr != nil {
		table.Errors = append(table.Errors, calcErr)
	}
	if err := writer.PrintRenderTable(outfmt.AnnualTax, "taxpayer", table); err != nil {
		errPrinter.Ln("Error:", err)
		return err
	}
	return calcErr
}
