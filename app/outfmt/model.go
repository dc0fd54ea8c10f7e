package outfmt

import (
	"github.com/pdeclercq/becgt/tax"
)

type OutputType int

const (
	AnnualTax OutputType = iota
)

type TaxWriter interface {
	PrintRenderTable(outType OutputType, name string, tableModel *tax.RenderTable) error
}
