package tax

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pdeclercq/becgt/date"
)

// Ingestion of transaction and reference-table CSVs. This layer is a
// collaborator of the engine, not part of it: it only produces
// well-formed Tx and table values for CalcAnnualTax.

var CsvDateFormat string = date.DefaultFormat

type colParser func(string, *Tx) error

var colParserMap = map[string]colParser{
	"asset":        parseAssetId,
	"date":         parseTxDate,
	"action":       parseTxAction,
	"quantity":     parseQty,
	"price/unit":   parsePricePerUnit,
	"interest":     parseInterest,
	"tob regime":   parseTobRegime,
	"benchmark":    parseBenchmark,
	"top holdings": parseTopHoldings,
}

var ColNames []string

func init() {
	ColNames = make([]string, 0, len(colParserMap))
	for name := range colParserMap {
		ColNames = append(ColNames, name)
	}
	sort.Strings(ColNames)
}

func DefaultTx() *Tx {
	return &Tx{
		AssetId: "", Date: date.Date{}, Action: NO_ACTION,
		Qty: decimal.Zero, PricePerUnit: decimal.Zero,
		TobRegime: RegimeStandard,
	}
}

func CheckTxSanity(tx *Tx) error {
	if tx.AssetId == "" {
		return fmt.Errorf("Transaction has no asset")
	} else if (tx.Date == date.Date{}) {
		return fmt.Errorf("Transaction has no date")
	} else if tx.Action == NO_ACTION {
		return fmt.Errorf("Transaction has no action (Buy, Sell): %w",
			ErrInvalidTransactionType)
	} else if !tx.Qty.IsPositive() {
		return fmt.Errorf("Transaction quantity must be positive")
	}
	return nil
}

func parseAssetId(data string, tx *Tx) error {
	tx.AssetId = data
	return nil
}

func parseTxDate(data string, tx *Tx) error {
	d, err := date.Parse(CsvDateFormat, data)
	if err != nil {
		return fmt.Errorf("Failed to parse date: %v", err)
	}
	tx.Date = d
	return nil
}

func parseTxAction(data string, tx *Tx) error {
	switch strings.TrimSpace(strings.ToLower(data)) {
	case "buy":
		tx.Action = BUY
	case "sell":
		tx.Action = SELL
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTransactionType, data)
	}
	return nil
}

func parseQty(data string, tx *Tx) error {
	qty, err := decimal.NewFromString(data)
	if err != nil {
		return fmt.Errorf("Failed to parse quantity: %v", err)
	}
	tx.Qty = qty
	return nil
}

func parsePricePerUnit(data string, tx *Tx) error {
	price, err := decimal.NewFromString(data)
	if err != nil {
		return fmt.Errorf("Failed to parse price: %v", err)
	}
	tx.PricePerUnit = price
	return nil
}

func parseInterest(data string, tx *Tx) error {
	if strings.TrimSpace(data) == "" {
		return nil
	}
	interest, err := decimal.NewFromString(data)
	if err != nil {
		return fmt.Errorf("Failed to parse interest: %v", err)
	}
	tx.InterestComponent.Set(interest)
	return nil
}

func parseTobRegime(data string, tx *Tx) error {
	tx.TobRegime = TaxRegime(strings.TrimSpace(strings.ToLower(data)))
	return nil
}

func parseBenchmark(data string, tx *Tx) error {
	tx.Security.BenchmarkId = strings.TrimSpace(data)
	return nil
}

// Top holdings are separated by ';' within the single CSV cell.
func parseTopHoldings(data string, tx *Tx) error {
	for _, holding := range strings.Split(data, ";") {
		holding = strings.TrimSpace(holding)
		if holding != "" {
			tx.Security.TopHoldings = append(tx.Security.TopHoldings, holding)
		}
	}
	return nil
}

// ParseTxCsv reads transactions from reader. The header row selects the
// column parsers; unknown columns are an error. Buys get their Lot
// synthesized here, with the transaction's date as acquisition date and
// the transaction price as the recorded basis per unit.
func ParseTxCsv(reader io.Reader, csvDesc string) ([]*Tx, error) {
	csvR := csv.NewReader(reader)
	records, err := csvR.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("Error reading %s: %v", csvDesc, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("No rows found in %s", csvDesc)
	}

	header := records[0]
	colParsers := make([]colParser, 0, len(header))
	for _, col := range header {
		name := strings.TrimSpace(strings.ToLower(col))
		parser, ok := colParserMap[name]
		if !ok {
			return nil, fmt.Errorf(
				"%s has unrecognized column %q. Expected one of: %s",
				csvDesc, col, strings.Join(ColNames, ", "))
		}
		colParsers = append(colParsers, parser)
	}

	txs := make([]*Tx, 0, len(records)-1)
	for i, record := range records[1:] {
		tx := DefaultTx()
		for j, data := range record {
			if j >= len(colParsers) {
				break
			}
			if err := colParsers[j](data, tx); err != nil {
				return nil, fmt.Errorf("Error parsing %s row %d: %w", csvDesc, i+2, err)
			}
		}
		if err := CheckTxSanity(tx); err != nil {
			return nil, fmt.Errorf("Error parsing %s row %d: %w", csvDesc, i+2, err)
		}
		if tx.Action == BUY {
			tx.Lot = &Lot{
				AssetId:          tx.AssetId,
				Acquired:         tx.Date,
				Qty:              tx.Qty,
				CostBasisPerUnit: tx.PricePerUnit,
			}
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func ParseTxCsvFile(fname string) ([]*Tx, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return ParseTxCsv(fp, fname)
}

func readTableCsv(reader io.Reader, csvDesc string, wantCols int) ([][]string, error) {
	csvR := csv.NewReader(reader)
	records, err := csvR.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("Error reading %s: %v", csvDesc, err)
	}
	for i, record := range records {
		if len(record) != wantCols {
			return nil, fmt.Errorf("%s row %d: expected %d columns, found %d",
				csvDesc, i+1, wantCols, len(record))
		}
	}
	return records, nil
}

// ParseCPICsv reads "year,cpi" rows (no header).
func ParseCPICsv(reader io.Reader, csvDesc string) (CPITable, error) {
	records, err := readTableCsv(reader, csvDesc, 2)
	if err != nil {
		return nil, err
	}
	table := make(CPITable, len(records))
	for i, record := range records {
		year, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad year %q", csvDesc, i+1, record[0])
		}
		cpi, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad CPI %q", csvDesc, i+1, record[1])
		}
		table[year] = cpi
	}
	return table, nil
}

// ParseFMVCsv reads "asset,price" rows (no header) for a single
// valuation date, e.g. the 2025-12-31 step-up snapshot.
func ParseFMVCsv(reader io.Reader, csvDesc string) (FMVTable, error) {
	records, err := readTableCsv(reader, csvDesc, 2)
	if err != nil {
		return nil, err
	}
	table := make(FMVTable, len(records))
	for i, record := range records {
		price, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad price %q", csvDesc, i+1, record[1])
		}
		table[strings.TrimSpace(record[0])] = price
	}
	return table, nil
}

// ParseDatedFMVCsv reads "date,asset,price" rows (no header), e.g. the
// exit-date valuation table.
func ParseDatedFMVCsv(reader io.Reader, csvDesc string) (DatedFMVTable, error) {
	records, err := readTableCsv(reader, csvDesc, 3)
	if err != nil {
		return nil, err
	}
	table := make(DatedFMVTable)
	for i, record := range records {
		day := strings.TrimSpace(record[0])
		if _, err := date.Parse(date.DefaultFormat, day); err != nil {
			return nil, fmt.Errorf("%s row %d: bad date %q", csvDesc, i+1, record[0])
		}
		price, err := decimal.NewFromString(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad price %q", csvDesc, i+1, record[2])
		}
		if _, ok := table[day]; !ok {
			table[day] = make(FMVTable)
		}
		table[day][strings.TrimSpace(record[1])] = price
	}
	return table, nil
}

// ParseResidencyCsv reads "year,country" rows (no header).
func ParseResidencyCsv(reader io.Reader, csvDesc string) (map[int]string, error) {
	records, err := readTableCsv(reader, csvDesc, 2)
	if err != nil {
		return nil, err
	}
	table := make(map[int]string, len(records))
	for i, record := range records {
		year, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad year %q", csvDesc, i+1, record[0])
		}
		table[year] = strings.ToUpper(strings.TrimSpace(record[1]))
	}
	return table, nil
}
