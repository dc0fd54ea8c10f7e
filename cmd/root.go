package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdeclercq/becgt/app"
	"github.com/pdeclercq/becgt/app/outfmt"
	"github.com/pdeclercq/becgt/log"
	"github.com/pdeclercq/becgt/tax"
)

var (
	MaritalOpt       string
	CpiFileOpt       string
	StepUpFmvFileOpt string
	ExitFmvFileOpt   string
	ResidencyFileOpt string
	CsvOutputDirOpt  string
)

func loadTable[T any](
	fname string,
	parse func(reader io.Reader, desc string) (T, error)) (T, error) {

	var empty T
	if fname == "" {
		return empty, nil
	}
	fp, err := os.Open(fname)
	if err != nil {
		return empty, err
	}
	defer fp.Close()
	return parse(fp, fname)
}

func makeOptions() (app.Options, error) {
	options := app.Options{}

	switch strings.ToLower(MaritalOpt) {
	case "", string(tax.Single):
		options.Marital = tax.Single
	case string(tax.Couple):
		options.Marital = tax.Couple
	default:
		return options, fmt.Errorf("Invalid marital status %q (single|couple)", MaritalOpt)
	}

	var err error
	options.CPI, err = loadTable(CpiFileOpt, tax.ParseCPICsv)
	if err != nil {
		return options, err
	}
	options.StepUpFMV, err = loadTable(StepUpFmvFileOpt, tax.ParseFMVCsv)
	if err != nil {
		return options, err
	}
	options.ExitFMV, err = loadTable(ExitFmvFileOpt, tax.ParseDatedFMVCsv)
	if err != nil {
		return options, err
	}
	options.Residency, err = loadTable(ResidencyFileOpt, tax.ParseResidencyCsv)
	if err != nil {
		return options, err
	}
	return options, nil
}

func runRootCmd(cmd *cobra.Command, args []string) {
	errPrinter := &log.StderrErrorPrinter{}

	options, err := makeOptions()
	if err != nil {
		errPrinter.Ln("Error:", err)
		os.Exit(1)
	}

	csvReaders := make([]app.DescribedReader, 0, len(args))
	for _, csvName := range args {
		fp, err := os.Open(csvName)
		if err != nil {
			errPrinter.Ln("Error:", err)
			os.Exit(1)
		}
		defer fp.Close()
		csvReaders = append(csvReaders, app.DescribedReader{Desc: csvName, Reader: fp})
	}

	var writer outfmt.TaxWriter
	if CsvOutputDirOpt != "" {
		writer, err = outfmt.NewCSVWriter(CsvOutputDirOpt)
		if err != nil {
			errPrinter.Ln("Error:", err)
			os.Exit(1)
		}
	} else {
		writer = outfmt.NewSTDWriter(os.Stdout)
	}

	if err := app.RunTaxApp(csvReaders, options, errPrinter, writer); err != nil {
		os.Exit(1)
	}
}

func cmdName() string {
	binName := os.Args[0]
	return filepath.Base(binName)
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   cmdName() + " [CSV_FILE ...]",
	Short: "Belgian capital gains tax (CGT) calculation tool",
	Long: fmt.Sprintf(
		`A cli tool which computes annual Belgian capital gains tax liability
from a transaction history: FIFO lot accounting, wash sale loss deferral,
step-up basis for pre-2026 holdings, the indexed annual exemption with
carry-forward, and the exit tax on departure from Belgium.

Each CSV provided should contain a header with these column names:
%s
The interest, tob regime, benchmark and top holdings columns are optional.

Reference tables (CPI, fair market values, residency) are plain CSVs
without headers; see the flag descriptions.
`, strings.Join(tax.ColNames, ", ")),
	Run:     runRootCmd,
	Args:    cobra.MinimumNArgs(1),
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&log.VerboseEnabled, "verbose", "v", false,
		"Print verbose output")
	RootCmd.PersistentFlags().StringVar(&tax.CsvDateFormat, "date-fmt", tax.CsvDateFormat,
		"Format of how dates appear in the csv file. Must represent Jan 2, 2006")
	RootCmd.Flags().StringVarP(&MaritalOpt, "marital", "m", string(tax.Single),
		"Marital status: single or couple. Couples get a doubled exemption.")
	RootCmd.Flags().StringVar(&CpiFileOpt, "cpi-file", "",
		"CSV of year,cpi rows overriding the built-in health index table.")
	RootCmd.Flags().StringVar(&StepUpFmvFileOpt, "step-up-fmv-file", "",
		"CSV of asset,price rows: fair market values on 2025-12-31 for the "+
			"step-up basis rule.")
	RootCmd.Flags().StringVar(&ExitFmvFileOpt, "exit-fmv-file", "",
		"CSV of date,asset,price rows: fair market values used to value "+
			"holdings on a deemed disposal (exit tax).")
	RootCmd.Flags().StringVar(&ResidencyFileOpt, "residency-file", "",
		"CSV of year,country rows. Years not listed are assumed BE.")
	RootCmd.Flags().StringVar(&CsvOutputDirOpt, "csv-output-dir", "",
		"Write the per-year tax table as CSV into this directory instead of stdout.")
}
