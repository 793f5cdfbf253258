package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lolaverein/lola-accounting/pkg/classify"
	"github.com/lolaverein/lola-accounting/pkg/config"
	"github.com/lolaverein/lola-accounting/pkg/export"
	"github.com/lolaverein/lola-accounting/pkg/pathutil"
	"github.com/lolaverein/lola-accounting/pkg/pos"
	"github.com/lolaverein/lola-accounting/pkg/posting"
	"github.com/lolaverein/lola-accounting/pkg/report"
	"github.com/lolaverein/lola-accounting/pkg/validate"
)

var (
	summaryInput string
	summaryMonth string
	dryRun       bool
)

// summaryCmd represents the summary command.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Build the monthly reports from a POS sales export",
	Long: `Build the monthly reports from a POS sales export.

This command:
1. Reads the sales export and classifies each transaction
2. Validates the classified records
3. Aggregates them into the daily summary table
4. Maps the summary onto the posting catalog and checks the balances
5. Writes the summary, miti, accounting and banana CSV files

No file is written if any validation fails.

Example:
  lola-report summary --input sales_202411.csv --month 202411
  lola-report summary --input sales_202411.csv --month 202411 --dry-run`,
	Run: runSummary,
}

func init() {
	// Flags
	summaryCmd.Flags().StringVar(&summaryInput, "input", "", "Sales export file (required)")
	summaryCmd.Flags().StringVar(&summaryMonth, "month", "", "Export month (YYYYMM) (required)")
	summaryCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Dry run mode (no file writes)")

	summaryCmd.MarkFlagRequired("input")
	summaryCmd.MarkFlagRequired("month")
}

func runSummary(cmd *cobra.Command, args []string) {
	slog.Info("Starting summary run", "input", summaryInput, "month", summaryMonth, "dry_run", dryRun)

	// Load configuration
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")
	exitOnError(cfg.Validate(), "invalid configuration")

	// Read and classify
	records, err := pos.ReadFile(summaryInput)
	exitOnError(err, "failed to read sales export")
	slog.Info("Read records", "count", len(records))

	classifier := classify.New(classify.Config{
		ThresholdMiTi:   cfg.Classify.ThresholdMiTi,
		ThresholdRental: cfg.Classify.ThresholdRental,
		TipMarker:       cfg.Classify.TipMarker,
		MenuMarker:      cfg.Classify.MenuMarker,
		DefaultOwner:    cfg.Classify.DefaultOwner,
	})
	classified := classifier.ClassifyAll(records)
	slog.Info("Classified records", "kept", len(classified), "suppressed", len(records)-len(classified))

	// Validate before producing any output
	exitOnError(validate.Records(classified), "validation failed")

	// Aggregate and map onto the posting catalog
	summary := report.Aggregate(classified)
	slog.Info("Aggregated summary", "dates", len(summary.Rows))

	catalog := posting.NewCatalog()
	accounting := posting.BuildAccounting(catalog, summary)
	exitOnError(validate.Balances(accounting, catalog), "balance check failed")

	journal, err := accounting.ToJournal(summaryMonth)
	exitOnError(err, "failed to build journal")

	tables := []struct {
		name  string
		table *export.Table
	}{
		{"summary", summary.Table()},
		{"miti", summary.MiTiTable()},
		{"accounting", accounting.Table()},
		{"banana", posting.JournalTable(journal)},
	}

	if dryRun {
		for _, t := range tables {
			fmt.Printf("[DRY RUN] Would write %s (%d rows)\n", t.name, len(t.table.Rows))
			printTable(t.table)
		}
		return
	}

	pathResolver := pathutil.New(cfg.Export.Root)
	repo := export.NewFileSystemRepository(pathResolver)

	for _, t := range tables {
		path, err := pathResolver.GetReportPath(t.name, summaryMonth)
		exitOnError(err, "failed to resolve report path")

		exitOnError(repo.WriteTable(path, t.table), "failed to write "+t.name)
		slog.Info("Wrote report", "path", path, "rows", len(t.table.Rows))
	}

	slog.Info("Summary run completed", "month", summaryMonth, "reports", len(tables))
}

// printTable writes a table to standard output in its CSV form.
func printTable(t *export.Table) {
	w := os.Stdout
	fmt.Fprintln(w, joinRow(t.Columns))
	for _, row := range t.Rows {
		fmt.Fprintln(w, joinRow(row))
	}
	fmt.Fprintln(w)
}

func joinRow(cells []string) string {
	out := ""
	for i, c := range cells {
		if i > 0 {
			out += ","
		}
		out += c
	}
	return out
}
