package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lolaverein/lola-accounting/pkg/classify"
	"github.com/lolaverein/lola-accounting/pkg/config"
	"github.com/lolaverein/lola-accounting/pkg/pos"
)

var recordsInput string

// recordsCmd represents the records command.
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Print the parsed and classified records of a sales export",
	Long: `Print the parsed and classified records of a sales export to
standard output. Useful for checking how transactions are classified before
running the summary.

Example:
  lola-report records --input sales_202411.csv`,
	Run: runRecords,
}

func init() {
	recordsCmd.Flags().StringVar(&recordsInput, "input", "", "Sales export file (required)")
	recordsCmd.MarkFlagRequired("input")
}

func runRecords(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")
	exitOnError(cfg.Validate(), "invalid configuration")

	records, err := pos.ReadFile(recordsInput)
	exitOnError(err, "failed to read sales export")
	slog.Debug("Read records", "count", len(records))

	classifier := classify.New(classify.Config{
		ThresholdMiTi:   cfg.Classify.ThresholdMiTi,
		ThresholdRental: cfg.Classify.ThresholdRental,
		TipMarker:       cfg.Classify.TipMarker,
		MenuMarker:      cfg.Classify.MenuMarker,
		DefaultOwner:    cfg.Classify.DefaultOwner,
	})
	classified := classifier.ClassifyAll(records)

	for _, r := range classified {
		owner := r.Owner
		if owner == "" {
			owner = "-"
		}
		fmt.Printf("%4d  %s %s  %-10s %-11s %-5s %8s %s  %s\n",
			r.Row, r.DateKey(), r.Time, r.Topic, r.Purpose, owner,
			r.PriceGross.StringFixed(2), r.PaymentMethod, r.Description)
	}

	fmt.Printf("\n%d records (%d suppressed as refund pairs)\n", len(classified), len(records)-len(classified))
}
