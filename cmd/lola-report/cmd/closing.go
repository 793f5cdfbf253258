package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lolaverein/lola-accounting/pkg/budget"
	"github.com/lolaverein/lola-accounting/pkg/config"
	"github.com/lolaverein/lola-accounting/pkg/export"
	"github.com/lolaverein/lola-accounting/pkg/pathutil"
)

var (
	closingBalance string
	closingBudget  string
	closingYear    string
	closingDryRun  bool
)

// closingCmd represents the closing command.
var closingCmd = &cobra.Command{
	Use:   "closing",
	Short: "Reconcile the year-end trial balance against the budget",
	Long: `Reconcile the year-end trial balance against the budget definition.

This command:
1. Loads the budget definition (posts, account codes, committed amounts)
2. Reads the trial balance from the spreadsheet-XML export
3. Matches every eligible account to its budget post
4. Computes net and remaining budget per post
5. Writes the closing report

An eligible account matching no budget post aborts the run.

Example:
  lola-report closing --balance balance_2024.xml --budget budget.yaml --year 2024`,
	Run: runClosing,
}

func init() {
	// Flags
	closingCmd.Flags().StringVar(&closingBalance, "balance", "", "Trial balance spreadsheet-XML file (required)")
	closingCmd.Flags().StringVar(&closingBudget, "budget", "", "Budget definition YAML file (required)")
	closingCmd.Flags().StringVar(&closingYear, "year", "", "Fiscal year (YYYY) (required)")
	closingCmd.Flags().BoolVar(&closingDryRun, "dry-run", false, "Dry run mode (no file writes)")

	closingCmd.MarkFlagRequired("balance")
	closingCmd.MarkFlagRequired("budget")
	closingCmd.MarkFlagRequired("year")
}

func runClosing(cmd *cobra.Command, args []string) {
	slog.Info("Starting closing run", "balance", closingBalance, "budget", closingBudget, "year", closingYear)

	// Load configuration
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")
	exitOnError(cfg.Validate(), "invalid configuration")

	// Budget definition is validated at load time, before any row is read
	def, err := budget.LoadDefinition(closingBudget)
	exitOnError(err, "failed to load budget definition")
	slog.Info("Loaded budget definition", "posts", len(def.Posts))

	rows, err := budget.ReadBalanceFile(closingBalance)
	exitOnError(err, "failed to read trial balance")
	slog.Info("Read trial balance", "accounts", len(rows))

	report, err := budget.Reconcile(rows, def, closingYear)
	exitOnError(err, "reconciliation failed")

	table := budget.ReportTable(report)

	if closingDryRun {
		fmt.Printf("[DRY RUN] Would write closing report (%d rows)\n", len(table.Rows))
		printTable(table)
		return
	}

	pathResolver := pathutil.New(cfg.Export.Root)
	repo := export.NewFileSystemRepository(pathResolver)

	path := pathResolver.GetClosingPath(closingYear)
	exitOnError(repo.WriteTable(path, table), "failed to write closing report")

	slog.Info("Closing run completed", "path", path, "posts", len(table.Rows))
}
