package cmd

import (
	"fmt"
	"strconv"

	"github.com/DefiantLabs/acb-tax-cli/config"
	"github.com/DefiantLabs/acb-tax-cli/core"
	"github.com/DefiantLabs/acb-tax-cli/csv"
	csvParsers "github.com/DefiantLabs/acb-tax-cli/csv/parsers"
	dbTypes "github.com/DefiantLabs/acb-tax-cli/db"
	"github.com/DefiantLabs/acb-tax-cli/renderer"
	"github.com/spf13/cobra"
)

var reportConfig config.ReportConfig

func init() {
	config.SetupLogFlags(&reportConfig.Log, reportCmd)
	config.SetupDatabaseFlags(&reportConfig.Database, reportCmd)
	config.SetupCurrencyFlags(&reportConfig.Currencies, reportCmd)
	config.SetupReportSpecificFlags(&reportConfig, reportCmd)
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [input] [tax-year] [output] [fallback-fx]",
	Short: "Computes the average cost basis report for a ledger export.",
	Long: `Reads a ledger export, replays it in order through per-asset average cost pools and writes
the audit trail for the tax year as CSV. Positional arguments override the matching --base flags.`,
	Args:    cobra.MaximumNArgs(4),
	PreRunE: setupReport,
	RunE:    runReport,
}

func setupReport(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)

	if err := applyReportArgs(&reportConfig, args); err != nil {
		return err
	}
	if err := reportConfig.Validate(); err != nil {
		return err
	}
	if !csvParsers.IsParserKey(reportConfig.Base.Format) {
		return fmt.Errorf("unsupported report format %q, valid formats are %v", reportConfig.Base.Format, csvParsers.GetParserKeys())
	}

	return config.DoConfigureLogger(reportConfig.Log.Path, reportConfig.Log.Level, reportConfig.Log.Pretty)
}

// applyReportArgs maps [input] [tax-year] [output] [fallback-fx] onto the config.
func applyReportArgs(conf *config.ReportConfig, args []string) error {
	if len(args) > 0 {
		conf.Base.Input = args[0]
	}
	if len(args) > 1 {
		year, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("tax year %q is not a number", args[1])
		}
		conf.Base.TaxYear = year
	}
	if len(args) > 2 {
		conf.Base.Output = args[2]
	}
	if len(args) > 3 {
		conf.Base.FallbackRate = args[3]
	}
	return nil
}

func reportSettings(conf *config.ReportConfig) core.Settings {
	return core.Settings{
		TaxYear:      conf.Base.TaxYear,
		FallbackRate: conf.FallbackRate(),
		Currencies:   core.Currencies{Reporting: conf.Currencies.Reporting, Secondary: conf.Currencies.Secondary},
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	entries, err := csv.ReadLedgerFile(reportConfig.Base.Input)
	if err != nil {
		return err
	}

	result, err := core.Process(entries, reportSettings(&reportConfig))
	if err != nil {
		return err
	}

	rows, headers, err := csv.ParseReport(result, reportConfig.Base.Format)
	if err != nil {
		return err
	}
	if err := csv.WriteFile(reportConfig.Base.Output, rows, headers); err != nil {
		return fmt.Errorf("writing report %s: %w", reportConfig.Base.Output, err)
	}

	out := cmd.OutOrStdout()
	summary := renderer.NewSummary(result)
	if reportConfig.Base.Pretty {
		rendered, err := renderer.RenderPretty(summary)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
	} else if err := renderer.PlainSummary(out, summary); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nWrote tax report: %s\n", reportConfig.Base.Output)

	if !reportConfig.Base.Persist {
		return nil
	}

	db, err := connectDatabase(reportConfig.Database.Host, reportConfig.Database.Port, reportConfig.Database.Database,
		reportConfig.Database.User, reportConfig.Database.Password, reportConfig.Database.LogLevel)
	if err != nil {
		return err
	}
	run, err := dbTypes.SaveReport(db, result, reportConfig.Base.Input)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved report run: %s\n", run.RunID)
	return nil
}
