package tasks

import (
	"time"

	"github.com/DefiantLabs/acb-tax-cli/config"
	"github.com/DefiantLabs/acb-tax-cli/core"
	"github.com/DefiantLabs/acb-tax-cli/csv"
	"github.com/go-co-op/gocron"
)

// ReportSink receives every successfully recomputed report.
type ReportSink func(result *core.Result) error

// ReportRefreshTask recomputes the report for the ledger at path and hands it to each sink.
// Failures are logged and the previous report stays in place.
func ReportRefreshTask(path string, settings core.Settings, sinks ...ReportSink) {
	config.Log.Infof("Task started for ReportRefreshTask (%s)", path)

	entries, err := csv.ReadLedgerFile(path)
	if err != nil {
		config.Log.Error("Error reading ledger in ReportRefreshTask", err)
		return
	}

	result, err := core.Process(entries, settings)
	if err != nil {
		config.Log.Error("Error computing report in ReportRefreshTask", err)
		return
	}

	for _, sink := range sinks {
		if err := sink(result); err != nil {
			config.Log.Error("Error publishing report in ReportRefreshTask", err)
		}
	}
	config.Log.Info("Task ended for ReportRefreshTask")
}

// ScheduleReportRefresh runs ReportRefreshTask now and then every interval.
func ScheduleReportRefresh(scheduler *gocron.Scheduler, intervalMinutes int, path string, settings core.Settings, sinks ...ReportSink) error {
	_, err := scheduler.Every(intervalMinutes).Minutes().StartImmediately().Do(func() {
		ReportRefreshTask(path, settings, sinks...)
	})
	return err
}

func NewScheduler() *gocron.Scheduler {
	return gocron.NewScheduler(time.UTC)
}
