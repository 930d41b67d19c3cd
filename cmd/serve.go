package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/DefiantLabs/acb-tax-cli/api"
	"github.com/DefiantLabs/acb-tax-cli/config"
	"github.com/DefiantLabs/acb-tax-cli/core"
	csvParsers "github.com/DefiantLabs/acb-tax-cli/csv/parsers"
	dbTypes "github.com/DefiantLabs/acb-tax-cli/db"
	"github.com/DefiantLabs/acb-tax-cli/tasks"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveConfig config.ServeConfig

func init() {
	config.SetupLogFlags(&serveConfig.Log, serveCmd)
	config.SetupDatabaseFlags(&serveConfig.Database, serveCmd)
	config.SetupCurrencyFlags(&serveConfig.Currencies, serveCmd)
	config.SetupServeSpecificFlags(&serveConfig, serveCmd)
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves reports over HTTP.",
	Long: `Starts an HTTP server that computes reports for uploaded ledger exports. When a ledger file
is configured it is recomputed on a schedule and served at /latest.csv.`,
	PreRunE: setupServe,
	RunE:    runServe,
}

func setupServe(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)

	if err := serveConfig.Validate(); err != nil {
		return err
	}
	if !csvParsers.IsParserKey(serveConfig.Base.Format) {
		return fmt.Errorf("unsupported report format %q, valid formats are %v", serveConfig.Base.Format, csvParsers.GetParserKeys())
	}

	return config.DoConfigureLogger(serveConfig.Log.Path, serveConfig.Log.Level, serveConfig.Log.Pretty)
}

func runServe(cmd *cobra.Command, args []string) error {
	settings := core.Settings{
		TaxYear:      serveConfig.Base.TaxYear,
		FallbackRate: serveConfig.FallbackRate(),
		Currencies:   core.Currencies{Reporting: serveConfig.Currencies.Reporting, Secondary: serveConfig.Currencies.Secondary},
	}
	server := api.NewServer(settings, serveConfig.Base.Format, time.Duration(serveConfig.Serve.CacheMinutes)*time.Minute)

	if serveConfig.Serve.LedgerFile != "" {
		sinks := []tasks.ReportSink{server.Publish}

		if serveConfig.Base.Persist {
			db, err := connectDatabase(serveConfig.Database.Host, serveConfig.Database.Port, serveConfig.Database.Database,
				serveConfig.Database.User, serveConfig.Database.Password, serveConfig.Database.LogLevel)
			if err != nil {
				return err
			}
			sinks = append(sinks, func(result *core.Result) error {
				_, err := dbTypes.SaveReport(db, result, serveConfig.Serve.LedgerFile)
				return err
			})
		}

		scheduler := tasks.NewScheduler()
		err := tasks.ScheduleReportRefresh(scheduler, serveConfig.Serve.RefreshMinutes, serveConfig.Serve.LedgerFile, settings, sinks...)
		if err != nil {
			return err
		}
		scheduler.StartAsync()
		defer scheduler.Stop()
	}

	gin.SetMode(gin.ReleaseMode)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", serveConfig.Serve.Host, serveConfig.Serve.Port),
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		config.Log.Infof("Listening on %s", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	config.Log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
