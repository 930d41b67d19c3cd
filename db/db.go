package db

import (
	"fmt"

	"github.com/DefiantLabs/acb-tax-cli/config"
	"github.com/DefiantLabs/acb-tax-cli/core"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresDbConnect connects to the database according to the passed in parameters
func PostgresDbConnect(host string, port string, database string, user string, password string, level string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=disable", host, port, database, user, password)
	gormLogLevel := logger.Silent

	switch level {
	case "info":
		gormLogLevel = logger.Info
	case "warn":
		gormLogLevel = logger.Warn
	case "error":
		gormLogLevel = logger.Error
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(gormLogLevel)})
}

// MigrateModels runs the gorm automigrations with all the db models. This will migrate as needed and do nothing if nothing has changed.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&ReportRun{},
		&ReportEntry{},
		&PoolSnapshot{},
	)
}

// NewReportRun builds the run header for result under a fresh run id.
func NewReportRun(result *core.Result, source string) ReportRun {
	run := ReportRun{
		RunID:             uuid.NewString(),
		Source:            source,
		TaxYear:           result.Settings.TaxYear,
		ReportingCurrency: result.Settings.Currencies.Reporting,
		SecondaryCurrency: result.Settings.Currencies.Secondary,
		FallbackRate:      result.Settings.FallbackRate,
		Proceeds:          result.Totals.Proceeds,
		BasisDisposed:     result.Totals.BasisDisposed,
		CapitalGain:       result.Totals.CapitalGain,
		RewardIncome:      result.Totals.RewardIncome,
		WarningCount:      result.Totals.WarningCount,
	}
	if result.Prices != nil {
		if rate, ok := result.Prices.ObservedRate(); ok {
			run.ObservedRate = decimal.NullDecimal{Decimal: rate, Valid: true}
		}
	}
	return run
}

func toReportEntry(runID uint, seq int, row core.ReportRow) ReportEntry {
	return ReportEntry{
		ReportRunID:    runID,
		Seq:            seq,
		Time:           row.Time,
		RefID:          row.RefID,
		TxID:           row.TxID,
		EventType:      string(row.EventType),
		Asset:          row.Asset,
		UnitsIn:        row.UnitsIn,
		UnitsOut:       row.UnitsOut,
		Proceeds:       row.Proceeds,
		BasisDisposed:  row.BasisDisposed,
		Gain:           row.Gain,
		Income:         row.Income,
		BasisAdded:     row.BasisAdded,
		PoolUnitsAfter: row.PoolUnitsAfter,
		PoolBasisAfter: row.PoolBasisAfter,
		Notes:          row.Notes,
	}
}

// SaveReport stores the run, its audit rows and its ending pools in one transaction.
func SaveReport(db *gorm.DB, result *core.Result, source string) (ReportRun, error) {
	run := NewReportRun(result, source)

	err := db.Transaction(func(dbTransaction *gorm.DB) error {
		// return any error will rollback
		if err := dbTransaction.Create(&run).Error; err != nil {
			return err
		}

		if len(result.Rows) > 0 {
			entries := make([]ReportEntry, len(result.Rows))
			for i, row := range result.Rows {
				entries[i] = toReportEntry(run.ID, i, row)
			}
			if err := dbTransaction.Create(&entries).Error; err != nil {
				return err
			}
		}

		balances := result.EndingPools()
		if len(balances) > 0 {
			snapshots := make([]PoolSnapshot, len(balances))
			for i, b := range balances {
				snapshots[i] = PoolSnapshot{ReportRunID: run.ID, Asset: b.Asset, Units: b.Units, Basis: b.Basis}
			}
			if err := dbTransaction.Create(&snapshots).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		config.Log.Error("Error saving report run", err)
		return ReportRun{}, err
	}

	config.Log.Infof("Saved report run %s (%d rows)", run.RunID, len(result.Rows))
	return run, nil
}

// GetLatestReportRun returns the most recently saved run for a tax year.
func GetLatestReportRun(db *gorm.DB, taxYear int) (ReportRun, error) {
	var run ReportRun
	err := db.Where("tax_year = ?", taxYear).Order("id desc").First(&run).Error
	return run, err
}

func GetReportEntries(db *gorm.DB, runID uint) ([]ReportEntry, error) {
	var entries []ReportEntry
	err := db.Where("report_run_id = ?", runID).Order("seq asc").Find(&entries).Error
	return entries, err
}
