package config

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const (
	DefaultInput        = "kraken_2024_2025_ledgers.csv"
	DefaultTaxYear      = 2025
	DefaultFallbackRate = "1.3978"
	DefaultFormat       = "audit"
)

type ReportConfig struct {
	Database   database   `toml:"database"`
	Log        log        `toml:"log"`
	Base       reportBase `toml:"base"`
	Currencies currencies `toml:"currencies"`
}

type reportBase struct {
	Input        string `toml:"input"`
	Output       string `toml:"output"`
	TaxYear      int    `mapstructure:"tax-year" toml:"tax-year"`
	FallbackRate string `mapstructure:"fallback-fx" toml:"fallback-fx"`
	Format       string `toml:"format"`
	Persist      bool   `toml:"persist"`
	Pretty       bool   `toml:"pretty"`
}

func DefaultReportConfig() ReportConfig {
	conf := ReportConfig{}
	conf.Log.Level = "info"
	conf.Database.Port = "5432"
	conf.Base.Input = DefaultInput
	conf.Base.TaxYear = DefaultTaxYear
	conf.Base.FallbackRate = DefaultFallbackRate
	conf.Base.Format = DefaultFormat
	conf.Currencies.Reporting = "CAD"
	conf.Currencies.Secondary = "USD"
	return conf
}

func SetupReportSpecificFlags(conf *ReportConfig, cmd *cobra.Command) {
	setupReportBaseFlags(&conf.Base, cmd)
	cmd.PersistentFlags().StringVar(&conf.Base.Input, "base.input", DefaultInput, "ledger export to read")
	cmd.PersistentFlags().StringVar(&conf.Base.Output, "base.output", "", "report file to write (default is kraken_tax_report_<tax-year>.csv)")
	cmd.PersistentFlags().BoolVar(&conf.Base.Persist, "base.persist", false, "also save the report run to the database")
	cmd.PersistentFlags().BoolVar(&conf.Base.Pretty, "base.pretty", false, "render the summary as styled markdown")
}

func setupReportBaseFlags(base *reportBase, cmd *cobra.Command) {
	cmd.PersistentFlags().IntVar(&base.TaxYear, "base.tax-year", DefaultTaxYear, "tax year to report on")
	cmd.PersistentFlags().StringVar(&base.FallbackRate, "base.fallback-fx", DefaultFallbackRate, "secondary to reporting fiat rate used until one is observed in a trade")
	cmd.PersistentFlags().StringVar(&base.Format, "base.format", DefaultFormat, "report format")
}

func validateReportBase(base reportBase) (reportBase, error) {
	if base.TaxYear <= 0 {
		return base, errors.New("base tax-year must be set")
	}
	rate, err := decimal.NewFromString(base.FallbackRate)
	if err != nil {
		return base, fmt.Errorf("base fallback-fx %q is not a decimal", base.FallbackRate)
	}
	if !rate.IsPositive() {
		return base, errors.New("base fallback-fx must be positive")
	}
	if base.Format == "" {
		return base, errors.New("base format must be set")
	}
	return base, nil
}

func (conf *ReportConfig) Validate() error {
	base, err := validateReportBase(conf.Base)
	if err != nil {
		return err
	}
	if base.Input == "" {
		return errors.New("base input must be set")
	}
	if base.Output == "" {
		base.Output = fmt.Sprintf("kraken_tax_report_%d.csv", base.TaxYear)
	}
	conf.Base = base

	conf.Currencies, err = validateCurrencies(conf.Currencies)
	if err != nil {
		return err
	}

	if conf.Base.Persist {
		return validateDatabaseConf(conf.Database)
	}
	return nil
}

// FallbackRate is only meaningful after Validate succeeds.
func (conf *ReportConfig) FallbackRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(conf.Base.FallbackRate)
	return rate
}
