package config

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type ServeConfig struct {
	Database   database   `toml:"database"`
	Log        log        `toml:"log"`
	Base       reportBase `toml:"base"`
	Currencies currencies `toml:"currencies"`
	Serve      serve      `toml:"serve"`
}

type serve struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	CacheMinutes   int    `mapstructure:"cache-minutes" toml:"cache-minutes"`
	LedgerFile     string `mapstructure:"ledger-file" toml:"ledger-file"`
	RefreshMinutes int    `mapstructure:"refresh-minutes" toml:"refresh-minutes"`
}

func SetupServeSpecificFlags(conf *ServeConfig, cmd *cobra.Command) {
	setupReportBaseFlags(&conf.Base, cmd)
	cmd.PersistentFlags().BoolVar(&conf.Base.Persist, "base.persist", false, "save scheduled refreshes to the database")
	cmd.PersistentFlags().StringVar(&conf.Serve.Host, "serve.host", "0.0.0.0", "address to listen on")
	cmd.PersistentFlags().IntVar(&conf.Serve.Port, "serve.port", 8080, "port to listen on")
	cmd.PersistentFlags().IntVar(&conf.Serve.CacheMinutes, "serve.cache-minutes", 10, "how long computed reports are cached")
	cmd.PersistentFlags().StringVar(&conf.Serve.LedgerFile, "serve.ledger-file", "", "ledger export to recompute on a schedule")
	cmd.PersistentFlags().IntVar(&conf.Serve.RefreshMinutes, "serve.refresh-minutes", 60, "minutes between scheduled recomputations")
}

func (conf *ServeConfig) Validate() error {
	base, err := validateReportBase(conf.Base)
	if err != nil {
		return err
	}
	conf.Base = base

	conf.Currencies, err = validateCurrencies(conf.Currencies)
	if err != nil {
		return err
	}

	if conf.Serve.Port <= 0 || conf.Serve.Port > 65535 {
		return errors.New("serve port must be between 1 and 65535")
	}
	if conf.Serve.CacheMinutes < 0 {
		return errors.New("serve cache-minutes must not be negative")
	}
	if conf.Serve.LedgerFile != "" && conf.Serve.RefreshMinutes <= 0 {
		return errors.New("serve refresh-minutes must be positive when a ledger-file is set")
	}
	if conf.Base.Persist {
		if conf.Serve.LedgerFile == "" {
			return errors.New("base persist requires serve ledger-file")
		}
		return validateDatabaseConf(conf.Database)
	}
	return nil
}

func (conf *ServeConfig) FallbackRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(conf.Base.FallbackRate)
	return rate
}
