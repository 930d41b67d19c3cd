package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DefiantLabs/acb-tax-cli/util"
	"github.com/spf13/cobra"
)

type log struct {
	Level  string `toml:"level"`
	Path   string `toml:"path"`
	Pretty bool   `toml:"pretty"`
}

// These configs are used across multiple commands, and are not specific to a single command
type database struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	LogLevel string `mapstructure:"log-level" toml:"log-level"`
}

type currencies struct {
	Reporting string `toml:"reporting"`
	Secondary string `toml:"secondary"`
}

func SetupLogFlags(logConf *log, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logConf.Level, "log.level", "info", "log level")
	cmd.PersistentFlags().BoolVar(&logConf.Pretty, "log.pretty", false, "pretty logs")
	cmd.PersistentFlags().StringVar(&logConf.Path, "log.path", "", "also write logs to this file")
}

func SetupDatabaseFlags(databaseConf *database, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&databaseConf.Host, "database.host", "", "database host")
	cmd.PersistentFlags().StringVar(&databaseConf.Port, "database.port", "5432", "database port")
	cmd.PersistentFlags().StringVar(&databaseConf.Database, "database.database", "", "database name")
	cmd.PersistentFlags().StringVar(&databaseConf.User, "database.user", "", "database user")
	cmd.PersistentFlags().StringVar(&databaseConf.Password, "database.password", "", "database password")
	cmd.PersistentFlags().StringVar(&databaseConf.LogLevel, "database.log-level", "", "database loglevel")
}

func SetupCurrencyFlags(currencyConf *currencies, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&currencyConf.Reporting, "currencies.reporting", "CAD", "fiat currency the report is denominated in")
	cmd.PersistentFlags().StringVar(&currencyConf.Secondary, "currencies.secondary", "USD", "second fiat currency traded on the ledger")
}

func validateDatabaseConf(dbConf database) error {
	if util.StrNotSet(dbConf.Host) {
		return errors.New("database host must be set")
	}
	if util.StrNotSet(dbConf.Port) {
		return errors.New("database port must be set")
	}
	if util.StrNotSet(dbConf.Database) {
		return errors.New("database name (i.e. database) must be set")
	}
	if util.StrNotSet(dbConf.User) {
		return errors.New("database user must be set")
	}
	if util.StrNotSet(dbConf.Password) {
		return errors.New("database password must be set")
	}

	return nil
}

func validateCurrencies(currencyConf currencies) (currencies, error) {
	currencyConf.Reporting = strings.ToUpper(strings.TrimSpace(currencyConf.Reporting))
	currencyConf.Secondary = strings.ToUpper(strings.TrimSpace(currencyConf.Secondary))

	if util.StrNotSet(currencyConf.Reporting) {
		return currencyConf, errors.New("currencies reporting must be set")
	}
	if util.StrNotSet(currencyConf.Secondary) {
		return currencyConf, errors.New("currencies secondary must be set")
	}
	if currencyConf.Reporting == currencyConf.Secondary {
		return currencyConf, fmt.Errorf("currencies reporting and secondary must differ, both are %s", currencyConf.Reporting)
	}
	return currencyConf, nil
}
