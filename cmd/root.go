package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/DefiantLabs/acb-tax-cli/config"
	dbTypes "github.com/DefiantLabs/acb-tax-cli/db"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var (
	cfgFile   string // config file location to load
	viperConf = viper.New()
	rootCmd   = &cobra.Command{
		Use:   "acb-tax-cli",
		Short: "A CLI tool for average cost basis tax reports from exchange ledgers",
		Long: `ACB Tax CLI reads an exchange ledger export, pools every asset at its average cost
and reports capital gains, disposed cost basis and reward income for a tax year.`,
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// initConfig on initialize of cobra guarantees config struct will be set before all subcommands are executed
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.acb-tax-cli/config.toml)")
}

func initConfig() {
	// a .env next to the ledger is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to read .env file. Err: %v", err)
	}

	viperConf.SetEnvPrefix("ACB")
	viperConf.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viperConf.AutomaticEnv()

	if cfgFile != "" {
		viperConf.SetConfigFile(cfgFile)
		viperConf.SetConfigType("toml")
	} else {
		// Check in current working dir
		pwd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Could not determine current working dir. Err: %v", err)
		}
		configDir := pwd
		if _, err := os.Stat(fmt.Sprintf("%v/config.toml", pwd)); err != nil {
			// file not in current working dir. Check home dir instead
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatalf("Failed to find user home dir. Err: %v", err)
			}
			configDir = fmt.Sprintf("%s/.acb-tax-cli", home)
		}
		viperConf.AddConfigPath(configDir)
		viperConf.SetConfigType("toml")
		viperConf.SetConfigName("config")
	}

	err := viperConf.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalf("Failed to read config file. Err: %v", err)
		}
	}
}

// bindFlags fills every flag not set on the command line from the config file or environment.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		if v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				log.Fatalf("Failed to set flag %s from config. Err: %v", f.Name, err)
			}
		}
	})
}

// connectDatabase opens the database and runs migrations.
func connectDatabase(host, port, database, user, password, level string) (*gorm.DB, error) {
	db, err := dbTypes.PostgresDbConnect(host, port, database, user, password, strings.ToLower(level))
	if err != nil {
		config.Log.Error("Could not establish connection to the database", err)
		return nil, err
	}

	sqldb, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxIdleConns(10)
	sqldb.SetMaxOpenConns(100)
	sqldb.SetConnMaxLifetime(time.Hour)

	// run database migrations at every runtime
	err = dbTypes.MigrateModels(db)
	if err != nil {
		config.Log.Error("Error running DB migrations", err)
		return nil, err
	}
	return db, nil
}
