package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/DefiantLabs/acb-tax-cli/config"
	"github.com/spf13/cobra"
)

var forceInit bool

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Creates and inspects config files.",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Writes a config file holding the report defaults.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "config.toml"
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("%s already exists, use --force to overwrite it", path)
		}

		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := config.EncodeConfig(f, config.DefaultReportConfig()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote config: %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Prints a config file merged over the report defaults.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			path = viperConf.ConfigFileUsed()
		}

		fromFile := config.ReportConfig{}
		if path != "" {
			var err error
			fromFile, err = config.GetConfig(path)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
		}

		merged, err := config.MergeConfigs(config.DefaultReportConfig(), fromFile)
		if err != nil {
			return err
		}
		return config.EncodeConfig(cmd.OutOrStdout(), merged)
	},
}
