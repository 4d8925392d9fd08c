package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"outcomepicker/internal/config"
	"outcomepicker/internal/eventbus"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage the outcomepicker configuration file.

Configuration is stored at ` + config.DefaultPath() + `
Any value can be overridden with an OUTCOMEPICKER_ environment variable,
e.g. OUTCOMEPICKER_PICKER_PAGE_SIZE=20.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := config.NewConfigServiceWithBus(configPath, eventbus.NullBus{})
		if _, err := os.Stat(svc.Path()); err == nil && !forceInit {
			return fmt.Errorf("%s already exists (use --force to overwrite)", svc.Path())
		}
		if err := svc.Save(config.DefaultConfig()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", color.GreenString("✓"), svc.Path())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.NewConfigService(configPath).Path())
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}
