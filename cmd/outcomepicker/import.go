package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"outcomepicker/internal/catalog"
	"outcomepicker/internal/config"
	"outcomepicker/internal/eventbus"
)

var importDB string

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Load outcomes from a YAML or JSON file into the SQLite catalog",
	Long: `Import reads a list of outcomes from FILE (.yaml, .yml or .json) and
upserts them into the SQLite catalog. Outcomes without an id get a generated one.

The file holds either a bare list or a mapping with an "outcomes" key:

  outcomes:
    - id: math-1
      label: MATH.1
      title: Add fractions
      description: Add fractions with like denominators`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importDB, "db", "", "database to import into (default: the configured sqlite catalog)")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewConfigServiceWithBus(configPath, eventbus.NullBus{}).Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	closeLog := setupLogging(cfg.LogFile)
	defer closeLog()

	dbPath := importDB
	if dbPath == "" && cmd.Flags().Changed("path") {
		dbPath = sourcePath
	}
	if dbPath == "" {
		if cfg.Source.Kind == config.SourceSQLite && cfg.Source.Path != "" {
			dbPath = cfg.Source.Path
		} else {
			dbPath = filepath.Join(config.DataDir(), "catalog.db")
		}
	}

	outcomes, err := catalog.LoadFile(args[0])
	if err != nil {
		return err
	}

	store, err := catalog.OpenSQLite(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Migrate(); err != nil {
		return err
	}

	ctx := context.Background()
	if err := store.Upsert(ctx, outcomes); err != nil {
		return err
	}
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d outcomes into %s (%d in catalog)\n",
		color.GreenString("✓"), len(outcomes), dbPath, total)
	return nil
}
