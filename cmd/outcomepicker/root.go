package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"outcomepicker/internal/catalog"
	"outcomepicker/internal/config"
	"outcomepicker/internal/eventbus"
	"outcomepicker/internal/ui"
)

// errCancelled is returned when the user closes the picker without confirming
var errCancelled = errors.New("selection cancelled")

var (
	configPath string
	sourceKind string
	sourcePath string
	sourceURL  string
	pageSize   int
	selected   []string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "outcomepicker",
	Short: "Search and select learning outcomes",
	Long: `outcomepicker opens a searchable, paginated tray of learning outcomes.
Toggle outcomes with space, page with ←/→ and confirm with enter.

Confirmed outcome ids are printed to stdout, one per line (or as a JSON
array with --json). Cancelling exits with status 1 and prints nothing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPicker,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errCancelled) {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&sourceKind, "source", "", "outcome source: memory, sqlite or http")
	rootCmd.PersistentFlags().StringVar(&sourcePath, "path", "", "catalog file (memory) or database (sqlite)")
	rootCmd.PersistentFlags().StringVar(&sourceURL, "url", "", "base URL of the outcome service (http)")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 0, "outcomes per page")

	rootCmd.Flags().StringSliceVar(&selected, "selected", nil, "ids to preselect (comma separated)")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the selection as a JSON array")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(cmd *cobra.Command, bus eventbus.EventBus) (*config.Config, error) {
	cfg, err := config.NewConfigServiceWithBus(configPath, bus).Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source.Kind = sourceKind
	}
	if flags.Changed("path") {
		cfg.Source.Path = sourcePath
	}
	if flags.Changed("url") {
		cfg.Source.URL = sourceURL
	}
	if flags.Changed("page-size") {
		cfg.Picker.PageSize = pageSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setupLogging sends the standard logger to path; the returned func closes it
func setupLogging(path string) func() {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(logFile)
	return func() { logFile.Close() }
}

func runPicker(cmd *cobra.Command, args []string) error {
	bus := eventbus.New()
	defer bus.Close()

	cfg, err := loadConfig(cmd, bus)
	if err != nil {
		return err
	}
	closeLog := setupLogging(cfg.LogFile)
	defer closeLog()

	bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SearchFailedEvent); ok {
			log.Printf("Search failed for '%s' page %d: %v", ev.Query, ev.Page, ev.Err)
		}
	})
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ErrorEvent); ok {
			log.Printf("Error: %s: %v", ev.Message, ev.Err)
		}
	})

	src, err := catalog.Open(cfg.Source)
	if err != nil {
		return fmt.Errorf("open %s source: %w", cfg.Source.Kind, err)
	}
	defer src.Close()

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	preselected, err := knownIDs(ctx, src, selected, cfg.Source.Timeout)
	if err != nil {
		return err
	}

	model := ui.NewModel(ui.Options{
		Source:      src,
		Bus:         bus,
		Config:      cfg,
		Preselected: preselected,
		ReadySignal: os.Getenv("OUTCOMEPICKER_E2E_TEST") == "1",
	})

	// The tray is drawn on stderr so stdout carries only the selection
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithOutput(os.Stderr),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return errCancelled
		}
		return fmt.Errorf("run picker: %w", err)
	}

	result := model.Result()
	if !result.Confirmed {
		return errCancelled
	}
	return printIDs(cmd.OutOrStdout(), result.IDs, jsonOutput)
}

// knownIDs drops preselected ids the source does not know, warning about each
func knownIDs(ctx context.Context, src catalog.Source, ids []string, timeout time.Duration) ([]string, error) {
	var cleaned []string
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	if len(cleaned) == 0 {
		return nil, nil
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	missing, err := catalog.Missing(ctx, src, cleaned)
	if err != nil {
		return nil, fmt.Errorf("check preselected outcomes: %w", err)
	}
	if len(missing) == 0 {
		return cleaned, nil
	}

	unknown := make(map[string]bool, len(missing))
	for _, id := range missing {
		unknown[id] = true
		log.Printf("Preselected outcome %s not found in catalog", id)
	}
	fmt.Fprintf(os.Stderr, "%s ignoring unknown outcomes: %s\n", color.YellowString("Warning:"), strings.Join(missing, ", "))

	known := cleaned[:0]
	for _, id := range cleaned {
		if !unknown[id] {
			known = append(known, id)
		}
	}
	return known, nil
}

// printIDs writes the confirmed selection
func printIDs(w io.Writer, ids []string, asJSON bool) error {
	if asJSON {
		if ids == nil {
			ids = []string{}
		}
		data, err := json.Marshal(ids)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	for _, id := range ids {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}
	return nil
}
