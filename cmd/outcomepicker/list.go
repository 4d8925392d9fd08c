package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"outcomepicker/internal/catalog"
	"outcomepicker/internal/domain"
	"outcomepicker/internal/eventbus"
	"outcomepicker/internal/pagination"
)

var listPage int

var listCmd = &cobra.Command{
	Use:   "list [QUERY]",
	Short: "Search the catalog without opening the picker",
	Long: `List prints one page of outcomes matching QUERY, using the same source
and ranking as the interactive picker. Pages are numbered from 1.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "page to print")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, eventbus.NullBus{})
	if err != nil {
		return err
	}
	closeLog := setupLogging(cfg.LogFile)
	defer closeLog()

	src, err := catalog.Open(cfg.Source)
	if err != nil {
		return fmt.Errorf("open %s source: %w", cfg.Source.Kind, err)
	}
	defer src.Close()

	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	ctx := context.Background()
	if cfg.Source.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Source.Timeout)
		defer cancel()
	}

	page := max(listPage-1, 0)
	result, err := src.Search(ctx, catalog.Query{Text: query, Page: page, PageSize: cfg.Picker.PageSize})
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(result.Entries) == 0 {
		if query != "" {
			fmt.Fprintf(out, "No outcomes match %q\n", query)
		} else {
			fmt.Fprintln(out, "No outcomes")
		}
		return nil
	}

	label := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)
	for _, o := range result.Entries {
		id := domain.SanitizeText(o.ID)
		o = o.Sanitized()
		fmt.Fprintf(out, "%s  %s  %s\n", label.Sprint(o.Label), o.Title, dim.Sprint(id))
	}

	pages := pagination.PageCount(result.Total, cfg.Picker.PageSize)
	fmt.Fprintln(out, dim.Sprintf("page %d of %d, %d outcomes", page+1, pages, result.Total))
	return nil
}
