package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audio-journal/internal/catalog"
)

var (
	listSearch        string
	listTags          []string
	listFrom          string
	listTo            string
	listHasSummary    bool
	listHasTranscript bool
	listJSON          bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List and filter journal entries",
	Aliases: []string{"ls"},
	Example: `  journal list
  journal list --search dentist --tag health
  journal list --from 2024-01-01 --to 2024-01-31 --has-summary`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "case-insensitive text in summary, transcript or date")
	listCmd.Flags().StringSliceVarP(&listTags, "tag", "t", nil, "require tag (repeatable)")
	listCmd.Flags().StringVar(&listFrom, "from", "", "earliest entry date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "latest entry date (YYYY-MM-DD)")
	listCmd.Flags().BoolVar(&listHasSummary, "has-summary", false, "only entries with a summary")
	listCmd.Flags().BoolVar(&listHasTranscript, "has-transcript", false, "only entries with a transcript")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print entries as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	query, err := buildQuery()
	if err != nil {
		return err
	}

	entries, err := appCatalog.ListEntries(commandContext(cmd))
	if err != nil {
		return err
	}
	entries = catalog.Filter(entries, query)

	if listJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	printEntries(cmd.OutOrStdout(), entries)
	return nil
}

func buildQuery() (catalog.Query, error) {
	q := catalog.Query{
		Text:          listSearch,
		Tags:          listTags,
		HasSummary:    listHasSummary,
		HasTranscript: listHasTranscript,
	}
	var err error
	if listFrom != "" {
		if q.From, err = catalog.ParseDate(listFrom); err != nil {
			return q, fmt.Errorf("--from: %w", err)
		}
	}
	if listTo != "" {
		if q.To, err = catalog.ParseDate(listTo); err != nil {
			return q, fmt.Errorf("--to: %w", err)
		}
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return q, fmt.Errorf("--from %s is after --to %s", listFrom, listTo)
	}
	return q, nil
}
