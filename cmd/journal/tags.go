package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audio-journal/internal/catalog"
	"github.com/nguyentantai21042004/audio-journal/pkg/ui"
)

var tagsJSON bool

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Show the tag cloud",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

func init() {
	tagsCmd.Flags().BoolVar(&tagsJSON, "json", false, "print tag counts as JSON")
}

func runTags(cmd *cobra.Command, args []string) error {
	entries, err := appCatalog.ListEntries(commandContext(cmd))
	if err != nil {
		return err
	}
	counts := catalog.SortedTagCounts(catalog.TagFrequencies(entries))

	out := cmd.OutOrStdout()
	if tagsJSON {
		return json.NewEncoder(out).Encode(counts)
	}
	if len(counts) == 0 {
		fmt.Fprintln(out, ui.FormatWarning("No tags yet"))
		fmt.Fprintln(out, ui.FormatInfo("Add some with: journal tag <entry> <tags...>"))
		return nil
	}

	weights := make([]ui.TagWeight, len(counts))
	for i, c := range counts {
		weights[i] = ui.TagWeight{Tag: c.Tag, Count: c.Count}
	}
	fmt.Fprintln(out, ui.RenderTagCloud(weights))
	return nil
}
