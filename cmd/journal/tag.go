package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audio-journal/pkg/ui"
)

var tagAdd bool

var tagCmd = &cobra.Command{
	Use:   "tag <entry> [tags...]",
	Short: "Replace the tags of an entry",
	Long: `Replaces the tags of an entry. Tags may be given as separate arguments
or comma separated. With no tags the entry's tags are cleared.`,
	Example: `  journal tag audio-journal-entry-1705312800000 health walk
  journal tag --add audio-journal-entry-1705312800000 "family, weekend"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTag,
}

func init() {
	tagCmd.Flags().BoolVar(&tagAdd, "add", false, "add to the existing tags instead of replacing them")
}

func runTag(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	entry, err := appCatalog.Get(ctx, args[0])
	if err != nil {
		return err
	}

	tags := splitTags(args[1:])
	if tagAdd {
		tags = append(append([]string{}, entry.Tags...), tags...)
	}
	if err := appPipeline.SetTags(entry.RawMediaPath, tags); err != nil {
		return err
	}

	updated, err := appCatalog.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if len(updated.Tags) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSuccess("Cleared tags of "+updated.BaseName))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSuccess(fmt.Sprintf("Tags of %s: %s", updated.BaseName, strings.Join(updated.Tags, ", "))))
	return nil
}

func splitTags(args []string) []string {
	var tags []string
	for _, arg := range args {
		for _, t := range strings.Split(arg, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}
