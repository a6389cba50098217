package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audio-journal/internal/docxwriter"
	"github.com/nguyentantai21042004/audio-journal/pkg/ui"
)

var docxCmd = &cobra.Command{
	Use:   "docx <entry> [output]",
	Short: "Render an entry as a Word document",
	Long:  `Writes the entry's title, date, tags, summary and transcript to a .docx file. The output defaults to <entry>.docx in the current directory.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := appCatalog.Get(commandContext(cmd), args[0])
		if err != nil {
			return err
		}

		out := entry.BaseName + ".docx"
		if len(args) == 2 {
			out = args[1]
		}
		if !strings.HasSuffix(strings.ToLower(out), ".docx") {
			out += ".docx"
		}

		if err := docxwriter.Write(entry, out); err != nil {
			return fmt.Errorf("write docx: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSuccess("Wrote "+out))
		return nil
	},
}
