package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audio-journal/internal/pipeline"
)

var importName string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import an existing audio file into the catalog",
	Long: `Copies an audio file into the catalog, dates it from its file name
(2024-01-15, 20240115, 2024_01_15) or modification time, then runs the
remaining pipeline stages.`,
	Example: `  journal import ~/Recordings/voice-2024-01-15.m4a --name "Morning walk"`,
	Args:    cobra.ExactArgs(1),
	RunE:    runImport,
}

func init() {
	importCmd.Flags().StringVar(&importName, "name", "", "display name stored as the entry title")
}

func runImport(cmd *cobra.Command, args []string) error {
	src := args[0]
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}

	res := appPipeline.Import(commandContext(cmd), pipeline.ImportRequest{
		Name:        filepath.Base(src),
		Data:        data,
		ModTime:     info.ModTime(),
		DisplayName: importName,
	})
	return printResult(cmd.OutOrStdout(), res)
}
