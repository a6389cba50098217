package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var recordExt string

var recordCmd = &cobra.Command{
	Use:   "record [file|-]",
	Short: "Ingest new raw audio and run the full pipeline",
	Long: `Stores raw audio bytes as a new journal entry, then transcribes,
summarizes and exports it. Reads from stdin when no file or "-" is given.`,
	Example: `  journal record memo.webm
  arecord -f cd -t wav | journal record --ext .wav -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().StringVar(&recordExt, "ext", ".webm", "media extension of the audio bytes")
}

func runRecord(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	ext := recordExt

	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
		if !cmd.Flags().Changed("ext") && filepath.Ext(args[0]) != "" {
			ext = filepath.Ext(args[0])
		}
	}
	if err != nil {
		return fmt.Errorf("read audio: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("no audio data")
	}

	res := <-appPipeline.ProcessAsync(commandContext(cmd), data, ext)
	return printResult(cmd.OutOrStdout(), res)
}
