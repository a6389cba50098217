package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audio-journal/internal/watcher"
	"github.com/nguyentantai21042004/audio-journal/pkg/ui"
)

var watchScan bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Import audio files dropped into the inbox directory",
	Long: `Watches the configured inbox and imports every new audio file into the
catalog. Imported files are moved to the inbox's imported/ directory.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchScan, "scan", true, "also import files already in the inbox")
}

func runWatch(cmd *cobra.Command, args []string) error {
	inbox := appConfig.Watcher.Inbox
	if err := os.MkdirAll(inbox, 0755); err != nil {
		return fmt.Errorf("create inbox %s: %w", inbox, err)
	}

	w, err := watcher.New(watcher.Options{
		Inbox:         inbox,
		Extensions:    appStore.Extensions(),
		SettleDelay:   appConfig.Watcher.SettleDelay,
		MaxConcurrent: appConfig.Performance.MaxConcurrent,
		ScanExisting:  watchScan,
	}, watcher.ImportHandler(appPipeline, appLogger), appLogger)
	if err != nil {
		return err
	}
	defer w.Stop()

	ctx := commandContext(cmd)
	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatInfo(fmt.Sprintf("Watching %s (Ctrl+C to stop)", inbox)))

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSuccess("Watcher stopped"))
	return nil
}
