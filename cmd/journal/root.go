package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audio-journal/internal/catalog"
	"github.com/nguyentantai21042004/audio-journal/internal/config"
	"github.com/nguyentantai21042004/audio-journal/internal/logger"
	"github.com/nguyentantai21042004/audio-journal/internal/pipeline"
	"github.com/nguyentantai21042004/audio-journal/internal/store"
	"github.com/nguyentantai21042004/audio-journal/internal/summarizer"
	"github.com/nguyentantai21042004/audio-journal/pkg/executor"
	"github.com/nguyentantai21042004/audio-journal/pkg/ui"
)

var (
	configPath string

	appConfig   *config.Config
	appLogger   logger.Logger
	appStore    *store.Store
	appPipeline pipeline.Pipeline
	appCatalog  *catalog.Reader
)

var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "Audio journal: record, transcribe, summarize and browse entries",
	Long: ui.StyleTitle.Render("journal") + " - audio journal pipeline\n\n" +
		"Turns recordings into transcripts and summaries using local tools,\n" +
		"then lets you search, tag and export the resulting catalog.",
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: syncLogger,
}

// Execute runs the root command and exits non-zero on failure. SIGINT and
// SIGTERM cancel the command context, which stops any running tool.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(retryCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(docxCmd)
	rootCmd.AddCommand(watchCmd)
}

func initializeApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	appConfig = cfg
	appLogger = logger.New(cfg.Logging.Level, cfg.Logging.Format)

	appStore = store.New(cfg.Catalog.Path, store.NewFS(), cfg.Catalog.Extensions)
	appPipeline = pipeline.New(appStore, buildSteps(cfg, appLogger), appLogger)
	appCatalog = catalog.NewReader(appStore, appLogger)
	return nil
}

func buildSteps(cfg *config.Config, log logger.Logger) pipeline.Steps {
	steps := pipeline.ToolSteps(cfg, executor.New())
	if cfg.Gemini.Enabled {
		steps.Summarizer = summarizer.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	}
	return steps
}

func syncLogger(cmd *cobra.Command, args []string) error {
	if appLogger == nil {
		return nil
	}
	return appLogger.Sync()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
