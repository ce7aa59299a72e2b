package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/postcraft/internal/archive"
	"github.com/csheth/postcraft/internal/config"
	"github.com/csheth/postcraft/internal/controller"
	"github.com/csheth/postcraft/internal/generator"
	"github.com/csheth/postcraft/internal/logging"
	"github.com/csheth/postcraft/internal/tui"
)

func main() {
	if err := newRootCmd(run).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "postcraft:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	client, err := generator.New(cfg.Generator())
	if err != nil {
		return err
	}

	var store controller.Archive
	archivePath := "disabled"
	if cfg.ArchivePath != "" {
		absPath, err := filepath.Abs(cfg.ArchivePath)
		if err != nil {
			return fmt.Errorf("failed to resolve archive path: %w", err)
		}
		s := archive.NewStore(absPath)
		archivePath = s.Path()
		store = s
	}

	model, err := tui.New(tui.Config{
		Client:     client,
		Clipboard:  systemClipboard{},
		Archive:    store,
		Logger:     &logger,
		Selection:  cfg.Selection(),
		Credential: cfg.APIKey,
	})
	if err != nil {
		return err
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if !cfg.NoAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	logger.Info().
		Str("provider", client.Name()).
		Str("platform", cfg.Platform).
		Str("tone", cfg.Tone).
		Str("style", cfg.Style).
		Str("archive", archivePath).
		Bool("credential", cfg.APIKey != "").
		Msg("postcraft starting")

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		logger.Error().Err(err).Msg("program error")
		return fmt.Errorf("program error: %w", err)
	}
	logger.Info().Msg("postcraft stopped")
	return nil
}

// systemClipboard writes through the OS clipboard utility.
type systemClipboard struct{}

func (systemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}
