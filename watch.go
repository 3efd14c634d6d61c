package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ardanlabs/glgen/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the bindings whenever the registry changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}

		w, err := watcher.New(cfg.Debounce, slog.Default())
		if err != nil {
			return err
		}
		defer w.Close()

		if err := w.Add(cfg.Registry); err != nil {
			return err
		}

		// A broken registry is reported and waited out rather than ending
		// the session.
		if err := generate(cfg); err != nil {
			slog.Error("generation failed", "error", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		slog.Info("watching registry", "path", cfg.Registry)

		return w.Run(ctx, func(path string) {
			if err := generate(cfg); err != nil {
				slog.Error("generation failed", "path", path, "error", err)
			}
		})
	},
}
