package main

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ardanlabs/glgen/config"
	"github.com/ardanlabs/glgen/generator"
	"github.com/ardanlabs/glgen/logutil"
	"github.com/ardanlabs/glgen/parser"
)

// setup resolves the config for cmd and installs the logger.
func setup(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromFlags(cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}

	slog.SetDefault(logutil.NewLogger(cmd.ErrOrStderr(), logutil.Level(cfg.Verbose)))

	return cfg, nil
}

// generate parses the registry and writes both output files. Nothing is
// written unless both files were generated.
func generate(cfg config.Config) error {
	reg, err := parser.ParseFile(cfg.Registry)
	if err != nil {
		return fmt.Errorf("parsing registry: %w", err)
	}

	var skipped int
	for _, tag := range slices.Sorted(maps.Keys(reg.Skipped)) {
		slog.Debug("skipped elements", "tag", tag, "count", reg.Skipped[tag])
		skipped += reg.Skipped[tag]
	}

	slog.Info("parsed registry",
		"path", cfg.Registry,
		"commands", len(reg.Commands),
		"constants", len(reg.Constants),
		"skipped", skipped,
	)

	files, err := generator.New(cfg.Package, reg).Generate()
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	return writeFiles(cfg.Output, files)
}

// writeFiles stages every file next to its destination and renames them into
// place once all of them were written.
func writeFiles(dir string, files map[string]string) error {
	names := slices.Sorted(maps.Keys(files))
	staged := make([]string, 0, len(names))

	cleanup := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}

	for _, name := range names {
		f, err := os.CreateTemp(dir, "."+name+".*")
		if err != nil {
			cleanup()
			return fmt.Errorf("writing %s: %w", name, err)
		}
		staged = append(staged, f.Name())

		_, werr := f.WriteString(files[name])
		cerr := f.Close()
		if err := errors.Join(werr, cerr); err != nil {
			cleanup()
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}

	for i, name := range names {
		path := filepath.Join(dir, name)
		if err := os.Rename(staged[i], path); err != nil {
			cleanup()
			return fmt.Errorf("writing %s: %w", name, err)
		}
		if err := os.Chmod(path, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		slog.Info("generated", "path", path)
	}

	return nil
}
