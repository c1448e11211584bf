// Package main provides the unique-lint binary, which validates every unique
// in a ruleset and prints a findings report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/uniques/internal/config"
	"github.com/cory-johannsen/uniques/internal/observability"
	"github.com/cory-johannsen/uniques/internal/report"
	"github.com/cory-johannsen/uniques/internal/ruleset"
	"github.com/cory-johannsen/uniques/internal/validation"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to configuration file; empty = defaults and UNIQUES_* environment only")
	baseDir := flag.String("base", "", "base ruleset folder (overrides ruleset.base_folder)")
	modDirs := flag.String("mods", "", "comma-separated mod folders layered over the base (overrides ruleset.mod_folders)")
	format := flag.String("format", "", "report format: yaml or text (overrides validation.report_format)")
	minSeverity := flag.String("min-severity", "", "hide findings below OK, Warning or Error (overrides validation.min_severity)")
	watch := flag.Bool("watch", false, "keep running and re-lint whenever a ruleset file changes")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		return 1
	}
	if *baseDir != "" {
		cfg.Ruleset.BaseFolder = *baseDir
	}
	if *modDirs != "" {
		cfg.Ruleset.ModFolders = splitList(*modDirs)
	}
	if *format != "" {
		cfg.Validation.ReportFormat = *format
	}
	if *minSeverity != "" {
		cfg.Validation.MinSeverity = *minSeverity
	}
	if cfg.Ruleset.BaseFolder == "" {
		fmt.Fprintln(os.Stderr, "usage: unique-lint -base <dir> [-mods <dir,dir>] [-format yaml|text] [-min-severity OK|Warning|Error] [-watch]")
		return 2
	}

	reportFormat, err := report.ParseFormat(cfg.Validation.ReportFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	floor, ok := validation.ParseSeverity(cfg.Validation.MinSeverity)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown severity %q (want OK, Warning or Error)\n", cfg.Validation.MinSeverity)
		return 1
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	l := linter{cfg: cfg.Validation, format: reportFormat, floor: floor, logger: logger}
	load := func() (*ruleset.Ruleset, error) {
		return ruleset.LoadWithMods(cfg.Ruleset.BaseFolder, cfg.Ruleset.ModFolders, logger)
	}

	if !*watch {
		rs, err := load()
		if err != nil {
			logger.Error("loading ruleset", zap.Error(err))
			return 1
		}
		if l.run(rs) {
			return 1
		}
		return 0
	}

	store, err := ruleset.NewStore(load, logger)
	if err != nil {
		logger.Error("loading ruleset", zap.Error(err))
		return 1
	}
	l.run(store.Current())

	folders := append([]string{cfg.Ruleset.BaseFolder}, cfg.Ruleset.ModFolders...)
	watcher, err := ruleset.NewWatcher(store, folders, cfg.Ruleset.WatchDebounce, logger)
	if err != nil {
		logger.Error("starting watcher", zap.Error(err))
		return 1
	}
	defer watcher.Close()
	watcher.OnReload = func(rs *ruleset.Ruleset, err error) {
		if err != nil {
			return
		}
		l.run(rs)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info("watching ruleset", zap.Strings("folders", folders))
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("watcher stopped", zap.Error(err))
		return 1
	}
	return 0
}

type linter struct {
	cfg    config.ValidationConfig
	format report.Format
	floor  validation.Severity
	logger *zap.Logger
}

// run validates rs, writes its report to stdout and reports whether any
// finding is an Error.
func (l linter) run(rs *ruleset.Ruleset) bool {
	start := time.Now()
	v := validation.New(rs, l.logger,
		validation.WithMisspellingThreshold(l.cfg.MisspellingThreshold),
		validation.WithTryFixUnknown(l.cfg.TryFixUnknown),
	)
	errs := v.CheckRuleset()
	if err := report.NewLintReport(rs, errs, l.floor).Write(os.Stdout, l.format); err != nil {
		l.logger.Error("writing report", zap.Error(err))
	}
	l.logger.Info("lint complete",
		zap.String("ruleset", rs.Name),
		zap.Int("findings", len(errs)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return errs.HasError()
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
