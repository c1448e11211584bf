// Package main provides the unique-autoupdate binary, which rewrites
// deprecated uniques in a ruleset folder to their current form.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/uniques/internal/autoupdate"
	"github.com/cory-johannsen/uniques/internal/config"
	"github.com/cory-johannsen/uniques/internal/observability"
	"github.com/cory-johannsen/uniques/internal/ruleset"
)

func main() {
	os.Exit(run())
}

func run() int {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = defaults and UNIQUES_* environment only")
	folder := flag.String("folder", "", "ruleset folder to rewrite (defaults to ruleset.base_folder)")
	baseDir := flag.String("base", "", "base ruleset used to resolve references when -folder is a mod")
	dryRun := flag.Bool("dry-run", false, "list files that would change without writing them")
	maxSteps := flag.Int("max-steps", 0, "bound on deprecation chain length (overrides autoupdate.max_chain_steps)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		return 1
	}
	if *folder == "" {
		*folder = cfg.Ruleset.BaseFolder
	}
	if *folder == "" {
		fmt.Fprintln(os.Stderr, "usage: unique-autoupdate -folder <dir> [-base <dir>] [-dry-run] [-max-steps <n>]")
		return 2
	}
	opts := autoupdate.Options{
		MaxChainSteps: cfg.Autoupdate.MaxChainSteps,
		DryRun:        cfg.Autoupdate.DryRun || *dryRun,
	}
	if *maxSteps > 0 {
		opts.MaxChainSteps = *maxSteps
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	target, err := ruleset.Load(*folder, logger)
	if err != nil {
		logger.Error("loading ruleset", zap.Error(err))
		return 1
	}
	resolveIn := target
	if *baseDir != "" {
		base, err := ruleset.Load(*baseDir, logger)
		if err != nil {
			logger.Error("loading base ruleset", zap.Error(err))
			return 1
		}
		resolveIn = ruleset.Merge(base, target)
	}

	up := autoupdate.New(logger, opts)
	replacements, unresolved := up.DeprecatedReplaceableUniques(resolveIn)
	for _, e := range unresolved {
		logger.Warn("deprecated unique left unchanged", zap.String("detail", e.Message))
	}

	changed, err := up.Autoupdate(target, replacements)
	for _, name := range changed {
		fmt.Println(name)
	}
	if err != nil {
		logger.Error("autoupdate failed", zap.Error(err), zap.Strings("changed", changed))
		return 1
	}
	logger.Info("autoupdate complete",
		zap.String("folder", *folder),
		zap.Int("replacements", len(replacements)),
		zap.Int("files", len(changed)),
		zap.Bool("dry_run", opts.DryRun),
		zap.Duration("elapsed", time.Since(start)),
	)
	return 0
}
