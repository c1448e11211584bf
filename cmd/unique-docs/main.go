// Package main provides the unique-docs binary, which writes the unique
// catalog as YAML documentation.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/uniques/internal/config"
	"github.com/cory-johannsen/uniques/internal/observability"
	"github.com/cory-johannsen/uniques/internal/report"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to configuration file; empty = defaults and UNIQUES_* environment only")
	output := flag.String("output", "", "file to write; empty = stdout")
	includeDeprecated := flag.Bool("deprecated", false, "include deprecated entries")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		return 1
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	doc := report.Catalog(*includeDeprecated)
	if err := writeCatalog(*output, doc); err != nil {
		logger.Error("writing catalog", zap.Error(err))
		return 1
	}
	logger.Info("catalog written",
		zap.Int("targets", len(doc.Targets)),
		zap.Int("types", len(doc.Types)),
		zap.String("output", *output),
	)
	return 0
}

// writeCatalog writes doc to path, or to stdout when path is empty. The file
// is closed before returning and a close failure is reported.
func writeCatalog(path string, doc report.CatalogDoc) (err error) {
	var w io.Writer = os.Stdout
	if path != "" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("creating %s: %w", path, cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing %s: %w", path, cerr)
			}
		}()
		w = f
	}
	return report.WriteCatalog(w, doc)
}
