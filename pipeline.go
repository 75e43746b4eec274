package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/NickyBoy89/viewstategen/config"
	"github.com/NickyBoy89/viewstategen/discover"
	"github.com/NickyBoy89/viewstategen/parsing"
	"github.com/NickyBoy89/viewstategen/resolve"
	log "github.com/sirupsen/logrus"
)

// Generator runs the whole pipeline over a set of sources: discovery,
// parsing, root selection, resolution and rendering. Parsed files are kept
// between runs.
type Generator struct {
	cfg      *config.Config
	cache    *parsing.Cache
	resolver *resolve.Resolver
}

// NewGenerator creates a Generator for the given settings
func NewGenerator(cfg *config.Config) (*Generator, error) {
	cache, err := parsing.NewCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Generator{
		cfg:   cfg,
		cache: cache,
		resolver: resolve.New(resolve.Options{
			StrategyAnnotation: cfg.StrategyAnnotation,
			DefaultStrategy:    cfg.DefaultStrategy,
			ObservableType:     cfg.ObservableType,
		}),
	}, nil
}

// Report is the outcome of resolving every root found in the sources
type Report struct {
	Results []resolve.Result
	// Failures counts roots that could not be selected or resolved
	Failures int
}

// Resolve finds and resolves every root in the given files and directories
func (g *Generator) Resolve(ctx context.Context, paths []string) (*Report, error) {
	files, err := discover.Expand(paths)
	if err != nil {
		return nil, err
	}
	log.WithField("files", len(files)).Debug("Discovered sources")

	idx, _, err := parsing.LoadIndex(ctx, g.cache, files, g.cfg.WorkerCount())
	if err != nil {
		return nil, err
	}

	selector := resolve.RootSelector{
		Views:               g.cfg.Views,
		PresenterAnnotation: g.cfg.PresenterAnnotation,
		PresenterBase:       g.cfg.PresenterBase,
	}
	roots, selectErrs := selector.Select(idx)
	for _, err := range selectErrs {
		log.WithError(err).Error("Failed to select view")
	}

	results, err := g.resolver.ResolveAll(ctx, roots, g.cfg.WorkerCount())
	if err != nil {
		return nil, err
	}

	report := &Report{Results: results, Failures: len(selectErrs)}
	for _, result := range results {
		if result.Err != nil {
			report.Failures++
		}
	}
	return report, nil
}

// Generate resolves the sources and writes a view state for every root that
// resolved. With dryRun set, the sources are written to out instead of the
// output directory.
func (g *Generator) Generate(ctx context.Context, paths []string, dryRun bool, out io.Writer) (*Report, error) {
	report, err := g.Resolve(ctx, paths)
	if err != nil {
		return nil, err
	}

	for _, result := range report.Results {
		if result.Err != nil {
			continue
		}

		file, err := GenerateViewState(result.View, g.cfg.ViewStateSuffix)
		if err != nil {
			return nil, err
		}

		if dryRun {
			fmt.Fprintf(out, "// %s\n%s\n", file.Path, file.Source)
			continue
		}

		path := filepath.Join(g.cfg.OutputDir, file.Path)
		if err := writeFile(path, file.Source); err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{
			"interface": result.View.QualifiedName,
			"file":      path,
			"commands":  len(result.View.Methods),
		}).Info("Generated view state")
	}

	return report, nil
}

func writeFile(path string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
