// Package main is a demo harness for the graphdoc engine: it builds a
// small diagram inside grouped edits, prints each committed transaction
// as JSON, then walks the history back and forward.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/graphdoc/internal/codec"
	"github.com/dshills/graphdoc/internal/config"
	"github.com/dshills/graphdoc/internal/engine"
	"github.com/dshills/graphdoc/internal/engine/model"
	"github.com/dshills/graphdoc/internal/engine/txn"
	"github.com/dshills/graphdoc/internal/layout"
	"github.com/dshills/graphdoc/internal/overview"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfgPath, verbose := parseFlags()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	eng := engine.New(cfg.EngineOptions()...)
	registry := codec.NewRegistryWithDefaults()

	if _, err := layout.Attach(eng, layout.WithSpacing(cfg.Layout.Spacing)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: attach layout: %v\n", err)
		return 1
	}
	outline, err := overview.Attach(eng, cfg.Overview.Width, cfg.Overview.Height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: attach overview: %v\n", err)
		return 1
	}

	// Print every committed transaction in its wire form.
	if _, err := eng.Subscribe(txn.TopicCommit, func(_, data any) error {
		tx, ok := data.(*txn.Transaction)
		if !ok {
			return nil
		}
		encoded, encErr := registry.EncodeTransaction(tx)
		if encErr != nil {
			return encErr
		}
		fmt.Printf("commit: %s\n", encoded)
		return nil
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: subscribe: %v\n", err)
		return 1
	}

	if err := buildSample(eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: build sample: %v\n", err)
		return 1
	}
	report(eng, outline, verbose)

	// Unwind the whole history, then replay it.
	for eng.CanUndo() {
		if err := eng.Undo(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: undo: %v\n", err)
			return 1
		}
	}
	fmt.Printf("after undo: %d cells under root\n", eng.Root().ChildCount())

	for eng.CanRedo() {
		if err := eng.Redo(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: redo: %v\n", err)
			return 1
		}
	}
	report(eng, outline, verbose)
	return 0
}

// buildSample creates a stack container with two vertices and an edge
// between them, then retitles one vertex in a second transaction.
func buildSample(eng *engine.Engine) error {
	var a, b *model.Cell

	err := eng.Update(func() error {
		container := model.NewVertex("", "Pipeline", model.NewGeometry(20, 20, 160, 120))
		container.Style, _ = model.ParseStyle("layout=stack")
		if _, err := eng.AddCell(container, nil, -1); err != nil {
			return err
		}

		var err error
		if a, err = eng.AddCell(model.NewVertex("", "Fetch", model.NewGeometry(0, 0, 120, 40)), container, -1); err != nil {
			return err
		}
		if b, err = eng.AddCell(model.NewVertex("", "Parse", model.NewGeometry(0, 0, 120, 40)), container, -1); err != nil {
			return err
		}

		edge := model.NewEdge("", "feeds")
		if _, err = eng.AddCell(edge, container, -1); err != nil {
			return err
		}
		if err = eng.SetTerminal(edge, a, true); err != nil {
			return err
		}
		return eng.SetTerminal(edge, b, false)
	})
	if err != nil {
		return err
	}

	return eng.SetValue(b, "Parse & Validate")
}

func report(eng *engine.Engine, outline *overview.Outline, verbose bool) {
	view := outline.View()
	fmt.Printf("cells under root: %d, undo depth: %d, outline scale: %.3f\n",
		eng.Root().ChildCount(), eng.UndoCount(), view.Scale)
	if verbose {
		fmt.Printf("bounds: %+v translate: (%.1f, %.1f)\n",
			view.Bounds, view.TranslateX, view.TranslateY)
	}
}

func parseFlags() (string, bool) {
	var (
		cfgPath     string
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&cfgPath, "config", "graphdoc.toml", "Path to configuration file")
	flag.StringVar(&cfgPath, "c", "graphdoc.toml", "Path to configuration file (shorthand)")
	flag.BoolVar(&verbose, "verbose", false, "Print outline details")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "graphdoc - transactional diagram model demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: graphdoc [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("graphdoc %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	return cfgPath, verbose
}
