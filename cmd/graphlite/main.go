// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command graphlite loads a graph from a local file, URL, or structured
// locator and queries it interactively or in batch.
//
// Usage:
//
//	graphlite graph.graphml
//	graphlite graph.graphml -q "MATCH (a)-[]->(b) RETURN a, b" -o csv
//	graphlite "vertex:vertices.csv;edge:edges.csv" --stats
//	graphlite "h-edgelist(from:to)://relations.csv" -l dotmotif
//	graphlite https://example.com/karate.gml --convert karate.graphml
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/GraphLite/pkg/logging"
	"github.com/AleutianAI/GraphLite/services/graphlite/config"
	"github.com/AleutianAI/GraphLite/services/graphlite/engine"
	"github.com/AleutianAI/GraphLite/services/graphlite/format"
	"github.com/AleutianAI/GraphLite/services/graphlite/graph"
	"github.com/AleutianAI/GraphLite/services/graphlite/graphio"
	"github.com/AleutianAI/GraphLite/services/graphlite/locator"
	"github.com/AleutianAI/GraphLite/services/graphlite/session"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	flagOutput      string
	flagQuery       string
	flagLanguage    string
	flagStats       bool
	flagConvert     string
	flagStrictEdges bool
	flagDebug       bool
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "graphlite GRAPH",
	Short: "Query graphs from files, URLs, and CSV composites",
	Long: `Load a graph and query it with Cypher or DotMotif.

GRAPH accepts:
  - A file path (.graphml, .gml, .gpickle, .csv, .edgelist; anything else
    is read as a headerless edgelist)
  - An http(s) URL to any of the above
  - edgelist://FILE                    headerless edgelist
  - h-edgelist(src:tgt)://FILE         headered CSV with named columns
  - vertex:V.csv;edge:E.csv            openCypher-style CSV composite

Without -q, an interactive session starts. Type a query per line (DotMotif
blocks end with a blank line), 'save [file]' to persist the last results,
and 'exit()' to leave.

Examples:
  graphlite karate.gml --stats
  graphlite graph.graphml -q "MATCH (a)-[]->(b) RETURN a, b limit 10"
  graphlite "vertex:v.csv;edge:e.csv" -l dotmotif
  graphlite graph.csv --convert graph.graphml`,
	Args: cobra.ExactArgs(1),
	Run:  runRoot,
}

func init() {
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "",
		"Output format: csv, json, jsonl, markdown, html (default: interactive table)")
	rootCmd.Flags().StringVarP(&flagQuery, "query", "q", "",
		"Run one query and exit instead of starting a session")
	rootCmd.Flags().StringVarP(&flagLanguage, "language", "l", "",
		"Query language: cypher, dotmotif (default cypher)")
	rootCmd.Flags().BoolVar(&flagStats, "stats", false,
		"Print graph statistics instead of querying")
	rootCmd.Flags().StringVar(&flagConvert, "convert", "",
		"Convert the graph to FILENAME (format from its extension) and exit")
	rootCmd.Flags().BoolVar(&flagStrictEdges, "strict-edges", false,
		"Fail on edges referencing undeclared vertices")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false,
		"Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runRoot(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
		cfg = config.Default()
	}

	logger := buildLogger(cfg)
	defer logger.Close()

	lang, err := resolveLanguage(cfg)
	if err != nil {
		fatal(err)
	}

	// Startup: resolve and load. Failures here are the only fatal ones.
	loc, err := locator.Resolve(args[0])
	if err != nil {
		fatal(err)
	}
	g, err := graphio.Load(ctx, loc, loadOptions(cfg, logger))
	if err != nil {
		fatal(err)
	}
	logger.Info("graph loaded",
		"scheme", string(loc.Scheme), "nodes", g.NodeCount(), "edges", g.EdgeCount())

	if flagConvert != "" {
		if err := graphio.Write(g, flagConvert); err != nil {
			fatal(err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", flagConvert)
		return
	}

	sink := format.NewSink(os.Stdout)
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		sink.Registry().Register(&format.TableFormatter{Plain: true})
	}

	if flagStats {
		stats := graph.ComputeStats(g)
		if err := sink.Render(stats.ResultSet(), outputFormat(cfg)); err != nil {
			fatal(err)
		}
		return
	}

	ctrl := session.NewController(g, session.Options{
		Language:     lang,
		Reader:       newReader(),
		Stderr:       os.Stderr,
		Sink:         sink,
		RenderFormat: outputFormat(cfg),
		ShowStatus:   flagQuery == "" && isTerminal(),
		Logger:       logger,
	})

	if flagQuery != "" {
		if err := ctrl.RunOnce(ctx, flagQuery); err != nil {
			fatal(err)
		}
		return
	}

	if err := ctrl.Run(ctx); err != nil {
		fatal(err)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func buildLogger(cfg config.Config) *logging.Logger {
	level := logging.ParseLevel(cfg.Log.Level)
	if flagDebug {
		level = logging.LevelDebug
	}
	return logging.New(logging.Config{
		Level:   level,
		LogDir:  cfg.Log.Dir,
		Service: "graphlite",
		JSON:    cfg.Log.JSON,
		// Sessions share stderr with prompts; keep it clean unless asked.
		Quiet: !flagDebug,
	})
}

func resolveLanguage(cfg config.Config) (engine.Language, error) {
	name := cfg.Language
	if flagLanguage != "" {
		name = flagLanguage
	}
	return engine.ParseLanguage(name)
}

// outputFormat picks -o, falling back to the config format in batch mode
// and the aligned table interactively.
func outputFormat(cfg config.Config) format.FormatType {
	if flagOutput != "" {
		t, err := format.ParseFormatType(flagOutput)
		if err != nil {
			fatal(err)
		}
		return t
	}
	if flagQuery != "" || flagStats {
		t, err := format.ParseFormatType(cfg.Output)
		if err == nil {
			return t
		}
	}
	return format.FormatTable
}

func loadOptions(cfg config.Config, logger *logging.Logger) graphio.Options {
	opts := graphio.DefaultOptions()
	opts.FetchTimeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second
	opts.Logger = logger
	if cfg.DanglingEdges == "error" || flagStrictEdges {
		opts.Dangling = graphio.DanglingError
	}
	return opts
}

func newReader() session.InputReader {
	if isTerminal() {
		return session.NewInteractiveInputReader(50)
	}
	return session.NewStdinReader()
}

func isTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
