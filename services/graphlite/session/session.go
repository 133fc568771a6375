// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package session runs the interactive query loop and the non-interactive
// single-query path. The loop is a small state machine:
//
//	AwaitingInput -> BufferingMultiline -> Dispatching -> Rendering -> AwaitingInput
//
// with Terminated reached on end-of-input or an exit command. Query and
// render failures report and return to AwaitingInput; only startup
// failures, which happen before a session exists, are fatal.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AleutianAI/GraphLite/pkg/logging"
	"github.com/AleutianAI/GraphLite/services/graphlite/engine"
	"github.com/AleutianAI/GraphLite/services/graphlite/format"
	"github.com/AleutianAI/GraphLite/services/graphlite/graph"
	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// ErrNoResults is reported when save is issued before any query ran.
var ErrNoResults = errors.New("no results to save")

// Phase is one state of the session loop.
type Phase int

const (
	PhaseAwaitingInput Phase = iota
	PhaseBufferingMultiline
	PhaseDispatching
	PhaseRendering
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingInput:
		return "awaiting_input"
	case PhaseBufferingMultiline:
		return "buffering_multiline"
	case PhaseDispatching:
		return "dispatching"
	case PhaseRendering:
		return "rendering"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// exitCommands all terminate the session.
var exitCommands = map[string]bool{
	"exit": true, "exit()": true,
	"quit": true, "quit()": true,
	"q": true,
}

// State holds everything one session owns: the graph (set once at
// startup, never replaced), the last successful result set, and the
// running flag.
type State struct {
	Graph       *graph.Graph
	LastResults *result.Set
	Running     bool
}

// Options configures a Controller.
type Options struct {
	// Language selects the query engine.
	Language engine.Language

	// Reader supplies input lines. Defaults to a stdin reader.
	Reader InputReader

	// Stderr receives prompts, errors, and the status line.
	Stderr io.Writer

	// Sink renders results. Required.
	Sink *format.Sink

	// RenderFormat is the interactive render format. Defaults to the
	// aligned table.
	RenderFormat format.FormatType

	// ShowStatus enables the status line after load and after queries.
	ShowStatus bool

	// Logger receives session diagnostics. Defaults to a no-op logger.
	Logger *logging.Logger
}

// Controller drives one session over one loaded graph.
type Controller struct {
	state      State
	phase      Phase
	dispatcher *engine.Dispatcher
	opts       Options
}

// NewController builds a controller for a loaded graph.
func NewController(g *graph.Graph, opts Options) *Controller {
	if opts.Reader == nil {
		opts.Reader = NewStdinReader()
	}
	if opts.RenderFormat == "" {
		opts.RenderFormat = format.FormatTable
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	return &Controller{
		state:      State{Graph: g, Running: true},
		phase:      PhaseAwaitingInput,
		dispatcher: engine.NewDispatcher(),
		opts:       opts,
	}
}

// State exposes the session state for inspection.
func (c *Controller) State() State { return c.state }

// Phase exposes the current loop phase.
func (c *Controller) Phase() Phase { return c.phase }

// Run executes the interactive loop until end-of-input or an exit
// command. The error return covers only reader failures; query and
// render errors are reported and recovered.
func (c *Controller) Run(ctx context.Context) error {
	c.printStatus()

	for c.state.Running {
		if err := ctx.Err(); err != nil {
			c.phase = PhaseTerminated
			return err
		}

		c.phase = PhaseAwaitingInput
		input, err := c.readQuery()
		if err == io.EOF {
			break
		}
		if err != nil {
			c.phase = PhaseTerminated
			return fmt.Errorf("reading input: %w", err)
		}

		if input == "" {
			continue
		}
		if exitCommands[strings.TrimSpace(input)] {
			break
		}

		if name, isSave := parseSaveCommand(input); isSave {
			c.phase = PhaseRendering
			c.saveResults(name)
			continue
		}

		c.phase = PhaseDispatching
		set, err := c.dispatcher.Execute(ctx, c.state.Graph, input, c.opts.Language)
		if err != nil {
			// The previous result set stays usable for save.
			c.reportError(err)
			c.opts.Logger.Debug("query failed", "language", string(c.opts.Language), "error", err)
			continue
		}
		c.state.LastResults = set

		c.phase = PhaseRendering
		if err := c.opts.Sink.Render(set, c.opts.RenderFormat); err != nil {
			c.reportError(err)
		}
		c.printStatus()
	}

	c.phase = PhaseTerminated
	return nil
}

// RunOnce executes one query and renders it in the configured format.
// Any failure is returned to the caller; there is no loop to recover
// into.
func (c *Controller) RunOnce(ctx context.Context, query string) error {
	c.phase = PhaseDispatching
	set, err := c.dispatcher.Execute(ctx, c.state.Graph, query, c.opts.Language)
	if err != nil {
		c.phase = PhaseTerminated
		return err
	}
	c.state.LastResults = set

	c.phase = PhaseRendering
	err = c.opts.Sink.Render(set, c.opts.RenderFormat)
	c.phase = PhaseTerminated
	return err
}

// readQuery reads one complete query. Multi-line languages buffer until a
// blank line; commands and exits submit immediately from the first line.
func (c *Controller) readQuery() (string, error) {
	first, err := c.readLine("> ")
	if err != nil {
		return "", err
	}
	first = strings.TrimSpace(first)

	if !c.opts.Language.MultiLine() || first == "" {
		return first, nil
	}
	if exitCommands[first] {
		return first, nil
	}
	if _, isSave := parseSaveCommand(first); isSave {
		return first, nil
	}

	c.phase = PhaseBufferingMultiline
	lines := []string{first}
	for {
		line, err := c.readLine("... ")
		if err == io.EOF || (err == nil && strings.TrimSpace(line) == "") {
			return strings.Join(lines, "\n"), nil
		}
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
}

func (c *Controller) readLine(prompt string) (string, error) {
	if p, ok := c.opts.Reader.(PromptingInputReader); ok {
		p.SetPrompt(prompt)
	} else if c.opts.Stderr != nil {
		fmt.Fprint(c.opts.Stderr, prompt)
	}
	return c.opts.Reader.ReadLine()
}

// parseSaveCommand recognizes "save" and "save <filename>".
func parseSaveCommand(input string) (string, bool) {
	fields := strings.Fields(input)
	if len(fields) == 0 || fields[0] != "save" || len(fields) > 2 {
		return "", false
	}
	if len(fields) == 2 {
		return fields[1], true
	}
	return "", true
}

// saveResults writes the stored result set. Failures report and the
// session continues.
func (c *Controller) saveResults(name string) {
	if c.state.LastResults == nil {
		c.reportError(ErrNoResults)
		return
	}
	path, err := c.opts.Sink.Save(c.state.LastResults, name)
	if err != nil {
		c.reportError(err)
		return
	}
	if c.opts.Stderr != nil {
		fmt.Fprintf(c.opts.Stderr, "saved %d results to %s\n", c.state.LastResults.Len(), path)
	}
}

func (c *Controller) reportError(err error) {
	if c.opts.Stderr != nil {
		fmt.Fprintf(c.opts.Stderr, "error: %v\n", err)
	}
}

func (c *Controller) printStatus() {
	if !c.opts.ShowStatus || c.opts.Stderr == nil {
		return
	}
	fmt.Fprintln(c.opts.Stderr, statusLine(c.opts.Language, c.state))
}
