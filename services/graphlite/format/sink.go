// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package format

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// saveExtensions maps save-filename extensions to formats.
var saveExtensions = map[string]FormatType{
	".csv":   FormatCSV,
	".json":  FormatJSON,
	".jsonl": FormatJSONL,
	".md":    FormatMarkdown,
	".html":  FormatHTML,
}

// Sink writes rendered result sets to stdout or to files.
type Sink struct {
	registry *Registry
	stdout   io.Writer

	// now is swappable for filename-synthesis tests.
	now func() time.Time
}

// NewSink builds a sink writing to the given stdout stream.
func NewSink(stdout io.Writer) *Sink {
	return &Sink{
		registry: NewRegistry(),
		stdout:   stdout,
		now:      time.Now,
	}
}

// Registry exposes the sink's formatter registry.
func (s *Sink) Registry() *Registry { return s.registry }

// Render writes a result set to stdout in the given format.
func (s *Sink) Render(set *result.Set, t FormatType) error {
	out, err := s.registry.Format(set, t)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(s.stdout, out); err != nil {
		return fmt.Errorf("%w: stdout: %v", ErrOutputWrite, err)
	}
	return nil
}

// SaveTarget resolves a save argument into a destination filename and
// format. An empty argument, or one whose extension is absent or
// unrecognized, falls back to json with a synthesized
// results-<timestamp>.json filename; an explicit request is never
// silently written under a different extension.
func (s *Sink) SaveTarget(arg string) (string, FormatType) {
	arg = strings.TrimSpace(arg)
	if arg != "" {
		if t, ok := saveExtensions[strings.ToLower(filepath.Ext(arg))]; ok {
			return arg, t
		}
	}
	return s.synthesizeFilename(), FormatJSON
}

// Save renders the set and writes it to the file named by arg, resolving
// the target per SaveTarget. It returns the filename actually written.
func (s *Sink) Save(set *result.Set, arg string) (string, error) {
	path, t := s.SaveTarget(arg)

	out, err := s.registry.Format(set, t)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrOutputWrite, path, err)
	}
	return path, nil
}

// synthesizeFilename builds results-<ISO8601>.json. Second resolution, so
// two saves in distinct seconds never collide.
func (s *Sink) synthesizeFilename() string {
	return "results-" + s.now().Format("2006-01-02T15-04-05") + ".json"
}
