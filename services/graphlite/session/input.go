// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package session

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// InputReader abstracts user input reading for testability.
//
// # Description
//
// InputReader enables mocking of stdin in unit tests. The production
// implementation wraps bufio.Reader; the interactive implementation runs
// a bubbletea prompt with history.
//
// # Outputs
//
// ReadLine returns the line read (trimmed) and any error. Returns io.EOF
// when input is exhausted.
//
// # Assumptions
//
//   - Input source is line-oriented
//   - Lines are newline-terminated
type InputReader interface {
	// ReadLine reads a single line of input. Blocks until input is
	// available; returns io.EOF when input is exhausted.
	ReadLine() (string, error)
}

// PromptingInputReader is implemented by input readers that handle their
// own prompt display. The controller checks for this interface to avoid
// double-prompting.
type PromptingInputReader interface {
	InputReader
	// SetPrompt sets the prompt string to display before input.
	SetPrompt(prompt string)
}

// StdinReader implements InputReader for plain line-oriented reading.
// This is the non-TTY production implementation; tests use
// MockInputReader.
//
// Not thread-safe. Single reader per source.
type StdinReader struct {
	reader *bufio.Reader
}

// NewStdinReader creates a StdinReader wrapping os.Stdin.
func NewStdinReader() *StdinReader {
	return NewReaderFrom(os.Stdin)
}

// NewReaderFrom creates a StdinReader over an arbitrary source.
func NewReaderFrom(r io.Reader) *StdinReader {
	return &StdinReader{reader: bufio.NewReader(r)}
}

// ReadLine reads until newline and returns the trimmed result. Blocks
// until input is available or the source is closed.
func (r *StdinReader) ReadLine() (string, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(line) != "" {
			// A final unterminated line still counts as input.
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// MockInputReader implements InputReader for testing: each ReadLine call
// returns the next predetermined input, then io.EOF.
type MockInputReader struct {
	inputs []string
	index  int
}

// NewMockInputReader creates a MockInputReader with predetermined inputs.
func NewMockInputReader(inputs []string) *MockInputReader {
	return &MockInputReader{inputs: inputs}
}

// ReadLine returns the next predetermined input.
func (r *MockInputReader) ReadLine() (string, error) {
	if r.index >= len(r.inputs) {
		return "", io.EOF
	}
	line := r.inputs[r.index]
	r.index++
	return strings.TrimSpace(line), nil
}
