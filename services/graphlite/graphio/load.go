// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package graphio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/GraphLite/pkg/logging"
	"github.com/AleutianAI/GraphLite/services/graphlite/graph"
	"github.com/AleutianAI/GraphLite/services/graphlite/locator"
)

// DanglingPolicy controls what the openCypher composite loader does when an
// edge references a vertex the vertex files never declared.
type DanglingPolicy string

const (
	// DanglingCreate silently creates the missing vertex. The permissive
	// default.
	DanglingCreate DanglingPolicy = "create"

	// DanglingError rejects the load with ErrDanglingEdgeReference.
	DanglingError DanglingPolicy = "error"
)

// Options configures loading behavior.
type Options struct {
	// Dangling is the openCypher dangling-edge policy.
	Dangling DanglingPolicy

	// HTTPClient performs remote fetches. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// FetchTimeout bounds a remote fetch. Zero means 30 seconds.
	FetchTimeout time.Duration

	// Logger receives load diagnostics. Defaults to a no-op logger.
	Logger *logging.Logger
}

// DefaultOptions returns the permissive defaults.
func DefaultOptions() Options {
	return Options{
		Dangling:     DanglingCreate,
		FetchTimeout: 30 * time.Second,
		Logger:       logging.Nop(),
	}
}

func (o Options) logger() *logging.Logger {
	if o.Logger == nil {
		return logging.Nop()
	}
	return o.Logger
}

// Load constructs the in-memory graph for a resolved locator.
func Load(ctx context.Context, loc locator.Locator, opts Options) (*graph.Graph, error) {
	if opts.Dangling == "" {
		opts.Dangling = DanglingCreate
	}

	switch loc.Scheme {
	case locator.SchemeURL:
		return loadRemote(ctx, loc, opts)
	case locator.SchemeGraphML:
		return readGraphML(loc.PathOrURL)
	case locator.SchemeGML:
		return readGML(loc.PathOrURL)
	case locator.SchemeGPickle:
		return nil, fmt.Errorf(
			"%w: %s: pickled graphs cannot be decoded outside Python; convert to graphml or gml first",
			ErrUnreadableGraph, loc.PathOrURL)
	case locator.SchemeHeaderedEdgelist:
		src, _ := loc.Param("source")
		tgt, _ := loc.Param("target")
		return readHeaderedEdgelist(loc.PathOrURL, src, tgt)
	case locator.SchemeOpenCypher:
		return readOpenCypher(loc.ParamValues("vertex"), loc.ParamValues("edge"), opts.Dangling)
	case locator.SchemeEdgelist:
		if !locator.ExtensionRecognized(loc.PathOrURL) {
			opts.logger().Warn("unrecognized graph extension, treating as edgelist",
				"path", loc.PathOrURL)
		}
		return readEdgelist(loc.PathOrURL)
	default:
		return nil, fmt.Errorf("%w: no reader for scheme %q", ErrUnreadableGraph, loc.Scheme)
	}
}

// loadRemote fetches the URL into a scoped temporary file, re-resolves the
// locator against the downloaded filename, and loads from there. The
// temporary file is removed on every exit path.
func loadRemote(ctx context.Context, loc locator.Locator, opts Options) (*graph.Graph, error) {
	tmpPath, err := fetch(ctx, loc.PathOrURL, opts)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	localLoc, err := locator.Resolve(tmpPath)
	if err != nil {
		return nil, err
	}

	// The URL may carry no useful extension; sniff the content before
	// falling all the way back to the edgelist reader.
	if !locator.ExtensionRecognized(tmpPath) {
		if scheme, ok := sniffFile(tmpPath); ok {
			opts.logger().Debug("scheme sniffed from downloaded content",
				"url", loc.PathOrURL, "scheme", string(scheme))
			localLoc.Scheme = scheme
		}
	}

	g, err := Load(ctx, localLoc, opts)
	if err != nil {
		return nil, fmt.Errorf("remote graph %s: %w", loc.PathOrURL, err)
	}
	return g, nil
}

// fetch downloads a URL to a temporary file and returns its path. The
// caller owns removal. The download is attempted exactly once; any failure
// surfaces immediately as ErrNetworkFetch.
func fetch(ctx context.Context, rawURL string, opts Options) (string, error) {
	timeout := opts.FetchTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNetworkFetch, rawURL, err)
	}

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNetworkFetch, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s: status %s", ErrNetworkFetch, rawURL, resp.Status)
	}

	// Preserve the URL path's extension so extension inference still works
	// on the local copy.
	ext := ""
	if u, parseErr := url.Parse(rawURL); parseErr == nil {
		ext = path.Ext(u.Path)
	}
	tmpPath := filepath.Join(os.TempDir(), "graphlite-"+uuid.NewString()+ext)

	out, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNetworkFetch, rawURL, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %s: %v", ErrNetworkFetch, rawURL, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %s: %v", ErrNetworkFetch, rawURL, err)
	}

	opts.logger().Info("graph downloaded", "url", rawURL, "bytes", fileSize(tmpPath))
	return tmpPath, nil
}

// sniffFile reads the first 500 bytes and asks the locator to guess.
func sniffFile(path string) (locator.Scheme, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	head := make([]byte, 500)
	n, _ := io.ReadFull(f, head)
	if n == 0 {
		return "", false
	}
	return locator.Sniff(head[:n])
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return -1
	}
	return info.Size()
}
