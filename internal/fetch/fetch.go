// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads raw input tables into the raw directory.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nuclide-engine/internal/httputil"
	"github.com/pdiddy/nuclide-engine/pkg/types"
)

const manifestFile = "sources.yaml"

// BatchResult holds the outcome of a fetch run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
	Entries    []Entry
}

// Total returns the number of sources processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any download failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Entry records where a raw table came from.
type Entry struct {
	File      string    `yaml:"file"`
	URL       string    `yaml:"url"`
	Bytes     int64     `yaml:"bytes"`
	FetchedAt time.Time `yaml:"fetched_at"`
}

// Table downloads one source to cfg.RawDir/file. An existing file is left
// untouched and reported as skipped.
func Table(ctx context.Context, client *http.Client, file, url string, cfg types.FetchConfig, w io.Writer) (entry Entry, skipped bool, err error) {
	dest := filepath.Join(cfg.RawDir, file)
	if info, err := os.Stat(dest); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", file)
		return Entry{File: file, URL: url, Bytes: info.Size()}, true, nil
	}

	if err := os.MkdirAll(cfg.RawDir, 0o755); err != nil {
		return Entry{}, false, fmt.Errorf("creating directory %s: %w", cfg.RawDir, err)
	}

	fmt.Fprintf(w, "downloading: %s\n", file)
	n, err := download(ctx, client, url, dest, cfg)
	if err != nil {
		return Entry{}, false, fmt.Errorf("downloading %s: %w", file, err)
	}
	return Entry{File: file, URL: url, Bytes: n, FetchedAt: time.Now().UTC()}, false, nil
}

// All downloads every configured source in file-name order, continuing past
// individual failures, and writes a manifest of what is on disk.
func All(ctx context.Context, client *http.Client, cfg types.FetchConfig, w io.Writer, logger *zap.Logger) BatchResult {
	if logger == nil {
		logger = zap.NewNop()
	}
	files := make([]string, 0, len(cfg.Sources))
	for f := range cfg.Sources {
		files = append(files, f)
	}
	sort.Strings(files)

	var result BatchResult
	for i, file := range files {
		if i > 0 && cfg.Delay > 0 {
			select {
			case <-ctx.Done():
				result.Failed += len(files) - i
				logger.Warn("fetch cancelled", zap.Error(ctx.Err()))
				return result
			case <-time.After(cfg.Delay):
			}
		}
		entry, skipped, err := Table(ctx, client, file, cfg.Sources[file], cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", file, err)
			logger.Warn("fetch failed", zap.String("file", file), zap.Error(err))
			result.Failed++
			continue
		}
		if skipped {
			result.Skipped++
		} else {
			result.Downloaded++
		}
		result.Entries = append(result.Entries, entry)
	}

	if len(result.Entries) > 0 {
		if err := writeManifest(filepath.Join(cfg.RawDir, manifestFile), result.Entries); err != nil {
			logger.Warn("writing fetch manifest", zap.Error(err))
		}
	}

	fmt.Fprintf(w, "\nFetch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result
}

// download fetches url to destPath through a temporary file so a partial
// download never replaces a complete one. HTTP 429 responses are retried.
func download(ctx context.Context, client *http.Client, url, destPath string, cfg types.FetchConfig) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return 0, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	n, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return n, nil
}

func writeManifest(path string, entries []Entry) error {
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadManifest reads the manifest written by All.
func ReadManifest(rawDir string) ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(rawDir, manifestFile))
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return entries, nil
}
