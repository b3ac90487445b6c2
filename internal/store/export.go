// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// ExportYAML writes the artifact to <dir>/export/<name>.yaml and returns
// the path written.
func (s *Store) ExportYAML(ctx context.Context, name string) (string, error) {
	records, err := s.exportRecords(ctx, name)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return s.writeExport(name+".yaml", data)
}

// ExportJSON writes the artifact to <dir>/export/<name>.json and returns
// the path written.
func (s *Store) ExportJSON(ctx context.Context, name string) (string, error) {
	records, err := s.exportRecords(ctx, name)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return s.writeExport(name+".json", data)
}

// exportRecords decodes an artifact into the record type of its kind so
// exports keep field order and sentinel encoding.
func (s *Store) exportRecords(ctx context.Context, name string) (any, error) {
	a, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	var records any
	switch a.Kind {
	case KindNuclides:
		records = &[]types.Nuclide{}
	case KindDerived:
		records = &[]types.Derived{}
	case KindMerged:
		records = &[]types.MergedRecord{}
	default:
		return nil, fmt.Errorf("artifact %s: unknown kind %q", name, a.Kind)
	}
	if err := json.Unmarshal(a.Data, records); err != nil {
		return nil, fmt.Errorf("decoding artifact %s: %w", name, err)
	}
	return records, nil
}

func (s *Store) writeExport(file string, data []byte) (string, error) {
	dir := filepath.Join(s.dir, exportDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
