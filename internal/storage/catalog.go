package storage

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed catalog.toml
var defaultCatalog string

// CatalogFile is the TOML layout accepted by LoadCatalog.
type CatalogFile struct {
	Version string  `toml:"version"`
	Items   []*Item `toml:"items"`
}

// DefaultCatalog returns the catalog shipped with the binary.
func DefaultCatalog() (*CatalogFile, error) {
	return ParseCatalog(strings.NewReader(defaultCatalog))
}

// ParseCatalog decodes and validates a TOML catalog.
func ParseCatalog(r io.Reader) (*CatalogFile, error) {
	var cat CatalogFile
	if err := toml.NewDecoder(r).Decode(&cat); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	seen := make(map[string]bool, len(cat.Items))
	for i, item := range cat.Items {
		if item.ID == "" {
			return nil, fmt.Errorf("catalog item %d has no id", i)
		}
		if _, err := bucketFor(item.Kind); err != nil {
			return nil, fmt.Errorf("catalog item %s: %w", item.ID, err)
		}
		key := string(item.Kind) + "/" + item.ID
		if seen[key] {
			return nil, fmt.Errorf("catalog item %s is defined twice", item.ID)
		}
		seen[key] = true
	}
	return &cat, nil
}

// LoadCatalog parses r and saves every item. It returns the number saved.
func (s *Store) LoadCatalog(r io.Reader) (int, error) {
	cat, err := ParseCatalog(r)
	if err != nil {
		return 0, err
	}
	if err := s.SaveItems(cat.Items); err != nil {
		return 0, fmt.Errorf("saving catalog: %w", err)
	}
	if cat.Version != "" {
		if err := s.SetMeta("catalog_version", cat.Version); err != nil {
			return 0, err
		}
	}
	return len(cat.Items), nil
}
