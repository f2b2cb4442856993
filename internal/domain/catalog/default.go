package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"sync"
)

//go:embed default_catalog.json
var defaultCatalogJSON []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the bundled catalog shipped with the binary. The
// service falls back to it whenever no configured source has produced a
// valid catalog yet.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = ParseDocument(defaultCatalogJSON)
		if defaultErr != nil {
			defaultErr = fmt.Errorf("bundled default catalog is invalid: %w", defaultErr)
		}
	})
	return defaultCatalog, defaultErr
}

type defaultSource struct{}

func (defaultSource) Name() string {
	return "default"
}

func (defaultSource) Load(ctx context.Context) (*Catalog, error) {
	return Default()
}

// DefaultSource exposes the bundled catalog as a Source
func DefaultSource() Source {
	return defaultSource{}
}
