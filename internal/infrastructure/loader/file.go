package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/andrewsame/shaishaile/internal/domain/catalog"
)

// FileSource loads the catalog from a local JSON file. The file carries
// the catalog shape directly, no key translation happens.
type FileSource struct {
	path string
}

// NewFileSource creates a file catalog source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file"
}

// Load reads and validates the file in a single attempt
func (s *FileSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", s.path, err)
	}

	c, err := catalog.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog file %s: %w", s.path, err)
	}

	return c, nil
}
