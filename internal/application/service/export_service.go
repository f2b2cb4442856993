package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andrewsame/shaishaile/internal/application/dto"
	"github.com/andrewsame/shaishaile/internal/dataease"
	"github.com/andrewsame/shaishaile/internal/domain/catalog"
)

// BundleUploader pushes an exported bundle file to shared storage
type BundleUploader interface {
	Put(ctx context.Context, objectName string, content []byte, contentType string) error
}

// ExportService writes DataEase dashboard bundles describing the
// analytics API, seeded with repositories from the current catalog
type ExportService struct {
	store            *catalog.Store
	analyticsBaseURL string
	exportDir        string
	uploader         BundleUploader
}

// NewExportService creates a new export service. The uploader may be
// nil, in which case bundles are only written locally.
func NewExportService(store *catalog.Store, analyticsBaseURL, exportDir string, uploader BundleUploader) *ExportService {
	return &ExportService{
		store:            store,
		analyticsBaseURL: analyticsBaseURL,
		exportDir:        exportDir,
		uploader:         uploader,
	}
}

// ConfigDocument returns the dashboard configuration document, the
// same one written into the bundle
func (s *ExportService) ConfigDocument() dataease.Config {
	return dataease.NewConfig(s.analyticsBaseURL)
}

// ExportBundle writes the dashboard configuration, sample data and
// import guide into the export directory, optionally uploading the
// files to object storage as well
func (s *ExportService) ExportBundle(ctx context.Context, upload bool) (*dto.ExportResponse, error) {
	fullNames := s.store.Snapshot().Catalog().FullNames()

	config, err := s.ConfigDocument().JSON()
	if err != nil {
		return nil, fmt.Errorf("failed to render dashboard config: %w", err)
	}

	samples, err := dataease.NewSampleData(s.analyticsBaseURL, fullNames).JSON()
	if err != nil {
		return nil, fmt.Errorf("failed to render sample data: %w", err)
	}

	files := []struct {
		name        string
		content     []byte
		contentType string
	}{
		{"dataease_config.json", config, "application/json"},
		{"sample_data.json", samples, "application/json"},
		{"README.md", []byte(dataease.ImportGuide(s.analyticsBaseURL)), "text/markdown"},
	}

	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	written := make([]string, 0, len(files))
	for _, file := range files {
		path := filepath.Join(s.exportDir, file.name)
		if err := os.WriteFile(path, file.content, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", file.name, err)
		}
		written = append(written, file.name)
	}

	uploaded := false
	if upload && s.uploader != nil {
		for _, file := range files {
			if err := s.uploader.Put(ctx, file.name, file.content, file.contentType); err != nil {
				return nil, fmt.Errorf("failed to upload %s: %w", file.name, err)
			}
		}
		uploaded = true
	}

	return &dto.ExportResponse{
		Message:  "dashboard bundle exported",
		Dir:      s.exportDir,
		Files:    written,
		Uploaded: uploaded,
	}, nil
}
