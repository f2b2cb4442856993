package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrewsame/shaishaile/internal/application/service"
	"github.com/andrewsame/shaishaile/internal/domain/catalog"
)

type mockUploader struct {
	contentTypes map[string]string
	shouldError  bool
}

func (m *mockUploader) Put(ctx context.Context, objectName string, content []byte, contentType string) error {
	if m.shouldError {
		return errors.New("upload error")
	}
	if m.contentTypes == nil {
		m.contentTypes = make(map[string]string)
	}
	m.contentTypes[objectName] = contentType
	return nil
}

func TestExportService_ExportBundle(t *testing.T) {
	dir := t.TempDir()
	store := catalog.NewStore(testCatalog(t, "acme"), "default")
	svc := service.NewExportService(store, "http://localhost:5000", dir, nil)

	resp, err := svc.ExportBundle(context.Background(), false)
	if err != nil {
		t.Fatalf("ExportBundle() error = %v", err)
	}

	if resp.Uploaded {
		t.Error("Uploaded = true, want false")
	}
	if len(resp.Files) != 3 {
		t.Fatalf("len(Files) = %v, want 3", len(resp.Files))
	}

	config, err := os.ReadFile(filepath.Join(dir, "dataease_config.json"))
	if err != nil {
		t.Fatalf("reading dataease_config.json: %v", err)
	}
	if !strings.Contains(string(config), "api_endpoints") {
		t.Error("dataease_config.json should describe the API endpoints")
	}

	samples, err := os.ReadFile(filepath.Join(dir, "sample_data.json"))
	if err != nil {
		t.Fatalf("reading sample_data.json: %v", err)
	}
	if !strings.Contains(string(samples), "acme/web") {
		t.Error("sample_data.json should list catalog repositories")
	}

	if _, err := os.Stat(filepath.Join(dir, "README.md")); err != nil {
		t.Errorf("README.md not written: %v", err)
	}
}

func TestExportService_ExportBundleUploads(t *testing.T) {
	dir := t.TempDir()
	store := catalog.NewStore(testCatalog(t, "acme"), "default")
	uploader := &mockUploader{}
	svc := service.NewExportService(store, "http://localhost:5000", dir, uploader)

	resp, err := svc.ExportBundle(context.Background(), true)
	if err != nil {
		t.Fatalf("ExportBundle() error = %v", err)
	}

	if !resp.Uploaded {
		t.Error("Uploaded = false, want true")
	}
	if got := uploader.contentTypes["dataease_config.json"]; got != "application/json" {
		t.Errorf("content type = %v, want application/json", got)
	}
	if got := uploader.contentTypes["README.md"]; got != "text/markdown" {
		t.Errorf("content type = %v, want text/markdown", got)
	}
}

func TestExportService_ExportBundleUploadError(t *testing.T) {
	dir := t.TempDir()
	store := catalog.NewStore(testCatalog(t, "acme"), "default")
	svc := service.NewExportService(store, "http://localhost:5000", dir, &mockUploader{shouldError: true})

	if _, err := svc.ExportBundle(context.Background(), true); err == nil {
		t.Fatal("ExportBundle() should return error when upload fails")
	}
}

func TestExportService_ExportBundleNoUploader(t *testing.T) {
	dir := t.TempDir()
	store := catalog.NewStore(testCatalog(t, "acme"), "default")
	svc := service.NewExportService(store, "http://localhost:5000", dir, nil)

	resp, err := svc.ExportBundle(context.Background(), true)
	if err != nil {
		t.Fatalf("ExportBundle() error = %v", err)
	}
	if resp.Uploaded {
		t.Error("Uploaded = true, want false without an uploader")
	}
}
