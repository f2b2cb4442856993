package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/andrewsame/shaishaile/internal/application/service"
	"github.com/andrewsame/shaishaile/internal/config"
	"github.com/andrewsame/shaishaile/internal/domain/catalog"
	"github.com/andrewsame/shaishaile/internal/infrastructure/loader"
	"github.com/andrewsame/shaishaile/internal/infrastructure/objectstore"
)

// Writes the DataEase dashboard bundle without starting the server.

var (
	dir          = flag.String("dir", "data/exports", "directory the bundle is written to")
	catalogPath  = flag.String("catalog", "", "catalog file to seed sample data from, built-in catalog when empty")
	analyticsURL = flag.String("analytics-url", "http://localhost:5000", "base URL of the analytics API")
	upload       = flag.Bool("upload", false, "also upload the bundle to object storage (MINIO_* env)")
)

func main() {
	flag.Parse()

	cat, source, err := loadCatalog()
	if err != nil {
		log.Fatalln(err)
	}
	store := catalog.NewStore(cat, source)

	var uploader service.BundleUploader
	if *upload {
		bundleStore, err := objectstore.NewBundleStore(objectStoreConfig())
		if err != nil {
			log.Fatalln(err)
		}
		uploader = bundleStore
	}

	svc := service.NewExportService(store, *analyticsURL, *dir, uploader)
	resp, err := svc.ExportBundle(context.Background(), *upload)
	if err != nil {
		log.Fatalln(err)
	}

	log.Printf("Exported %d files to %s", len(resp.Files), resp.Dir)
	if resp.Uploaded {
		log.Println("Bundle uploaded to object storage")
	}
}

func loadCatalog() (*catalog.Catalog, string, error) {
	if *catalogPath == "" {
		cat, err := catalog.Default()
		return cat, "default", err
	}

	src := loader.NewFileSource(*catalogPath)
	cat, err := src.Load(context.Background())
	return cat, src.Name(), err
}

func objectStoreConfig() *config.ObjectStoreConfig {
	useSSL, _ := strconv.ParseBool(os.Getenv("MINIO_USE_SSL"))

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "dataease-exports"
	}

	return &config.ObjectStoreConfig{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		Bucket:    bucket,
		UseSSL:    useSSL,
	}
}
