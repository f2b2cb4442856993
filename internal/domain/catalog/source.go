package catalog

import (
	"context"
)

// Source loads a full catalog from somewhere. A Load is a single
// attempt: implementations do not retry, the caller decides what a
// failure means (it keeps whatever catalog it already has).
// Implementations live in the infrastructure layer.
type Source interface {
	// Name identifies the source in log lines and refresh requests
	Name() string
	// Load fetches and validates a complete catalog
	Load(ctx context.Context) (*Catalog, error)
}

// RepoDetails represents live repository metadata fetched from GitHub
type RepoDetails struct {
	FullName    string
	Description string
	HTMLURL     string
	Stars       int
}

// Enricher is a domain service interface for decorating popular entries
// with live GitHub metadata
// Implementation will be in infrastructure layer
type Enricher interface {
	// Details fetches metadata for one repository
	Details(ctx context.Context, owner, repo string) (*RepoDetails, error)
}
