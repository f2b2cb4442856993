package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/andrewsame/shaishaile/internal/application/dto"
	"github.com/andrewsame/shaishaile/internal/domain/catalog"
	"github.com/andrewsame/shaishaile/internal/domain/events"
	"github.com/andrewsame/shaishaile/internal/metrics"
)

// CatalogService handles catalog-related use cases
type CatalogService struct {
	store         *catalog.Store
	sources       map[string]catalog.Source
	defaultSource string
	enricher      catalog.Enricher
	dispatcher    *events.Dispatcher
}

// NewCatalogService creates a new catalog service. The given sources are
// indexed by name and selectable per refresh; defaultSource is used when
// a refresh names none.
func NewCatalogService(
	store *catalog.Store,
	sources []catalog.Source,
	defaultSource string,
	enricher catalog.Enricher,
	dispatcher *events.Dispatcher,
) *CatalogService {
	byName := make(map[string]catalog.Source, len(sources))
	for _, src := range sources {
		byName[src.Name()] = src
	}

	return &CatalogService{
		store:         store,
		sources:       byName,
		defaultSource: defaultSource,
		enricher:      enricher,
		dispatcher:    dispatcher,
	}
}

// Owners lists the catalog owners in their curated order
func (s *CatalogService) Owners() *dto.OwnersResponse {
	return &dto.OwnersResponse{
		Owners: s.store.Snapshot().Catalog().Owners(),
	}
}

// ReposFor lists the repositories of one owner
func (s *CatalogService) ReposFor(owner string) (*dto.OwnerReposResponse, error) {
	repos, err := s.store.Snapshot().Catalog().ReposFor(owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}

	return &dto.OwnerReposResponse{
		Owner: owner,
		Repos: repos,
	}, nil
}

// Popular lists the curated shortlist, optionally filtered by language
// and category. With enrich set, each entry is decorated with live
// GitHub metadata; entries whose lookup fails are served undecorated.
func (s *CatalogService) Popular(ctx context.Context, language, category string, enrich bool) *dto.PopularListResponse {
	entries := s.store.Snapshot().Catalog().PopularBy(language, category)

	resp := &dto.PopularListResponse{
		PopularRepos: make([]dto.PopularRepoResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		item := dto.PopularRepoResponse{
			Owner:    entry.Owner,
			Repo:     entry.Repo,
			Language: entry.Language,
			Category: entry.Category,
		}

		if enrich && s.enricher != nil {
			details, err := s.enricher.Details(ctx, entry.Owner, entry.Repo)
			if err != nil {
				log.Printf("Failed to enrich %s: %v", entry.FullName(), err)
			} else {
				item.Description = details.Description
				item.HTMLURL = details.HTMLURL
				item.Stars = details.Stars
			}
		}

		resp.PopularRepos = append(resp.PopularRepos, item)
	}

	return resp
}

// Languages lists the language filter values in sorted order
func (s *CatalogService) Languages() *dto.LanguagesResponse {
	return &dto.LanguagesResponse{
		Languages: s.store.Snapshot().Catalog().LanguageNames(),
	}
}

// Categories lists the category filter values in sorted order
func (s *CatalogService) Categories() *dto.CategoriesResponse {
	return &dto.CategoriesResponse{
		Categories: s.store.Snapshot().Catalog().CategoryNames(),
	}
}

// ReposForLanguage lists the "owner/repo" entries indexed under a language
func (s *CatalogService) ReposForLanguage(name string) (*dto.IndexedReposResponse, error) {
	repos, err := s.store.Snapshot().Catalog().ReposForLanguage(name)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories by language: %w", err)
	}

	return &dto.IndexedReposResponse{
		Name:  name,
		Repos: repos,
	}, nil
}

// ReposForCategory lists the "owner/repo" entries indexed under a category
func (s *CatalogService) ReposForCategory(name string) (*dto.IndexedReposResponse, error) {
	repos, err := s.store.Snapshot().Catalog().ReposForCategory(name)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories by category: %w", err)
	}

	return &dto.IndexedReposResponse{
		Name:  name,
		Repos: repos,
	}, nil
}

// Document renders the whole current catalog in the wire format, making
// this instance usable as a remote source for another one
func (s *CatalogService) Document() *dto.CatalogDocumentResponse {
	doc := s.store.Snapshot().Catalog().Document()

	popular := make([]dto.PopularRepoResponse, 0, len(doc.PopularRepos))
	for _, entry := range doc.PopularRepos {
		popular = append(popular, dto.PopularRepoResponse{
			Owner:    entry.Owner,
			Repo:     entry.Repo,
			Language: entry.Language,
			Category: entry.Category,
		})
	}

	return &dto.CatalogDocumentResponse{
		Owners:       doc.Owners,
		ReposByOwner: doc.ReposByOwner,
		PopularRepos: popular,
		Languages:    doc.Languages,
		Categories:   doc.Categories,
	}
}

// Version describes the currently published snapshot
func (s *CatalogService) Version() *dto.VersionResponse {
	resp := toVersionDTO(s.store.Snapshot())
	return &resp
}

// FullNames lists every "owner/repo" in the catalog in sorted order
func (s *CatalogService) FullNames() []string {
	return s.store.Snapshot().Catalog().FullNames()
}

// Refresh loads a fresh catalog from the named source and publishes it.
// An empty name selects the configured default source. The load is a
// single attempt: on failure the current snapshot stays published and
// the failure is logged here, once.
func (s *CatalogService) Refresh(ctx context.Context, sourceName string) (*dto.RefreshResponse, error) {
	if sourceName == "" {
		sourceName = s.defaultSource
	}

	src, ok := s.sources[sourceName]
	if !ok {
		return nil, catalog.ErrUnknownSource(sourceName)
	}

	next, err := src.Load(ctx)
	if err != nil {
		metrics.CatalogRefreshTotal.WithLabelValues(sourceName, "failure").Inc()
		loadErr := catalog.ErrLoadFailed(sourceName, err)
		log.Printf("Catalog refresh from %s failed, keeping version %s: %v",
			sourceName, s.store.Snapshot().Version(), loadErr)
		return nil, loadErr
	}

	snap := s.store.Replace(next, sourceName)

	// Success metrics hang off the replaced event. The dispatcher logs
	// handler failures itself; a bad handler must not fail the refresh.
	_ = s.dispatcher.Dispatch(ctx, catalog.NewCatalogReplacedEvent(snap))

	return &dto.RefreshResponse{
		Message: fmt.Sprintf("catalog refreshed from %s", sourceName),
		Version: toVersionDTO(snap),
	}, nil
}

func toVersionDTO(snap catalog.Snapshot) dto.VersionResponse {
	return dto.VersionResponse{
		Version:  snap.Version().String(),
		Source:   snap.Source(),
		LoadedAt: snap.LoadedAt().UTC().Format(time.RFC3339),
		Owners:   snap.Catalog().OwnerCount(),
		Repos:    snap.Catalog().RepoCount(),
	}
}
