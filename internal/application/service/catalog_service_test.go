package service_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/andrewsame/shaishaile/internal/application/service"
	"github.com/andrewsame/shaishaile/internal/domain/catalog"
	"github.com/andrewsame/shaishaile/internal/domain/events"
)

// Mock implementations
type mockSource struct {
	name        string
	catalog     *catalog.Catalog
	shouldError bool
	loads       int
}

func (m *mockSource) Name() string {
	return m.name
}

func (m *mockSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	m.loads++
	if m.shouldError {
		return nil, errors.New("source error")
	}
	return m.catalog, nil
}

type mockEnricher struct {
	details     map[string]*catalog.RepoDetails
	shouldError bool
}

func (m *mockEnricher) Details(ctx context.Context, owner, repo string) (*catalog.RepoDetails, error) {
	if m.shouldError {
		return nil, errors.New("enricher error")
	}
	details, ok := m.details[owner+"/"+repo]
	if !ok {
		return nil, errors.New("unknown repository")
	}
	return details, nil
}

func testCatalog(t *testing.T, owner string) *catalog.Catalog {
	t.Helper()

	c, err := catalog.FromDocument(catalog.Document{
		Owners:       []string{owner},
		ReposByOwner: map[string][]string{owner: {"web"}},
		PopularRepos: []catalog.PopularRepo{
			{Owner: owner, Repo: "web", Language: "Go", Category: "tools"},
		},
		Languages:  map[string][]string{"Go": {owner + "/web"}},
		Categories: map[string][]string{"tools": {owner + "/web"}},
	})
	if err != nil {
		t.Fatalf("FromDocument() error = %v", err)
	}
	return c
}

func newCatalogService(t *testing.T, sources ...catalog.Source) (*service.CatalogService, *catalog.Store) {
	t.Helper()

	store := catalog.NewStore(testCatalog(t, "acme"), "default")
	svc := service.NewCatalogService(store, sources, "default", nil, events.NewDispatcher())
	return svc, store
}

func TestCatalogService_Owners(t *testing.T) {
	svc, _ := newCatalogService(t)

	resp := svc.Owners()
	if len(resp.Owners) != 1 || resp.Owners[0] != "acme" {
		t.Errorf("Owners = %v, want [acme]", resp.Owners)
	}
}

func TestCatalogService_ReposFor(t *testing.T) {
	svc, _ := newCatalogService(t)

	resp, err := svc.ReposFor("acme")
	if err != nil {
		t.Fatalf("ReposFor() error = %v", err)
	}
	if resp.Owner != "acme" {
		t.Errorf("Owner = %v, want acme", resp.Owner)
	}
	if len(resp.Repos) != 1 || resp.Repos[0] != "web" {
		t.Errorf("Repos = %v, want [web]", resp.Repos)
	}
}

func TestCatalogService_ReposForUnknownOwner(t *testing.T) {
	svc, _ := newCatalogService(t)

	_, err := svc.ReposFor("nobody")
	if err == nil {
		t.Fatal("ReposFor() should return error for unknown owner")
	}

	var domainErr *catalog.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("error = %v, want DomainError", err)
	}
	if domainErr.Code != "OWNER_NOT_FOUND" {
		t.Errorf("Code = %v, want OWNER_NOT_FOUND", domainErr.Code)
	}
}

func TestCatalogService_Refresh(t *testing.T) {
	src := &mockSource{name: "remote", catalog: testCatalog(t, "globex")}
	svc, store := newCatalogService(t, src)

	before := store.Snapshot().Version()

	resp, err := svc.Refresh(context.Background(), "remote")
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if resp.Version.Source != "remote" {
		t.Errorf("Source = %v, want remote", resp.Version.Source)
	}
	if resp.Version.Version == before.String() {
		t.Error("Refresh() should publish a new version")
	}

	snap := store.Snapshot()
	if got := snap.Catalog().Owners(); len(got) != 1 || got[0] != "globex" {
		t.Errorf("Owners after refresh = %v, want [globex]", got)
	}
}

func TestCatalogService_RefreshDefaultSource(t *testing.T) {
	src := &mockSource{name: "default", catalog: testCatalog(t, "globex")}
	svc, _ := newCatalogService(t, src)

	if _, err := svc.Refresh(context.Background(), ""); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if src.loads != 1 {
		t.Errorf("loads = %v, want 1", src.loads)
	}
}

func TestCatalogService_RefreshFailureKeepsCurrent(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	src := &mockSource{name: "remote", shouldError: true}
	svc, store := newCatalogService(t, src)

	before := store.Snapshot()

	_, err := svc.Refresh(context.Background(), "remote")
	if err == nil {
		t.Fatal("Refresh() should return error when the source fails")
	}

	var domainErr *catalog.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("error = %v, want DomainError", err)
	}
	if domainErr.Code != "CATALOG_LOAD_FAILED" {
		t.Errorf("Code = %v, want CATALOG_LOAD_FAILED", domainErr.Code)
	}

	after := store.Snapshot()
	if !after.Version().Equals(before.Version()) {
		t.Error("failed refresh must keep the current version published")
	}
	if after.Catalog() != before.Catalog() {
		t.Error("failed refresh must keep the current catalog published")
	}

	if got := strings.Count(buf.String(), "Catalog refresh from"); got != 1 {
		t.Errorf("logged %d refresh failures, want exactly 1", got)
	}
}

func TestCatalogService_RefreshUnknownSource(t *testing.T) {
	svc, _ := newCatalogService(t)

	_, err := svc.Refresh(context.Background(), "gopher")
	if err == nil {
		t.Fatal("Refresh() should return error for unknown source")
	}

	var domainErr *catalog.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("error = %v, want DomainError", err)
	}
	if domainErr.Code != "UNKNOWN_SOURCE" {
		t.Errorf("Code = %v, want UNKNOWN_SOURCE", domainErr.Code)
	}
}

func TestCatalogService_RefreshDispatchesEvent(t *testing.T) {
	src := &mockSource{name: "remote", catalog: testCatalog(t, "globex")}
	store := catalog.NewStore(testCatalog(t, "acme"), "default")
	dispatcher := events.NewDispatcher()

	var received []*catalog.CatalogReplacedEvent
	dispatcher.Register(catalog.EventTypeCatalogReplaced, func(ctx context.Context, event events.DomainEvent) error {
		received = append(received, event.(*catalog.CatalogReplacedEvent))
		return nil
	})

	svc := service.NewCatalogService(store, []catalog.Source{src}, "default", nil, dispatcher)

	resp, err := svc.Refresh(context.Background(), "remote")
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if len(received) != 1 {
		t.Fatalf("received %d events, want 1", len(received))
	}
	if received[0].Source != "remote" {
		t.Errorf("event Source = %v, want remote", received[0].Source)
	}
	if received[0].Version != resp.Version.Version {
		t.Errorf("event Version = %v, want %v", received[0].Version, resp.Version.Version)
	}
}

func TestCatalogService_Popular(t *testing.T) {
	svc, _ := newCatalogService(t)

	resp := svc.Popular(context.Background(), "", "", false)
	if len(resp.PopularRepos) != 1 {
		t.Fatalf("len(PopularRepos) = %v, want 1", len(resp.PopularRepos))
	}
	entry := resp.PopularRepos[0]
	if entry.Owner != "acme" || entry.Repo != "web" {
		t.Errorf("entry = %v/%v, want acme/web", entry.Owner, entry.Repo)
	}
	if entry.Stars != 0 || entry.Description != "" {
		t.Error("entry should not be enriched without enrich flag")
	}
}

func TestCatalogService_PopularEnriched(t *testing.T) {
	enricher := &mockEnricher{
		details: map[string]*catalog.RepoDetails{
			"acme/web": {
				FullName:    "acme/web",
				Description: "a web thing",
				HTMLURL:     "https://github.com/acme/web",
				Stars:       42,
			},
		},
	}

	store := catalog.NewStore(testCatalog(t, "acme"), "default")
	svc := service.NewCatalogService(store, nil, "default", enricher, events.NewDispatcher())

	resp := svc.Popular(context.Background(), "", "", true)
	if len(resp.PopularRepos) != 1 {
		t.Fatalf("len(PopularRepos) = %v, want 1", len(resp.PopularRepos))
	}
	entry := resp.PopularRepos[0]
	if entry.Stars != 42 {
		t.Errorf("Stars = %v, want 42", entry.Stars)
	}
	if entry.Description != "a web thing" {
		t.Errorf("Description = %v, want %q", entry.Description, "a web thing")
	}
}

func TestCatalogService_PopularEnrichmentFailureDegrades(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	store := catalog.NewStore(testCatalog(t, "acme"), "default")
	svc := service.NewCatalogService(store, nil, "default", &mockEnricher{shouldError: true}, events.NewDispatcher())

	resp := svc.Popular(context.Background(), "", "", true)
	if len(resp.PopularRepos) != 1 {
		t.Fatalf("len(PopularRepos) = %v, want 1", len(resp.PopularRepos))
	}
	if resp.PopularRepos[0].Stars != 0 {
		t.Error("failed enrichment should leave the entry undecorated")
	}
}

func TestCatalogService_Document(t *testing.T) {
	svc, _ := newCatalogService(t)

	doc := svc.Document()
	if len(doc.Owners) != 1 || doc.Owners[0] != "acme" {
		t.Errorf("Owners = %v, want [acme]", doc.Owners)
	}
	if got := doc.ReposByOwner["acme"]; len(got) != 1 || got[0] != "web" {
		t.Errorf("ReposByOwner[acme] = %v, want [web]", got)
	}
	if len(doc.PopularRepos) != 1 || doc.PopularRepos[0].Language != "Go" {
		t.Errorf("PopularRepos = %v, want one Go entry", doc.PopularRepos)
	}
	if got := doc.Languages["Go"]; len(got) != 1 || got[0] != "acme/web" {
		t.Errorf("Languages[Go] = %v, want [acme/web]", got)
	}
}

func TestCatalogService_Version(t *testing.T) {
	svc, store := newCatalogService(t)

	resp := svc.Version()
	if resp.Version != store.Snapshot().Version().String() {
		t.Errorf("Version = %v, want %v", resp.Version, store.Snapshot().Version())
	}
	if resp.Source != "default" {
		t.Errorf("Source = %v, want default", resp.Source)
	}
	if resp.Owners != 1 || resp.Repos != 1 {
		t.Errorf("counts = %d owners, %d repos, want 1 and 1", resp.Owners, resp.Repos)
	}
}
