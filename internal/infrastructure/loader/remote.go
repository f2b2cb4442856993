package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andrewsame/shaishaile/internal/domain/catalog"
)

// remoteDocument is the snake_case wire shape served by a catalog endpoint
type remoteDocument struct {
	Owners       []string            `json:"owners"`
	ReposByOwner map[string][]string `json:"repos_by_owner"`
	PopularRepos []remotePopularRepo `json:"popular_repos"`
	Languages    map[string][]string `json:"languages"`
	Categories   map[string][]string `json:"categories"`
}

type remotePopularRepo struct {
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
	Language string `json:"language"`
	Category string `json:"category"`
}

// RemoteSource loads the catalog from an operator-supplied HTTP endpoint
type RemoteSource struct {
	httpClient *http.Client
	url        string
}

// NewRemoteSource creates a remote catalog source
func NewRemoteSource(url string, timeout time.Duration) *RemoteSource {
	return &RemoteSource{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url: url,
	}
}

func (s *RemoteSource) Name() string {
	return "remote"
}

// Load makes a single GET attempt against the endpoint. No retry and no
// backoff: on failure the caller keeps whatever catalog it already has.
func (s *RemoteSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog from %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("catalog endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var doc remoteDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog document: %w", err)
	}

	return doc.toCatalog()
}

// toCatalog translates the snake_case wire fields 1:1 into the catalog shape
func (d remoteDocument) toCatalog() (*catalog.Catalog, error) {
	popular := make([]catalog.PopularRepo, len(d.PopularRepos))
	for i, p := range d.PopularRepos {
		popular[i] = catalog.PopularRepo{
			Owner:    p.Owner,
			Repo:     p.Repo,
			Language: p.Language,
			Category: p.Category,
		}
	}

	return catalog.NewCatalog(d.Owners, d.ReposByOwner, popular, d.Languages, d.Categories)
}
