package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/github"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/oauth2"

	"github.com/andrewsame/shaishaile/internal/config"
	"github.com/andrewsame/shaishaile/internal/domain/catalog"
)

// EnricherImpl implements the domain catalog.Enricher interface on top
// of the GitHub REST API. Results are cached with a TTL so repeated
// shortlist renders do not burn through the rate limit.
type EnricherImpl struct {
	client *github.Client
	cache  *expirable.LRU[string, *catalog.RepoDetails]
}

// NewEnricher creates a new GitHub enricher. An empty token falls back
// to unauthenticated API access.
func NewEnricher(cfg *config.GitHubConfig) catalog.Enricher {
	var httpClient *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.Token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	cache := expirable.NewLRU[string, *catalog.RepoDetails](
		cfg.CacheSize, nil, time.Duration(cfg.CacheTTL)*time.Second,
	)

	return &EnricherImpl{
		client: github.NewClient(httpClient),
		cache:  cache,
	}
}

// Details fetches metadata for one repository, serving from cache when
// a fresh entry exists
func (e *EnricherImpl) Details(ctx context.Context, owner, repo string) (*catalog.RepoDetails, error) {
	key := owner + "/" + repo
	if details, ok := e.cache.Get(key); ok {
		return details, nil
	}

	repository, _, err := e.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository %s: %w", key, err)
	}

	details := &catalog.RepoDetails{
		FullName:    repository.GetFullName(),
		Description: repository.GetDescription(),
		HTMLURL:     repository.GetHTMLURL(),
		Stars:       repository.GetStargazersCount(),
	}
	e.cache.Add(key, details)

	return details, nil
}
