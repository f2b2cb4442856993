package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andrewsame/shaishaile/internal/config"
	"github.com/andrewsame/shaishaile/internal/domain/analysis"
	"github.com/andrewsame/shaishaile/internal/domain/catalog"
)

// Client calls the external analytics API
type Client struct {
	baseURL      string
	httpClient   *http.Client
	probeTimeout time.Duration
}

// NewClient creates a new analytics API client
func NewClient(cfg *config.AnalyticsConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		probeTimeout: time.Duration(cfg.ProbeTimeout) * time.Second,
	}
}

type analyzeRequest struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

type batchRequest struct {
	Repos []string `json:"repos"`
}

type screeningCriteria struct {
	MinActivity     float64 `json:"min_activity"`
	MinOpenRank     float64 `json:"min_openrank"`
	MaxResponseDays int     `json:"max_response_days"`
	MinContributors int     `json:"min_contributors"`
}

type screeningRequest struct {
	Repos    []string          `json:"repos"`
	Criteria screeningCriteria `json:"criteria"`
}

type reportEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// StartAnalysis asks the analytics API to analyze one repository
func (c *Client) StartAnalysis(ctx context.Context, repo catalog.FullName) (*analysis.Report, error) {
	payload := analyzeRequest{
		Owner: repo.Owner(),
		Repo:  repo.Repo(),
	}
	return c.post(ctx, "/analyze", payload)
}

// BatchAnalyze asks for analysis of several repositories at once
func (c *Client) BatchAnalyze(ctx context.Context, repos []catalog.FullName) (*analysis.Report, error) {
	payload := batchRequest{Repos: fullNameStrings(repos)}
	return c.post(ctx, "/batch_analyze", payload)
}

// Screen filters repositories against the given criteria
func (c *Client) Screen(ctx context.Context, repos []catalog.FullName, criteria analysis.Criteria) (*analysis.Report, error) {
	criteria = criteria.Normalize()
	payload := screeningRequest{
		Repos: fullNameStrings(repos),
		Criteria: screeningCriteria{
			MinActivity:     criteria.MinActivity,
			MinOpenRank:     criteria.MinOpenRank,
			MaxResponseDays: criteria.MaxResponseDays,
			MinContributors: criteria.MinContributors,
		},
	}
	return c.post(ctx, "/screening", payload)
}

// Health probes the analytics API health endpoint with a short timeout
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("analytics API is unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("analytics API is unhealthy: status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (*analysis.Report, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call analytics API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analytics API error: %d - %s", resp.StatusCode, string(respBody))
	}

	var envelope reportEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &analysis.Report{
		Success: envelope.Success,
		Data:    envelope.Data,
		Error:   envelope.Error,
	}, nil
}

func fullNameStrings(repos []catalog.FullName) []string {
	out := make([]string, len(repos))
	for i, repo := range repos {
		out[i] = repo.String()
	}
	return out
}
