package analysis

import (
	"context"
	"encoding/json"

	"github.com/andrewsame/shaishaile/internal/domain/catalog"
)

// Criteria are the screening thresholds the analytics API applies
type Criteria struct {
	MinActivity     float64
	MinOpenRank     float64
	MaxResponseDays int
	MinContributors int
}

// DefaultCriteria returns the standard screening thresholds
func DefaultCriteria() Criteria {
	return Criteria{
		MinActivity:     30,
		MinOpenRank:     2,
		MaxResponseDays: 7,
		MinContributors: 5,
	}
}

// Normalize fills zero-valued fields with the defaults
func (c Criteria) Normalize() Criteria {
	defaults := DefaultCriteria()
	if c.MinActivity == 0 {
		c.MinActivity = defaults.MinActivity
	}
	if c.MinOpenRank == 0 {
		c.MinOpenRank = defaults.MinOpenRank
	}
	if c.MaxResponseDays == 0 {
		c.MaxResponseDays = defaults.MaxResponseDays
	}
	if c.MinContributors == 0 {
		c.MinContributors = defaults.MinContributors
	}
	return c
}

// Report is the envelope the analytics API wraps every reply in. Data is
// passed through untouched, its shape belongs to the analytics system.
type Report struct {
	Success bool
	Data    json.RawMessage
	Error   string
}

// Service is a domain service interface for the external analytics API.
// The API itself is a separate system; only calls into it are modeled.
// Implementation will be in infrastructure layer
type Service interface {
	// StartAnalysis asks the analytics API to analyze one repository
	StartAnalysis(ctx context.Context, repo catalog.FullName) (*Report, error)
	// BatchAnalyze asks for analysis of several repositories at once
	BatchAnalyze(ctx context.Context, repos []catalog.FullName) (*Report, error)
	// Screen filters repositories against the given criteria
	Screen(ctx context.Context, repos []catalog.FullName, criteria Criteria) (*Report, error)
	// Health probes the analytics API health endpoint
	Health(ctx context.Context) error
}
