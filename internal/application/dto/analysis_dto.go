package dto

import "encoding/json"

// AnalyzeRequest asks the analytics API to score a single repository
type AnalyzeRequest struct {
	Owner string `json:"owner" binding:"required"`
	Repo  string `json:"repo" binding:"required"`
}

// BatchAnalyzeRequest asks for scores on several "owner/repo" names
type BatchAnalyzeRequest struct {
	Repos []string `json:"repos" binding:"required"`
}

// CriteriaRequest carries screening thresholds. Zero fields fall back
// to the service defaults.
type CriteriaRequest struct {
	MinActivity     float64 `json:"min_activity"`
	MinOpenRank     float64 `json:"min_openrank"`
	MaxResponseDays int     `json:"max_response_days"`
	MinContributors int     `json:"min_contributors"`
}

// ScreeningRequest filters a candidate list against criteria
type ScreeningRequest struct {
	Repos    []string         `json:"repos" binding:"required"`
	Criteria *CriteriaRequest `json:"criteria"`
}

// AnalysisResponse is the envelope returned for every analytics call
type AnalysisResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}
