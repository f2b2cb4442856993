package dataease

import (
	"encoding/json"
	"fmt"
	"time"
)

// ConfigVersion is the schema version DataEase importers check
const ConfigVersion = "1.0.0"

// Field describes one request field of an API data source
type Field struct {
	Field   string `json:"field"`
	Type    string `json:"type"`
	Comment string `json:"comment"`
}

// DataSource describes one DataEase "API data source" entry
type DataSource struct {
	Name    string            `json:"name"`
	Type    string            `json:"type"`
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers"`
	Fields  []Field           `json:"fields"`
}

// Metric describes one value shown on a statistic card
type Metric struct {
	Field  string `json:"field"`
	Name   string `json:"name"`
	Format string `json:"format"`
}

// MetricCards is the core-indicator card template
type MetricCards struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Metrics []Metric `json:"metrics"`
}

// ScoreRadar is the multi-dimension score radar template
type ScoreRadar struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Dimensions []string `json:"dimensions"`
	Metrics    []string `json:"metrics"`
}

// ChartConfigs groups the prebuilt chart templates
type ChartConfigs struct {
	MetricCards MetricCards `json:"metric_cards"`
	ScoreRadar  ScoreRadar  `json:"score_radar"`
}

// Position places a dashboard component on the DataEase grid
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Component is one dashboard building block
type Component struct {
	Type       string   `json:"type"`
	Title      string   `json:"title"`
	DataSource string   `json:"dataSource"`
	Position   Position `json:"position"`
}

// Dashboard is a named component arrangement
type Dashboard struct {
	Name       string      `json:"name"`
	Components []Component `json:"components"`
}

// Config is the document imported through DataEase's API data source
// screen. Its schema belongs to that product, reproduced here verbatim.
type Config struct {
	Version      string                `json:"version"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Generated    time.Time             `json:"generated"`
	APIEndpoints map[string]string     `json:"api_endpoints"`
	DataSources  map[string]DataSource `json:"data_sources"`
	Charts       ChartConfigs          `json:"charts"`
	Dashboards   map[string]Dashboard  `json:"dashboards"`
}

// NewConfig assembles the export document against the analytics API base URL
func NewConfig(analyticsBaseURL string) Config {
	jsonHeaders := map[string]string{
		"Content-Type": "application/json",
	}

	return Config{
		Version:     ConfigVersion,
		Name:        "OpenDigger Analysis Platform",
		Description: "Open source project analysis platform built on OpenDigger metrics",
		Generated:   time.Now().UTC(),
		APIEndpoints: map[string]string{
			"analyze":       analyticsBaseURL + "/analyze",
			"batch_analyze": analyticsBaseURL + "/batch_analyze",
			"screening":     analyticsBaseURL + "/screening",
		},
		DataSources: map[string]DataSource{
			"repo_analysis": {
				Name:    "Repository Analysis API",
				Type:    "api",
				URL:     analyticsBaseURL + "/analyze",
				Method:  "POST",
				Headers: jsonHeaders,
				Fields: []Field{
					{Field: "owner", Type: "string", Comment: "Repository owner"},
					{Field: "repo", Type: "string", Comment: "Repository name"},
				},
			},
			"project_screening": {
				Name:    "Project Screening API",
				Type:    "api",
				URL:     analyticsBaseURL + "/screening",
				Method:  "POST",
				Headers: jsonHeaders,
				Fields: []Field{
					{Field: "repos", Type: "array", Comment: "Repository list"},
					{Field: "criteria", Type: "object", Comment: "Screening thresholds"},
				},
			},
		},
		Charts: ChartConfigs{
			MetricCards: MetricCards{
				Name: "Core Metric Cards",
				Type: "statistic",
				Metrics: []Metric{
					{Field: "openrank", Name: "OpenRank", Format: "0.00"},
					{Field: "activity_score", Name: "Activity Score", Format: "0.00"},
					{Field: "contributor_count", Name: "Contributors", Format: "0"},
					{Field: "avg_response_time", Name: "Avg Response Days", Format: "0.0"},
				},
			},
			ScoreRadar: ScoreRadar{
				Name:       "Project Score Radar",
				Type:       "radar",
				Dimensions: []string{"Activity", "Responsiveness", "OpenRank", "Contributors"},
				Metrics:    []string{"activity_score", "response_score", "openrank_score", "contributor_score"},
			},
		},
		Dashboards: map[string]Dashboard{
			"overview": {
				Name: "Project Overview",
				Components: []Component{
					{
						Type:       "search",
						Title:      "Repository Search",
						DataSource: "repo_analysis",
						Position:   Position{X: 0, Y: 0, W: 12, H: 2},
					},
					{
						Type:       "metric_grid",
						Title:      "Core Metrics",
						DataSource: "repo_analysis",
						Position:   Position{X: 0, Y: 2, W: 12, H: 3},
					},
					{
						Type:       "radar_chart",
						Title:      "Project Scores",
						DataSource: "repo_analysis",
						Position:   Position{X: 0, Y: 5, W: 6, H: 6},
					},
				},
			},
		},
	}
}

// JSON renders the config as indented JSON, the form DataEase imports
func (c Config) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal DataEase config: %w", err)
	}
	return data, nil
}
