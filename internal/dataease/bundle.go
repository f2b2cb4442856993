package dataease

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/andrewsame/shaishaile/internal/domain/analysis"
)

// APITestExample is one ready-to-run request in the sample data file
type APITestExample struct {
	Method string      `json:"method"`
	URL    string      `json:"url"`
	Body   interface{} `json:"body"`
}

// SampleData is the example payload set written next to the config so
// dashboard builders can test their data sources before wiring widgets
type SampleData struct {
	ExampleRepositories []string                  `json:"example_repositories"`
	APITestExamples     map[string]APITestExample `json:"api_test_examples"`
}

// NewSampleData builds sample requests from the current catalog entries
func NewSampleData(analyticsBaseURL string, fullNames []string) SampleData {
	examples := map[string]APITestExample{}

	if len(fullNames) > 0 {
		parts := strings.SplitN(fullNames[0], "/", 2)
		if len(parts) == 2 {
			examples["analyze_single_repo"] = APITestExample{
				Method: "POST",
				URL:    analyticsBaseURL + "/analyze",
				Body: map[string]string{
					"owner": parts[0],
					"repo":  parts[1],
				},
			}
		}
	}

	batch := fullNames
	if len(batch) > 2 {
		batch = batch[:2]
	}
	if len(batch) > 0 {
		examples["batch_analyze"] = APITestExample{
			Method: "POST",
			URL:    analyticsBaseURL + "/batch_analyze",
			Body: map[string][]string{
				"repos": batch,
			},
		}

		criteria := analysis.DefaultCriteria()
		examples["project_screening"] = APITestExample{
			Method: "POST",
			URL:    analyticsBaseURL + "/screening",
			Body: map[string]interface{}{
				"repos": batch,
				"criteria": map[string]interface{}{
					"min_activity":      criteria.MinActivity,
					"min_openrank":      criteria.MinOpenRank,
					"max_response_days": criteria.MaxResponseDays,
					"min_contributors":  criteria.MinContributors,
				},
			},
		}
	}

	return SampleData{
		ExampleRepositories: fullNames,
		APITestExamples:     examples,
	}
}

// JSON renders the sample data as indented JSON
func (s SampleData) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sample data: %w", err)
	}
	return data, nil
}

// ImportGuide renders the README shipped with the bundle
func ImportGuide(analyticsBaseURL string) string {
	return fmt.Sprintf(`# DataEase Configuration Guide

## Files
- dataease_config.json - data sources, chart templates and dashboard layout
- sample_data.json - example repositories and ready-to-run API requests

## Contents
The configuration describes:

### 1. API data sources
- **Repository Analysis API**: detailed analysis of a single repository
- **Project Screening API**: filtering a repository list against thresholds

### 2. Chart templates
- Metric cards (core indicators)
- Radar chart (multi-dimension scores)

### 3. Dashboard layout
- Project overview dashboard

## Import steps

### Option A: import the JSON configuration
1. Log in to the DataEase platform
2. Open "Data Sources" -> "API Data Source"
3. Click "Import Configuration"
4. Select the dataease_config.json file
5. Follow the prompts to finish the import

### Option B: configure manually
1. Create the data sources from the API endpoints in the configuration
2. Build visualization components from the chart templates
3. Arrange them following the dashboard layout

## Requirements
The analytics API must be reachable:
- %s

Check its health endpoint before wiring widgets:
- %s/health

## Troubleshooting
1. Verify the analytics API is running
2. Verify network connectivity from the DataEase host
3. Verify your DataEase version supports API data sources
`, analyticsBaseURL, analyticsBaseURL)
}
