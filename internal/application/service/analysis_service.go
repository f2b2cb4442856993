package service

import (
	"context"
	"fmt"

	"github.com/andrewsame/shaishaile/internal/application/dto"
	"github.com/andrewsame/shaishaile/internal/domain/analysis"
	"github.com/andrewsame/shaishaile/internal/domain/catalog"
	"github.com/andrewsame/shaishaile/internal/metrics"
)

// AnalysisService validates analysis requests and forwards them to the
// analytics API
type AnalysisService struct {
	analyticsService analysis.Service
	maxBatch         int
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(analyticsService analysis.Service, maxBatch int) *AnalysisService {
	return &AnalysisService{
		analyticsService: analyticsService,
		maxBatch:         maxBatch,
	}
}

// Analyze requests an analysis of a single repository
func (s *AnalysisService) Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalysisResponse, error) {
	name, err := catalog.JoinFullName(req.Owner, req.Repo)
	if err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues("analyze", "invalid").Inc()
		return nil, err
	}

	report, err := s.analyticsService.StartAnalysis(ctx, name)
	if err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues("analyze", "failure").Inc()
		return nil, fmt.Errorf("failed to analyze %s: %w", name, err)
	}

	metrics.AnalysisRequestsTotal.WithLabelValues("analyze", "success").Inc()
	return toAnalysisDTO(report), nil
}

// BatchAnalyze requests analyses of several repositories at once
func (s *AnalysisService) BatchAnalyze(ctx context.Context, req *dto.BatchAnalyzeRequest) (*dto.AnalysisResponse, error) {
	names, err := s.parseRepoList(req.Repos)
	if err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues("batch", "invalid").Inc()
		return nil, err
	}

	report, err := s.analyticsService.BatchAnalyze(ctx, names)
	if err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues("batch", "failure").Inc()
		return nil, fmt.Errorf("failed to batch analyze: %w", err)
	}

	metrics.AnalysisRequestsTotal.WithLabelValues("batch", "success").Inc()
	return toAnalysisDTO(report), nil
}

// Screen filters repositories against screening criteria. Missing
// criteria fields fall back to the defaults.
func (s *AnalysisService) Screen(ctx context.Context, req *dto.ScreeningRequest) (*dto.AnalysisResponse, error) {
	names, err := s.parseRepoList(req.Repos)
	if err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues("screening", "invalid").Inc()
		return nil, err
	}

	criteria := analysis.DefaultCriteria()
	if req.Criteria != nil {
		criteria = analysis.Criteria{
			MinActivity:     req.Criteria.MinActivity,
			MinOpenRank:     req.Criteria.MinOpenRank,
			MaxResponseDays: req.Criteria.MaxResponseDays,
			MinContributors: req.Criteria.MinContributors,
		}.Normalize()
	}

	report, err := s.analyticsService.Screen(ctx, names, criteria)
	if err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues("screening", "failure").Inc()
		return nil, fmt.Errorf("failed to screen repositories: %w", err)
	}

	metrics.AnalysisRequestsTotal.WithLabelValues("screening", "success").Inc()
	return toAnalysisDTO(report), nil
}

// Health probes the analytics API
func (s *AnalysisService) Health(ctx context.Context) error {
	return s.analyticsService.Health(ctx)
}

// parseRepoList validates a list of "owner/repo" strings against the
// batch size limit
func (s *AnalysisService) parseRepoList(repos []string) ([]catalog.FullName, error) {
	if len(repos) == 0 {
		return nil, analysis.ErrNoRepos
	}
	if len(repos) > s.maxBatch {
		return nil, fmt.Errorf("%w: got %d, limit is %d", analysis.ErrTooManyRepos, len(repos), s.maxBatch)
	}

	names := make([]catalog.FullName, 0, len(repos))
	for _, repo := range repos {
		name, err := catalog.NewFullName(repo)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, nil
}

func toAnalysisDTO(report *analysis.Report) *dto.AnalysisResponse {
	return &dto.AnalysisResponse{
		Success: report.Success,
		Data:    report.Data,
		Error:   report.Error,
	}
}
