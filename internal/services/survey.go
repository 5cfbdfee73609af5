package services

import (
	"context"
	"sort"
	"strings"

	"github.com/opina-app/opina-backend/internal/dto"
	"github.com/opina-app/opina-backend/internal/models"
	"github.com/opina-app/opina-backend/pkg/logger"
)

type surveySSStore interface {
	GetAll(ctx context.Context) ([]*models.Survey, error)
	GetByID(ctx context.Context, id string) (*models.Survey, error)
}

type surveyService struct {
	store surveySSStore
}

func NewSurveyService(store surveySSStore) *surveyService {
	return &surveyService{store: store}
}

// FetchAll returns every valid survey in the feed. Store errors propagate:
// the feed screen needs to show a real failure.
func (s *surveyService) FetchAll(ctx context.Context) ([]*models.Survey, error) {
	return s.store.GetAll(ctx)
}

// FetchByID returns (nil, nil) for an unknown id.
func (s *surveyService) FetchByID(ctx context.Context, id string) (*models.Survey, error) {
	return s.store.GetByID(ctx, id)
}

// FetchByCategory filters the full feed by case-insensitive substring match
// on the category. Store errors are swallowed: callers of the derived
// queries only ever see empty results.
func (s *surveyService) FetchByCategory(ctx context.Context, substr string) []*models.Survey {
	surveys, err := s.store.GetAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("category filter degraded to empty result", "error", err)
		return nil
	}

	needle := strings.ToLower(substr)
	var out []*models.Survey
	for _, survey := range surveys {
		if strings.Contains(strings.ToLower(survey.Category), needle) {
			out = append(out, survey)
		}
	}
	return out
}

// ListCategories returns the distinct categories across all surveys,
// lexicographically sorted. Store errors degrade to an empty list.
func (s *surveyService) ListCategories(ctx context.Context) []string {
	surveys, err := s.store.GetAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("category list degraded to empty result", "error", err)
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, survey := range surveys {
		if !seen[survey.Category] {
			seen[survey.Category] = true
			out = append(out, survey.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Stats counts surveys, distinct categories and distinct chart types over a
// full re-fetch. Store errors degrade to zero counts.
func (s *surveyService) Stats(ctx context.Context) dto.SurveyStats {
	surveys, err := s.store.GetAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("survey stats degraded to zero counts", "error", err)
		return dto.SurveyStats{}
	}

	categories := make(map[string]bool)
	chartTypes := make(map[models.ChartType]bool)
	for _, survey := range surveys {
		categories[survey.Category] = true
		chartTypes[survey.ChartType] = true
	}

	return dto.SurveyStats{
		TotalSurveys:       len(surveys),
		DistinctCategories: len(categories),
		DistinctChartTypes: len(chartTypes),
	}
}
