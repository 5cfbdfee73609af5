package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/opina-app/opina-backend/internal/models"
	"github.com/opina-app/opina-backend/pkg/helpers"
)

type stubSurveyStore struct {
	surveys     []*models.Survey
	getAllCalls int
	err         error
}

func (s *stubSurveyStore) GetAll(_ context.Context) ([]*models.Survey, error) {
	s.getAllCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.surveys, nil
}

func (s *stubSurveyStore) GetByID(_ context.Context, id string) (*models.Survey, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, survey := range s.surveys {
		if survey.ID == id {
			return survey, nil
		}
	}
	return nil, nil
}

func sampleSurveys() []*models.Survey {
	pie := &models.ChartData{Slices: []models.PieSlice{{Name: "Bien", Value: 30}}}
	bar := &models.ChartData{
		Labels:   []string{"Sí", "No"},
		Datasets: []models.ChartSeries{{Data: []float64{5, 2}}},
	}
	return []*models.Survey{
		{ID: "s1", Title: "Agua", Category: "Servicios Públicos", Question: "¿?", Description: "d", ChartType: models.ChartPie, ChartData: pie},
		{ID: "s2", Title: "Seguridad", Category: "Seguridad", Question: "¿?", Description: "d", ChartType: models.ChartBar, ChartData: bar},
		{ID: "s3", Title: "Alumbrado", Category: "Servicios Públicos", Question: "¿?", Description: "d", ChartType: models.ChartBar, ChartData: bar},
	}
}

func TestFetchAllPropagatesStoreError(t *testing.T) {
	store := &stubSurveyStore{err: errors.New("firestore down")}
	svc := NewSurveyService(store)

	_, err := svc.FetchAll(helpers.TestCtx())
	if err == nil {
		t.Fatalf("expected error from FetchAll")
	}
}

func TestFetchByIDUnknownIDReturnsAbsent(t *testing.T) {
	store := &stubSurveyStore{surveys: sampleSurveys()}
	svc := NewSurveyService(store)

	survey, err := svc.FetchByID(helpers.TestCtx(), "nope")
	if err != nil {
		t.Fatalf("FetchByID returned error: %v", err)
	}
	if survey != nil {
		t.Fatalf("expected absent survey, got %+v", survey)
	}
}

func TestFetchByCategorySubstringCaseInsensitive(t *testing.T) {
	store := &stubSurveyStore{surveys: sampleSurveys()}
	svc := NewSurveyService(store)

	got := svc.FetchByCategory(helpers.TestCtx(), "públicos")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	for _, survey := range got {
		if survey.Category != "Servicios Públicos" {
			t.Fatalf("unexpected match: %+v", survey)
		}
	}
}

func TestFetchByCategorySwallowsStoreError(t *testing.T) {
	store := &stubSurveyStore{err: errors.New("firestore down")}
	svc := NewSurveyService(store)

	got := svc.FetchByCategory(helpers.TestCtx(), "salud")
	if len(got) != 0 {
		t.Fatalf("expected empty result on store error, got %d", len(got))
	}
}

func TestListCategoriesSortedDistinct(t *testing.T) {
	store := &stubSurveyStore{surveys: sampleSurveys()}
	svc := NewSurveyService(store)

	got := svc.ListCategories(helpers.TestCtx())
	want := []string{"Seguridad", "Servicios Públicos"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
}

func TestListCategoriesSwallowsStoreError(t *testing.T) {
	store := &stubSurveyStore{err: errors.New("firestore down")}
	svc := NewSurveyService(store)

	got := svc.ListCategories(helpers.TestCtx())
	if len(got) != 0 {
		t.Fatalf("expected empty category list on store error, got %v", got)
	}
}

func TestStatsCounts(t *testing.T) {
	store := &stubSurveyStore{surveys: sampleSurveys()}
	svc := NewSurveyService(store)

	got := svc.Stats(helpers.TestCtx())
	if got.TotalSurveys != 3 || got.DistinctCategories != 2 || got.DistinctChartTypes != 2 {
		t.Fatalf("unexpected stats: %+v", got)
	}
	if store.getAllCalls != 1 {
		t.Fatalf("Stats fetched %d times, want 1", store.getAllCalls)
	}
}

func TestStatsSwallowsStoreError(t *testing.T) {
	store := &stubSurveyStore{err: errors.New("firestore down")}
	svc := NewSurveyService(store)

	got := svc.Stats(helpers.TestCtx())
	if got.TotalSurveys != 0 || got.DistinctCategories != 0 || got.DistinctChartTypes != 0 {
		t.Fatalf("expected zero stats on store error, got %+v", got)
	}
}
