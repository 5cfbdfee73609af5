package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opina-app/opina-backend/internal/dto"
	"github.com/opina-app/opina-backend/internal/errs"
	"github.com/opina-app/opina-backend/internal/models"
	"github.com/opina-app/opina-backend/internal/response"
)

type SurveyService interface {
	FetchAll(ctx context.Context) ([]*models.Survey, error)
	FetchByID(ctx context.Context, id string) (*models.Survey, error)
	FetchByCategory(ctx context.Context, substr string) []*models.Survey
	ListCategories(ctx context.Context) []string
	Stats(ctx context.Context) dto.SurveyStats
}

type surveyHandlers struct {
	ResponseHandler response.ResponseHandler
	SurveySvc       SurveyService
	ReportSvc       ReportService
	ExportSvc       ExportService
}

func NewSurveyHandlers(deps *Deps) *surveyHandlers {
	return &surveyHandlers{
		ResponseHandler: deps.ResponseHandler,
		SurveySvc:       deps.SurveySvc,
		ReportSvc:       deps.ReportSvc,
		ExportSvc:       deps.ExportSvc,
	}
}

func (h *surveyHandlers) SurveyRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/categories", h.Categories) // must be before /{surveyId}
	r.Get("/stats", h.Stats)
	r.Get("/search", h.Search)
	r.Get("/{surveyId}", h.Get)
	r.Post("/{surveyId}/report", h.Report)
	r.Post("/{surveyId}/export", h.Export)
	return r
}

func (h *surveyHandlers) List(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.SurveySvc.FetchAll(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, surveys)
}

func (h *surveyHandlers) Get(w http.ResponseWriter, r *http.Request) {
	surveyID := chi.URLParam(r, "surveyId")
	survey, err := h.SurveySvc.FetchByID(r.Context(), surveyID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if survey == nil {
		h.ResponseHandler.HandleError(w, r, errs.NewNotFoundError("La encuesta no existe."))
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, survey)
}

// Search filters surveys by category substring. The underlying query never
// errors; a store failure just yields an empty list.
func (h *surveyHandlers) Search(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("El parámetro category es obligatorio."))
		return
	}
	surveys := h.SurveySvc.FetchByCategory(r.Context(), category)
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, surveys)
}

func (h *surveyHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.SurveySvc.ListCategories(r.Context()))
}

func (h *surveyHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.SurveySvc.Stats(r.Context()))
}
