package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opina-app/opina-backend/internal/dto"
	"github.com/opina-app/opina-backend/internal/errs"
	"github.com/opina-app/opina-backend/internal/models"
)

type ReportService interface {
	GetOrGenerate(ctx context.Context, surveyID string) (dto.ReportResponse, error)
}

type ExportService interface {
	BuildPDF(ctx context.Context, survey *models.Survey, chartPNG []byte) ([]byte, error)
}

// Report returns the cached narrative for a survey, generating it on a cold
// cache. Generation failures surface so the app can offer a retry.
func (h *surveyHandlers) Report(w http.ResponseWriter, r *http.Request) {
	surveyID := chi.URLParam(r, "surveyId")
	resp, err := h.ReportSvc.GetOrGenerate(r.Context(), surveyID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

// Export renders the survey and its narrative into a PDF. The chart snapshot
// is rendered on-device and arrives as base64 PNG in the request body.
func (h *surveyHandlers) Export(w http.ResponseWriter, r *http.Request) {
	surveyID := chi.URLParam(r, "surveyId")

	var body dto.ExportRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.ResponseHandler.HandleError(w, r, errs.NewValidationError("El cuerpo de la solicitud no es válido."))
			return
		}
	}

	var chartPNG []byte
	if body.ChartImage != "" {
		decoded, err := base64.StdEncoding.DecodeString(body.ChartImage)
		if err != nil {
			h.ResponseHandler.HandleError(w, r, errs.NewValidationError("La imagen de la gráfica no es válida."))
			return
		}
		chartPNG = decoded
	}

	survey, err := h.SurveySvc.FetchByID(r.Context(), surveyID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if survey == nil {
		h.ResponseHandler.HandleError(w, r, errs.NewNotFoundError("La encuesta no existe."))
		return
	}

	report, err := h.ReportSvc.GetOrGenerate(r.Context(), surveyID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	survey.Report = report.Report

	pdf, err := h.ExportSvc.BuildPDF(r.Context(), survey, chartPNG)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="informe.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
