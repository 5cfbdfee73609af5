package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/opina-app/opina-backend/internal/dto"
	"github.com/opina-app/opina-backend/internal/errs"
	"github.com/opina-app/opina-backend/internal/models"
	"github.com/opina-app/opina-backend/pkg/helpers"
	"github.com/opina-app/opina-backend/pkg/logger"
)

type narrativeClient interface {
	GenerateContent(ctx context.Context, req dto.VertexGenerateRequest) (dto.VertexGenerateResponse, error)
}

type reportSurveyStore interface {
	GetByID(ctx context.Context, id string) (*models.Survey, error)
	UpdateReport(ctx context.Context, id, report string) error
}

type reportService struct {
	vertex    narrativeClient // nil disables the model; the template is used instead
	store     reportSurveyStore
	maxTokens int32
	group     singleflight.Group
}

func NewReportService(vertex narrativeClient, store reportSurveyStore, maxTokens int32) *reportService {
	return &reportService{
		vertex:    vertex,
		store:     store,
		maxTokens: maxTokens,
	}
}

// GetOrGenerate returns the survey's cached narrative, generating and
// best-effort persisting one if the cache is cold. Persistence failures are
// logged and swallowed; the fresh text still goes back to the caller.
// Concurrent cold-cache calls for the same survey share one generation.
func (s *reportService) GetOrGenerate(ctx context.Context, surveyID string) (dto.ReportResponse, error) {
	log := logger.FromContext(ctx)

	survey, err := s.store.GetByID(ctx, surveyID)
	if err != nil {
		return dto.ReportResponse{}, err
	}
	if survey == nil {
		return dto.ReportResponse{}, errs.NewNotFoundError("survey not found")
	}

	if strings.TrimSpace(survey.Report) != "" {
		return dto.ReportResponse{Report: survey.Report, Cached: true}, nil
	}

	text, err, _ := s.group.Do(surveyID, func() (interface{}, error) {
		generated, err := s.generate(ctx, survey)
		if err != nil {
			return nil, err
		}

		if err := s.store.UpdateReport(ctx, surveyID, generated); err != nil {
			log.Warn("report persist failed, returning unsaved text", "survey_id", surveyID, "error", err)
		}
		return generated, nil
	})
	if err != nil {
		return dto.ReportResponse{}, err
	}

	log.Info("report generated", "survey_id", surveyID)
	return dto.ReportResponse{Report: text.(string)}, nil
}

func (s *reportService) generate(ctx context.Context, survey *models.Survey) (string, error) {
	if s.vertex == nil {
		return templateReport(survey), nil
	}

	resp, err := s.vertex.GenerateContent(ctx, dto.VertexGenerateRequest{
		System:          reportSystemPrompt,
		UserMessage:     reportPrompt(survey),
		MaxOutputTokens: helpers.Ptr(s.maxTokens),
	})
	if err != nil {
		if _, ok := err.(*errs.ExternalServiceError); ok {
			return "", err
		}
		return "", errs.NewExternalServiceError("narrative", "narrative generation failed", 0, err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", errs.NewExternalServiceError("narrative", "narrative provider returned no text", 0, nil)
	}
	return resp.Text, nil
}

const reportSystemPrompt = "Eres un analista de encuestas de satisfacción ciudadana. " +
	"Escribe informes breves en español, en Markdown, con un tono neutral y claro. " +
	"Describe únicamente los datos proporcionados; no inventes cifras."

func reportPrompt(survey *models.Survey) string {
	data, err := json.Marshal(survey.ChartData)
	if err != nil {
		data = []byte("{}")
	}

	var b strings.Builder
	b.WriteString("Redacta un informe narrativo de los resultados de esta encuesta.\n\n")
	fmt.Fprintf(&b, "Título: %s\n", survey.Title)
	fmt.Fprintf(&b, "Categoría: %s\n", survey.Category)
	fmt.Fprintf(&b, "Pregunta: %s\n", survey.Question)
	fmt.Fprintf(&b, "Tipo de gráfica: %s\n", survey.ChartType)
	fmt.Fprintf(&b, "Datos: %s\n", data)
	return b.String()
}

// templateReport is the canned fallback used when the model is feature-
// flagged off. Deterministic on purpose.
func templateReport(survey *models.Survey) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", survey.Title)
	fmt.Fprintf(&b, "**Categoría:** %s\n\n", survey.Category)
	fmt.Fprintf(&b, "**Pregunta:** %s\n\n", survey.Question)
	b.WriteString(survey.Description)
	b.WriteString("\n\nConsulta la gráfica adjunta para el detalle de los resultados.\n")
	return b.String()
}
