package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/opina-app/opina-backend/internal/errs"
	"github.com/opina-app/opina-backend/internal/models"
	"github.com/opina-app/opina-backend/pkg/logger"
)

type exportService struct{}

func NewExportService() *exportService {
	return &exportService{}
}

// BuildPDF renders the survey's title, category, question, narrative report
// and an optional client-rendered chart snapshot into a shareable PDF.
// chartPNG may be nil; the chart is drawn on-device and only arrives here as
// a snapshot image.
func (s *exportService) BuildPDF(ctx context.Context, survey *models.Survey, chartPNG []byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("") // core fonts are cp1252; Spanish accents need translation
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(survey.Title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.MultiCell(0, 6, tr(fmt.Sprintf("Categoría: %s", survey.Category)), "", "L", false)
	pdf.MultiCell(0, 6, tr(survey.Question), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	if len(chartPNG) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("chart", opts, bytes.NewReader(chartPNG))
		pageW, _ := pdf.GetPageSize()
		left, _, right, _ := pdf.GetMargins()
		pdf.ImageOptions("chart", left, pdf.GetY(), pageW-left-right, 0, true, opts, 0, "")
		pdf.Ln(6)
	}

	if survey.Report != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(survey.Report), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		logger.FromContext(ctx).Error("pdf render failed", "survey_id", survey.ID, "error", err)
		return nil, errs.NewValidationError("no se pudo generar el PDF")
	}
	return buf.Bytes(), nil
}
