package services

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/opina-app/opina-backend/internal/models"
	"github.com/opina-app/opina-backend/pkg/helpers"
)

func exportSurvey() *models.Survey {
	return &models.Survey{
		ID:          "s1",
		Title:       "Calidad del agua",
		Category:    "Servicios",
		Question:    "¿Cómo califica el servicio de agua?",
		Description: "Resultados 2025",
		ChartType:   models.ChartPie,
		ChartData:   &models.ChartData{Slices: []models.PieSlice{{Name: "Bien", Value: 30}}},
		Report:      "## Informe\nLa mayoría calificó el servicio como bueno.",
	}
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestBuildPDFWithoutChart(t *testing.T) {
	svc := NewExportService()

	out, err := svc.BuildPDF(helpers.TestCtx(), exportSurvey(), nil)
	if err != nil {
		t.Fatalf("BuildPDF returned error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", out[:min(8, len(out))])
	}
}

func TestBuildPDFWithChartSnapshot(t *testing.T) {
	svc := NewExportService()

	out, err := svc.BuildPDF(helpers.TestCtx(), exportSurvey(), tinyPNG(t))
	if err != nil {
		t.Fatalf("BuildPDF with chart returned error: %v", err)
	}
	if len(out) == 0 || !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}
