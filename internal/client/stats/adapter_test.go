package statsclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opina-app/opina-backend/internal/dto"
	"github.com/opina-app/opina-backend/internal/errs"
	"github.com/opina-app/opina-backend/pkg/helpers"
)

func TestListCategorias(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/categorias" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]dto.Categoria{
			{ID: 1, Nombre: "Salud", Descripcion: "Servicios de salud"},
		})
	}))
	defer srv.Close()

	cats, err := NewAdapter(srv.URL).ListCategorias(context.Background())
	if err != nil {
		t.Fatalf("ListCategorias returned error: %v", err)
	}
	if len(cats) != 1 || cats[0].ID != 1 || cats[0].Nombre != "Salud" {
		t.Fatalf("unexpected categories: %+v", cats)
	}
}

func TestListPreguntasPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/preguntas/categoria/1" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]dto.Pregunta{
			{Identificador: "Q_1", Pregunta: "¿Cómo califica el servicio?", Opciones: []string{"Bien", "Mal"}},
		})
	}))
	defer srv.Close()

	qs, err := NewAdapter(srv.URL).ListPreguntas(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListPreguntas returned error: %v", err)
	}
	if len(qs) != 1 || qs[0].Identificador != "Q_1" {
		t.Fatalf("unexpected questions: %+v", qs)
	}
}

func TestGetRespuestasSendsFiltersAndDefaultsTipo(t *testing.T) {
	var gotFiltros dto.Filtros
	var gotTipo string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/respuestas/Q_1/filtros" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotTipo = r.URL.Query().Get("tipo")
		if err := json.NewDecoder(r.Body).Decode(&gotFiltros); err != nil {
			t.Fatalf("decode filters: %v", err)
		}
		json.NewEncoder(w).Encode(dto.RespuestasResponse{
			Identificador: "Q_1",
			Pregunta:      "¿Cómo califica el servicio?",
			TipoRespuesta: dto.TipoCantidad,
			Respuestas: []dto.RespuestaConteo{
				{Respuesta: "Bien", Cantidad: 30},
				{Respuesta: "Mal", Cantidad: 12},
			},
			TotalRespuestas: 42,
			Filtros:         gotFiltros,
		})
	}))
	defer srv.Close()

	filtros := dto.Filtros{Municipio: helpers.Ptr(2)}
	resp, err := NewAdapter(srv.URL).GetRespuestas(context.Background(), "Q_1", filtros, "")
	if err != nil {
		t.Fatalf("GetRespuestas returned error: %v", err)
	}

	if gotTipo != "cantidad" {
		t.Fatalf("tipo query param = %q, want cantidad", gotTipo)
	}
	if gotFiltros.Municipio == nil || *gotFiltros.Municipio != 2 {
		t.Fatalf("server did not receive municipio filter: %+v", gotFiltros)
	}
	if gotFiltros.Sexo != nil || gotFiltros.Edad != nil {
		t.Fatalf("absent filters were serialized: %+v", gotFiltros)
	}

	var sum float64
	for _, r := range resp.Respuestas {
		sum += r.Cantidad
	}
	if resp.TipoRespuesta == dto.TipoCantidad && int(sum) != resp.TotalRespuestas {
		t.Fatalf("counts sum to %v, total is %d", sum, resp.TotalRespuestas)
	}
}

func TestGetRespuestasRejectsUnknownTipo(t *testing.T) {
	_, err := NewAdapter("http://unused").GetRespuestas(context.Background(), "Q_1", dto.Filtros{}, "promedio")
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestErrorEmbedsHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewAdapter(srv.URL).ListCategorias(context.Background())
	svcErr, ok := err.(*errs.ExternalServiceError)
	if !ok {
		t.Fatalf("expected ExternalServiceError, got %T: %v", err, err)
	}
	if svcErr.Status != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", svcErr.Status, http.StatusBadGateway)
	}
	if !svcErr.Transient {
		t.Fatalf("5xx should be marked transient")
	}
}

func TestTransportErrorHasZeroStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := NewAdapter(srv.URL).ListCategorias(context.Background())
	svcErr, ok := err.(*errs.ExternalServiceError)
	if !ok {
		t.Fatalf("expected ExternalServiceError, got %T: %v", err, err)
	}
	if svcErr.Status != 0 {
		t.Fatalf("transport error should carry no HTTP status, got %d", svcErr.Status)
	}
}
