package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/opina-app/opina-backend/internal/dto"
	"github.com/opina-app/opina-backend/internal/errs"
	"github.com/opina-app/opina-backend/pkg/helpers"
)

type stubStatsClient struct {
	categorias []dto.Categoria
	preguntas  []dto.Pregunta
	respuestas dto.RespuestasResponse
	err        error

	gotCategoriaID int
	gotPreguntaID  string
	gotFiltros     dto.Filtros
	gotTipo        dto.TipoRespuesta
}

func (s *stubStatsClient) ListCategorias(ctx context.Context) ([]dto.Categoria, error) {
	return s.categorias, s.err
}

func (s *stubStatsClient) ListPreguntas(ctx context.Context, categoriaID int) ([]dto.Pregunta, error) {
	s.gotCategoriaID = categoriaID
	return s.preguntas, s.err
}

func (s *stubStatsClient) GetRespuestas(ctx context.Context, preguntaID string, filtros dto.Filtros, tipo dto.TipoRespuesta) (dto.RespuestasResponse, error) {
	s.gotPreguntaID = preguntaID
	s.gotFiltros = filtros
	s.gotTipo = tipo
	return s.respuestas, s.err
}

// withURLParam attaches a chi route parameter so handlers can be exercised
// without a full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCategoriasSuccess(t *testing.T) {
	client := &stubStatsClient{categorias: []dto.Categoria{{ID: 1, Nombre: "Seguridad"}}}
	resp := &stubResponseHandler{}

	h := NewStatsHandlers(&Deps{ResponseHandler: resp, StatsClient: client})

	rr := httptest.NewRecorder()
	h.Categorias(rr, httptest.NewRequest(http.MethodGet, "/stats/categorias", nil))

	cats, ok := resp.writeSuccessData.([]dto.Categoria)
	if !ok || len(cats) != 1 || cats[0].Nombre != "Seguridad" {
		t.Fatalf("unexpected payload: %#v", resp.writeSuccessData)
	}
}

func TestPreguntasParsesCategoriaID(t *testing.T) {
	client := &stubStatsClient{preguntas: []dto.Pregunta{{Identificador: "p1"}}}
	resp := &stubResponseHandler{}

	h := NewStatsHandlers(&Deps{ResponseHandler: resp, StatsClient: client})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/stats/preguntas/categoria/7", nil), "categoriaId", "7")
	rr := httptest.NewRecorder()
	h.Preguntas(rr, req)

	if client.gotCategoriaID != 7 {
		t.Fatalf("client received wrong categoria id: %d", client.gotCategoriaID)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("WriteSuccess not called with status 200")
	}
}

func TestPreguntasRejectsNonNumericID(t *testing.T) {
	client := &stubStatsClient{}
	resp := &stubResponseHandler{}

	h := NewStatsHandlers(&Deps{ResponseHandler: resp, StatsClient: client})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/stats/preguntas/categoria/abc", nil), "categoriaId", "abc")
	rr := httptest.NewRecorder()
	h.Preguntas(rr, req)

	var ve *errs.ValidationError
	if !resp.handleErrorCalled || !errors.As(resp.handleError, &ve) {
		t.Fatalf("expected ValidationError for non-numeric id, got %v", resp.handleError)
	}
}

func TestRespuestasForwardsFiltersAndTipo(t *testing.T) {
	client := &stubStatsClient{respuestas: dto.RespuestasResponse{TotalRespuestas: 10}}
	resp := &stubResponseHandler{}

	h := NewStatsHandlers(&Deps{ResponseHandler: resp, StatsClient: client})

	body := `{"municipio":19,"edad":{"min":18,"max":30}}`
	req := httptest.NewRequest(http.MethodPost, "/stats/respuestas/p1/filtros?tipo=porcentaje", strings.NewReader(body))
	req = withURLParam(req, "preguntaId", "p1")
	rr := httptest.NewRecorder()
	h.Respuestas(rr, req)

	if client.gotPreguntaID != "p1" {
		t.Fatalf("client received wrong pregunta id: %s", client.gotPreguntaID)
	}
	if client.gotTipo != dto.TipoPorcentaje {
		t.Fatalf("client received wrong tipo: %s", client.gotTipo)
	}
	if helpers.Value(client.gotFiltros.Municipio) != 19 {
		t.Fatalf("municipio filter not forwarded: %+v", client.gotFiltros)
	}
	if client.gotFiltros.Edad == nil || helpers.Value(client.gotFiltros.Edad.Min) != 18 || helpers.Value(client.gotFiltros.Edad.Max) != 30 {
		t.Fatalf("edad filter not forwarded: %+v", client.gotFiltros.Edad)
	}
	if client.gotFiltros.Sexo != nil {
		t.Fatalf("absent filters should stay nil")
	}
}

func TestRespuestasEmptyBodyMeansNoFilters(t *testing.T) {
	client := &stubStatsClient{}
	resp := &stubResponseHandler{}

	h := NewStatsHandlers(&Deps{ResponseHandler: resp, StatsClient: client})

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/stats/respuestas/p1/filtros", nil), "preguntaId", "p1")
	rr := httptest.NewRecorder()
	h.Respuestas(rr, req)

	if client.gotFiltros != (dto.Filtros{}) {
		t.Fatalf("expected zero filters, got %+v", client.gotFiltros)
	}
	if !resp.writeSuccessCalled {
		t.Fatalf("WriteSuccess should be called on empty body")
	}
}
