package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/opina-app/opina-backend/internal/dto"
	"github.com/opina-app/opina-backend/internal/errs"
	"github.com/opina-app/opina-backend/internal/response"
)

type StatsClient interface {
	ListCategorias(ctx context.Context) ([]dto.Categoria, error)
	ListPreguntas(ctx context.Context, categoriaID int) ([]dto.Pregunta, error)
	GetRespuestas(ctx context.Context, preguntaID string, filtros dto.Filtros, tipo dto.TipoRespuesta) (dto.RespuestasResponse, error)
}

type statsHandlers struct {
	ResponseHandler response.ResponseHandler
	Stats           StatsClient
}

func NewStatsHandlers(deps *Deps) *statsHandlers {
	return &statsHandlers{
		ResponseHandler: deps.ResponseHandler,
		Stats:           deps.StatsClient,
	}
}

func (h *statsHandlers) StatsRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/categorias", h.Categorias)
	r.Get("/preguntas/categoria/{categoriaId}", h.Preguntas)
	r.Post("/respuestas/{preguntaId}/filtros", h.Respuestas)
	return r
}

func (h *statsHandlers) Categorias(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Stats.ListCategorias(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, cats)
}

func (h *statsHandlers) Preguntas(w http.ResponseWriter, r *http.Request) {
	categoriaID, err := strconv.Atoi(chi.URLParam(r, "categoriaId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("El identificador de categoría debe ser numérico."))
		return
	}

	preguntas, err := h.Stats.ListPreguntas(r.Context(), categoriaID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, preguntas)
}

// Respuestas forwards the filter set to the statistics API. An empty body
// means an unconstrained query; tipo defaults to cantidad downstream.
func (h *statsHandlers) Respuestas(w http.ResponseWriter, r *http.Request) {
	preguntaID := chi.URLParam(r, "preguntaId")
	tipo := dto.TipoRespuesta(r.URL.Query().Get("tipo"))

	var filtros dto.Filtros
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&filtros); err != nil {
			h.ResponseHandler.HandleError(w, r, errs.NewValidationError("Los filtros no son válidos."))
			return
		}
	}

	resp, err := h.Stats.GetRespuestas(r.Context(), preguntaID, filtros, tipo)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}
