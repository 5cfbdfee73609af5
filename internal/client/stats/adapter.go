package statsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/opina-app/opina-backend/internal/dto"
	"github.com/opina-app/opina-backend/internal/errs"
)

const serviceName = "stats"

// Adapter is the client for the hosted statistics REST API. Every call is
// stateless and idempotent; there is no caching and no retry, callers
// re-fetch on demand.
type Adapter struct {
	baseURL string
	client  *http.Client
}

func NewAdapter(baseURL string) *Adapter {
	return &Adapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
	}
}

func (a *Adapter) ListCategorias(ctx context.Context) ([]dto.Categoria, error) {
	var out []dto.Categoria
	if err := a.do(ctx, http.MethodGet, "/categorias", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Adapter) ListPreguntas(ctx context.Context, categoriaID int) ([]dto.Pregunta, error) {
	var out []dto.Pregunta
	path := fmt.Sprintf("/preguntas/categoria/%d", categoriaID)
	if err := a.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRespuestas posts the filter set for a question and returns the
// aggregation. tipo defaults to cantidad when unset.
func (a *Adapter) GetRespuestas(ctx context.Context, preguntaID string, filtros dto.Filtros, tipo dto.TipoRespuesta) (dto.RespuestasResponse, error) {
	var out dto.RespuestasResponse
	if tipo == "" {
		tipo = dto.TipoCantidad
	}
	if !tipo.Known() {
		return out, errs.NewValidationError(fmt.Sprintf("tipo de respuesta no válido: %s", tipo))
	}

	path := fmt.Sprintf("/respuestas/%s/filtros?tipo=%s", url.PathEscape(preguntaID), tipo)
	if err := a.do(ctx, http.MethodPost, path, filtros, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (a *Adapter) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return errs.NewExternalServiceError(serviceName, "statistics API unreachable", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("statistics API returned %d for %s %s", resp.StatusCode, method, path)
		return errs.NewExternalServiceError(serviceName, msg, resp.StatusCode, nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.NewExternalServiceError(serviceName, "statistics API returned malformed JSON", resp.StatusCode, err)
	}
	return nil
}
