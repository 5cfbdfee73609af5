package dto

// Wire types for the external statistics API. Field names follow that API's
// Spanish JSON contract and must not be renamed.

type Categoria struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

type Pregunta struct {
	Identificador string   `json:"identificador"`
	Pregunta      string   `json:"pregunta"`
	Categoria     string   `json:"categoria,omitempty"`
	Opciones      []string `json:"opciones,omitempty"`
}

// EdadRange bounds respondent age; either side may be open.
type EdadRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// Filtros is the sparse demographic constraint set sent as the request body
// of a filtered-answers query. A nil field means unconstrained. Never
// persisted anywhere.
type Filtros struct {
	CalidadVida *int       `json:"calidad_vida,omitempty"`
	Municipio   *int       `json:"municipio,omitempty"`
	Sexo        *int       `json:"sexo,omitempty"`
	Edad        *EdadRange `json:"edad,omitempty"`
	Escolaridad *int       `json:"escolaridad,omitempty"`
	NSE         *int       `json:"nse,omitempty"`
}

type TipoRespuesta string

const (
	TipoCantidad   TipoRespuesta = "cantidad"
	TipoPorcentaje TipoRespuesta = "porcentaje"
)

func (t TipoRespuesta) Known() bool {
	return t == TipoCantidad || t == TipoPorcentaje
}

// RespuestaConteo is one labeled value in an aggregation: a respondent count
// in cantidad mode, a percentage in porcentaje mode.
type RespuestaConteo struct {
	Respuesta string  `json:"respuesta"`
	Cantidad  float64 `json:"cantidad"`
}

type RespuestasResponse struct {
	Identificador   string            `json:"identificador"`
	Pregunta        string            `json:"pregunta"`
	TipoRespuesta   TipoRespuesta     `json:"tipo_respuesta"`
	Respuestas      []RespuestaConteo `json:"respuestas"`
	TotalRespuestas int               `json:"total_respuestas"`
	Filtros         Filtros           `json:"filtros"`
}
