// Consulta HTTP handler.
//
// This file exposes the single public endpoint of the service:
//   - POST /api/consultar-cuit
//
// The handler is transport-thin: it validates input, calls the consulta
// service, and translates the result into an HTTP response. Any upstream or
// parsing failure collapses into one generic 500 body so that callers never
// see internal detail; the specifics go to the server log.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/padronws/go-cuit-backend/internal/domain"
)

// MsgErrorAFIP is the generic failure message returned to callers when the
// lookup cannot be completed, whatever the underlying cause.
const MsgErrorAFIP = "Error al consultar los datos en AFIP."

// ConsultaService defines the lookup operation consumed by the handler.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ConsultaService interface {
	// Consultar runs one full query: lookup, extraction, audit.
	Consultar(ctx context.Context, cuit string) (domain.Persona, error)
}

// Handlers groups the HTTP endpoints of the consulta API.
type Handlers struct {
	consultaSvc ConsultaService
}

// New constructs a Handlers instance bound to the given service.
func New(consultaSvc ConsultaService) *Handlers {
	return &Handlers{consultaSvc: consultaSvc}
}

// ConsultarCUITRequest is the JSON payload for a CUIT query.
type ConsultarCUITRequest struct {
	// CUIT is the tax identifier to look up. It is passed through to the
	// padrón service as-is; no format validation beyond non-emptiness.
	CUIT string `json:"cuit" binding:"required"`
}

// ConsultarCUIT handles POST /api/consultar-cuit.
//
// Responses:
//   - 200 with the six-field Persona on success (fields missing upstream
//     arrive as the "Desconocido" sentinel).
//   - 400 with an error envelope when the body is not valid JSON or the
//     cuit field is missing/blank.
//   - 500 with {"error": MsgErrorAFIP} when the upstream call or the
//     response parsing fails.
func (h *Handlers) ConsultarCUIT(c *gin.Context) {
	var req ConsultarCUITRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "cuit is required")
		return
	}
	cuit := strings.TrimSpace(req.CUIT)
	if cuit == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "cuit is required")
		return
	}

	persona, err := h.consultaSvc.Consultar(c.Request.Context(), cuit)
	if err != nil {
		// Single generic failure shape regardless of cause; detail is logged
		// by the service and by failLegacy.
		failLegacy(c, http.StatusInternalServerError, MsgErrorAFIP)
		return
	}

	ok(c, http.StatusOK, persona)
}
