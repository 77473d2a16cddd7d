// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across endpoints:
// a structured error envelope, consistent JSON serialization, and helpers
// that guarantee uniform responses for both success and failure cases.
//
// Conventions:
//   - Envelope error responses return an ErrorResponse with a stable `code`.
//   - `fail()` centralizes error logging and formatting, ensuring 5xx
//     responses are logged with request context for observability.
//   - The consulta endpoint deliberately answers failures with the legacy
//     {"error": message} body instead of the envelope, because the deployed
//     browser client branches on that exact shape.
//
// Example envelope error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "route not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/padronws/go-cuit-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by non-consulta
// endpoints (fallbacks, validation failures, recovered panics).
//
// Fields:
//   - RequestID: optional correlation ID, echoed from X-Request-ID, used to
//     correlate server logs with client-side errors.
//   - Code: a stable, machine-readable string (see errors.go constants).
//   - Message: a human-readable description, safe for display to users.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code"`
	// Human-readable message (safe to show to users)
	Message string `json:"message"`
}

// LegacyErrorResponse is the failure body of the consulta endpoint:
// the single generic message the browser client displays verbatim.
type LegacyErrorResponse struct {
	Error string `json:"error"`
}

// fail aborts the request with a structured error and logs server-side errors.
//
// It constructs an ErrorResponse, writes it as JSON with the given HTTP
// status, and calls gin.Context.AbortWithStatusJSON to stop further
// processing. Server errors (>=500) are logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// External packages (e.g. router setup) call Fail to return consistent error
// envelopes without depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failLegacy aborts the request with the legacy {"error": message} body used
// by the consulta endpoint. The failure is always logged server-side with
// the request-scoped logger; the caller only ever sees the generic message.
func failLegacy(c *gin.Context, status int, msg string) {
	lg := middleware.LoggerFrom(c)
	lg.Error().
		Int("status", status).
		Str("message", msg).
		Msg("consulta error")

	c.AbortWithStatusJSON(status, LegacyErrorResponse{Error: msg})
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
