// Package services – ConsultaService
//
// This file implements ConsultaService, the application-level component that
// owns one CUIT query end-to-end: call the padrón lookup, extract the
// taxpayer fields, write the audit row, return the result. The audit write
// is best-effort: its failure is logged and discarded, never surfaced to the
// caller. There is no cross-request state; every call is independent.
//
// Observability: Consultar is OpenTelemetry-instrumented; the span carries
// the queried CUIT.
package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/padronws/go-cuit-backend/internal/domain"
	"github.com/padronws/go-cuit-backend/internal/padron"
	"github.com/padronws/go-cuit-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// PersonaLookup abstracts the padrón client so the service can be tested
// against a fake upstream. *padron.Client satisfies it.
type PersonaLookup interface {
	// GetPersona returns the raw XML response for the given CUIT.
	GetPersona(ctx context.Context, cuit string) ([]byte, error)
}

// ConsultaService coordinates the lookup, extraction, and audit of one
// CUIT query. It is safe for concurrent use.
type ConsultaService struct {
	DB     *gorm.DB
	Lookup PersonaLookup
}

// Consultar performs a full query for cuit.
//
// Flow:
//  1. Query the padrón service; any transport or status failure maps to
//     ErrUpstream.
//  2. Extract the six fields; a malformed body maps to ErrBadResponse.
//     Missing fields are not failures — they default to the sentinel.
//  3. Write the audit row with the serialized result. The write is
//     attempted exactly once per successful extraction (even when every
//     field defaulted) and never on the failure paths above; a write
//     failure is logged and swallowed.
//
// On success the extracted Persona is returned; on failure the zero Persona
// and one of the service sentinel errors.
func (s *ConsultaService) Consultar(ctx context.Context, cuit string) (domain.Persona, error) {
	tr := otel.Tracer("services/ConsultaService")
	ctx, span := tr.Start(ctx, "Consultar",
		trace.WithAttributes(attribute.String("cuit", cuit)),
	)
	defer span.End()

	body, err := s.Lookup.GetPersona(ctx, cuit)
	if err != nil {
		log.Error().Err(err).Str("cuit", cuit).Msg("padron lookup failed")
		return domain.Persona{}, ErrUpstream
	}

	persona, err := padron.ExtractPersona(body)
	if err != nil {
		log.Error().Err(err).Str("cuit", cuit).Msg("padron response unparseable")
		return domain.Persona{}, ErrBadResponse
	}

	s.audit(ctx, cuit, persona)

	return persona, nil
}

// audit serializes the result and writes the audit row. Failures are logged
// and discarded so that a broken store can never block a caller from
// receiving their lookup result.
func (s *ConsultaService) audit(ctx context.Context, cuit string, persona domain.Persona) {
	tr := otel.Tracer("services/ConsultaService")
	ctx, span := tr.Start(ctx, "audit")
	defer span.End()

	// The process stays up without a store; lookups simply go unaudited.
	if s.DB == nil {
		log.Error().Str("cuit", cuit).Msg("audit: no database available")
		return
	}

	resultado, err := json.Marshal(persona)
	if err != nil {
		log.Error().Err(err).Str("cuit", cuit).Msg("audit: serialize result failed")
		return
	}
	if err := repo.CreateAudit(ctx, s.DB, cuit, string(resultado), time.Now()); err != nil {
		log.Error().Err(err).Str("cuit", cuit).Msg("audit: insert failed")
		return
	}
	log.Debug().Str("cuit", cuit).Msg("audit: row written")
}
