// Package repo implements the data persistence layer for the audit trail,
// backed by GORM. This file provides the repository function for the
// ConsultaAudit model.
//
// The repository follows a "thin" approach: it performs the insert and
// nothing else. The best-effort semantics (log-and-swallow on failure) live
// in the service layer, which owns the decision that an audit failure must
// never reach the caller.
//
// All values travel as bound parameters through GORM; no SQL is ever built
// by string concatenation, so special characters in the CUIT or in the
// serialized result cannot alter the statement.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/padronws/go-cuit-backend/internal/domain"
)

// CreateAudit inserts one audit row recording a completed lookup.
//
// cuit is stored exactly as the caller supplied it; resultado is the JSON
// serialization of the extracted Persona; at is the completion instant.
// Rows are append-only: nothing in this system updates or deletes them.
//
// On success, it returns nil. On failure, it returns the DB error.
func CreateAudit(ctx context.Context, db *gorm.DB, cuit, resultado string, at time.Time) error {
	row := &domain.ConsultaAudit{
		ID:            uuid.NewString(),
		CUIT:          cuit,
		Resultado:     resultado,
		FechaConsulta: at.UTC(),
	}
	return db.WithContext(ctx).Create(row).Error
}
