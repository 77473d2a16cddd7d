// Package domain defines the taxpayer lookup result and the audit
// persistence model. The audit model is mapped with GORM and backs the
// append-only trail of every completed padrón query.
package domain

import "time"

// ValorDesconocido is the placeholder stored for any field the padrón
// response does not include. Absence of a field is normal (for example,
// juridical persons carry no apellido) and is not an error.
const ValorDesconocido = "Desconocido"

// Persona is the flat record returned by a CUIT query: six independent
// optional fields extracted from the padrón A5 response. Fields never
// cross-validate each other; a field missing upstream is substituted with
// ValorDesconocido. JSON tags match the wire contract of the public API.
type Persona struct {
	Nombre               string `json:"nombre"`
	Apellido             string `json:"apellido"`
	Direccion            string `json:"direccion"`
	TipoPersona          string `json:"tipoPersona"`
	EstadoClave          string `json:"estadoClave"`
	DescripcionProvincia string `json:"descripcionProvincia"`
}

// DefaultPersona returns a Persona with every field set to the
// ValorDesconocido sentinel. Extraction starts from this value and
// overwrites whichever fields the response actually carries.
func DefaultPersona() Persona {
	return Persona{
		Nombre:               ValorDesconocido,
		Apellido:             ValorDesconocido,
		Direccion:            ValorDesconocido,
		TipoPersona:          ValorDesconocido,
		EstadoClave:          ValorDesconocido,
		DescripcionProvincia: ValorDesconocido,
	}
}

// ConsultaAudit is one row of the query audit trail. Exactly one row is
// written per completed lookup, immediately before responding to the
// caller; rows are never updated or deleted by this system.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - CUIT: the identifier as supplied by the caller, unvalidated.
//   - Resultado: the Persona serialized as JSON text.
//   - FechaConsulta: when the lookup completed.
type ConsultaAudit struct {
	ID            string    `json:"id"             gorm:"type:char(36);primaryKey"`
	CUIT          string    `json:"cuit"           gorm:"column:cuit;type:varchar(32);not null;index:idx_audit_cuit"`
	Resultado     string    `json:"resultado"      gorm:"type:text;not null"`
	FechaConsulta time.Time `json:"fecha_consulta" gorm:"not null;index"`
}

// TableName returns the database table name for ConsultaAudit.
func (ConsultaAudit) TableName() string { return "auditoria_consultas" }
