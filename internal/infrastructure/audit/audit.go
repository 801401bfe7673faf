// Package audit registra eventos administrativos (desactivaciones, purgas)
// como log estructurado. Un fallo aquí nunca aborta la operación principal;
// el caso de uso lo degrada a warning.
package audit

import (
	"github.com/rs/zerolog"
	"github.com/tu-usuario/resto-admin/internal/application/inventory"
)

var _ inventory.Auditor = (*LogAuditor)(nil)

// LogAuditor auditor sobre zerolog.
type LogAuditor struct {
	log zerolog.Logger
}

// NewLogAuditor construye el auditor.
func NewLogAuditor(log zerolog.Logger) *LogAuditor {
	return &LogAuditor{log: log}
}

// Audit emite el evento de auditoría.
func (a *LogAuditor) Audit(event, itemID, userID string) error {
	a.log.Info().
		Str("event", event).
		Str("item_id", itemID).
		Str("user_id", userID).
		Msg("auditoría")
	return nil
}
