// Package notify implementa el canal de avisos best-effort: escribe filas en
// notifications para el feed de la oficina. Nunca participa de la transacción
// de la operación que avisa; una falla se loguea y listo.
package notify

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/avidelsur/distribuidora-api/internal/application/ledger"
	"github.com/avidelsur/distribuidora-api/internal/application/sales"
	"github.com/avidelsur/distribuidora-api/internal/application/trips"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

var _ ledger.Notifier = (*Notifier)(nil)
var _ trips.Notifier = (*Notifier)(nil)
var _ sales.Notifier = (*Notifier)(nil)

// Notifier persiste avisos en la tabla notifications.
type Notifier struct {
	repo repository.NotificationRepository
}

// New construye el notificador.
func New(repo repository.NotificationRepository) *Notifier {
	return &Notifier{repo: repo}
}

// Notify guarda el aviso. Best-effort: el error solo se loguea.
func (n *Notifier) Notify(kind, message, userID string) {
	err := n.repo.Create(&entity.Notification{
		ID:        uuid.New().String(),
		Kind:      kind,
		Message:   message,
		UserID:    userID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("no se pudo guardar el aviso")
	}
}
