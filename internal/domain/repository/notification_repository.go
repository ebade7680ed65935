package repository

import "github.com/avidelsur/distribuidora-api/internal/domain/entity"

// NotificationRepository define el puerto para el feed de avisos (best-effort).
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	List(limit, offset int) ([]*entity.Notification, error)
}
