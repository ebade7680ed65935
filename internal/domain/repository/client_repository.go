package repository

import "github.com/avidelsur/distribuidora-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para clientes.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetForUpdate(id string) (*entity.Client, error)
	Update(client *entity.Client) error
	// SearchByName busca por nombre con folding de acentos (pkg/normalize).
	SearchByName(name string, limit int) ([]*entity.Client, error)
}
