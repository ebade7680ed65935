package repository

import "github.com/avidelsur/distribuidora-api/internal/domain/entity"

// SiloRepository define el puerto de persistencia para silos.
type SiloRepository interface {
	Create(silo *entity.Silo) error
	GetByID(id string) (*entity.Silo, error)
	GetForUpdate(id string) (*entity.Silo, error)
	Update(silo *entity.Silo) error
	List() ([]*entity.Silo, error)
}
