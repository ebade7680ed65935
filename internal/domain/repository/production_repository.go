package repository

import "github.com/avidelsur/distribuidora-api/internal/domain/entity"

// ProductionRepository define el puerto de persistencia para elaboraciones.
type ProductionRepository interface {
	Create(production *entity.Production) error
	CreateIngredient(ingredient *entity.ProductionIngredient) error
	List(limit, offset int) ([]*entity.Production, error)
}
