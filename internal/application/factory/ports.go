package factory

import (
	"context"

	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de la fábrica de alimento.
type TxRunner interface {
	RunFactory(ctx context.Context, fn func(
		siloRepo repository.SiloRepository,
		productionRepo repository.ProductionRepository,
	) error) error
}
