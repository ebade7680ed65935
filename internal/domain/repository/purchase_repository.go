package repository

import "github.com/avidelsur/distribuidora-api/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para compras.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateDetail(detail *entity.PurchaseDetail) error
	GetByID(id string) (*entity.Purchase, error)
	// UpdateReceiptPath guarda la ruta del comprobante PDF (fuera de la tx).
	UpdateReceiptPath(id, path string) error
}
