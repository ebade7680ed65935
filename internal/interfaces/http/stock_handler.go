package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/avidelsur/distribuidora-api/internal/application/dto"
	"github.com/avidelsur/distribuidora-api/internal/application/ledger"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
)

// StockHandler maneja el libro de movimientos, cargas de vehículo, mermas y
// compras a proveedor (protegido).
type StockHandler struct {
	applyUC    *ledger.ApplyMovementUseCase
	loadUC     *ledger.LoadVehicleUseCase
	purchaseUC *ledger.RegisterPurchaseUseCase
	queryUC    *ledger.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	applyUC *ledger.ApplyMovementUseCase,
	loadUC *ledger.LoadVehicleUseCase,
	purchaseUC *ledger.RegisterPurchaseUseCase,
	queryUC *ledger.QueryUseCase,
) *StockHandler {
	return &StockHandler{applyUC: applyUC, loadUC: loadUC, purchaseUC: purchaseUC, queryUC: queryUC}
}

// RegisterMovement asienta un movimiento manual (AJUSTE_INVENTARIO y similares).
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if !parseBody(c, &in) {
		return nil
	}
	id, err := h.applyUC.ApplyMovement(c.Context(), ledger.MovementInput{
		Type:      in.Type,
		ProductID: in.ProductID,
		VehicleID: in.VehicleID,
		Quantity:  in.Quantity,
		UserID:    GetUserID(c),
		Notes:     in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// LoadVehicle carga una camioneta desde el depósito central.
func (h *StockHandler) LoadVehicle(c *fiber.Ctx) error {
	var in dto.LoadVehicleRequest
	if !parseBody(c, &in) {
		return nil
	}
	items := make([]ledger.LoadItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, ledger.LoadItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	err := h.loadUC.LoadVehicle(c.Context(), ledger.LoadInput{
		VehicleID: c.Params("id"),
		Items:     items,
		UserID:    GetUserID(c),
		DriverID:  in.DriverID,
		Reload:    in.Reload,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "carga registrada"})
}

// RegisterSpoilage asienta una merma sobre un vehículo.
func (h *StockHandler) RegisterSpoilage(c *fiber.Ctx) error {
	var in dto.SpoilageRequest
	if !parseBody(c, &in) {
		return nil
	}
	id, err := h.applyUC.RegisterSpoilage(c.Context(), ledger.SpoilageInput{
		VehicleID: c.Params("id"),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UserID:    GetUserID(c),
		Reason:    in.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// RegisterPurchase registra una compra a proveedor.
func (h *StockHandler) RegisterPurchase(c *fiber.Ctx) error {
	var in dto.RegisterPurchaseRequest
	if !parseBody(c, &in) {
		return nil
	}
	items := make([]ledger.PurchaseItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, ledger.PurchaseItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitCost: it.UnitCost})
	}
	purchase, err := h.purchaseUC.RegisterPurchase(c.Context(), ledger.PurchaseInput{
		UserID:   GetUserID(c),
		Supplier: in.Supplier,
		Notes:    in.Notes,
		Items:    items,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":           purchase.ID,
		"total":        purchase.Total,
		"receipt_path": purchase.ReceiptPath,
	})
}

// GetVehicleStock devuelve los saldos de un vehículo.
func (h *StockHandler) GetVehicleStock(c *fiber.Ctx) error {
	list, err := h.queryUC.GetVehicleStock(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.VehicleStockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.VehicleStockResponse{
			VehicleID: s.VehicleID, ProductID: s.ProductID, Quantity: s.Quantity, UpdatedAt: s.UpdatedAt,
		})
	}
	return c.JSON(out)
}

// GetStreetStock resume el stock en calle: total por producto entre los
// vehículos en ruta.
func (h *StockHandler) GetStreetStock(c *fiber.Ctx) error {
	list, err := h.queryUC.GetStreetStock()
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StreetStockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.StreetStockResponse{
			ProductID: s.ProductID, Quantity: s.Quantity, Vehicles: s.Vehicles,
		})
	}
	return c.JSON(out)
}

// ListVehicleMovements lista el libro de un vehículo.
func (h *StockHandler) ListVehicleMovements(c *fiber.Ctx) error {
	from, to, ok := parseDateRange(c)
	if !ok {
		return nil
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err == nil {
		page.DefaultPage()
	}
	list, err := h.queryUC.ListMovementsByVehicle(c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementResponses(list))
}

// ListProductMovements lista el libro de un producto.
func (h *StockHandler) ListProductMovements(c *fiber.Ctx) error {
	from, to, ok := parseDateRange(c)
	if !ok {
		return nil
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err == nil {
		page.DefaultPage()
	}
	list, err := h.queryUC.ListMovementsByProduct(c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementResponses(list))
}

// CheckVehicleBalance contrasta el saldo materializado contra el libro.
func (h *StockHandler) CheckVehicleBalance(c *fiber.Ctx) error {
	checks, err := h.queryUC.CheckVehicleBalance(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(checks)
}

func parseDateRange(c *fiber.Ctx) (from, to *time.Time, ok bool) {
	parse := func(key string) (*time.Time, bool) {
		raw := c.Query(key)
		if raw == "" {
			return nil, true
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: key + " debe ser RFC3339"})
			return nil, false
		}
		return &t, true
	}
	if from, ok = parse("from"); !ok {
		return nil, nil, false
	}
	if to, ok = parse("to"); !ok {
		return nil, nil, false
	}
	return from, to, true
}

func toMovementResponses(list []*entity.StockMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID: m.ID, Type: m.Type, VehicleID: m.VehicleID, ProductID: m.ProductID,
			Quantity: m.Quantity, UserID: m.UserID, Notes: m.Notes, Date: m.Date,
		})
	}
	return out
}
