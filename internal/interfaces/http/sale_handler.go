package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/avidelsur/distribuidora-api/internal/application/dto"
	"github.com/avidelsur/distribuidora-api/internal/application/sales"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
)

// SaleHandler maneja registro, anulación y consulta de ventas (protegido).
type SaleHandler struct {
	uc *sales.UseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Register registra una venta desde un vehículo.
func (h *SaleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if !parseBody(c, &in) {
		return nil
	}
	lines := make([]sales.SaleLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, sales.SaleLine{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	sale, err := h.uc.RegisterSale(c.Context(), sales.RegisterInput{
		ClientID:    in.ClientID,
		UserID:      GetUserID(c),
		VehicleID:   in.VehicleID,
		Payment:     in.Payment,
		DiscountPct: in.DiscountPct,
		Lines:       lines,
		DueDate:     in.DueDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// Cancel anula una venta activa.
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelSaleRequest
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.uc.CancelSale(c.Context(), c.Params("id"), GetUserID(c), in.Reason); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "venta anulada"})
}

// GetByID devuelve una venta con sus líneas.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

// ListByVehicleAndDate lista las ventas de un vehículo en un día (query "day",
// formato 2006-01-02; por defecto hoy).
func (h *SaleHandler) ListByVehicleAndDate(c *fiber.Ctx) error {
	day := time.Now()
	if raw := c.Query("day"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "day debe ser AAAA-MM-DD"})
		}
		day = parsed
	}
	list, err := h.uc.ListByVehicleAndDate(c.Params("id"), day)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return c.JSON(out)
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	details := make([]dto.SaleDetailResponse, 0, len(s.Details))
	for _, d := range s.Details {
		details = append(details, dto.SaleDetailResponse{
			ProductID: d.ProductID, Quantity: d.Quantity, UnitPrice: d.UnitPrice, Subtotal: d.Subtotal,
		})
	}
	return dto.SaleResponse{
		ID:          s.ID,
		ClientID:    s.ClientID,
		UserID:      s.UserID,
		VehicleID:   s.VehicleID,
		TripID:      s.TripID,
		Date:        s.Date,
		Payment:     s.Payment,
		DiscountPct: s.DiscountPct,
		DiscountAmt: s.DiscountAmt,
		Total:       s.Total,
		Active:      s.Active,
		CancelNote:  s.CancelNote,
		DueDate:     s.DueDate,
		Details:     details,
	}
}
