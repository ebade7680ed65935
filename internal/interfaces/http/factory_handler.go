package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avidelsur/distribuidora-api/internal/application/dto"
	"github.com/avidelsur/distribuidora-api/internal/application/factory"
)

// FactoryHandler maneja silos y elaboraciones de alimento (protegido).
type FactoryHandler struct {
	uc *factory.UseCase
}

// NewFactoryHandler construye el handler.
func NewFactoryHandler(uc *factory.UseCase) *FactoryHandler {
	return &FactoryHandler{uc: uc}
}

// ListSilos lista los silos con cantidad y costo promedio.
func (h *FactoryHandler) ListSilos(c *fiber.Ctx) error {
	list, err := h.uc.ListSilos()
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SiloResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SiloResponse{
			ID:         s.ID,
			Name:       s.Name,
			CapacityKg: s.CapacityKg,
			QuantityKg: s.QuantityKg,
			ProductID:  s.ProductID,
			AvgCost:    s.AvgCost,
			UpdatedAt:  s.UpdatedAt,
		})
	}
	return c.JSON(out)
}

// Refill carga kg a un silo con su costo total.
func (h *FactoryHandler) Refill(c *fiber.Ctx) error {
	var in dto.RefillSiloRequest
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.uc.RefillSilo(c.Context(), c.Params("id"), in.QuantityKg, in.TotalCost); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "carga registrada"})
}

// Consume descuenta kg de un silo.
func (h *FactoryHandler) Consume(c *fiber.Ctx) error {
	var in dto.ConsumeSiloRequest
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.uc.ConsumeSilo(c.Context(), c.Params("id"), in.QuantityKg); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "consumo registrado"})
}

// RunProduction registra una elaboración de alimento.
func (h *FactoryHandler) RunProduction(c *fiber.Ctx) error {
	var in dto.RunProductionRequest
	if !parseBody(c, &in) {
		return nil
	}
	ingredients := make([]factory.Ingredient, 0, len(in.Ingredients))
	for _, i := range in.Ingredients {
		ingredients = append(ingredients, factory.Ingredient{SiloID: i.SiloID, QuantityKg: i.QuantityKg})
	}
	production, err := h.uc.RunProduction(c.Context(), factory.ProductionInput{
		Ingredients: ingredients,
		DestSiloID:  in.DestSiloID,
		OutputKg:    in.OutputKg,
		UserID:      GetUserID(c),
		Notes:       in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": production.ID})
}
