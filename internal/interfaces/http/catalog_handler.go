package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/avidelsur/distribuidora-api/internal/application/catalog"
	"github.com/avidelsur/distribuidora-api/internal/application/dto"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
)

// CatalogHandler maneja productos, clientes, vehículos y el feed de avisos.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateProduct da de alta un producto.
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if !parseBody(c, &in) {
		return nil
	}
	p := &entity.Product{
		Name:           in.Name,
		UnitMeasure:    in.UnitMeasure,
		UnitsPerBulk:   in.UnitsPerBulk,
		SuggestedPrice: in.SuggestedPrice,
		MinPrice:       in.MinPrice,
		MaxPrice:       in.MaxPrice,
		MinStockAlert:  in.MinStockAlert,
	}
	if err := h.uc.CreateProduct(p); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
}

// GetProduct devuelve un producto.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.uc.GetProduct(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProductResponse(p))
}

// ListProducts lista productos.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err == nil {
		page.DefaultPage()
	}
	list, err := h.uc.ListProducts(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return c.JSON(out)
}

// CreateClient da de alta un cliente.
func (h *CatalogHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if !parseBody(c, &in) {
		return nil
	}
	client := &entity.Client{
		Name:         in.Name,
		TaxID:        in.TaxID,
		Phone:        in.Phone,
		Address:      in.Address,
		SpecialPrice: in.SpecialPrice,
	}
	if err := h.uc.CreateClient(client); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toClientResponse(client))
}

// GetClient devuelve un cliente con deuda y compras acumuladas.
func (h *CatalogHandler) GetClient(c *fiber.Ctx) error {
	client, err := h.uc.GetClient(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toClientResponse(client))
}

// SearchClients busca clientes por nombre (query "q").
func (h *CatalogHandler) SearchClients(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	list, err := h.uc.SearchClients(c.Query("q"), limit)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, cl := range list {
		out = append(out, toClientResponse(cl))
	}
	return c.JSON(out)
}

// CreateVehicle da de alta una camioneta.
func (h *CatalogHandler) CreateVehicle(c *fiber.Ctx) error {
	var in dto.CreateVehicleRequest
	if !parseBody(c, &in) {
		return nil
	}
	v := &entity.Vehicle{
		Plate:          in.Plate,
		Brand:          in.Brand,
		Model:          in.Model,
		LoadCapacityKg: in.LoadCapacityKg,
	}
	if err := h.uc.CreateVehicle(v); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toVehicleResponse(v))
}

// ListVehicles lista las camionetas.
func (h *CatalogHandler) ListVehicles(c *fiber.Ctx) error {
	list, err := h.uc.ListVehicles()
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toVehicleResponse(v))
	}
	return c.JSON(out)
}

// DeleteVehicle elimina una camioneta sin viaje activo ni stock cargado.
func (h *CatalogHandler) DeleteVehicle(c *fiber.Ctx) error {
	if err := h.uc.DeleteVehicle(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListNotifications lista el feed de avisos.
func (h *CatalogHandler) ListNotifications(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err == nil {
		page.DefaultPage()
	}
	list, err := h.uc.ListNotifications(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NotificationResponse{
			ID: n.ID, Kind: n.Kind, Message: n.Message, UserID: n.UserID, CreatedAt: n.CreatedAt,
		})
	}
	return c.JSON(out)
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		UnitMeasure:    p.UnitMeasure,
		UnitsPerBulk:   p.UnitsPerBulk,
		Stock:          p.Stock,
		LastCost:       p.LastCost,
		SuggestedPrice: p.SuggestedPrice,
		MinPrice:       p.MinPrice,
		MaxPrice:       p.MaxPrice,
		MinStockAlert:  p.MinStockAlert,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:             c.ID,
		Name:           c.Name,
		TaxID:          c.TaxID,
		Phone:          c.Phone,
		Address:        c.Address,
		SpecialPrice:   c.SpecialPrice,
		Debt:           c.Debt,
		TotalPurchased: c.TotalPurchased,
		LastPurchase:   c.LastPurchase,
	}
}

func toVehicleResponse(v *entity.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:             v.ID,
		Plate:          v.Plate,
		Brand:          v.Brand,
		Model:          v.Model,
		LoadCapacityKg: v.LoadCapacityKg,
		EnRuta:         v.EnRuta,
		DriverID:       v.DriverID,
	}
}
