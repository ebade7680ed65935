package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avidelsur/distribuidora-api/internal/application/dto"
	"github.com/avidelsur/distribuidora-api/internal/application/trips"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
)

// TripHandler maneja salida, rendición y consulta de viajes (protegido).
type TripHandler struct {
	uc *trips.UseCase
}

// NewTripHandler construye el handler.
func NewTripHandler(uc *trips.UseCase) *TripHandler {
	return &TripHandler{uc: uc}
}

// Start abre un viaje.
func (h *TripHandler) Start(c *fiber.Ctx) error {
	var in dto.StartTripRequest
	if !parseBody(c, &in) {
		return nil
	}
	trip, err := h.uc.StartTrip(c.Context(), trips.StartInput{
		VehicleID:   in.VehicleID,
		DriverID:    in.DriverID,
		CompanionID: in.CompanionID,
		Notes:       in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTripResponse(trip))
}

// Finish cierra un viaje, con rendición si vino el conteo.
func (h *TripHandler) Finish(c *fiber.Ctx) error {
	var in dto.FinishTripRequest
	if !parseBody(c, &in) {
		return nil
	}
	trip, err := h.uc.FinishTrip(c.Context(), trips.FinishInput{
		TripID:  c.Params("id"),
		UserID:  GetUserID(c),
		Notes:   in.Notes,
		Counted: in.Counted,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTripResponse(trip))
}

// MyActive devuelve el viaje activo del usuario autenticado, o 204 si no hay.
func (h *TripHandler) MyActive(c *fiber.Ctx) error {
	trip, err := h.uc.GetActiveTripForUser(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if trip == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(toTripResponse(trip))
}

// ActiveByVehicle devuelve el viaje activo de un vehículo, o 204 si no hay.
func (h *TripHandler) ActiveByVehicle(c *fiber.Ctx) error {
	trip, err := h.uc.GetActiveTripForVehicle(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if trip == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(toTripResponse(trip))
}

// ListActive lista los viajes en curso.
func (h *TripHandler) ListActive(c *fiber.Ctx) error {
	list, err := h.uc.ListActiveTrips()
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TripResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTripResponse(t))
	}
	return c.JSON(out)
}

func toTripResponse(t *entity.Trip) dto.TripResponse {
	return dto.TripResponse{
		ID:          t.ID,
		VehicleID:   t.VehicleID,
		DriverID:    t.DriverID,
		CompanionID: t.CompanionID,
		DepartedAt:  t.DepartedAt,
		ReturnedAt:  t.ReturnedAt,
		Status:      t.Status,
		Notes:       t.Notes,
	}
}
