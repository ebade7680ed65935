package trips

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avidelsur/distribuidora-api/internal/application/ledger"
	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

// UseCase maneja el ciclo de vida de los viajes: apertura, cierre con
// rendición y las lecturas de viaje activo. La autoridad sobre "el vehículo
// está en la calle" es el Trip EN_CURSO; vehicles.en_ruta es una cache que se
// mantiene acá y se repara en GetActiveTripForUser si quedó desfasada.
type UseCase struct {
	txRunner    TxRunner
	applyUC     *ledger.ApplyMovementUseCase
	tripRepo    repository.TripRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	applyUC *ledger.ApplyMovementUseCase,
	tripRepo repository.TripRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		applyUC:     applyUC,
		tripRepo:    tripRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// StartInput entrada para abrir un viaje.
type StartInput struct {
	VehicleID   string
	DriverID    string
	CompanionID *string
	Notes       string
}

// StartTrip abre un viaje: valida exclusividad de vehículo y de chofer/
// acompañante, crea el Trip EN_CURSO y marca el vehículo en ruta.
func (uc *UseCase) StartTrip(ctx context.Context, input StartInput) (*entity.Trip, error) {
	if input.VehicleID == "" || input.DriverID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.CompanionID != nil && *input.CompanionID == input.DriverID {
		return nil, domain.ErrInvalidInput
	}

	// Chofer y acompañante tienen que ser empleados en actividad.
	driver, err := uc.userRepo.GetByID(input.DriverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, domain.ErrNotFound
	}
	if !driver.IsActive() {
		return nil, domain.ErrInvalidState
	}
	if input.CompanionID != nil {
		companion, err := uc.userRepo.GetByID(*input.CompanionID)
		if err != nil {
			return nil, err
		}
		if companion == nil {
			return nil, domain.ErrNotFound
		}
		if !companion.IsActive() {
			return nil, domain.ErrInvalidState
		}
	}

	var trip *entity.Trip
	err = uc.txRunner.RunTrip(ctx, func(
		tripRepo repository.TripRepository,
		vehicleRepo repository.VehicleRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		_ repository.VehicleStockRepository,
	) error {
		vehicle, err := vehicleRepo.GetForUpdate(input.VehicleID)
		if err != nil {
			return err
		}
		if vehicle == nil {
			return domain.ErrNotFound
		}
		// La cache en_ruta puede haber quedado prendida por un cierre que no
		// llegó a impactar; la autoridad es el viaje EN_CURSO.
		active, err := tripRepo.GetActiveByVehicle(input.VehicleID)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.ErrInvalidState
		}
		if existing, err := tripRepo.GetActiveByUser(input.DriverID); err != nil {
			return err
		} else if existing != nil {
			return domain.ErrConflict
		}
		if input.CompanionID != nil {
			if existing, err := tripRepo.GetActiveByUser(*input.CompanionID); err != nil {
				return err
			} else if existing != nil {
				return domain.ErrConflict
			}
		}

		now := time.Now()
		trip = &entity.Trip{
			ID:          uuid.New().String(),
			VehicleID:   input.VehicleID,
			DriverID:    input.DriverID,
			CompanionID: input.CompanionID,
			DepartedAt:  now,
			Status:      entity.TripStatusEnCurso,
			Notes:       input.Notes,
			CreatedAt:   now,
		}
		if err := tripRepo.Create(trip); err != nil {
			return err
		}
		return vehicleRepo.SetEnRuta(input.VehicleID, true, &input.DriverID)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify("viaje", fmt.Sprintf("Viaje iniciado: vehículo %s, chofer %s", input.VehicleID, driver.Name), input.DriverID)
	return trip, nil
}

// FinishInput entrada para cerrar un viaje. Counted trae el conteo físico por
// producto; nil omite la rendición (cierre administrativo), un mapa (aunque
// esté vacío) la ejecuta: producto no contado cuenta como cero.
type FinishInput struct {
	TripID  string
	UserID  string
	Notes   string
	Counted map[string]decimal.Decimal
}

// FinishTrip cierra un viaje EN_CURSO: corre la rendición si vino el conteo,
// marca FINALIZADO con fecha de regreso y libera el vehículo. Un viaje ya
// finalizado rechaza con ErrInvalidState y no genera ningún movimiento más.
func (uc *UseCase) FinishTrip(ctx context.Context, input FinishInput) (*entity.Trip, error) {
	if input.TripID == "" || input.UserID == "" {
		return nil, domain.ErrInvalidInput
	}

	var trip *entity.Trip
	err := uc.txRunner.RunTrip(ctx, func(
		tripRepo repository.TripRepository,
		vehicleRepo repository.VehicleRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		vehicleStockRepo repository.VehicleStockRepository,
	) error {
		var err error
		trip, err = tripRepo.GetForUpdate(input.TripID)
		if err != nil {
			return err
		}
		if trip == nil {
			return domain.ErrNotFound
		}
		if trip.Status != entity.TripStatusEnCurso {
			return domain.ErrInvalidState
		}

		if input.Counted != nil {
			if err := uc.reconcile(movRepo, productRepo, vehicleStockRepo, trip.VehicleID, input.UserID, input.Counted); err != nil {
				return err
			}
		}

		now := time.Now()
		trip.Status = entity.TripStatusFinalizado
		trip.ReturnedAt = &now
		if input.Notes != "" {
			trip.Notes += " | Final: " + input.Notes
		}
		if err := tripRepo.Update(trip); err != nil {
			return err
		}
		return vehicleRepo.SetEnRuta(trip.VehicleID, false, nil)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify("viaje", fmt.Sprintf("Viaje %s finalizado", trip.ID), input.UserID)
	return trip, nil
}

// GetActiveTripForUser devuelve el viaje EN_CURSO del usuario (como chofer o
// acompañante). Si encuentra un viaje EN_CURSO cuyo vehículo figura fuera de
// ruta (drift entre las dos representaciones, típico de un proceso caído a
// mitad de cierre), lo auto-finaliza con nota y devuelve "sin viaje".
func (uc *UseCase) GetActiveTripForUser(ctx context.Context, userID string) (*entity.Trip, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	trip, err := uc.tripRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, nil
	}
	vehicle, err := uc.vehicleRepo.GetByID(trip.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle != nil && vehicle.EnRuta {
		return trip, nil
	}

	// Estado inconsistente: viaje abierto con vehículo liberado. Se cierra el
	// viaje para que las dos representaciones vuelvan a coincidir.
	err = uc.txRunner.RunTrip(ctx, func(
		tripRepo repository.TripRepository,
		vehicleRepo repository.VehicleRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		_ repository.VehicleStockRepository,
	) error {
		locked, err := tripRepo.GetForUpdate(trip.ID)
		if err != nil {
			return err
		}
		if locked == nil || locked.Status != entity.TripStatusEnCurso {
			return nil // otro proceso ya lo reparó
		}
		now := time.Now()
		locked.Status = entity.TripStatusFinalizado
		locked.ReturnedAt = &now
		locked.Notes += " | Cierre automático: vehículo ya estaba fuera de ruta"
		return tripRepo.Update(locked)
	})
	if err != nil {
		return nil, err
	}
	return nil, nil
}

// GetActiveTripForVehicle devuelve el viaje EN_CURSO del vehículo, o nil.
func (uc *UseCase) GetActiveTripForVehicle(vehicleID string) (*entity.Trip, error) {
	if vehicleID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.tripRepo.GetActiveByVehicle(vehicleID)
}

// ListActiveTrips lista todos los viajes EN_CURSO.
func (uc *UseCase) ListActiveTrips() ([]*entity.Trip, error) {
	return uc.tripRepo.ListActive()
}
