package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

const operation = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
	newID       func() string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
		newID:       uuid.NewString,
	}
}

// Execute выполняет use case создания бронирования
// Проверка конфликта и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: client=%s, room=%s, date=%s, time=%s-%s",
		req.ClientID, req.Room, req.MeetingDate, req.StartTime, req.EndTime)

	// 1. Валидация входных данных и сборка интервала
	input, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.ObserveBooking(operation, "invalid")
		return nil, err
	}

	var result *domain.Booking

	// 2. Проверка конфликта и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflict, err := uc.bookingRepo.HasConflict(txCtx, domain.ConflictQuery{
			Room:        input.room,
			MeetingDate: input.meetingDate,
			Start:       input.start,
			End:         input.end,
		})
		if err != nil {
			return err
		}

		if conflict {
			uc.logger.Warn("CreateBooking: room=%s is busy on %s-%s", input.room, input.start, input.end)
			return ErrSlotNotAvailable
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ID:          uc.newID(),
			ClientID:    req.ClientID,
			Room:        input.room,
			MeetingDate: input.meetingDate,
			StartTime:   input.start,
			EndTime:     input.end,
			Description: input.description,
			Status:      domain.StatusActive,
		})
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable):
			uc.metrics.ObserveBooking(operation, "conflict")
			return nil, err

		case errors.Is(err, bookingRepo.ErrConflict), errors.Is(err, txmanager.ErrSerializationFailure):
			// Параллельная транзакция заняла тот же интервал
			uc.logger.Warn("CreateBooking: concurrent booking for room=%s: %v", input.room, err)
			uc.metrics.ObserveBooking(operation, "conflict")
			return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)

		default:
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			uc.metrics.ObserveBooking(operation, "error")
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: booking id=%s created for client=%s", result.ID, result.ClientID)
	uc.metrics.ObserveBooking(operation, "created")

	return models.FromDomainBooking(result), nil
}
