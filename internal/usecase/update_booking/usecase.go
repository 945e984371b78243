package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

const operation = "update"

// UseCase use case для изменения бронирования
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
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
	}
}

// Execute выполняет use case изменения бронирования
// Чтение текущей брони, проверка хронологии и конфликта и запись идут в одной
// сериализуемой транзакции; текущая бронь исключается из проверки конфликта
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("UpdateBooking: client=%s, booking=%s", req.ClientID, req.BookingID)

	// 1. Валидация переданных полей
	p, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		uc.metrics.ObserveBooking(operation, "invalid")
		return nil, err
	}

	var result *domain.Booking

	// 2. Чтение, пересчет и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.bookingRepo.GetActiveOwned(txCtx, req.BookingID, req.ClientID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		next := resolve(current, p)

		if !next.start.Before(next.end) {
			return fmt.Errorf("%w: %s - %s", ErrInvalidTimeRange, next.start, next.end)
		}

		conflict, err := uc.bookingRepo.HasConflict(txCtx, domain.ConflictQuery{
			Room:        next.room,
			MeetingDate: next.meetingDate,
			Start:       next.start,
			End:         next.end,
			ExcludeID:   &current.ID,
		})
		if err != nil {
			return err
		}

		if conflict {
			uc.logger.Warn("UpdateBooking: room=%s is busy on %s-%s", next.room, next.start, next.end)
			return ErrSlotNotAvailable
		}

		changes := diff(current, next, p)
		if changes.IsEmpty() {
			uc.logger.Info("UpdateBooking: booking id=%s has nothing to change", current.ID)
			result = current
			return nil
		}

		if err := uc.bookingRepo.Update(txCtx, current.ID, changes); err != nil {
			return err
		}

		updated, err := uc.bookingRepo.GetByID(txCtx, current.ID)
		if err != nil {
			return err
		}

		result = updated
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			uc.logger.Warn("UpdateBooking: booking id=%s not found for client=%s", req.BookingID, req.ClientID)
			uc.metrics.ObserveBooking(operation, "not_found")
			return nil, err

		case errors.Is(err, ErrInvalidTimeRange):
			uc.logger.Warn("UpdateBooking: %v", err)
			uc.metrics.ObserveBooking(operation, "invalid")
			return nil, err

		case errors.Is(err, ErrSlotNotAvailable):
			uc.metrics.ObserveBooking(operation, "conflict")
			return nil, err

		case errors.Is(err, bookingRepo.ErrConflict), errors.Is(err, txmanager.ErrSerializationFailure):
			uc.logger.Warn("UpdateBooking: concurrent booking for booking id=%s: %v", req.BookingID, err)
			uc.metrics.ObserveBooking(operation, "conflict")
			return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)

		default:
			uc.logger.Error("UpdateBooking: failed to update booking id=%s: %v", req.BookingID, err)
			uc.metrics.ObserveBooking(operation, "error")
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("UpdateBooking: booking id=%s updated", result.ID)
	uc.metrics.ObserveBooking(operation, "updated")

	return models.FromDomainBooking(result), nil
}
