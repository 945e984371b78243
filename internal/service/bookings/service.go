package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

const (
	msgCanceled = "Бронирование отменено"
	msgReleased = "Завершившиеся бронирования освобождены"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	clock       TimeProvider
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	clock TimeProvider,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		clock:       clock,
		metrics:     metrics,
		logger:      logger,
	}
}

// List возвращает все бронирования клиента, включая отмененные
// Порядок: start_time по возрастанию, при равенстве по времени создания
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for client=%s", req.ClientID)

	bookings, err := s.bookingRepo.ListByClient(ctx, req.ClientID)
	if err != nil {
		s.logger.Error("List: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings for client=%s", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel переводит бронирование ACTIVE -> CANCELED одним условным UPDATE
// Повторная отмена не идемпотентна: уже отмененная бронь неотличима от несуществующей
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) (*models.MessageResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by client=%s", req.BookingID, req.ClientID)

	if _, err := uuid.Parse(req.BookingID); err != nil {
		s.logger.Warn("Cancel: malformed booking id=%q", req.BookingID)
		return nil, fmt.Errorf("%w: bookingId must be a UUID", ErrInvalidInput)
	}

	if err := s.bookingRepo.Cancel(ctx, req.BookingID, req.ClientID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found or already canceled", req.BookingID)
			s.metrics.ObserveBooking("cancel", "not_found")
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", req.BookingID, err)
		s.metrics.ObserveBooking("cancel", "error")
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking id=%s canceled", req.BookingID)
	s.metrics.ObserveBooking("cancel", "canceled")
	return &models.MessageResponse{Message: msgCanceled}, nil
}

// ReleaseExpired отменяет все активные бронирования, закончившиеся до текущего момента
func (s *Service) ReleaseExpired(ctx context.Context) (*models.ReleaseExpiredResponse, error) {
	now := domain.NewTimestamp(s.clock.Now())
	s.logger.Info("ReleaseExpired: releasing bookings ended before %s", now)

	released, err := s.bookingRepo.ReleaseExpired(ctx, now)
	if err != nil {
		s.logger.Error("ReleaseExpired: repository error: %v", err)
		s.metrics.ObserveBooking("release", "error")
		return nil, fmt.Errorf("%w: ReleaseExpired - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReleaseExpired: released %d bookings", released)
	s.metrics.ObserveBookings("release", "released", released)

	return &models.ReleaseExpiredResponse{
		Message:  msgReleased,
		Released: released,
	}, nil
}
