package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	clientRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/profile/models"
)

// Service чтение и изменение профиля клиента
type Service struct {
	clientRepo ClientRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса профилей
func NewService(clientRepo ClientRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		clientRepo: clientRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Get возвращает профиль клиента
func (s *Service) Get(ctx context.Context, clientID string) (*models.ProfileResponse, error) {
	s.logger.Info("Get: fetching profile for client=%s", clientID)

	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("Get: profile for client=%s not found", clientID)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("Get: repository error for client=%s: %v", clientID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainClient(client), nil
}

// Update применяет переданные поля и возвращает свежий профиль
func (s *Service) Update(ctx context.Context, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	s.logger.Info("Update: updating profile for client=%s", req.ClientID)

	changes, err := buildChanges(req)
	if err != nil {
		s.logger.Warn("Update: validation failed for client=%s: %v", req.ClientID, err)
		return nil, err
	}

	var updated *domain.Client
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.clientRepo.UpdateProfile(txCtx, req.ClientID, changes); err != nil {
			return err
		}

		client, err := s.clientRepo.GetByID(txCtx, req.ClientID)
		if err != nil {
			return err
		}
		updated = client
		return nil
	})
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("Update: profile for client=%s not found", req.ClientID)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("Update: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: profile for client=%s updated", req.ClientID)
	return models.FromDomainClient(updated), nil
}

func buildChanges(req *models.UpdateProfileRequest) (domain.ProfileChanges, error) {
	var changes domain.ProfileChanges

	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" {
			if len([]rune(name)) > domain.MaxNameLength {
				return changes, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
			}
			changes.Name = &name
		}
	}

	if req.Role != nil && *req.Role != "" {
		changes.Role = req.Role
	}

	if req.Age != nil {
		if *req.Age < 0 {
			return changes, fmt.Errorf("%w: age must not be negative", ErrInvalidInput)
		}
		changes.Age = req.Age
	}

	if req.Availability != nil {
		availability, err := domain.ParseAvailability(req.Availability)
		if err != nil {
			return changes, fmt.Errorf("%w: %v", ErrInvalidAvailability, err)
		}
		changes.Availability = availability
	}

	if req.ProfilePhoto != nil && *req.ProfilePhoto != "" {
		changes.ProfilePhoto = req.ProfilePhoto
	}

	if changes.IsEmpty() {
		return changes, ErrNothingToUpdate
	}

	return changes, nil
}
