package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	clientRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/chat/models"
)

// Service журнал обращений в поддержку и диалог с ассистентом
type Service struct {
	messageRepo MessageRepository
	clientRepo  ClientRepository
	assistant   Assistant
	logger      Logger

	newID func() string
}

// NewService создает новый экземпляр сервиса чата
func NewService(
	messageRepo MessageRepository,
	clientRepo ClientRepository,
	assistant Assistant,
	logger Logger,
) *Service {
	return &Service{
		messageRepo: messageRepo,
		clientRepo:  clientRepo,
		assistant:   assistant,
		logger:      logger,
		newID:       uuid.NewString,
	}
}

// SendSupport сохраняет обращение в поддержку
func (s *Service) SendSupport(ctx context.Context, req *models.SendMessageRequest) (*models.MessageResponse, error) {
	s.logger.Info("SendSupport: client=%s", req.ClientID)

	if err := validateMessage(req.Message); err != nil {
		return nil, err
	}

	saved, err := s.messageRepo.Create(ctx, &domain.SupportMessage{
		ID:       s.newID(),
		ClientID: req.ClientID,
		Channel:  domain.ChannelSupport,
		Message:  req.Message,
	})
	if err != nil {
		s.logger.Error("SendSupport: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: SendSupport - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainMessage(saved), nil
}

// ListSupport обращения клиента в поддержку, новые первыми
func (s *Service) ListSupport(ctx context.Context, clientID string) ([]*models.MessageResponse, error) {
	messages, err := s.messageRepo.ListByClient(ctx, clientID, domain.ChannelSupport)
	if err != nil {
		s.logger.Error("ListSupport: repository error for client=%s: %v", clientID, err)
		return nil, fmt.Errorf("%w: ListSupport - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainMessageList(messages), nil
}

// SendAI спрашивает ассистента с доступностью клиента в качестве контекста и сохраняет диалог
func (s *Service) SendAI(ctx context.Context, req *models.SendMessageRequest) (*models.AIMessageResponse, error) {
	s.logger.Info("SendAI: client=%s", req.ClientID)

	if err := validateMessage(req.Message); err != nil {
		return nil, err
	}

	availability, err := s.clientRepo.GetAvailability(ctx, req.ClientID)
	if err != nil && !errors.Is(err, clientRepo.ErrClientNotFound) {
		s.logger.Error("SendAI: failed to read availability for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: SendAI - availability: %v", ErrInternal, err)
	}

	reply := s.assistant.Generate(ctx, req.Message, availability)

	saved, err := s.messageRepo.Create(ctx, &domain.SupportMessage{
		ID:         s.newID(),
		ClientID:   req.ClientID,
		Channel:    domain.ChannelAI,
		Message:    req.Message,
		AIResponse: &reply,
	})
	if err != nil {
		s.logger.Error("SendAI: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: SendAI - repository error: %v", ErrInternal, err)
	}

	return &models.AIMessageResponse{
		ID:         saved.ID,
		Message:    saved.Message,
		AIResponse: reply,
		CreatedAt:  models.FormatCreatedAt(saved.CreatedAt),
	}, nil
}

func validateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if len([]rune(message)) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message must be at most %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}
	return nil
}
