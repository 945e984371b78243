package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	clientRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/auth/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/passwords"
)

// Service регистрация и вход клиентов
type Service struct {
	clientRepo        ClientRepository
	hasher            PasswordHasher
	issuer            TokenIssuer
	minPasswordLength int
	logger            Logger

	newID func() string
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(
	clientRepo ClientRepository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	minPasswordLength int,
	logger Logger,
) *Service {
	if minPasswordLength <= 0 {
		minPasswordLength = domain.DefaultMinPasswordLength
	}
	return &Service{
		clientRepo:        clientRepo,
		hasher:            hasher,
		issuer:            issuer,
		minPasswordLength: minPasswordLength,
		logger:            logger,
		newID:             uuid.NewString,
	}
}

// Register создает учетную запись и сразу выдает токен
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	s.logger.Info("Register: email=%s", req.Email)

	if err := s.validateRegister(req); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	exists, err := s.clientRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("Register: repository error for email=%s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}
	if exists {
		s.logger.Warn("Register: email=%s already in use", req.Email)
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if errors.Is(err, passwords.ErrTooLong) {
		s.logger.Warn("Register: password too long")
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash: %v", ErrInternal, err)
	}

	created, err := s.clientRepo.Create(ctx, &domain.Client{
		ID:           s.newID(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
	})
	if err != nil {
		// параллельная регистрация с тем же email проходит проверку выше, ловим ее по уникальному индексу
		if errors.Is(err, clientRepo.ErrDuplicateEmail) {
			s.logger.Warn("Register: email=%s taken concurrently", req.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: failed to create client: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	return s.authenticated("Register", created)
}

// Login проверяет пароль и выдает токен
// Неизвестный email и неверный пароль неразличимы для вызывающего
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	s.logger.Info("Login: email=%s", req.Email)

	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	client, err := s.clientRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("Login: unknown email=%s", req.Email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if !s.hasher.Check(client.PasswordHash, req.Password) {
		s.logger.Warn("Login: wrong password for client=%s", client.ID)
		return nil, ErrInvalidCredentials
	}

	return s.authenticated("Login", client)
}

func (s *Service) authenticated(op string, client *domain.Client) (*models.AuthResponse, error) {
	token, err := s.issuer.Issue(client.ID, client.Email)
	if err != nil {
		s.logger.Error("%s: failed to issue token for client=%s: %v", op, client.ID, err)
		return nil, fmt.Errorf("%w: %s - issue token: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: client=%s authenticated", op, client.ID)
	return &models.AuthResponse{
		Token:  token,
		Client: models.FromDomainClient(client),
	}, nil
}

func (s *Service) validateRegister(req *models.RegisterRequest) error {
	addr, err := mail.ParseAddress(req.Email)
	if err != nil || addr.Address != req.Email {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}

	if len([]rune(req.Password)) < s.minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, s.minPasswordLength)
	}
	if len(req.Password) > domain.MaxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, domain.MaxPasswordBytes)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	return nil
}
