package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_booking"
	getProfileHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_profile"
	healthHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_bookings"
	listSupportMessagesHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_support_messages"
	loginHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/login"
	registerHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/register"
	releaseExpiredHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/release_expired"
	sendAIMessageHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/send_ai_message"
	sendSupportMessageHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/send_support_message"
	updateBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/update_booking"
	updateProfileHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/update_profile"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	clientRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/client"
	messageRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/message"
	assistantClient "github.com/m04kA/SMC-RoomBookingService/internal/integrations/assistant"
	authService "github.com/m04kA/SMC-RoomBookingService/internal/service/auth"
	bookingsService "github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	chatService "github.com/m04kA/SMC-RoomBookingService/internal/service/chat"
	profileService "github.com/m04kA/SMC-RoomBookingService/internal/service/profile"
	createBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
	updateBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-RoomBookingService/pkg/authtoken"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/passwords"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-RoomBookingService (env=%s)...", cfg.Server.Env)

	// Метрики; nil-коллектор означает, что они выключены
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (%s)", cfg.Database.Target())

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)
	messageRepository := messageRepo.NewRepository(wrappedDB)

	// Токены, пароли и AI-ассистент
	tokenIssuer := authtoken.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	hasher := passwords.NewHasher(cfg.Auth.BcryptCost)
	assistant := assistantClient.NewClient(assistantClient.Config{
		Enabled:     cfg.Assistant.Enabled,
		BaseURL:     cfg.Assistant.BaseURL,
		APIKey:      cfg.Assistant.APIKey,
		Model:       cfg.Assistant.Model,
		Timeout:     time.Duration(cfg.Assistant.Timeout) * time.Second,
		Temperature: cfg.Assistant.Temperature,
	}, log)
	log.Info("Assistant initialized (enabled=%t, model=%s)", cfg.Assistant.Enabled, cfg.Assistant.Model)

	// Сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		bookingsService.RealTimeProvider{},
		metricsCollector,
		log,
	)
	authSvc := authService.NewService(
		clientRepository,
		hasher,
		tokenIssuer,
		cfg.Auth.MinPasswordLength,
		log,
	)
	profileSvc := profileService.NewService(clientRepository, txMgr, log)
	chatSvc := chatService.NewService(messageRepository, clientRepository, assistant, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(bookingRepository, txMgr, metricsCollector, log)
	updateBookingUseCase := updateBookingUC.NewUseCase(bookingRepository, txMgr, metricsCollector, log)

	// Handlers
	handlers.SetExposeDetails(cfg.Server.IsDevelopment())

	health := healthHandler.NewHandler()
	register := registerHandler.NewHandler(authSvc, cfg.Auth.MinPasswordLength, log)
	login := loginHandler.NewHandler(authSvc, log)
	getProfile := getProfileHandler.NewHandler(profileSvc, log)
	updateProfile := updateProfileHandler.NewHandler(profileSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	sendSupportMessage := sendSupportMessageHandler.NewHandler(chatSvc, log)
	listSupportMessages := listSupportMessagesHandler.NewHandler(chatSvc, log)
	sendAIMessage := sendAIMessageHandler.NewHandler(chatSvc, log)
	releaseExpired := releaseExpiredHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	authRoutes := r.PathPrefix("/auth").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
		defer limiter.Stop()
		authRoutes.Use(limiter.Middleware)
		log.Info("Rate limit on /auth enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	authRoutes.HandleFunc("/register", register.Handle).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", login.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <token>)
	// ============================================================

	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokenIssuer, log))

	// --- Профиль ---
	protected.HandleFunc("/profile/me", getProfile.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/profile/me", updateProfile.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Чат ---
	protected.HandleFunc("/chat/support", sendSupportMessage.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/chat/support", listSupportMessages.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/chat/ai", sendAIMessage.Handle).Methods(http.MethodPost)

	// --- Автоматизация ---
	protected.HandleFunc("/automation/release-expired", releaseExpired.Handle).Methods(http.MethodPost)

	// Preflight-запросы не совпадают ни с одним маршрутом, поэтому CORS и recovery
	// оборачивают роутер снаружи, а не через r.Use
	var root http.Handler = r
	root = middleware.BodyLimit(cfg.Server.MaxBodyBytes)(root)
	root = middleware.CORS(cfg.CORS.AllowedOrigins)(root)
	root = middleware.Recovery(log)(root)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      root,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Фоновое освобождение завершившихся бронирований
	if cfg.Automation.ReleaseIntervalSeconds > 0 {
		interval := time.Duration(cfg.Automation.ReleaseIntervalSeconds) * time.Second
		go runReleaseWorker(ctx, bookingSvc, interval, log)
		log.Info("Release worker started (interval=%s)", interval)
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// runReleaseWorker периодически отменяет завершившиеся бронирования до отмены ctx
func runReleaseWorker(ctx context.Context, svc *bookingsService.Service, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.ReleaseExpired(ctx); err != nil {
				log.Error("Release worker: %v", err)
			}
		}
	}
}
