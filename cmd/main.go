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

	cancelAppointmentHandler "github.com/kosmatoff/BMS-SchedulingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/kosmatoff/BMS-SchedulingService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/kosmatoff/BMS-SchedulingService/internal/api/handlers/get_appointment"
	getBarberAppointmentsHandler "github.com/kosmatoff/BMS-SchedulingService/internal/api/handlers/get_barber_appointments"
	getClientAppointmentsHandler "github.com/kosmatoff/BMS-SchedulingService/internal/api/handlers/get_client_appointments"
	getSchedulingRulesHandler "github.com/kosmatoff/BMS-SchedulingService/internal/api/handlers/get_scheduling_rules"
	recommendSlotsHandler "github.com/kosmatoff/BMS-SchedulingService/internal/api/handlers/recommend_slots"
	resetSchedulingRulesHandler "github.com/kosmatoff/BMS-SchedulingService/internal/api/handlers/reset_scheduling_rules"
	updateAppointmentStatusHandler "github.com/kosmatoff/BMS-SchedulingService/internal/api/handlers/update_appointment_status"
	updateSchedulingRulesHandler "github.com/kosmatoff/BMS-SchedulingService/internal/api/handlers/update_scheduling_rules"
	"github.com/kosmatoff/BMS-SchedulingService/internal/api/middleware"
	"github.com/kosmatoff/BMS-SchedulingService/internal/config"
	appointmentRepo "github.com/kosmatoff/BMS-SchedulingService/internal/infra/storage/appointment"
	rulesRepo "github.com/kosmatoff/BMS-SchedulingService/internal/infra/storage/rules"
	staffServiceClient "github.com/kosmatoff/BMS-SchedulingService/internal/integrations/staffservice"
	appointmentsService "github.com/kosmatoff/BMS-SchedulingService/internal/service/appointments"
	rulesService "github.com/kosmatoff/BMS-SchedulingService/internal/service/rules"
	createAppointmentUC "github.com/kosmatoff/BMS-SchedulingService/internal/usecase/create_appointment"
	recommendSlotsUC "github.com/kosmatoff/BMS-SchedulingService/internal/usecase/recommend_slots"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/dbmetrics"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/logger"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/metrics"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/simpletxmanager"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/txmanager"
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

	log.Info("Starting BMS-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционного клиента
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (StaffService=%s timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		rulesRepository       *rulesRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		rulesRepository = rulesRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		appointmentRepository = appointmentRepo.NewRepository(db)
		rulesRepository = rulesRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		staffClient,
		log,
	)
	ruleSvc := rulesService.NewService(
		rulesRepository,
		staffClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	recommendSlotsUseCase := recommendSlotsUC.NewUseCase(
		appointmentRepository,
		rulesRepository,
		staffClient,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		rulesRepository,
		staffClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	recommendSlots := recommendSlotsHandler.NewHandler(recommendSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getBarberAppointments := getBarberAppointmentsHandler.NewHandler(appointmentSvc, log)
	getSchedulingRules := getSchedulingRulesHandler.NewHandler(ruleSvc, log)
	updateSchedulingRules := updateSchedulingRulesHandler.NewHandler(ruleSvc, log)
	resetSchedulingRules := resetSchedulingRulesHandler.NewHandler(ruleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Рекомендации слотов для записи
	api.HandleFunc("/companies/{companyId}/slot-recommendations",
		recommendSlots.Handle).Methods(http.MethodGet)

	// Эффективный набор правил планирования компании
	api.HandleFunc("/companies/{companyId}/scheduling-rules",
		getSchedulingRules.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// История записей клиента
	protected.HandleFunc("/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Обновление статуса записи (для менеджеров)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// --- Управление барбершопом (для менеджеров) ---
	// Расписание барбера
	protected.HandleFunc("/companies/{companyId}/barbers/{barberId}/appointments",
		getBarberAppointments.Handle).Methods(http.MethodGet)

	// Обновление правил планирования
	protected.HandleFunc("/companies/{companyId}/scheduling-rules",
		updateSchedulingRules.Handle).Methods(http.MethodPut)

	// Сброс правил планирования к дефолтным
	protected.HandleFunc("/companies/{companyId}/scheduling-rules",
		resetSchedulingRules.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
