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

	adjustCapacityHandler "github.com/m04kA/SMC-InventoryService/internal/api/handlers/adjust_capacity"
	bulkUpdateHandler "github.com/m04kA/SMC-InventoryService/internal/api/handlers/bulk_update"
	checkAvailabilityHandler "github.com/m04kA/SMC-InventoryService/internal/api/handlers/check_availability"
	checkAvailabilityRangeHandler "github.com/m04kA/SMC-InventoryService/internal/api/handlers/check_availability_range"
	createSlotHandler "github.com/m04kA/SMC-InventoryService/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/m04kA/SMC-InventoryService/internal/api/handlers/delete_slot"
	getSlotHandler "github.com/m04kA/SMC-InventoryService/internal/api/handlers/get_slot"
	getStatsHandler "github.com/m04kA/SMC-InventoryService/internal/api/handlers/get_stats"
	healthHandler "github.com/m04kA/SMC-InventoryService/internal/api/handlers/health"
	searchSlotsHandler "github.com/m04kA/SMC-InventoryService/internal/api/handlers/search_slots"
	updateSlotHandler "github.com/m04kA/SMC-InventoryService/internal/api/handlers/update_slot"
	"github.com/m04kA/SMC-InventoryService/internal/api/middleware"
	"github.com/m04kA/SMC-InventoryService/internal/config"
	"github.com/m04kA/SMC-InventoryService/internal/infra/events"
	slotRepo "github.com/m04kA/SMC-InventoryService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-InventoryService/internal/infra/storage/slotmemory"
	catalogServiceClient "github.com/m04kA/SMC-InventoryService/internal/integrations/catalogservice"
	slotsService "github.com/m04kA/SMC-InventoryService/internal/service/slots"
	adjustCapacityUC "github.com/m04kA/SMC-InventoryService/internal/usecase/adjust_capacity"
	bulkUpdateUC "github.com/m04kA/SMC-InventoryService/internal/usecase/bulk_update"
	checkAvailabilityUC "github.com/m04kA/SMC-InventoryService/internal/usecase/check_availability"
	checkAvailabilityRangeUC "github.com/m04kA/SMC-InventoryService/internal/usecase/check_availability_range"
	createSlotUC "github.com/m04kA/SMC-InventoryService/internal/usecase/create_slot"
	updateSlotUC "github.com/m04kA/SMC-InventoryService/internal/usecase/update_slot"
	"github.com/m04kA/SMC-InventoryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-InventoryService/pkg/logger"
	"github.com/m04kA/SMC-InventoryService/pkg/metrics"
	"github.com/m04kA/SMC-InventoryService/pkg/txmanager"
)

// rateLimiterTTL время, после которого неактивный IP забывается
const rateLimiterTTL = 10 * time.Minute

// slotStore хранилище слотов: postgres или память
type slotStore interface {
	createSlotUC.SlotRepository
	updateSlotUC.SlotRepository
	bulkUpdateUC.SlotRepository
	adjustCapacityUC.SlotRepository
	checkAvailabilityUC.SlotRepository
	checkAvailabilityRangeUC.SlotRepository
	slotsService.SlotRepository
}

// txManager менеджер транзакций для use cases и сервиса
type txManager interface {
	bulkUpdateUC.TransactionManager
	slotsService.TransactionManager
}

// eventPublisher публикатор событий, закрывается при остановке
type eventPublisher interface {
	createSlotUC.EventPublisher
	Close() error
}

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

	log.Info("Starting SMC-InventoryService...")
	log.Info("Configuration loaded from config.toml (storage=%s)", cfg.Storage.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var mutationMetrics interface {
		IncSlotMutation(operation, result string)
	} = metrics.NopRecorder{}
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		mutationMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище слотов
	var (
		slotRepository slotStore
		txMgr          txManager
		pinger         healthHandler.Pinger
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		slotRepository = slotmemory.NewRepository()
		txMgr = slotmemory.NewTransactionManager()
		log.Warn("Using in-memory slot storage, data is lost on restart")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(config.Duration(cfg.Database.ConnMaxLifetime))

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil)
		}

		slotRepository = slotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		pinger = wrappedDB
	}

	// Инициализируем интеграционных клиентов
	var priceResolver checkAvailabilityUC.PriceResolver
	if cfg.CatalogService.URL != "" {
		catalogClient := catalogServiceClient.NewClient(
			cfg.CatalogService.URL,
			config.Duration(cfg.CatalogService.Timeout),
			log,
		)
		priceResolver = catalogClient

		if cfg.Redis.Enabled {
			redisClient := catalogServiceClient.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
			defer redisClient.Close()

			priceResolver = catalogServiceClient.NewCachedClient(
				catalogClient,
				redisClient,
				config.Duration(cfg.Redis.TTL),
				cfg.Redis.KeyPrefix,
				log,
			)
			log.Info("Catalog price cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
		}
		// Недоступность каталога не ломает проверку доступности
		priceResolver = catalogServiceClient.NewDegradingClient(priceResolver, log)
		log.Info("Catalog client initialized (url=%s, timeout=%ds)", cfg.CatalogService.URL, cfg.CatalogService.Timeout)
	} else {
		log.Info("Catalog service URL is not set, availability responses go without prices")
	}

	// Инициализируем публикацию событий
	var publisher eventPublisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(
			events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic),
			config.Duration(cfg.Kafka.WriteTimeout),
			log,
		)
		log.Info("Kafka publisher enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Инициализируем сервисы
	slotSvc := slotsService.NewService(slotRepository, txMgr, log)

	// Инициализируем use cases
	createSlotUseCase := createSlotUC.NewUseCase(slotRepository, publisher, mutationMetrics, log)
	updateSlotUseCase := updateSlotUC.NewUseCase(slotRepository, publisher, mutationMetrics, log)
	bulkUpdateUseCase := bulkUpdateUC.NewUseCase(
		slotRepository,
		txMgr,
		publisher,
		mutationMetrics,
		cfg.Inventory.BulkWorkers,
		log,
	)
	adjustCapacityUseCase := adjustCapacityUC.NewUseCase(slotRepository, publisher, mutationMetrics, log)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(slotRepository, priceResolver, log)
	checkAvailabilityRangeUseCase := checkAvailabilityRangeUC.NewUseCase(slotRepository, log)

	// Инициализируем handlers
	health := healthHandler.NewHandler(pinger, log)
	createSlot := createSlotHandler.NewHandler(createSlotUseCase, log)
	getSlot := getSlotHandler.NewHandler(slotSvc, log)
	searchSlots := searchSlotsHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(updateSlotUseCase, log)
	deleteSlot := deleteSlotHandler.NewHandler(updateSlotUseCase, log)
	bulkUpdate := bulkUpdateHandler.NewHandler(bulkUpdateUseCase, log)
	adjustCapacity := adjustCapacityHandler.NewHandler(adjustCapacityUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	checkAvailabilityRange := checkAvailabilityRangeHandler.NewHandler(checkAvailabilityRangeUseCase, log)
	getStats := getStatsHandler.NewHandler(slotSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, rateLimiterTTL)
		r.Use(limiter.Middleware)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1/inventory").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Поиск слотов и получение по ID
	api.HandleFunc("/slots", searchSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/{slotId}", getSlot.Handle).Methods(http.MethodGet)

	// Доступность на дату и на диапазон
	api.HandleFunc("/resources/{resourceId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/availability/range", checkAvailabilityRange.Handle).Methods(http.MethodGet)

	// Статистика загрузки
	api.HandleFunc("/resources/{resourceId}/stats", getStats.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Управление слотами ---
	protected.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId}", updateSlot.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/resources/{resourceId}/slots/bulk", bulkUpdate.Handle).Methods(http.MethodPost)

	// --- Занятие и освобождение мест бронирующей системой ---
	protected.HandleFunc("/resources/{resourceId}/reservations", adjustCapacity.HandleReserve).Methods(http.MethodPost)
	protected.HandleFunc("/resources/{resourceId}/releases", adjustCapacity.HandleRelease).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  config.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: config.Duration(cfg.Server.WriteTimeout),
		IdleTimeout:  config.Duration(cfg.Server.IdleTimeout),
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Duration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close event publisher: %v", err)
	}

	log.Info("Server stopped gracefully")
}
