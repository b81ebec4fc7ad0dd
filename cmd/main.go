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
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"

	addProductLineHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/add_product_line"
	addServiceLineHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/add_service_line"
	blocksHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/blocks"
	checkSlotHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/check_slot"
	createReservationHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_reservation"
	getScheduleHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_schedule"
	getServiceHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_service"
	recomputeTotalHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/recompute_total"
	registerPaymentHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/register_payment"
	removeLineHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/remove_line"
	updatePersonsHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/update_persons"
	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/internal/config"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	catalogCache "github.com/m04kA/SMC-SpaBookingService/internal/infra/cache/catalog"
	blockRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/block"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
	packRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/pack"
	reservationRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/reservation"
	inventoryClient "github.com/m04kA/SMC-SpaBookingService/internal/integrations/inventory"
	blockCleanupJob "github.com/m04kA/SMC-SpaBookingService/internal/jobs/block_cleanup"
	availabilityService "github.com/m04kA/SMC-SpaBookingService/internal/service/availability"
	blocksService "github.com/m04kA/SMC-SpaBookingService/internal/service/blocks"
	catalogService "github.com/m04kA/SMC-SpaBookingService/internal/service/catalog"
	packsService "github.com/m04kA/SMC-SpaBookingService/internal/service/packs"
	reservationsService "github.com/m04kA/SMC-SpaBookingService/internal/service/reservations"
	totalsService "github.com/m04kA/SMC-SpaBookingService/internal/service/totals"
	addProductLineUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/add_product_line"
	addServiceLineUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/add_service_line"
	checkSlotUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/check_slot"
	getAvailableSlotsUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_available_slots"
	recomputeTotalUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/recompute_total"
	registerPaymentUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/register_payment"
	removeLineUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/remove_line"
	updatePersonsUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/update_persons"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/txmanager"
)

// domainMetrics счетчики, которые пишут usecases и агрегатор
type domainMetrics interface {
	RecordLineCreated(kind string)
	RecordSlotConflict(reason string)
	RecordDiscountApplied(pack string)
}

// catalogReader чтение услуг: репозиторий напрямую или через кеш
type catalogReader interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-SpaBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var counters domainMetrics = metrics.Nop{}
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		counters = metricsCollector
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

	// С выключенными метриками обёртка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	blockRepository := blockRepo.NewRepository(wrappedDB)
	packRepository := packRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)

	// Кеш каталога только на пути чтения; запись читает услугу под блокировкой из БД
	var catalog catalogReader = catalogRepository
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			log.Warn("Redis unavailable at %s, catalog cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			catalog = catalogCache.NewCache(
				catalogRepository,
				redisClient,
				time.Duration(cfg.Redis.CatalogTTL)*time.Second,
				log,
			)
			log.Info("Catalog cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CatalogTTL)
		}
	}

	// Инициализируем интеграционных клиентов
	inventory := inventoryClient.NewClient(
		cfg.Inventory.URL,
		time.Duration(cfg.Inventory.Timeout)*time.Second,
		log,
	)
	if cfg.Inventory.URL == "" {
		log.Warn("Inventory URL is empty, stock movements are disabled")
	} else {
		log.Info("Inventory client initialized (url=%s, timeout=%ds)", cfg.Inventory.URL, cfg.Inventory.Timeout)
	}

	// Инициализируем сервисы
	resolver := availabilityService.NewResolver(blockRepository, reservationRepository, log)
	aggregator := totalsService.NewAggregator(
		reservationRepository,
		packRepository,
		packsService.NewMatcher(log),
		counters,
		log,
	)
	blockSvc := blocksService.NewService(blockRepository, catalogRepository, log)
	catalogSvc := catalogService.NewService(catalog, log)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		catalog,
		blockRepository,
		reservationRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(catalog, resolver, log)
	checkSlotUseCase := checkSlotUC.NewUseCase(catalog, resolver, log)
	addServiceLineUseCase := addServiceLineUC.NewUseCase(
		reservationRepository,
		catalogRepository,
		resolver,
		aggregator,
		txMgr,
		counters,
		log,
	)
	addProductLineUseCase := addProductLineUC.NewUseCase(
		reservationRepository,
		catalogRepository,
		inventory,
		aggregator,
		txMgr,
		log,
	)
	updatePersonsUseCase := updatePersonsUC.NewUseCase(
		reservationRepository,
		catalogRepository,
		aggregator,
		txMgr,
		log,
	)
	removeLineUseCase := removeLineUC.NewUseCase(
		reservationRepository,
		inventory,
		aggregator,
		txMgr,
		log,
	)
	recomputeTotalUseCase := recomputeTotalUC.NewUseCase(reservationRepository, aggregator, txMgr, log)
	registerPaymentUseCase := registerPaymentUC.NewUseCase(reservationRepository, aggregator, txMgr, log)

	// Инициализируем handlers
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(checkSlotUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(reservationSvc, log)
	blocks := blocksHandler.NewHandler(blockSvc, log)
	createReservation := createReservationHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	addServiceLine := addServiceLineHandler.NewHandler(addServiceLineUseCase, log)
	addProductLine := addProductLineHandler.NewHandler(addProductLineUseCase, log)
	updatePersons := updatePersonsHandler.NewHandler(updatePersonsUseCase, log)
	removeLine := removeLineHandler.NewHandler(removeLineUseCase, log)
	recomputeTotal := recomputeTotalHandler.NewHandler(recomputeTotalUseCase, log)
	registerPayment := registerPaymentHandler.NewHandler(registerPaymentUseCase, log)

	// Ограничение частоты только для изменяющих запросов
	limitWrites := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		limitWrites = func(h http.HandlerFunc) http.Handler { return limiter.Limit(h) }
		log.Info("Rate limiting enabled for write routes (rps=%.2f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

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

	// Определение услуги
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)

	// Доступные слоты услуги на дату
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Проверка конкретного слота
	api.HandleFunc("/services/{serviceId}/slots/check", checkSlot.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (X-User-ID + роль персонала)
	// ============================================================

	staff := api.PathPrefix("/services/{serviceId}").Subrouter()
	staff.Use(middleware.Auth, middleware.StaffOnly)

	// Календарь занятости
	staff.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// --- Блокировки ---
	staff.HandleFunc("/blocks", blocks.ListBlocks).Methods(http.MethodGet)
	staff.Handle("/day-blocks", limitWrites(blocks.CreateDayBlock)).Methods(http.MethodPost)
	staff.Handle("/day-blocks/{date}", limitWrites(blocks.DeleteDayBlock)).Methods(http.MethodDelete)
	staff.Handle("/slot-blocks", limitWrites(blocks.CreateSlotBlock)).Methods(http.MethodPost)
	staff.Handle("/slot-blocks/{date}/{time}", limitWrites(blocks.DeleteSlotBlock)).Methods(http.MethodDelete)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("/reservations").Subrouter()
	protected.Use(middleware.Auth)

	// Создание резервации
	protected.Handle("", limitWrites(createReservation.Handle)).Methods(http.MethodPost)

	// Операции над резервацией: владелец или персонал
	reservation := protected.PathPrefix("/{reservationId}").Subrouter()
	reservation.Use(middleware.ReservationAccess(reservationSvc, log))

	reservation.HandleFunc("", getReservation.Handle).Methods(http.MethodGet)

	// --- Строки услуг ---
	reservation.Handle("/service-lines", limitWrites(addServiceLine.Handle)).Methods(http.MethodPost)
	reservation.Handle("/service-lines/{lineId}", limitWrites(updatePersons.Handle)).Methods(http.MethodPatch)
	reservation.Handle("/service-lines/{lineId}", limitWrites(removeLine.HandleService)).Methods(http.MethodDelete)

	// --- Строки товаров ---
	reservation.Handle("/product-lines", limitWrites(addProductLine.Handle)).Methods(http.MethodPost)
	reservation.Handle("/product-lines/{lineId}", limitWrites(removeLine.HandleProduct)).Methods(http.MethodDelete)

	// --- Итоги и оплата ---
	reservation.Handle("/recompute", limitWrites(recomputeTotal.Handle)).Methods(http.MethodPost)

	// События оплаты приходят от интеграции платежей под ролью персонала
	reservation.Handle("/payments", middleware.StaffOnly(limitWrites(registerPayment.Handle))).Methods(http.MethodPost)

	// Фоновые задачи
	scheduler := cron.New()
	if cfg.Jobs.BlockCleanupEnabled {
		cleanup := blockCleanupJob.NewJob(blockRepository, cfg.Jobs.BlockRetentionDays, log)
		if _, err := cleanup.Schedule(scheduler, cfg.Jobs.BlockCleanupSchedule); err != nil {
			log.Fatal("Failed to schedule block cleanup: %v", err)
		}
		log.Info("Block cleanup scheduled (%s, retention=%d days)",
			cfg.Jobs.BlockCleanupSchedule, cfg.Jobs.BlockRetentionDays)
	}
	scheduler.Start()

	// Внешняя цепочка: CORS -> recovery -> router
	var handler http.Handler = middleware.Recovery(log)(r)
	if len(cfg.Server.CORSAllowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: cfg.Server.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", middleware.HeaderUserID, middleware.HeaderUserRole, middleware.HeaderRequestID},
			ExposedHeaders: []string{middleware.HeaderRequestID},
		}).Handler(handler)
		log.Info("CORS enabled for %v", cfg.Server.CORSAllowedOrigins)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	// Дожидаемся завершения запущенных задач
	<-scheduler.Stop().Done()
	log.Info("Background jobs stopped")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
