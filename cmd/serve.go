package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	createBookingHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/create_booking"
	deleteScheduleHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/delete_schedule"
	getAvailableTimesHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_available_times"
	getBookingHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_booking"
	getCarWashBookingsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_car_wash_bookings"
	getSchedulesHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_schedules"
	getUserBookingsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_user_bookings"
	healthHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/health"
	issueTokenHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/issue_token"
	setBookingExceptionHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/set_booking_exception"
	updateBookingStateHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/update_booking_state"
	upsertScheduleHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/upsert_schedule"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/config"
	bookingRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/booking"
	carWashRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/carwash"
	catalogRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/catalog"
	priceRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/price"
	scheduleRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/schedule"
	userRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/user"
	"github.com/m04kA/SMC-CarWashService/internal/jobs"
	"github.com/m04kA/SMC-CarWashService/internal/migrate"
	authService "github.com/m04kA/SMC-CarWashService/internal/service/auth"
	bookingsService "github.com/m04kA/SMC-CarWashService/internal/service/bookings"
	pricingService "github.com/m04kA/SMC-CarWashService/internal/service/pricing"
	schedulesService "github.com/m04kA/SMC-CarWashService/internal/service/schedules"
	createBookingUC "github.com/m04kA/SMC-CarWashService/internal/usecase/create_booking"
	getAvailableTimesUC "github.com/m04kA/SMC-CarWashService/internal/usecase/get_available_times"
	"github.com/m04kA/SMC-CarWashService/pkg/cache"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
	"github.com/m04kA/SMC-CarWashService/pkg/metrics"
	"github.com/m04kA/SMC-CarWashService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-CarWashService/pkg/txmanager"
)

func newServeCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), *configPath, migrateUp)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply database migrations before start")

	return cmd
}

func serve(ctx context.Context, configPath string, migrateUp bool) error {
	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("Starting SMC-CarWashService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := openDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if migrateUp {
		applied, err := migrate.Up(ctx, db, log)
		if err != nil {
			return err
		}
		log.Info("Migrations applied: %d", applied)
	}

	// Репозитории и transaction manager (с метриками или без)
	var (
		executor  dbmetrics.DBExecutor
		txManager *txmanager.TransactionManager
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
		executor = wrappedDB
		txManager = txmanager.NewTransactionManager(wrappedDB)
	} else {
		executor = db
		txManager = simpletxmanager.NewTransactionManager(db)
	}

	bookingRepository := bookingRepo.NewRepository(executor)
	carWashRepository := carWashRepo.NewRepository(executor)
	catalogRepository := catalogRepo.NewRepository(executor)
	priceRepository := priceRepo.NewRepository(executor)
	scheduleRepository := scheduleRepo.NewRepository(executor)
	userRepository := userRepo.NewRepository(executor)

	// Кеш цен в Redis (если включен)
	var pricingOpts []pricingService.Option
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		priceCache := cache.New(rdb, cfg.Metrics.ServiceName, time.Duration(cfg.Redis.PriceTTL)*time.Second)
		pricingOpts = append(pricingOpts, pricingService.WithCache(priceCache))
		log.Info("Price cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.PriceTTL)
	}

	// Сервисы и use cases
	pricingSvc := pricingService.NewService(priceRepository, catalogRepository, log, pricingOpts...)
	authSvc := authService.NewService(
		userRepository,
		cfg.Auth.JWTSecret,
		cfg.Auth.Issuer,
		time.Duration(cfg.Auth.TokenTTL)*time.Minute,
		log,
	)

	getAvailableTimesUseCase := getAvailableTimesUC.NewUseCase(bookingRepository, carWashRepository, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		carWashRepository,
		catalogRepository,
		getAvailableTimesUseCase,
		pricingSvc,
		txManager,
		metricsCollector,
		time.Duration(cfg.Booking.FixedDurationMinutes)*time.Minute,
		log,
	)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		carWashRepository,
		createBookingUseCase,
		txManager,
		log,
	)
	scheduleSvc := schedulesService.NewService(scheduleRepository, carWashRepository, log)

	// Фоновые задачи
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler, err = jobs.NewScheduler(bookingSvc, cfg.Jobs.CompleteSpec, log)
		if err != nil {
			return err
		}
		scheduler.Start()
	}

	router := newRouter(cfg, log, metricsCollector, routes{
		getAvailableTimes:   getAvailableTimesHandler.NewHandler(getAvailableTimesUseCase, log),
		createBooking:       createBookingHandler.NewHandler(createBookingUseCase, log),
		getBooking:          getBookingHandler.NewHandler(bookingSvc, log),
		updateBookingState:  updateBookingStateHandler.NewHandler(bookingSvc, log),
		setBookingException: setBookingExceptionHandler.NewHandler(bookingSvc, log),
		getUserBookings:     getUserBookingsHandler.NewHandler(bookingSvc, log),
		getCarWashBookings:  getCarWashBookingsHandler.NewHandler(bookingSvc, log),
		getSchedules:        getSchedulesHandler.NewHandler(scheduleSvc, log),
		upsertSchedule:      upsertScheduleHandler.NewHandler(scheduleSvc, log),
		deleteSchedule:      deleteScheduleHandler.NewHandler(scheduleSvc, log),
		issueToken:          issueTokenHandler.NewHandler(authSvc, log),
		health:              healthHandler.NewHandler(readinessChecks(db, rdb), log),
		tokenParser:         authSvc,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Ожидаем сигнал завершения или падение сервера
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			log.Error("Server failed: %v", err)
			return err
		}
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}
	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}

	log.Info("Server stopped gracefully")
	return nil
}

type routes struct {
	getAvailableTimes   *getAvailableTimesHandler.Handler
	createBooking       *createBookingHandler.Handler
	getBooking          *getBookingHandler.Handler
	updateBookingState  *updateBookingStateHandler.Handler
	setBookingException *setBookingExceptionHandler.Handler
	getUserBookings     *getUserBookingsHandler.Handler
	getCarWashBookings  *getCarWashBookingsHandler.Handler
	getSchedules        *getSchedulesHandler.Handler
	upsertSchedule      *upsertScheduleHandler.Handler
	deleteSchedule      *deleteScheduleHandler.Handler
	issueToken          *issueTokenHandler.Handler
	health              *healthHandler.Handler
	tokenParser         middleware.TokenParser
}

func newRouter(cfg *config.Config, log *logger.Logger, m *metrics.Metrics, h routes) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if m != nil {
		r.Use(middleware.MetricsMiddleware(m))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", h.health.Live).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.health.Ready).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/car_washes/{carWashId}/available_times", h.getAvailableTimes.Handle).Methods(http.MethodGet)
	api.HandleFunc("/car_washes/{carWashId}/schedules", h.getSchedules.Handle).Methods(http.MethodGet)
	api.HandleFunc("/auth/token", h.issueToken.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(h.tokenParser))

	var createBooking http.Handler = http.HandlerFunc(h.createBooking.Handle)
	if cfg.RateLimit.Enabled {
		createBooking = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware(createBooking)
		log.Info("Rate limit on booking creation: rps=%.2f, burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	protected.Handle("/bookings", createBooking).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", h.getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/state", h.updateBookingState.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/bookings", h.getUserBookings.Handle).Methods(http.MethodGet)

	// оператор видит бронирования своего бокса, администратор всей автомойки
	protected.HandleFunc("/car_washes/{carWashId}/bookings", h.getCarWashBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/car_washes/{carWashId}/schedules", h.upsertSchedule.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/car_washes/{carWashId}/schedules/{scheduleId}", h.deleteSchedule.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/{bookingId}/exception", h.setBookingException.Handle).Methods(http.MethodPatch)

	var handler http.Handler = r
	if len(cfg.Server.CORSOrigins) > 0 {
		handler = gorillahandlers.CORS(
			gorillahandlers.AllowedOrigins(cfg.Server.CORSOrigins),
			gorillahandlers.AllowedMethods([]string{
				http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
			}),
			gorillahandlers.AllowedHeaders([]string{"Authorization", "Content-Type", middleware.RequestIDHeader}),
		)(handler)
	}
	handler = gorillahandlers.RecoveryHandler(
		gorillahandlers.RecoveryLogger(recoveryLogger{log}),
	)(handler)

	return gorillahandlers.CombinedLoggingHandler(log.Writer(), handler)
}

func readinessChecks(db *sql.DB, rdb *redis.Client) map[string]healthHandler.Checker {
	checks := map[string]healthHandler.Checker{
		"postgres": healthHandler.CheckFunc(db.PingContext),
	}
	if rdb != nil {
		checks["redis"] = healthHandler.CheckFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	return checks
}

// recoveryLogger адаптер для gorilla/handlers.RecoveryHandler
type recoveryLogger struct {
	log *logger.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("Panic recovered: %v", fmt.Sprint(v...))
}
