package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	adminBookingsHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/admin_bookings"
	adminCatalogHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/admin_catalog"
	adminCouponsHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/admin_coupons"
	adminStatsHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/admin_stats"
	adminUsersHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/admin_users"
	cancelBookingHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/cancel_booking"
	catalogHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/catalog"
	createBookingHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/create_booking"
	currentUserHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/current_user"
	getBookingHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/get_user_bookings"
	registerHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/register"
	reviewsHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/reviews"
	validateCouponHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/validate_coupon"
	vendorHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/vendor"
	vendorApplicationsHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/vendor_applications"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/config"
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
	categoryRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/category"
	cityRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/city"
	couponRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/coupon"
	profileRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/profile"
	reviewRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/review"
	servicesRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/services"
	statsRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/stats"
	vendorApplicationRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/vendorapplication"
	vendorProfileRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/vendorprofile"
	bookingsService "github.com/m04kA/SMC-MarketplaceService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-MarketplaceService/internal/service/catalog"
	couponsService "github.com/m04kA/SMC-MarketplaceService/internal/service/coupons"
	profilesService "github.com/m04kA/SMC-MarketplaceService/internal/service/profiles"
	reviewsService "github.com/m04kA/SMC-MarketplaceService/internal/service/reviews"
	statsService "github.com/m04kA/SMC-MarketplaceService/internal/service/stats"
	vendorApplicationsService "github.com/m04kA/SMC-MarketplaceService/internal/service/vendorapplications"
	vendorsService "github.com/m04kA/SMC-MarketplaceService/internal/service/vendors"
	approveApplicationUC "github.com/m04kA/SMC-MarketplaceService/internal/usecase/approve_vendor_application"
	createBookingUC "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-MarketplaceService/internal/worker"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/jwt"
	"github.com/m04kA/SMC-MarketplaceService/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceService/pkg/metrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/txmanager"
)

const rateLimitVisitorTTL = 10 * time.Minute

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP сервер",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Close()

			return runServer(cfg, log)
		},
	}
}

func runServer(cfg *config.Config, log *logger.Logger) error {
	log.Info("Starting SMC-MarketplaceService...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := openDB(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	appCache, rdb, err := openCache(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// При выключенных метриках обертка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	categoryRepository := categoryRepo.NewRepository(wrappedDB)
	cityRepository := cityRepo.NewRepository(wrappedDB)
	couponRepository := couponRepo.NewRepository(wrappedDB)
	profileRepository := profileRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)
	servicesRepository := servicesRepo.NewRepository(wrappedDB)
	statsRepository := statsRepo.NewRepository(wrappedDB)
	vendorApplicationRepository := vendorApplicationRepo.NewRepository(wrappedDB)
	vendorProfileRepository := vendorProfileRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	profileSvc := profilesService.NewService(
		profileRepository,
		vendorProfileRepository,
		servicesRepository,
		txMgr,
		appCache,
		log,
	)
	catalogSvc := catalogService.NewService(
		categoryRepository,
		cityRepository,
		servicesRepository,
		vendorProfileRepository,
		appCache,
		log,
	)
	couponSvc := couponsService.NewService(couponRepository, metricsCollector, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		vendorProfileRepository,
		txMgr,
		metricsCollector,
		log,
	)
	reviewSvc := reviewsService.NewService(
		reviewRepository,
		bookingRepository,
		servicesRepository,
		vendorProfileRepository,
		txMgr,
		log,
	)
	vendorSvc := vendorsService.NewService(vendorProfileRepository, statsRepository, log)
	statsSvc := statsService.NewService(statsRepository, log)
	vendorApplicationSvc := vendorApplicationsService.NewService(
		vendorApplicationRepository,
		profileSvc,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		servicesRepository,
		couponRepository,
		txMgr,
		metricsCollector,
		log,
	)
	approveApplicationUseCase := approveApplicationUC.NewUseCase(
		vendorApplicationRepository,
		vendorProfileRepository,
		profileRepository,
		profileSvc,
		txMgr,
		metricsCollector,
		log,
	)

	issueToken := func(userID int64) (string, error) {
		return jwt.GenerateToken(userID, cfg.Auth.JWTSecret, cfg.Auth.TokenExpireHours)
	}

	// Инициализируем handlers
	register := registerHandler.NewHandler(profileSvc, issueToken, log)
	currentUser := currentUserHandler.NewHandler(profileSvc, log)
	catalog := catalogHandler.NewHandler(catalogSvc, log)
	reviews := reviewsHandler.NewHandler(reviewSvc, log)
	validateCoupon := validateCouponHandler.NewHandler(couponSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	vendorApplications := vendorApplicationsHandler.NewHandler(vendorApplicationSvc, approveApplicationUseCase, log)
	vendor := vendorHandler.NewHandler(vendorSvc, catalogSvc, bookingSvc, log)
	adminCatalog := adminCatalogHandler.NewHandler(catalogSvc, log)
	adminCoupons := adminCouponsHandler.NewHandler(couponSvc, log)
	adminUsers := adminUsersHandler.NewHandler(profileSvc, log)
	adminBookings := adminBookingsHandler.NewHandler(bookingSvc, log)
	adminStats := adminStatsHandler.NewHandler(statsSvc, log)

	// Ограничение частоты для checkout и проверки купонов
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		trustedProxies, err := cfg.RateLimit.TrustedProxyPrefixes()
		if err != nil {
			return err
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, trustedProxies, log)
		go limiter.Cleanup(ctx, rateLimitVisitorTTL)
		limit = func(h http.HandlerFunc) http.Handler { return limiter.Middleware(h) }
		log.Info("Rate limit enabled: %d req/min, burst=%d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/auth/register", register.Handle).Methods(http.MethodPost)
	api.HandleFunc("/categories", catalog.ListCategories).Methods(http.MethodGet)
	api.HandleFunc("/cities", catalog.ListCities).Methods(http.MethodGet)
	api.HandleFunc("/services", catalog.ListServices).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", catalog.GetService).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/reviews", reviews.ListByService).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Bearer JWT, роль читается из профиля)
	// ============================================================

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, log), middleware.LoadRole(profileSvc, log))

	// --- Профиль ---
	protected.HandleFunc("/users/me", currentUser.Get).Methods(http.MethodGet)
	protected.HandleFunc("/users/me", currentUser.Update).Methods(http.MethodPut)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Купоны и бронирования ---
	protected.Handle("/coupons/validate", limit(validateCoupon.Handle)).Methods(http.MethodPost)
	protected.Handle("/bookings", limit(createBooking.Handle)).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reviews", reviews.Create).Methods(http.MethodPost)

	// --- Заявки на роль вендора ---
	protected.HandleFunc("/vendor-applications", vendorApplications.Submit).Methods(http.MethodPost)
	protected.HandleFunc("/vendor-applications/me", vendorApplications.GetMine).Methods(http.MethodGet)

	// ============================================================
	// VENDOR ROUTES
	// ============================================================

	vendorRoutes := protected.PathPrefix("/vendor").Subrouter()
	vendorRoutes.Use(middleware.RequireRole(domain.RoleVendor))

	vendorRoutes.HandleFunc("/profile", vendor.GetProfile).Methods(http.MethodGet)
	vendorRoutes.HandleFunc("/profile", vendor.UpdateProfile).Methods(http.MethodPut)
	vendorRoutes.HandleFunc("/stats", vendor.GetStats).Methods(http.MethodGet)
	vendorRoutes.HandleFunc("/services", vendor.ListServices).Methods(http.MethodGet)
	vendorRoutes.HandleFunc("/services", vendor.CreateService).Methods(http.MethodPost)
	vendorRoutes.HandleFunc("/services/{serviceId}", vendor.UpdateService).Methods(http.MethodPut)
	vendorRoutes.HandleFunc("/services/{serviceId}", vendor.DeleteService).Methods(http.MethodDelete)
	vendorRoutes.HandleFunc("/bookings", vendor.ListBookings).Methods(http.MethodGet)
	vendorRoutes.HandleFunc("/bookings/{bookingId}/status", vendor.UpdateBookingStatus).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.HandleFunc("/categories", adminCatalog.ListCategories).Methods(http.MethodGet)
	admin.HandleFunc("/categories", adminCatalog.CreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id}", adminCatalog.UpdateCategory).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{id}", adminCatalog.DeleteCategory).Methods(http.MethodDelete)

	admin.HandleFunc("/cities", adminCatalog.ListCities).Methods(http.MethodGet)
	admin.HandleFunc("/cities", adminCatalog.CreateCity).Methods(http.MethodPost)
	admin.HandleFunc("/cities/{id}", adminCatalog.UpdateCity).Methods(http.MethodPut)
	admin.HandleFunc("/cities/{id}", adminCatalog.DeleteCity).Methods(http.MethodDelete)

	admin.HandleFunc("/services", adminCatalog.ListServices).Methods(http.MethodGet)
	admin.HandleFunc("/services", adminCatalog.CreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id}", adminCatalog.UpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", adminCatalog.DeleteService).Methods(http.MethodDelete)

	admin.HandleFunc("/coupons", adminCoupons.List).Methods(http.MethodGet)
	admin.HandleFunc("/coupons", adminCoupons.Create).Methods(http.MethodPost)
	admin.HandleFunc("/coupons/{id}", adminCoupons.Update).Methods(http.MethodPut)
	admin.HandleFunc("/coupons/{id}", adminCoupons.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/users", adminUsers.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", adminUsers.Update).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", adminUsers.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/bookings", adminBookings.List).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", adminBookings.UpdateStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/payment", adminBookings.UpdatePaymentStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}", adminBookings.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/vendor-applications", vendorApplications.List).Methods(http.MethodGet)
	admin.HandleFunc("/vendor-applications/{id}/approve", vendorApplications.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/vendor-applications/{id}/reject", vendorApplications.Reject).Methods(http.MethodPost)

	admin.HandleFunc("/stats", adminStats.Handle).Methods(http.MethodGet)

	// Фоновые задачи
	sweeper := worker.NewCouponExpirySweeper(
		couponRepository,
		metricsCollector,
		log,
		time.Duration(cfg.Workers.CouponExpiryIntervalSeconds)*time.Second,
	)
	go sweeper.Start(ctx)
	log.Info("Coupon expiry sweeper started (interval=%ds)", cfg.Workers.CouponExpiryIntervalSeconds)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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
	}()

	// Ожидаем сигнал завершения или падение сервера
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed: %v", err)
		cancel()
		close(stopMetricsCh)
		return err
	}

	log.Info("Shutting down server...")

	// Останавливаем воркеры и сбор метрик connection pool
	cancel()
	close(stopMetricsCh)

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		return err
	}

	log.Info("Server stopped gracefully")
	return nil
}
