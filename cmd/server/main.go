package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"bookingdesk/internal/app"
	"bookingdesk/internal/backend"
	"bookingdesk/internal/config"
	"bookingdesk/internal/geocode"
	"bookingdesk/internal/handler"
	"bookingdesk/internal/logger"
	internalRedis "bookingdesk/internal/redis"
	"bookingdesk/internal/repository/postgres"
	"bookingdesk/internal/service"
	"bookingdesk/internal/wizard"
)

func main() {
	// .env is optional.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.WithError(err).Warn("failed to initialize New Relic")
		} else {
			log.WithField("app", cfg.NewRelic.AppName).Info("New Relic enabled")
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()
	log.Info("connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info("connected to Redis")

	server, janitor, err := wireServer(db, redisClient, nrApp, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to wire server")
	}
	janitor.Start()

	go func() {
		log.WithField("port", cfg.Server.Port).Info("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	janitor.Stop(shutdownCtx)
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	if nrApp != nil {
		nrApp.Shutdown(2 * time.Second)
	}

	log.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server and the idle-session janitor.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, log *logger.Logger) (*http.Server, *app.Janitor, error) {
	// Redis stores.
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Repositories.
	journalRepo := postgres.NewJournalRepository(db)

	// Marketplace backend.
	client := backend.NewClient(cfg.Backend)

	// Services.
	searchService := service.NewVehicleSearchService(client, cfg.Wizard.SearchPageSize, log)
	calculationRequester := service.NewCalculationRequester(client, log)
	bookingConfirmer := service.NewBookingConfirmer(client, lockStore, journalRepo, cfg.Wizard.ConfirmLockTTL, log)
	catalogService := service.NewCatalogService(client, cacheStore, cfg.Catalog.CacheTTL, log)

	deps := wizard.Deps{
		Searcher:      searchService,
		Pricer:        calculationRequester,
		Confirmer:     bookingConfirmer,
		Notifier:      service.NewNotificationService(log),
		Log:           log,
		DebounceDelay: cfg.Wizard.DebounceDelay,
		MaxNotices:    cfg.Wizard.MaxNotices,
	}

	// Geocoding is optional; without a maps key typed addresses stay unresolved.
	var places handler.PlaceFinder
	geocoder, err := geocode.NewService(cfg.Maps)
	switch {
	case err == nil:
		deps.Geocoder = geocoder
		places = geocoder
	case errors.Is(err, geocode.ErrDisabled):
		log.Warn("MAPS_API_KEY not set, geocoding disabled")
	default:
		return nil, nil, err
	}

	registry := wizard.NewRegistry(deps)
	janitor, err := app.NewJanitor(cfg.Wizard.JanitorSchedule, cfg.Wizard.SessionIdleTTL, registry, log)
	if err != nil {
		return nil, nil, err
	}

	router := app.NewRouter(app.RouterDeps{
		WizardHandler:  handler.NewWizardHandler(registry, log),
		CatalogHandler: handler.NewCatalogHandler(catalogService),
		PlacesHandler:  handler.NewPlacesHandler(places),
		JournalHandler: handler.NewJournalHandler(journalRepo),
		Idempotency:    redisClient,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		NewRelicApp:    nrApp,
		Log:            log,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, janitor, nil
}
