package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv" // optional .env file
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/vehicle-service-management/internal/composer"
	"github.com/iliyamo/vehicle-service-management/internal/config"
	"github.com/iliyamo/vehicle-service-management/internal/database"
	"github.com/iliyamo/vehicle-service-management/internal/handler"
	"github.com/iliyamo/vehicle-service-management/internal/invoice"
	"github.com/iliyamo/vehicle-service-management/internal/model"
	"github.com/iliyamo/vehicle-service-management/internal/queue"
	"github.com/iliyamo/vehicle-service-management/internal/repository"
	"github.com/iliyamo/vehicle-service-management/internal/router"
	"github.com/iliyamo/vehicle-service-management/internal/session"
	"github.com/iliyamo/vehicle-service-management/internal/view"
)

func main() {
	_ = godotenv.Load()  // a missing .env is fine
	cfg := config.Load() // Load environment config
	logger := config.NewLogger(cfg)

	db, err := database.Open(cfg.DB)
	if err != nil {
		logger.WithError(err).Fatal("open database")
	}
	defer db.Close()
	gw := database.NewGateway(db, cfg.DB.Driver, logger)

	ctx := context.Background()
	if err := database.Ping(ctx, db); err != nil {
		// every operation reports its own storage failure to the operator
		logger.WithError(err).Warn("database not reachable at start")
	}
	if cfg.DB.Bootstrap {
		if err := database.Bootstrap(ctx, gw); err != nil {
			logger.WithError(err).Fatal("bootstrap schema")
		}
	}

	customers := repository.NewCustomerRepo(gw)
	vehicles := repository.NewVehicleRepo(gw)
	mechanics := repository.NewMechanicRepo(gw)
	spareParts := repository.NewSparePartRepo(gw)
	services := repository.NewServiceRepo(gw)

	views := &view.Views{
		Customers:  view.New[model.Customer]("customers", customers),
		Vehicles:   view.New[model.Vehicle]("vehicles", vehicles),
		Mechanics:  view.New[model.Mechanic]("mechanics", mechanics),
		SpareParts: view.New[model.SparePart]("spare-parts", spareParts),
		Services:   view.New[model.ServiceRecord]("services", services),
	}
	// preload the tables; a failure here must not keep the server down
	if _, err := views.RefreshAll(ctx); err != nil {
		logger.WithError(err).Debug("initial load skipped")
	}

	gate, err := session.NewGate(cfg.OperatorUser, cfg.OperatorPassword, cfg.BcryptCost)
	if err != nil {
		logger.WithError(err).Fatal("session gate")
	}

	var drafts composer.Store = composer.NewMemoryStore(cfg.DraftTTL)
	rdb, err := config.NewRedisClient(cfg.Redis)
	switch {
	case err != nil:
		logger.WithError(err).Warn("redis unavailable, drafts kept in memory")
	case rdb != nil:
		defer rdb.Close()
		drafts = composer.NewRedisStore(rdb, cfg.DraftTTL)
		logger.WithField("addr", cfg.Redis.Addr).Info("drafts kept in redis")
	}

	shop, err := config.LoadShopProfile(cfg.ShopProfilePath)
	if err != nil {
		logger.WithError(err).Warn("shop profile not loaded, using default header")
		shop = config.DefaultShopProfile()
	}
	var opener invoice.Opener = invoice.NoopOpener{}
	if cfg.InvoiceAutoOpen {
		opener = invoice.SystemOpener{}
	}

	shopHandler := handler.NewShopHandler(handler.ShopDeps{
		Customers:  customers,
		Vehicles:   vehicles,
		Mechanics:  mechanics,
		SpareParts: spareParts,
		Services:   services,
		Views:      views,
		Composer:   composer.New(drafts, spareParts, services),
		Invoices:   invoice.NewRenderer(services, shop, opener, logger),
		Events:     queue.NewPublisher(cfg.AMQPURL, cfg.EventsEnabled, logger),
		Log:        logger,
	})
	e := router.New(router.Options{
		Shop:      shopHandler,
		Session:   &handler.SessionHandler{Gate: gate, JWTSecret: cfg.JWTSecret, TTLMin: cfg.SessionTTLMin, Log: logger},
		JWTSecret: cfg.JWTSecret,
		Ping:      db.PingContext,
		Log:       logger,
	})

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		logger.WithFields(log.Fields{"addr": cfg.Addr, "env": cfg.Env, "driver": cfg.DB.Driver}).Info("listening")
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	<-sigCtx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("shutdown")
	}
}
