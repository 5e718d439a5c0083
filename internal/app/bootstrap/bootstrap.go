package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	adservice "kasaba/contexts/audience-reach/ad-service"
	adpostgres "kasaba/contexts/audience-reach/ad-service/adapters/postgres"
	adworkers "kasaba/contexts/audience-reach/ad-service/application/workers"
	notificationservice "kasaba/contexts/audience-reach/notification-service"
	notificationpostgres "kasaba/contexts/audience-reach/notification-service/adapters/postgres"
	notificationworkers "kasaba/contexts/audience-reach/notification-service/application/workers"
	voteledger "kasaba/contexts/community-engagement/vote-ledger"
	votepostgres "kasaba/contexts/community-engagement/vote-ledger/adapters/postgres"
	classifiedservice "kasaba/contexts/marketplace-trade/classified-service"
	classifiedpostgres "kasaba/contexts/marketplace-trade/classified-service/adapters/postgres"
	classifiedworkers "kasaba/contexts/marketplace-trade/classified-service/application/workers"
	requestdesk "kasaba/contexts/marketplace-trade/request-desk"
	requestpostgres "kasaba/contexts/marketplace-trade/request-desk/adapters/postgres"
	dutyrotation "kasaba/contexts/town-guide/duty-rotation"
	dutypostgres "kasaba/contexts/town-guide/duty-rotation/adapters/postgres"
	"kasaba/internal/platform/config"
	"kasaba/internal/platform/db"
	"kasaba/internal/platform/httpserver"
	"kasaba/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	featuredSweep classifiedworkers.FeaturedExpirer
	adWindowSweep adworkers.WindowSweeper
	fanout        notificationworkers.Fanout
	sweepInterval time.Duration
	featuredOn    bool
	adWindowOn    bool
	fanoutOn      bool
	logger        *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)

	classifiedRepo := classifiedpostgres.NewRepository(pg.DB, logger)
	classifiedModule := classifiedservice.NewModule(classifiedservice.Dependencies{
		Listings:        classifiedRepo,
		Clock:           classifiedpostgres.SystemClock{},
		IDGen:           classifiedpostgres.UUIDGenerator{},
		MaxFeaturedDays: cfg.FeaturedMaxDays,
		Logger:          logger,
	})

	voteRepo := votepostgres.NewRepository(pg.DB, logger)
	voteModule := voteledger.NewModule(voteledger.Dependencies{
		AdminPolls:  voteRepo,
		PublicVotes: voteRepo,
		Clock:       votepostgres.SystemClock{},
		IDGen:       votepostgres.UUIDGenerator{},
		Logger:      logger,
	})

	dutyRepo := dutypostgres.NewRepository(pg.DB, logger)
	dutyModule := dutyrotation.NewModule(dutyrotation.Dependencies{
		Pharmacies: dutyRepo,
		Clock:      dutypostgres.SystemClock{},
		IDGen:      dutypostgres.UUIDGenerator{},
		Logger:     logger,
	})

	notificationRepo := notificationpostgres.NewRepository(pg.DB, logger)
	notificationModule := notificationservice.NewModule(notificationservice.Dependencies{
		Notifications: notificationRepo,
		Directory:     notificationpostgres.NewDirectory(pg.DB),
		Publisher:     bus,
		Subscriber:    bus,
		Clock:         notificationpostgres.SystemClock{},
		IDGen:         notificationpostgres.UUIDGenerator{},
		Logger:        logger,
	})

	adRepo := adpostgres.NewRepository(pg.DB, logger)
	adModule := adservice.NewModule(adservice.Dependencies{
		Ads:    adRepo,
		Clock:  adpostgres.SystemClock{},
		IDGen:  adpostgres.UUIDGenerator{},
		Logger: logger,
	})

	requestRepo := requestpostgres.NewRepository(pg.DB, logger)
	requestModule := requestdesk.NewModule(requestdesk.Dependencies{
		Requests: requestRepo,
		Clock:    requestpostgres.SystemClock{},
		IDGen:    requestpostgres.UUIDGenerator{},
		Logger:   logger,
	})

	server := httpserver.New(
		classifiedModule,
		voteModule,
		dutyModule,
		notificationModule,
		adModule,
		requestModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	classifiedRepo := classifiedpostgres.NewRepository(pg.DB, logger)
	adRepo := adpostgres.NewRepository(pg.DB, logger)
	notificationRepo := notificationpostgres.NewRepository(pg.DB, logger)

	return &WorkerApp{
		postgres: pg,
		featuredSweep: classifiedworkers.FeaturedExpirer{
			Listings: classifiedRepo,
			Clock:    classifiedpostgres.SystemClock{},
			Logger:   logger,
		},
		adWindowSweep: adworkers.WindowSweeper{
			Ads:    adRepo,
			Clock:  adpostgres.SystemClock{},
			Logger: logger,
		},
		fanout: notificationworkers.Fanout{
			Subscriber:    bus,
			Notifications: notificationRepo,
			Logger:        logger,
		},
		sweepInterval: cfg.SweepInterval,
		featuredOn:    cfg.EnableFeaturedSweep,
		adWindowOn:    cfg.EnableAdWindowSweep,
		fanoutOn:      cfg.EnableNotificationFanout,
		logger:        logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if w.fanoutOn {
		if err := w.fanout.Run(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"sweep_interval", w.sweepInterval.String(),
	)

	for {
		group, groupCtx := errgroup.WithContext(ctx)
		if w.featuredOn {
			group.Go(func() error { return w.featuredSweep.RunOnce(groupCtx) })
		}
		if w.adWindowOn {
			group.Go(func() error { return w.adWindowSweep.RunOnce(groupCtx) })
		}
		if err := group.Wait(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
