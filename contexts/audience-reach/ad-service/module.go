package adservice

import (
	"log/slog"

	httpadapter "kasaba/contexts/audience-reach/ad-service/adapters/http"
	"kasaba/contexts/audience-reach/ad-service/adapters/memory"
	"kasaba/contexts/audience-reach/ad-service/application/commands"
	"kasaba/contexts/audience-reach/ad-service/application/queries"
	"kasaba/contexts/audience-reach/ad-service/application/workers"
	"kasaba/contexts/audience-reach/ad-service/domain/entities"
	"kasaba/contexts/audience-reach/ad-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Sweeper workers.WindowSweeper
	Store   *memory.Store
}

type Dependencies struct {
	Ads    ports.AdRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	adUseCase := commands.AdUseCase{
		Ads:    deps.Ads,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	catalogUseCase := queries.AdsUseCase{
		Ads:   deps.Ads,
		Clock: deps.Clock,
	}
	return Module{
		Handler: httpadapter.Handler{
			Ads:     adUseCase,
			Catalog: catalogUseCase,
			Logger:  deps.Logger,
		},
		Sweeper: workers.WindowSweeper{
			Ads:    deps.Ads,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Ad, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Ads:    store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
