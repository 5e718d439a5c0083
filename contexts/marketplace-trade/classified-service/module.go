package classifiedservice

import (
	"log/slog"

	httpadapter "kasaba/contexts/marketplace-trade/classified-service/adapters/http"
	"kasaba/contexts/marketplace-trade/classified-service/adapters/memory"
	"kasaba/contexts/marketplace-trade/classified-service/application/commands"
	"kasaba/contexts/marketplace-trade/classified-service/application/queries"
	"kasaba/contexts/marketplace-trade/classified-service/application/workers"
	"kasaba/contexts/marketplace-trade/classified-service/domain/entities"
	"kasaba/contexts/marketplace-trade/classified-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Expirer workers.FeaturedExpirer
	Store   *memory.Store
}

type Dependencies struct {
	Listings        ports.ClassifiedRepository
	Clock           ports.Clock
	IDGen           ports.IDGenerator
	MaxFeaturedDays int
	Logger          *slog.Logger
}

func NewModule(deps Dependencies) Module {
	classifiedUseCase := commands.ClassifiedUseCase{
		Listings:        deps.Listings,
		Clock:           deps.Clock,
		IDGen:           deps.IDGen,
		MaxFeaturedDays: deps.MaxFeaturedDays,
		Logger:          deps.Logger,
	}
	listingsUseCase := queries.ListingsUseCase{
		Listings: deps.Listings,
		Clock:    deps.Clock,
	}
	return Module{
		Handler: httpadapter.Handler{
			Classifieds: classifiedUseCase,
			Listings:    listingsUseCase,
			Logger:      deps.Logger,
		},
		Expirer: workers.FeaturedExpirer{
			Listings: deps.Listings,
			Clock:    deps.Clock,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Classified, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Listings: store,
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
