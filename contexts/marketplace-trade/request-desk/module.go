package requestdesk

import (
	"log/slog"

	httpadapter "kasaba/contexts/marketplace-trade/request-desk/adapters/http"
	"kasaba/contexts/marketplace-trade/request-desk/adapters/memory"
	"kasaba/contexts/marketplace-trade/request-desk/application"
	"kasaba/contexts/marketplace-trade/request-desk/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Requests ports.RequestRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Requests: deps.Requests,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Desk:   service,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Requests: store,
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
