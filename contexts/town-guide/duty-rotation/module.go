package dutyrotation

import (
	"log/slog"

	httpadapter "kasaba/contexts/town-guide/duty-rotation/adapters/http"
	"kasaba/contexts/town-guide/duty-rotation/adapters/memory"
	"kasaba/contexts/town-guide/duty-rotation/application"
	"kasaba/contexts/town-guide/duty-rotation/domain/entities"
	"kasaba/contexts/town-guide/duty-rotation/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Pharmacies ports.PharmacyRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Pharmacies: deps.Pharmacies,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Duty:   service,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Pharmacy, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Pharmacies: store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
