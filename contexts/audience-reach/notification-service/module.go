package notificationservice

import (
	"log/slog"

	httpadapter "kasaba/contexts/audience-reach/notification-service/adapters/http"
	"kasaba/contexts/audience-reach/notification-service/adapters/memory"
	"kasaba/contexts/audience-reach/notification-service/application/commands"
	"kasaba/contexts/audience-reach/notification-service/application/queries"
	"kasaba/contexts/audience-reach/notification-service/application/workers"
	"kasaba/contexts/audience-reach/notification-service/domain/entities"
	"kasaba/contexts/audience-reach/notification-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Fanout  workers.Fanout
	Store   *memory.Store
}

type Dependencies struct {
	Notifications ports.NotificationRepository
	Directory     ports.Directory
	Publisher     ports.EventPublisher
	Subscriber    ports.EventSubscriber
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	notificationUseCase := commands.NotificationUseCase{
		Notifications: deps.Notifications,
		Directory:     deps.Directory,
		Publisher:     deps.Publisher,
		Clock:         deps.Clock,
		IDGen:         deps.IDGen,
		Logger:        deps.Logger,
	}
	inboxUseCase := queries.InboxUseCase{
		Notifications: deps.Notifications,
	}
	return Module{
		Handler: httpadapter.Handler{
			Notifications: notificationUseCase,
			Inbox:         inboxUseCase,
			Logger:        deps.Logger,
		},
		Fanout: workers.Fanout{
			Subscriber:    deps.Subscriber,
			Notifications: deps.Notifications,
			Logger:        deps.Logger,
		},
	}
}

func NewInMemoryModule(directory []entities.DirectoryUser, logger *slog.Logger) Module {
	store := memory.NewStore(directory)
	module := NewModule(Dependencies{
		Notifications: store,
		Directory:     store,
		Clock:         store,
		IDGen:         store,
		Logger:        logger,
	})
	module.Store = store
	return module
}
