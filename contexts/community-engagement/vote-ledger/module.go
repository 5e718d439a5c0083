package voteledger

import (
	"log/slog"

	httpadapter "kasaba/contexts/community-engagement/vote-ledger/adapters/http"
	"kasaba/contexts/community-engagement/vote-ledger/adapters/memory"
	"kasaba/contexts/community-engagement/vote-ledger/application/commands"
	"kasaba/contexts/community-engagement/vote-ledger/application/queries"
	"kasaba/contexts/community-engagement/vote-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	AdminPolls  ports.AdminPollRepository
	PublicVotes ports.PublicVoteRepository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	voteUseCase := commands.VoteUseCase{
		AdminPolls:  deps.AdminPolls,
		PublicVotes: deps.PublicVotes,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Logger:      deps.Logger,
	}
	pollsUseCase := queries.PollsUseCase{
		AdminPolls:  deps.AdminPolls,
		PublicVotes: deps.PublicVotes,
		Clock:       deps.Clock,
	}
	return Module{
		Handler: httpadapter.Handler{
			Votes:  voteUseCase,
			Polls:  pollsUseCase,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		AdminPolls:  store,
		PublicVotes: store,
		Clock:       store,
		IDGen:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
