package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/pebbles-backend/internal/entity"
	"github.com/rocketscienceinc/pebbles-backend/internal/server"
)

type gameManager interface {
	CreateGame(ctx context.Context, config *entity.GameConfig) (*entity.Game, []entity.Event, error)
	ApplyAction(ctx context.Context, id string, action entity.Action) (*entity.Game, []entity.Event, error)
	GetState(ctx context.Context, id string) (*entity.Game, entity.View, error)
	DeleteGame(ctx context.Context, id string) error
}

type Server struct {
	logger *slog.Logger
	games  *gameHandler
}

func New(logger *slog.Logger, games gameManager) *Server {
	log := logger.With("component", "rest")

	return &Server{
		logger: log,
		games:  newGameHandler(log, games),
	}
}

// Handler - chi router with all routes and middleware.
func (that *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger(that.logger))
	r.Use(Recovery(that.logger))

	r.Get("/ping", NewPingHandler().PingHandler)

	r.Route("/games", func(r chi.Router) {
		r.Post("/", that.games.Create)
		r.Get("/{id}", that.games.Get)
		r.Delete("/{id}", that.games.Delete)
		r.Post("/{id}/actions", that.games.Apply)
	})

	return r
}

// Start - serves the REST API until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	return server.Run(ctx, port, that.Handler())
}
