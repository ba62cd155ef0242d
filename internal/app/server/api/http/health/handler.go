package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Pinger reports whether the backing store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	store      Pinger
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(store Pinger, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		store:      store,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.checkOp(), h.check)
}

func (h *Handler) check(ctx context.Context, _ *checkInput) (*checkOutput, error) {
	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			h.log.Error("storage unavailable", "error", err)
			return nil, huma.Error503ServiceUnavailable("Storage unavailable")
		}
	}

	return &checkOutput{Body: Status{Status: statusOK}}, nil
}
