package dataset

import (
	"context"
	"errors"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"datasets/internal/domain/dataset"
)

const (
	msgVerified = "Verified"
	msgAdded    = "Sentence added successfully"
	msgCreated  = "Dataset added successfully"
	msgDeleted  = "Dataset deleted successfully"
	msgUpdated  = "Dataset updated successfully"
	msgInternal = "Internal server error"
)

type Handler struct {
	service    dataset.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service dataset.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.verifyOp(), h.verify)
	huma.Register(api, h.addOp(), h.add)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.editOp(), h.edit)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	items, err := h.service.List(ctx)
	if err != nil {
		return nil, h.toHTTPError(err)
	}
	return &listOutput{Body: toSummaries(items)}, nil
}

func (h *Handler) get(ctx context.Context, input *idInput) (*getOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	ds, err := h.service.Get(ctx, id)
	if err != nil {
		return nil, h.toHTTPError(err)
	}
	return &getOutput{Body: toDatasetResponse(ds)}, nil
}

func (h *Handler) verify(ctx context.Context, input *passwordInput) (*messageOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, huma.Error401Unauthorized(dataset.MsgIncorrectPassword)
	}

	if err := h.service.Verify(ctx, id, bodyOf(input.Body).Password); err != nil {
		return nil, h.toHTTPError(err)
	}
	return message(msgVerified), nil
}

func (h *Handler) add(ctx context.Context, input *addInput) (*messageOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.service.AddSentence(ctx, id, bodyOf(input.Body)); err != nil {
		return nil, h.toHTTPError(err)
	}
	return message(msgAdded), nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	id, err := h.service.Create(ctx, bodyOf(input.Body))
	if err != nil {
		return nil, h.toHTTPError(err)
	}
	return &createOutput{Body: createResponse{Message: msgCreated, ID: id}}, nil
}

func (h *Handler) delete(ctx context.Context, input *passwordInput) (*messageOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.service.Delete(ctx, id, bodyOf(input.Body).Password); err != nil {
		return nil, h.toHTTPError(err)
	}
	return message(msgDeleted), nil
}

func (h *Handler) edit(ctx context.Context, input *editInput) (*messageOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.service.Edit(ctx, id, bodyOf(input.Body)); err != nil {
		return nil, h.toHTTPError(err)
	}
	return message(msgUpdated), nil
}

// toHTTPError maps domain errors to statuses. Anything else is a store
// failure and is hidden behind a generic 500.
func (h *Handler) toHTTPError(err error) error {
	var de *dataset.DomainError
	msg := err.Error()
	if errors.As(err, &de) {
		msg = de.Error()
	}

	switch {
	case errors.Is(err, dataset.ErrNotFound):
		return huma.Error404NotFound(msg)
	case errors.Is(err, dataset.ErrUnauthorized):
		return huma.Error401Unauthorized(msg)
	case errors.Is(err, dataset.ErrForbidden):
		return huma.Error403Forbidden(msg)
	case errors.Is(err, dataset.ErrInvalidInput):
		return huma.Error400BadRequest(msg)
	}

	if h.log != nil {
		h.log.Error("request failed", "error", err)
	}
	return huma.Error500InternalServerError(msgInternal)
}

// parseID treats a malformed path id as an unknown dataset.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, huma.Error404NotFound(dataset.MsgNotFound)
	}
	return id, nil
}

func message(msg string) *messageOutput {
	return &messageOutput{Body: messageResponse{Message: msg}}
}
