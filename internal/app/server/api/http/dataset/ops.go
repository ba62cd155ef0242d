package dataset

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "datasets-list",
		Method:      http.MethodGet,
		Path:        "/datasets",
		Summary:     "List datasets",
		Tags:        []string{"datasets"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "datasets-get",
		Method:      http.MethodGet,
		Path:        "/datasets/{id}",
		Summary:     "Get a dataset with its sentences",
		Tags:        []string{"datasets"},
		Errors:      []int{http.StatusNotFound},
		Middlewares: h.middleware,
	}
}

func (h *Handler) verifyOp() huma.Operation {
	return huma.Operation{
		OperationID: "datasets-verify",
		Method:      http.MethodPost,
		Path:        "/datasets/{id}/verify",
		Summary:     "Check a dataset password",
		Tags:        []string{"datasets"},
		Errors:      []int{http.StatusUnauthorized},
		Middlewares: h.middleware,
	}
}

func (h *Handler) addOp() huma.Operation {
	return huma.Operation{
		OperationID: "datasets-add-sentence",
		Method:      http.MethodPost,
		Path:        "/datasets/{id}/add",
		Summary:     "Add a sentence to an open dataset",
		Description: "Anyone may add to an open dataset; no password is needed.",
		Tags:        []string{"datasets", "sentences"},
		Errors:      []int{http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "datasets-create",
		Method:        http.MethodPost,
		Path:          "/datasets/new",
		Summary:       "Create a dataset",
		Tags:          []string{"datasets"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "datasets-delete",
		Method:      http.MethodPost,
		Path:        "/datasets/{id}/delete",
		Summary:     "Delete a dataset and its sentences",
		Tags:        []string{"datasets"},
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound},
		Middlewares: h.middleware,
	}
}

func (h *Handler) editOp() huma.Operation {
	return huma.Operation{
		OperationID: "datasets-edit",
		Method:      http.MethodPost,
		Path:        "/datasets/{id}/edit",
		Summary:     "Edit a dataset",
		Description: "Field updates, edited, removed and new sentences are applied together or not at all.",
		Tags:        []string{"datasets", "sentences"},
		Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound},
		Middlewares: h.middleware,
	}
}
