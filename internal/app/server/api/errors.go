package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

const msgInternal = "Internal server error"

// huma builds every error response through this package-level hook.
func init() {
	huma.NewError = newError
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"error" example:"Dataset not found" doc:"Human readable error"`
	status  int
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

func (e *ErrorResponse) GetStatus() int {
	return e.status
}

// newError replaces huma.NewError. Schema violations become 400 with the
// first detail appended, and 500s never leak internals.
func newError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		return &ErrorResponse{Message: msgInternal, status: status}
	}
	if len(errs) > 0 && errs[0] != nil {
		msg += ": " + errs[0].Error()
	}
	return &ErrorResponse{Message: msg, status: status}
}
