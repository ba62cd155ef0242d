package dataset

import "errors"

var (
	ErrNotFound     = errors.New("dataset not found")
	ErrUnauthorized = errors.New("incorrect password")
	ErrForbidden    = errors.New("operation not permitted")
	ErrInvalidInput = errors.New("invalid input")
)

// Client-facing messages.
const (
	MsgNotFound          = "Dataset not found"
	MsgIncorrectPassword = "Incorrect password"
	MsgNotOpen           = "Dataset is not open for adding sentences"
	MsgNoSentence        = "No sentence provided"
	MsgSentenceTooLong   = "Sentence too long"
	MsgInvalidValue      = "Invalid value"
	MsgNameAndPassword   = "Dataset must have name and password"
	MsgNameTooLong       = "Dataset name must be less than 50 characters"
	MsgValueNameTooLong  = "Value name must be less than 50 characters"
	MsgEmptySentence     = "A dataset cannot contain an empty sentence"
	MsgSentencesTooLong  = "Sentence(s) too long"
	MsgInvalidValues     = "Invalid value(s)"
	MsgInvalidRemove     = "Invalid sentences to remove"
	MsgInvalidEditedID   = "Invalid edited sentence id"
	MsgPasswordTooLong   = "Password too long"
)

type DomainError struct {
	Err     error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func invalid(msg string) error {
	return &DomainError{Err: ErrInvalidInput, Message: msg}
}

func notFound() error {
	return &DomainError{Err: ErrNotFound, Message: MsgNotFound}
}

func unauthorized() error {
	return &DomainError{Err: ErrUnauthorized, Message: MsgIncorrectPassword}
}

func forbidden(msg string) error {
	return &DomainError{Err: ErrForbidden, Message: msg}
}
