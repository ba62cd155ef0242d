package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Func is a single huma middleware.
type Func = func(ctx huma.Context, next func(huma.Context))

// Stack queues middlewares for the next handler. Take hands the queue over
// and starts a new one, so handlers never share a slice.
type Stack struct {
	queued huma.Middlewares
}

func NewStack(mws ...Func) *Stack {
	s := &Stack{}
	return s.Push(mws...)
}

func (s *Stack) Push(mws ...Func) *Stack {
	for _, mw := range mws {
		if mw != nil {
			s.queued = append(s.queued, mw)
		}
	}
	return s
}

func (s *Stack) Len() int { return len(s.queued) }

func (s *Stack) Take() huma.Middlewares {
	out := s.queued
	if out == nil {
		out = huma.Middlewares{}
	}
	s.queued = nil
	return out
}
