package types

import (
	"context"
	"errors"

	"datasets/internal/app/client"
)

type ctxKey string

const EnvKey ctxKey = "env"

// Env is what every subcommand needs from the root command.
type Env struct {
	Client   *client.Client
	JSON     bool
	Password string
}

func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, EnvKey, env)
}

func FromContext(ctx context.Context) (*Env, error) {
	env, ok := ctx.Value(EnvKey).(*Env)
	if !ok || env == nil {
		return nil, errors.New("client is not initialized")
	}
	return env, nil
}
