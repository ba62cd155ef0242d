package dataset

import (
	"context"
)

// Repository is implemented by the postgres and sqlite stores.
// Find, Delete and Edit return ErrNotFound for an unknown dataset id.
type Repository interface {
	List(ctx context.Context) ([]Summary, error)
	Find(ctx context.Context, id int64) (*Dataset, error)
	Sentences(ctx context.Context, datasetID int64) ([]Sentence, error)
	Create(ctx context.Context, ds *Dataset, sentences []Sentence) (int64, error)
	AddSentence(ctx context.Context, datasetID int64, s Sentence) (int64, error)
	Delete(ctx context.Context, id int64) error
	Edit(ctx context.Context, id int64, changes Changes) error
}
