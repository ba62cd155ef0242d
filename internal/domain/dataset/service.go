package dataset

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context) ([]Summary, error)
	Get(ctx context.Context, id int64) (*Dataset, error)
	Verify(ctx context.Context, id int64, password string) error
	AddSentence(ctx context.Context, id int64, req AddSentenceRequest) error
	Create(ctx context.Context, req CreateRequest) (int64, error)
	Delete(ctx context.Context, id int64, password string) error
	Edit(ctx context.Context, id int64, req EditRequest) error
}

// Service holds the dataset business rules: existence, password and
// openness checks, then validation, then a single store call.
type Service struct {
	repo      Repository
	validator Validator
	hasher    Hasher
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, hasher Hasher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		hasher:    hasher,
		log:       log.With("component", "dataset_service"),
	}
}

// List returns every dataset as a summary
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list datasets", "error", err)
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return items, nil
}

// Get returns a dataset together with its sentences
func (s *Service) Get(ctx context.Context, id int64) (*Dataset, error) {
	ds, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	sentences, err := s.repo.Sentences(ctx, id)
	if err != nil {
		s.log.Error("failed to load sentences", "dataset_id", id, "error", err)
		return nil, fmt.Errorf("load sentences: %w", err)
	}
	ds.Sentences = sentences

	return ds, nil
}

// Verify reports an unknown dataset the same way as a wrong password.
func (s *Service) Verify(ctx context.Context, id int64, password string) error {
	ds, err := s.find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return unauthorized()
		}
		return err
	}

	return s.hasher.Compare(ds.PasswordHash, password)
}

func (s *Service) AddSentence(ctx context.Context, id int64, req AddSentenceRequest) error {
	ds, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !ds.IsOpen {
		return forbidden(MsgNotOpen)
	}

	sentence, err := s.validator.ValidateAdd(req)
	if err != nil {
		s.log.Debug("add sentence rejected", "dataset_id", id, "error", err)
		return err
	}

	sentenceID, err := s.repo.AddSentence(ctx, id, sentence)
	if err != nil {
		s.log.Error("failed to add sentence", "dataset_id", id, "error", err)
		return fmt.Errorf("add sentence: %w", err)
	}

	s.log.Info("sentence added", "dataset_id", id, "sentence_id", sentenceID)
	return nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (int64, error) {
	ds, sentences, err := s.validator.ValidateCreate(req)
	if err != nil {
		s.log.Debug("create dataset rejected", "name", req.Name, "error", err)
		return 0, err
	}

	ds.PasswordHash, err = s.hasher.Hash(req.Password)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, &ds, sentences)
	if err != nil {
		s.log.Error("failed to create dataset", "name", ds.Name, "error", err)
		return 0, fmt.Errorf("create dataset: %w", err)
	}

	s.log.Info("dataset created", "dataset_id", id, "sentences", len(sentences))
	return id, nil
}

func (s *Service) Delete(ctx context.Context, id int64, password string) error {
	if err := s.authorize(ctx, id, password); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound()
		}
		s.log.Error("failed to delete dataset", "dataset_id", id, "error", err)
		return fmt.Errorf("delete dataset: %w", err)
	}

	s.log.Info("dataset deleted", "dataset_id", id)
	return nil
}

// Edit applies all changes of req atomically or none of them.
func (s *Service) Edit(ctx context.Context, id int64, req EditRequest) error {
	if err := s.authorize(ctx, id, req.Password); err != nil {
		return err
	}

	changes, err := s.validator.ValidateEdit(req)
	if err != nil {
		s.log.Debug("edit dataset rejected", "dataset_id", id, "error", err)
		return err
	}
	if changes.Empty() {
		return nil
	}

	if err := s.repo.Edit(ctx, id, changes); err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound()
		}
		s.log.Error("failed to edit dataset", "dataset_id", id, "error", err)
		return fmt.Errorf("edit dataset: %w", err)
	}

	s.log.Info("dataset updated", "dataset_id", id,
		"inserted", len(changes.Insert), "upserted", len(changes.Upsert), "removed", len(changes.Remove))
	return nil
}

func (s *Service) find(ctx context.Context, id int64) (*Dataset, error) {
	ds, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFound()
		}
		s.log.Error("failed to find dataset", "dataset_id", id, "error", err)
		return nil, fmt.Errorf("find dataset: %w", err)
	}
	return ds, nil
}

func (s *Service) authorize(ctx context.Context, id int64, password string) error {
	ds, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.hasher.Compare(ds.PasswordHash, password)
}
