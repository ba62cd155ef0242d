package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"datasets/internal/domain/dataset"
)

type DatasetRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewDatasetRepository(pool *pgxpool.Pool, log *slog.Logger) *DatasetRepository {
	return &DatasetRepository{
		pool: pool,
		log:  log.With("component", "dataset_repository"),
	}
}

func (r *DatasetRepository) List(ctx context.Context) ([]dataset.Summary, error) {
	const query = `SELECT id, name, is_open FROM datasets ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	items := make([]dataset.Summary, 0)
	for rows.Next() {
		var s dataset.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.IsOpen); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *DatasetRepository) Find(ctx context.Context, id int64) (*dataset.Dataset, error) {
	const query = `
		SELECT id, name, password_hash, is_open, use_value, value_name
		FROM datasets
		WHERE id = $1`

	var ds dataset.Dataset
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&ds.ID, &ds.Name, &ds.PasswordHash, &ds.IsOpen, &ds.UseValue, &ds.ValueName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dataset.ErrNotFound
		}
		return nil, fmt.Errorf("find dataset: %w", err)
	}
	return &ds, nil
}

func (r *DatasetRepository) Sentences(ctx context.Context, datasetID int64) ([]dataset.Sentence, error) {
	const query = `
		SELECT id, dataset_id, text, value
		FROM sentences
		WHERE dataset_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, datasetID)
	if err != nil {
		return nil, fmt.Errorf("list sentences: %w", err)
	}
	defer rows.Close()

	sentences := make([]dataset.Sentence, 0)
	for rows.Next() {
		var s dataset.Sentence
		if err := rows.Scan(&s.ID, &s.DatasetID, &s.Text, &s.Value); err != nil {
			return nil, fmt.Errorf("scan sentence: %w", err)
		}
		sentences = append(sentences, s)
	}
	return sentences, rows.Err()
}

// Create inserts the dataset and its sentences in one transaction.
func (r *DatasetRepository) Create(ctx context.Context, ds *dataset.Dataset, sentences []dataset.Sentence) (int64, error) {
	const query = `
		INSERT INTO datasets (name, password_hash, is_open, use_value, value_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query,
			ds.Name, ds.PasswordHash, ds.IsOpen, ds.UseValue, ds.ValueName,
		).Scan(&ds.ID); err != nil {
			return fmt.Errorf("insert dataset: %w", err)
		}
		return insertSentences(ctx, tx, ds.ID, sentences)
	})
	if err != nil {
		r.log.Error("failed to create dataset", "name", ds.Name, "error", err)
		return 0, err
	}
	return ds.ID, nil
}

func (r *DatasetRepository) AddSentence(ctx context.Context, datasetID int64, s dataset.Sentence) (int64, error) {
	const query = `
		INSERT INTO sentences (dataset_id, text, value)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int64
	if err := r.pool.QueryRow(ctx, query, datasetID, s.Text, s.Value).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert sentence: %w", err)
	}
	return id, nil
}

func (r *DatasetRepository) Delete(ctx context.Context, id int64) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM sentences WHERE dataset_id = $1`, id); err != nil {
			return fmt.Errorf("delete sentences: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM datasets WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete dataset: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return dataset.ErrNotFound
		}
		return nil
	})
}

// Edit applies field updates, upserts, removals and inserts in that order,
// all in one transaction.
func (r *DatasetRepository) Edit(ctx context.Context, id int64, ch dataset.Changes) error {
	const update = `
		UPDATE datasets SET
			name       = COALESCE($2, name),
			is_open    = COALESCE($3, is_open),
			use_value  = COALESCE($4, use_value),
			value_name = COALESCE($5, value_name)
		WHERE id = $1`

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, update, id, ch.Name, ch.IsOpen, ch.UseValue, ch.ValueName)
		if err != nil {
			return fmt.Errorf("update dataset: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return dataset.ErrNotFound
		}

		if err := upsertSentences(ctx, tx, id, ch.Upsert); err != nil {
			return err
		}
		if err := removeSentences(ctx, tx, id, ch.Remove); err != nil {
			return err
		}
		return insertSentences(ctx, tx, id, ch.Insert)
	})
}

func insertSentences(ctx context.Context, tx pgx.Tx, datasetID int64, sentences []dataset.Sentence) error {
	if len(sentences) == 0 {
		return nil
	}

	b := &pgx.Batch{}
	for _, s := range sentences {
		b.Queue(`INSERT INTO sentences (dataset_id, text, value) VALUES ($1, $2, $3)`,
			datasetID, s.Text, s.Value)
	}
	if err := tx.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("insert sentences: %w", err)
	}
	return nil
}

// upsertSentences writes client-supplied ids, then moves the id sequence
// past them so generated ids never collide.
func upsertSentences(ctx context.Context, tx pgx.Tx, datasetID int64, sentences []dataset.Sentence) error {
	if len(sentences) == 0 {
		return nil
	}

	b := &pgx.Batch{}
	for _, s := range sentences {
		b.Queue(`
			INSERT INTO sentences (dataset_id, id, text, value)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (dataset_id, id) DO UPDATE
			SET text = EXCLUDED.text, value = EXCLUDED.value`,
			datasetID, s.ID, s.Text, s.Value)
	}
	if err := tx.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("upsert sentences: %w", err)
	}

	const advance = `
		SELECT setval(
			pg_get_serial_sequence('sentences', 'id'),
			GREATEST((SELECT COALESCE(MAX(id), 0) + 1 FROM sentences), nextval(pg_get_serial_sequence('sentences', 'id'))),
			false)`
	if _, err := tx.Exec(ctx, advance); err != nil {
		return fmt.Errorf("advance sentence id sequence: %w", err)
	}
	return nil
}

func removeSentences(ctx context.Context, tx pgx.Tx, datasetID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM sentences WHERE dataset_id = $1 AND id = ANY($2)`, datasetID, ids,
	); err != nil {
		return fmt.Errorf("remove sentences: %w", err)
	}
	return nil
}
