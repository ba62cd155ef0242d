package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"datasets/internal/domain/dataset"
)

type DatasetRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewDatasetRepository(db *sql.DB, log *slog.Logger) *DatasetRepository {
	return &DatasetRepository{
		db:  db,
		log: log.With("component", "dataset_repository"),
	}
}

func (r *DatasetRepository) List(ctx context.Context) ([]dataset.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, is_open FROM datasets ORDER BY id`)
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
		WHERE id = ?`

	var (
		ds        dataset.Dataset
		valueName sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&ds.ID, &ds.Name, &ds.PasswordHash, &ds.IsOpen, &ds.UseValue, &valueName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dataset.ErrNotFound
		}
		return nil, fmt.Errorf("find dataset: %w", err)
	}
	if valueName.Valid {
		ds.ValueName = &valueName.String
	}
	return &ds, nil
}

func (r *DatasetRepository) Sentences(ctx context.Context, datasetID int64) ([]dataset.Sentence, error) {
	const query = `
		SELECT id, dataset_id, text, value
		FROM sentences
		WHERE dataset_id = ?
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, datasetID)
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

func (r *DatasetRepository) Create(ctx context.Context, ds *dataset.Dataset, sentences []dataset.Sentence) (int64, error) {
	const query = `
		INSERT INTO datasets (name, password_hash, is_open, use_value, value_name)
		VALUES (?, ?, ?, ?, ?)`

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, ds.Name, ds.PasswordHash, ds.IsOpen, ds.UseValue, nullable(ds.ValueName))
		if err != nil {
			return fmt.Errorf("insert dataset: %w", err)
		}
		if ds.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("read dataset id: %w", err)
		}
		_, err = insertSentences(ctx, tx, ds.ID, sentences)
		return err
	})
	if err != nil {
		r.log.Error("failed to create dataset", "name", ds.Name, "error", err)
		return 0, err
	}
	return ds.ID, nil
}

func (r *DatasetRepository) AddSentence(ctx context.Context, datasetID int64, s dataset.Sentence) (int64, error) {
	var id int64
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		ids, err := insertSentences(ctx, tx, datasetID, []dataset.Sentence{s})
		if err != nil {
			return err
		}
		id = ids[0]
		return nil
	})
	return id, err
}

func (r *DatasetRepository) Delete(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sentences WHERE dataset_id = ?`, id); err != nil {
			return fmt.Errorf("delete sentences: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete dataset: %w", err)
		}
		return requireRow(res)
	})
}

// Edit applies field updates, upserts, removals and inserts in that order,
// all in one transaction.
func (r *DatasetRepository) Edit(ctx context.Context, id int64, ch dataset.Changes) error {
	const update = `
		UPDATE datasets SET
			name       = COALESCE(?, name),
			is_open    = COALESCE(?, is_open),
			use_value  = COALESCE(?, use_value),
			value_name = COALESCE(?, value_name)
		WHERE id = ?`

	return r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, update,
			nullable(ch.Name), nullable(ch.IsOpen), nullable(ch.UseValue), nullable(ch.ValueName), id)
		if err != nil {
			return fmt.Errorf("update dataset: %w", err)
		}
		if err := requireRow(res); err != nil {
			return err
		}

		for _, s := range ch.Upsert {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO sentences (dataset_id, id, text, value)
				VALUES (?, ?, ?, ?)
				ON CONFLICT (dataset_id, id) DO UPDATE
				SET text = excluded.text, value = excluded.value`,
				id, s.ID, s.Text, s.Value,
			); err != nil {
				return fmt.Errorf("upsert sentence %d: %w", s.ID, err)
			}
		}

		if len(ch.Remove) > 0 {
			args := make([]any, 0, len(ch.Remove)+1)
			args = append(args, id)
			for _, sid := range ch.Remove {
				args = append(args, sid)
			}
			query := `DELETE FROM sentences WHERE dataset_id = ? AND id IN (` + placeholders(len(ch.Remove)) + `)`
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("remove sentences: %w", err)
			}
		}

		_, err = insertSentences(ctx, tx, id, ch.Insert)
		return err
	})
}

func (r *DatasetRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// insertSentences allocates ids above the current maximum across all
// datasets. Callers hold the only connection, so allocation cannot race.
func insertSentences(ctx context.Context, tx *sql.Tx, datasetID int64, sentences []dataset.Sentence) ([]int64, error) {
	if len(sentences) == 0 {
		return nil, nil
	}

	var next int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM sentences`).Scan(&next); err != nil {
		return nil, fmt.Errorf("allocate sentence id: %w", err)
	}

	ids := make([]int64, 0, len(sentences))
	for _, s := range sentences {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sentences (dataset_id, id, text, value) VALUES (?, ?, ?, ?)`,
			datasetID, next, s.Text, s.Value,
		); err != nil {
			return nil, fmt.Errorf("insert sentence: %w", err)
		}
		ids = append(ids, next)
		next++
	}
	return ids, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return dataset.ErrNotFound
	}
	return nil
}

// nullable turns a nil pointer into SQL NULL.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
