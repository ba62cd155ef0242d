// Package storagetest holds the behaviour every dataset.Repository backend
// must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datasets/internal/domain/dataset"
)

func ptr[T any](v T) *T { return &v }

// Run exercises repo against the dataset.Repository contract. The
// repository must start empty.
func Run(t *testing.T, repo dataset.Repository) {
	t.Helper()
	ctx := context.Background()

	create := func(t *testing.T, name string, texts ...string) int64 {
		t.Helper()
		sentences := make([]dataset.Sentence, 0, len(texts))
		for i, text := range texts {
			sentences = append(sentences, dataset.Sentence{Text: text, Value: int64(i)})
		}
		id, err := repo.Create(ctx, &dataset.Dataset{
			Name:         name,
			PasswordHash: "hash",
			UseValue:     true,
			ValueName:    ptr("score"),
		}, sentences)
		require.NoError(t, err)
		return id
	}

	texts := func(t *testing.T, id int64) []string {
		t.Helper()
		sentences, err := repo.Sentences(ctx, id)
		require.NoError(t, err)
		out := make([]string, 0, len(sentences))
		for _, s := range sentences {
			out = append(out, s.Text)
		}
		return out
	}

	t.Run("list empty", func(t *testing.T) {
		items, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("create and find", func(t *testing.T) {
		id := create(t, "first", "a", "b", "c")

		ds, err := repo.Find(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "first", ds.Name)
		assert.Equal(t, "hash", ds.PasswordHash)
		assert.False(t, ds.IsOpen)
		assert.True(t, ds.UseValue)
		require.NotNil(t, ds.ValueName)
		assert.Equal(t, "score", *ds.ValueName)

		sentences, err := repo.Sentences(ctx, id)
		require.NoError(t, err)
		require.Len(t, sentences, 3)
		assert.Equal(t, []string{"a", "b", "c"}, texts(t, id))
		for i, s := range sentences {
			assert.Equal(t, id, s.DatasetID)
			assert.Equal(t, int64(i), s.Value)
			if i > 0 {
				assert.Greater(t, s.ID, sentences[i-1].ID)
			}
		}
	})

	t.Run("find missing", func(t *testing.T) {
		_, err := repo.Find(ctx, 1_000_000)
		assert.ErrorIs(t, err, dataset.ErrNotFound)
	})

	t.Run("list ordered by id", func(t *testing.T) {
		id := create(t, "second")
		items, err := repo.List(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(items), 2)
		assert.Equal(t, id, items[len(items)-1].ID)
		assert.Equal(t, "second", items[len(items)-1].Name)
	})

	t.Run("add sentence", func(t *testing.T) {
		id := create(t, "adds", "x")
		sid, err := repo.AddSentence(ctx, id, dataset.Sentence{Text: "y", Value: -5})
		require.NoError(t, err)

		sentences, err := repo.Sentences(ctx, id)
		require.NoError(t, err)
		require.Len(t, sentences, 2)
		assert.Equal(t, sid, sentences[1].ID)
		assert.Equal(t, int64(-5), sentences[1].Value)
	})

	t.Run("delete removes sentences", func(t *testing.T) {
		id := create(t, "doomed", "a", "b")
		require.NoError(t, repo.Delete(ctx, id))

		_, err := repo.Find(ctx, id)
		assert.ErrorIs(t, err, dataset.ErrNotFound)
		sentences, err := repo.Sentences(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, sentences)

		assert.ErrorIs(t, repo.Delete(ctx, id), dataset.ErrNotFound)
	})

	t.Run("edit fields", func(t *testing.T) {
		id := create(t, "before")
		require.NoError(t, repo.Edit(ctx, id, dataset.Changes{
			Name:   ptr("after"),
			IsOpen: ptr(true),
		}))

		ds, err := repo.Find(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "after", ds.Name)
		assert.True(t, ds.IsOpen)
		assert.True(t, ds.UseValue)
		assert.Equal(t, "score", *ds.ValueName)
	})

	t.Run("edit missing", func(t *testing.T) {
		err := repo.Edit(ctx, 1_000_000, dataset.Changes{Name: ptr("x")})
		assert.ErrorIs(t, err, dataset.ErrNotFound)
	})

	t.Run("edit sentences", func(t *testing.T) {
		id := create(t, "edits", "a", "b", "c")
		before, err := repo.Sentences(ctx, id)
		require.NoError(t, err)

		require.NoError(t, repo.Edit(ctx, id, dataset.Changes{
			Upsert: []dataset.Sentence{{ID: before[0].ID, Text: "A", Value: 10}},
			Remove: []int64{before[1].ID},
			Insert: []dataset.Sentence{{Text: "d"}},
		}))

		after, err := repo.Sentences(ctx, id)
		require.NoError(t, err)
		require.Len(t, after, 3)
		assert.Equal(t, []string{"A", "c", "d"}, texts(t, id))
		assert.Equal(t, int64(10), after[0].Value)
		assert.Greater(t, after[2].ID, before[2].ID)
	})

	t.Run("edit upsert unknown id inserts", func(t *testing.T) {
		id := create(t, "upserts", "a")
		before, err := repo.Sentences(ctx, id)
		require.NoError(t, err)
		explicit := before[0].ID + 500

		require.NoError(t, repo.Edit(ctx, id, dataset.Changes{
			Upsert: []dataset.Sentence{{ID: explicit, Text: "far"}},
		}))
		sid, err := repo.AddSentence(ctx, id, dataset.Sentence{Text: "next"})
		require.NoError(t, err)
		assert.Greater(t, sid, explicit)
		assert.Equal(t, []string{"a", "far", "next"}, texts(t, id))
	})

	t.Run("remove is scoped to dataset", func(t *testing.T) {
		a := create(t, "owner", "keep")
		b := create(t, "other")
		owned, err := repo.Sentences(ctx, a)
		require.NoError(t, err)

		require.NoError(t, repo.Edit(ctx, b, dataset.Changes{Remove: []int64{owned[0].ID}}))
		assert.Equal(t, []string{"keep"}, texts(t, a))
	})

	t.Run("ceiling id in one dataset leaves room for others", func(t *testing.T) {
		a := create(t, "ceiling", "a")
		b := create(t, "neighbour")

		require.NoError(t, repo.Edit(ctx, a, dataset.Changes{
			Upsert: []dataset.Sentence{{ID: dataset.MaxSentenceID, Text: "top"}},
		}))

		sid, err := repo.AddSentence(ctx, b, dataset.Sentence{Text: "hello"})
		require.NoError(t, err)
		assert.Greater(t, sid, int64(dataset.MaxSentenceID))
		assert.Equal(t, []string{"hello"}, texts(t, b))

		c := create(t, "after ceiling", "first")
		assert.Equal(t, []string{"first"}, texts(t, c))
	})
}
