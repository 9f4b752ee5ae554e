package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myusername/cbb-statistic-scraper/pkg/models"
)

func TestCanonicalKey_SortedFields(t *testing.T) {
	a, err := CanonicalKey(models.Record{"team": models.Text("duke"), "season": models.Integer(2026), "date_game": models.Text("Sat Nov 15 2025")})
	require.NoError(t, err)
	b, err := CanonicalKey(models.Record{"date_game": models.Text("Sat Nov 15 2025"), "season": models.Integer(2026), "team": models.Text("duke")})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, `{"date_game":"Sat Nov 15 2025","season":2026,"team":"duke"}`, a)
}

func TestCanonicalKey_NullMember(t *testing.T) {
	key, err := CanonicalKey(models.Record{"season": models.Integer(2026), "school": models.Null()})
	require.NoError(t, err)
	assert.Equal(t, `{"school":null,"season":2026}`, key)
}

func TestCanonicalKey_Empty(t *testing.T) {
	_, err := CanonicalKey(nil)
	assert.Error(t, err)
}

func TestUpsertResult_String(t *testing.T) {
	assert.Equal(t, "inserted", Inserted.String())
	assert.Equal(t, "replaced", Replaced.String())
	assert.Equal(t, "unknown", UpsertResult(0).String())
}

func TestMemoryStore_UpsertIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	key := models.Record{"season": models.Integer(2026), "school": models.Text("Duke")}

	res, err := s.Upsert(ctx, "season-ratings-2026", key, models.Record{"school": models.Text("Duke"), "srs": models.Float(28.1)})
	require.NoError(t, err)
	assert.Equal(t, Inserted, res)

	res, err = s.Upsert(ctx, "season-ratings-2026", key, models.Record{"school": models.Text("Duke"), "srs": models.Float(29.3)})
	require.NoError(t, err)
	assert.Equal(t, Replaced, res)

	assert.Equal(t, 1, s.Count("season-ratings-2026"))
	got, ok := s.Get("season-ratings-2026", key)
	require.True(t, ok)
	assert.True(t, models.Float(29.3).Equal(got["srs"]))
}

func TestMemoryStore_CollectionsAreSeparate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	key := models.Record{"team": models.Text("duke"), "season": models.Integer(2026)}

	_, err := s.Upsert(ctx, "team-stats", key, models.Record{"pts": models.Integer(2186)})
	require.NoError(t, err)
	res, err := s.Upsert(ctx, "rolling-stats", key, models.Record{"pts": models.Integer(77)})
	require.NoError(t, err)

	assert.Equal(t, Inserted, res)
	assert.Equal(t, []string{"rolling-stats", "team-stats"}, s.Collections())
}

func TestMemoryStore_StoredRecordIsCopied(t *testing.T) {
	s := NewMemoryStore()
	key := models.Record{"team": models.Text("duke")}
	rec := models.Record{"pts": models.Integer(70)}

	_, err := s.Upsert(context.Background(), "team-stats", key, rec)
	require.NoError(t, err)
	rec["pts"] = models.Integer(0)

	got, _ := s.Get("team-stats", key)
	assert.True(t, models.Integer(70).Equal(got["pts"]))
}

func TestMemoryStore_ConcurrentUpserts(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := models.Record{"g": models.Integer(int64(i % 5))}
			_, _ = s.Upsert(context.Background(), "rolling-stats", key, models.Record{"g": models.Integer(int64(i))})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, s.Count("rolling-stats"))
}

func TestMemoryStore_SatisfiesSink(t *testing.T) {
	var _ Sink = NewMemoryStore()
	var _ Sink = (*SQLStore)(nil)
}
