package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"shopfront-api/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newStore(t *testing.T) (*ReviewStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.json")
	return NewReviewStore(path, zerolog.Nop()), path
}

func review(rating any) domain.ReviewRecord {
	return domain.ReviewRecord{
		UserName:   strPtr("ann"),
		StarRating: rating,
		Date:       "2024-05-01T09:30:00.000Z",
	}
}

func TestReviewStore_FetchMissingFile(t *testing.T) {
	store, _ := newStore(t)

	records, err := store.Fetch(context.Background(), "42")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestReviewStore_AppendCreatesFile(t *testing.T) {
	store, path := newStore(t)
	ctx := context.Background()

	rec := domain.ReviewRecord{
		UserName:    strPtr("ann"),
		Text:        strPtr("great"),
		ProductName: strPtr("Blue Mug"),
		StarRating:  float64(5),
		Date:        "2024-05-01T09:30:00.000Z",
	}
	got, err := store.Append(ctx, "42", rec)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	expected := `{
  "42": [
    {
      "userName": "ann",
      "text": "great",
      "ProductName": "Blue Mug",
      "starRating": 5,
      "date": "2024-05-01T09:30:00.000Z"
    }
  ]
}`
	assert.Equal(t, expected, string(data))

	records, err := store.Fetch(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, []domain.ReviewRecord{rec}, records)
}

func TestReviewStore_KeepsInsertionOrder(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := store.Append(ctx, "42", review(float64(i)))
		require.NoError(t, err)
	}

	records, err := store.Fetch(ctx, "42")
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, float64(i+1), rec.StarRating)
	}
}

func TestReviewStore_ProductsAreIsolated(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	_, err := store.Append(ctx, "a", review(float64(4)))
	require.NoError(t, err)
	_, err = store.Append(ctx, "b", review("2"))
	require.NoError(t, err)

	a, err := store.Fetch(ctx, "a")
	require.NoError(t, err)
	b, err := store.Fetch(ctx, "b")
	require.NoError(t, err)

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, float64(4), a[0].StarRating)
	assert.Equal(t, "2", b[0].StarRating)
}

func TestReviewStore_ReadsExistingSnapshot(t *testing.T) {
	store, path := newStore(t)
	snapshot := `{"7":[{"userName":"z","ProductName":"Lamp","starRating":"4","date":"2023-01-01T00:00:00.000Z"}]}`
	require.NoError(t, os.WriteFile(path, []byte(snapshot), 0o644))

	records, err := store.Fetch(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Lamp", *records[0].ProductName)
	assert.Equal(t, "4", records[0].StarRating)
}

func TestReviewStore_EmptyAndNullFiles(t *testing.T) {
	for _, content := range []string{"", "  \n", "null"} {
		t.Run(fmt.Sprintf("%q", content), func(t *testing.T) {
			store, path := newStore(t)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			records, err := store.Fetch(context.Background(), "1")
			require.NoError(t, err)
			assert.Empty(t, records)

			_, err = store.Append(context.Background(), "1", review(float64(3)))
			require.NoError(t, err)
		})
	}
}

func TestReviewStore_CorruptSnapshot(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	records, err := store.Fetch(context.Background(), "1")
	require.NoError(t, err, "fetch degrades to empty")
	assert.Empty(t, records)

	_, err = store.Append(context.Background(), "1", review(float64(3)))
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data), "corrupt snapshot must not be overwritten")
}

func TestReviewStore_WriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "reviews.json")
	store := NewReviewStore(path, zerolog.Nop())

	_, err := store.Append(context.Background(), "1", review(float64(3)))
	assert.Error(t, err)
}

func TestReviewStore_ConcurrentAppendsLoseNothing(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			product := fmt.Sprintf("p%d", i%2)
			_, err := store.Append(ctx, product, review(float64(i%5+1)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	p0, err := store.Fetch(ctx, "p0")
	require.NoError(t, err)
	p1, err := store.Fetch(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, p0, n/2)
	assert.Len(t, p1, n/2)
}

func TestReviewStore_NoTempFilesLeft(t *testing.T) {
	store, path := newStore(t)

	_, err := store.Append(context.Background(), "1", review(float64(1)))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "reviews.json", entries[0].Name())
}

func TestReviewStore_FileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}

	t.Run("new snapshot", func(t *testing.T) {
		store, path := newStore(t)

		_, err := store.Append(context.Background(), "1", review(float64(4)))
		require.NoError(t, err)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	})

	t.Run("existing snapshot keeps its mode", func(t *testing.T) {
		store, path := newStore(t)
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
		require.NoError(t, os.Chmod(path, 0o640))

		_, err := store.Append(context.Background(), "1", review(float64(4)))
		require.NoError(t, err)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
	})
}
