package resultstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagerhq/tripsearch/internal/models"
)

func testSession(id string, createdAt time.Time) *Session {
	return &Session{
		SearchID:   id,
		Kind:       models.OfferKindActivity,
		Status:     models.StatusSuccess,
		Offers:     []models.Offer{{ID: "act_1", Kind: models.OfferKindActivity}},
		FilterHash: "abc123",
		CreatedAt:  createdAt,
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	defer store.Close()

	require.NoError(t, store.Save(context.Background(), testSession("s-1", time.Now())))

	got, ok := store.Get(context.Background(), "s-1")
	require.True(t, ok)
	assert.Equal(t, "s-1", got.SearchID)
	assert.Equal(t, "abc123", got.FilterHash)
	assert.Len(t, got.Offers, 1)
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)

	_, ok := store.Get(context.Background(), "nope")
	assert.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	stale := testSession("s-old", time.Now().Add(-2*time.Minute))
	require.NoError(t, store.Save(context.Background(), stale))

	_, ok := store.Get(context.Background(), "s-old")
	assert.False(t, ok, "entries past the TTL are gone")

	// A second lookup should hit the deleted path, not the stale entry.
	_, ok = store.Get(context.Background(), "s-old")
	assert.False(t, ok)
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore(0)
	require.NoError(t, store.Save(context.Background(), testSession("s-2", time.Now().Add(-24*time.Hour))))

	_, ok := store.Get(context.Background(), "s-2")
	assert.True(t, ok)
}

func TestMemoryStoreGetReturnsIsolatedCopy(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testSession("s-copy", time.Now())))

	first, ok := store.Get(ctx, "s-copy")
	require.True(t, ok)
	first.FilterHash = "mutated-by-one-request"

	second, ok := store.Get(ctx, "s-copy")
	require.True(t, ok)
	assert.Equal(t, "abc123", second.FilterHash,
		"mutating a returned session must not leak into the store")
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	first := testSession("s-3", time.Now())
	require.NoError(t, store.Save(ctx, first))

	updated := testSession("s-3", time.Now())
	updated.FilterHash = "def456"
	require.NoError(t, store.Save(ctx, updated))

	got, ok := store.Get(ctx, "s-3")
	require.True(t, ok)
	assert.Equal(t, "def456", got.FilterHash)
}
