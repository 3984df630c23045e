package appstate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Defaults(t *testing.T) {
	store := NewStore(nil)

	assert.Equal(t, "USD", store.Fiat())
	assert.Equal(t, 7, store.Days())
	assert.False(t, store.Dark())
	assert.Equal(t, "id", store.Language())
	assert.Empty(t, store.Favorites())
}

func TestStore_ToggleFavoriteTwiceRestoresOriginal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewStore(NewFilePersister(path))

	store.ToggleFavorite("solana")
	original := store.Favorites()

	assert.True(t, store.ToggleFavorite("bitcoin"))
	assert.True(t, store.IsFavorite("bitcoin"))
	assert.False(t, store.ToggleFavorite("bitcoin"))
	assert.False(t, store.IsFavorite("bitcoin"))
	assert.Equal(t, original, store.Favorites())

	// The restored state was persisted, not just held in memory
	reloaded := NewStore(NewFilePersister(path))
	assert.Equal(t, original, reloaded.Favorites())
}

func TestStore_FavoritesKeepInsertionOrder(t *testing.T) {
	store := NewStore(nil)

	store.ToggleFavorite("bitcoin")
	store.ToggleFavorite("ethereum")
	store.ToggleFavorite("solana")
	store.ToggleFavorite("ethereum") // remove the middle entry

	assert.Equal(t, []string{"bitcoin", "solana"}, store.Favorites())
}

func TestStore_MutationsPersistImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	store := NewStore(NewFilePersister(path))
	store.SetFiat("IDR")
	store.SetDays(30)
	store.SetDark(true)
	store.SetLanguage("en")
	store.ToggleFavorite("bitcoin")

	reloaded := NewStore(NewFilePersister(path))
	assert.Equal(t, "IDR", reloaded.Fiat())
	assert.Equal(t, 30, reloaded.Days())
	assert.True(t, reloaded.Dark())
	assert.Equal(t, "en", reloaded.Language())
	assert.Equal(t, []string{"bitcoin"}, reloaded.Favorites())
}

func TestStore_SearchIsEphemeral(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	store := NewStore(NewFilePersister(path))
	store.SetSearch("btc")
	assert.Equal(t, "btc", store.Search())

	reloaded := NewStore(NewFilePersister(path))
	assert.Empty(t, reloaded.Search())
}

func TestFilePersister_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	p := NewFilePersister(path)
	require.NoError(t, p.Save("k", map[string]int{"a": 1}))

	var loaded map[string]int
	fresh := NewFilePersister(path)
	require.NoError(t, fresh.Load("k", &loaded))
	assert.Equal(t, map[string]int{"a": 1}, loaded)

	var missing string
	assert.ErrorIs(t, fresh.Load("absent", &missing), ErrNotFound)
}
