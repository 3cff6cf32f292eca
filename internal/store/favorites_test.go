package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFavoriteDuplicateConflicts(t *testing.T) {
	s := newTestStore(t)
	c := seedCustomer(t, s, "alice")
	item := seedItem(t, s, "Milk Tea", 80)

	fav, err := s.AddFavorite(c.ID, item.ID)
	require.NoError(t, err)
	assert.NotZero(t, fav.ID)

	_, err = s.AddFavorite(c.ID, item.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRemoveFavorite(t *testing.T) {
	s := newTestStore(t)
	c := seedCustomer(t, s, "alice")
	item := seedItem(t, s, "Milk Tea", 80)

	_, err := s.AddFavorite(c.ID, item.ID)
	require.NoError(t, err)
	require.NoError(t, s.RemoveFavorite(c.ID, item.ID))
	assert.ErrorIs(t, s.RemoveFavorite(c.ID, item.ID), ErrNotFound)
}

func TestRemoveAllFavoritesReturnsItemIDs(t *testing.T) {
	s := newTestStore(t)
	c := seedCustomer(t, s, "alice")
	a := seedItem(t, s, "Milk Tea", 80)
	b := seedItem(t, s, "Sisig Rice Bowl", 100)

	_, err := s.AddFavorite(c.ID, a.ID)
	require.NoError(t, err)
	_, err = s.AddFavorite(c.ID, b.ID)
	require.NoError(t, err)

	itemIDs, err := s.RemoveAllFavorites(c.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{a.ID, b.ID}, itemIDs)

	_, err = s.RemoveAllFavorites(c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetFavoritesByUserIncludesItem(t *testing.T) {
	s := newTestStore(t)
	c := seedCustomer(t, s, "alice")
	item := seedItem(t, s, "Milk Tea", 80)

	_, err := s.AddFavorite(c.ID, item.ID)
	require.NoError(t, err)

	favorites, err := s.GetFavoritesByUser(c.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	require.NotNil(t, favorites[0].Item)
	assert.Equal(t, "Milk Tea", favorites[0].Item.Name)
}

func TestIncrementFavoriteCountFloorsAtZero(t *testing.T) {
	s := newTestStore(t)
	item := seedItem(t, s, "Milk Tea", 80)

	require.NoError(t, s.IncrementFavoriteCount(item.ID, 1))
	require.NoError(t, s.IncrementFavoriteCount(item.ID, -1))
	// Extra decrements must not drive the counter negative.
	require.NoError(t, s.IncrementFavoriteCount(item.ID, -1))

	got, err := s.GetItemByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.FavoriteCount)

	assert.ErrorIs(t, s.IncrementFavoriteCount(99999, 1), ErrNotFound)
}
