package loom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type rtConfig struct {
	MaxPlayers int
}

func TestResourceStoreInsertAndBorrowShared(t *testing.T) {
	store := newResourceStore()
	InsertResource(store, rtConfig{MaxPlayers: 4})

	cfg, release, ok := BorrowShared[rtConfig](store)
	require.True(t, ok)
	require.Equal(t, 4, cfg.MaxPlayers)
	release()
}

func TestResourceStoreBorrowExclusiveMutates(t *testing.T) {
	store := newResourceStore()
	InsertResource(store, rtConfig{MaxPlayers: 4})

	cfg, release, ok := BorrowExclusive[rtConfig](store)
	require.True(t, ok)
	cfg.MaxPlayers = 8
	release()

	got, release2, ok := BorrowShared[rtConfig](store)
	require.True(t, ok)
	require.Equal(t, 8, got.MaxPlayers)
	release2()
}

func TestResourceStoreExclusiveExcludesShared(t *testing.T) {
	store := newResourceStore()
	InsertResource(store, rtConfig{MaxPlayers: 1})

	_, release, ok := BorrowExclusive[rtConfig](store)
	require.True(t, ok)

	_, _, sharedOK := BorrowShared[rtConfig](store)
	require.False(t, sharedOK)

	release()

	_, release2, sharedOK2 := BorrowShared[rtConfig](store)
	require.True(t, sharedOK2)
	release2()
}

func TestResourceStoreMissingResource(t *testing.T) {
	store := newResourceStore()
	_, _, ok := BorrowShared[rtConfig](store)
	require.False(t, ok)
}

func TestResourceStoreRemove(t *testing.T) {
	store := newResourceStore()
	InsertResource(store, rtConfig{MaxPlayers: 2})
	RemoveResource[rtConfig](store)

	_, _, ok := BorrowShared[rtConfig](store)
	require.False(t, ok)
}
