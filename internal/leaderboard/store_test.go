package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scoresync/pkg/record"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreCRUD(t *testing.T) {
	s := openTestStore(t)

	created, err := s.Create(record.ScoreRecord{PlayerName: "Ann", Score: 10, CreatedAt: "t1"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *created, *got)

	got.Score = 20
	got.CreatedAt = "t2"
	found, err := s.Update(*got)
	require.NoError(t, err)
	assert.True(t, found)

	got, err = s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Score)
	assert.Equal(t, "t2", got.CreatedAt)

	deleted, err := s.Delete(created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err = s.Get(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Absent ids report not-found, not errors
	found, err = s.Update(record.ScoreRecord{ID: 999, PlayerName: "x", CreatedAt: "t"})
	require.NoError(t, err)
	assert.False(t, found)
	deleted, err = s.Delete(999)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStoreListPagination(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 25; i++ {
		_, err := s.Create(record.ScoreRecord{PlayerName: "p", Score: i, CreatedAt: "t"})
		require.NoError(t, err)
	}

	page1, total, err := s.List(1, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	require.Len(t, page1, 10)
	assert.Equal(t, 24, page1[0].Score, "ordered by score descending")

	page3, _, err := s.List(3, 10)
	require.NoError(t, err)
	assert.Len(t, page3, 5)

	empty, _, err := s.List(4, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStoreRank(t *testing.T) {
	s := openTestStore(t)
	for _, rec := range []record.ScoreRecord{
		{PlayerName: "first", Score: 30, CreatedAt: "t"},
		{PlayerName: "second", Score: 20, CreatedAt: "t"},
		{PlayerName: "also-second", Score: 20, CreatedAt: "t"},
		{PlayerName: "third", Score: 10, CreatedAt: "t"},
	} {
		_, err := s.Create(rec)
		require.NoError(t, err)
	}

	rank, err := s.Rank("first")
	require.NoError(t, err)
	require.NotNil(t, rank)
	assert.Equal(t, 1, rank.Rank)

	// Tied scores share a dense rank
	rank, err = s.Rank("also-second")
	require.NoError(t, err)
	assert.Equal(t, 2, rank.Rank)

	rank, err = s.Rank("third")
	require.NoError(t, err)
	assert.Equal(t, 3, rank.Rank)

	// Case-sensitive: FIRST is not first
	rank, err = s.Rank("FIRST")
	require.NoError(t, err)
	assert.Nil(t, rank)
}
