package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	store, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "farm.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "数据库文件应被创建")
}

func TestSaveAndTopScores(t *testing.T) {
	store := openMemory(t)

	scores := []int{12, 58, 3, 58, 40}
	ids := make([]string, len(scores))
	for i, score := range scores {
		ids[i] = uuid.NewString()
		require.NoError(t, store.SaveScore(ids[i], score))
	}

	top, err := store.TopScores(3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, 58, top[0].Score)
	assert.Equal(t, ids[1], top[0].SessionID, "同分时先保存的排在前面")
	assert.Equal(t, ids[3], top[1].SessionID)
	assert.Equal(t, 40, top[2].Score)

	all, err := store.TopScores(0)
	require.NoError(t, err)
	assert.Len(t, all, len(scores))
}

func TestSaveSessionOverwrites(t *testing.T) {
	store := openMemory(t)
	id := uuid.NewString()

	require.NoError(t, store.SaveScore(id, 10))
	require.NoError(t, store.SaveSession(SessionRecord{SessionID: id, Score: 55, Chickens: 7, Cows: 3, ChestsOpened: 1, PlaySeconds: 90.5}))

	top, err := store.TopScores(10)
	require.NoError(t, err)
	require.Len(t, top, 1, "同一会话只保留一条记录")
	assert.Equal(t, 55, top[0].Score)
	assert.Equal(t, 7, top[0].Chickens)
	assert.Equal(t, 3, top[0].Cows)
	assert.Equal(t, 1, top[0].ChestsOpened)
	assert.InDelta(t, 90.5, top[0].PlaySeconds, 1e-9)
}

func TestSaveInvalidSession(t *testing.T) {
	store := openMemory(t)
	err := store.SaveScore("not-a-uuid", 5)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestHighScoreAndStats(t *testing.T) {
	store := openMemory(t)

	high, err := store.HighScore()
	require.NoError(t, err)
	assert.Equal(t, 0, high, "没有记录时最高分为 0")

	for _, score := range []int{10, 30, 20} {
		require.NoError(t, store.SaveScore(uuid.NewString(), score))
	}

	high, err = store.HighScore()
	require.NoError(t, err)
	assert.Equal(t, 30, high)

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, Stats{Sessions: 3, HighScore: 30, AvgScore: 20, TotalScore: 60}, stats)
}
