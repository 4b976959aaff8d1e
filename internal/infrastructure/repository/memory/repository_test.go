package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/qw-league/internal/domain/derived"
	"github.com/riskibarqy/qw-league/internal/domain/gamerow"
	"github.com/riskibarqy/qw-league/internal/domain/importqueue"
	"github.com/riskibarqy/qw-league/internal/domain/teamgame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepositoryRejectsSecondAppend(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewLedgerRepository(nil)

	require.NoError(t, repo.AppendMap(ctx, "u1", []gamerow.GameRow{{URL: "u1", Player: "a"}}))
	require.Error(t, repo.AppendMap(ctx, "u1", []gamerow.GameRow{{URL: "u1", Player: "a"}}))

	rows, err := repo.ListRows(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	urls, err := repo.ListImportedURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, urls)
}

func TestQueueRepositoryLoadReturnsCopy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewQueueRepository(2)
	_, err := repo.Enqueue(ctx, []string{"u1"})
	require.NoError(t, err)

	q, err := repo.Load(ctx)
	require.NoError(t, err)
	q.Consume(importqueue.Slot{Index: 0, URL: "u1"})

	again, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, again.Pending(), 1)
}

func TestDerivedRepositoryIsolatesSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewDerivedRepository()
	snapshot := derived.Snapshot{Games: []teamgame.Game{{Key: "k", Maps: []teamgame.Map{{Name: "dm3"}}}}}
	require.NoError(t, repo.ReplaceSnapshot(ctx, snapshot))

	snapshot.Games[0].Maps[0].Name = "changed"
	games, err := repo.ListGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dm3", games[0].Maps[0].Name)
}
