package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/qw-league/internal/domain/importqueue"
	"github.com/riskibarqy/qw-league/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMatchFetcher struct {
	matches map[string]ExternalMatch
	errs    map[string]error
	calls   []string
}

func (s *stubMatchFetcher) FetchMatch(_ context.Context, gameID string) (ExternalMatch, error) {
	s.calls = append(s.calls, gameID)
	if err, ok := s.errs[gameID]; ok {
		return ExternalMatch{}, err
	}
	match, ok := s.matches[gameID]
	if !ok {
		return ExternalMatch{}, errors.New("not found")
	}
	return match, nil
}

func twoTeamMatch() ExternalMatch {
	return ExternalMatch{
		Date:     "2024-01-01 20:00:00 +0000",
		Map:      "dm3",
		Hostname: "qw.example:28501",
		MatchTag: "qwl",
		Players: []ExternalPlayer{
			{Name: "lo", Team: "blue", Frags: 5, Kills: 5, Deaths: 15},
			{Name: "\u0091hi=", Team: "red", Frags: 20, Kills: 20, Deaths: 5, LG: ExternalWeapon{Attacks: 200, Hits: 70}, SG: ExternalWeapon{Attacks: 3, Hits: 1}},
			{Name: "mid", Team: "red", Frags: 10, Kills: 10, Deaths: 10},
		},
	}
}

func newImportFixture(t *testing.T, fetcher MatchFetcher) (*ImportService, *memory.QueueRepository, *memory.LedgerRepository) {
	t.Helper()

	queueRepo := memory.NewQueueRepository(importqueue.DefaultCapacity)
	ledgerRepo := memory.NewLedgerRepository(nil)
	return NewImportService(queueRepo, ledgerRepo, fetcher, nil), queueRepo, ledgerRepo
}

func TestImportServiceImportsAndDedups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fetcher := &stubMatchFetcher{matches: map[string]ExternalMatch{"7": twoTeamMatch()}}
	svc, queueRepo, ledgerRepo := newImportFixture(t, fetcher)

	_, err := queueRepo.Enqueue(ctx, []string{hubURL(7), hubURL(7)})
	require.NoError(t, err)

	res, err := svc.ProcessPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Duplicates)
	assert.Equal(t, 3, res.RowsAppended)
	assert.Equal(t, []string{"7"}, fetcher.calls)

	rows, err := ledgerRepo.ListRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "]hi", rows[0].Player, "sorted by frags, normalized, '=' stripped")
	assert.Equal(t, 1, rows[0].MapWon)
	assert.Equal(t, 0, rows[2].MapWon)
	assert.InDelta(t, 80, rows[0].Efficiency, 1e-9)
	assert.InDelta(t, 35, rows[0].LGAccuracy, 1e-9)
	assert.InDelta(t, 33.33, rows[0].SGAccuracy, 1e-9)
	assert.Equal(t, 1, rows[0].LGUsed)
	assert.Equal(t, 0, rows[1].LGUsed)

	queue, err := queueRepo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, queue.Pending())

	_, err = queueRepo.Enqueue(ctx, []string{hubURL(7)})
	require.NoError(t, err)
	res, err = svc.ProcessPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Duplicates)
	rows, err = ledgerRepo.ListRows(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestImportServiceLeavesFailedFetchQueued(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fetcher := &stubMatchFetcher{errs: map[string]error{"9": errors.New("timeout")}}
	svc, queueRepo, ledgerRepo := newImportFixture(t, fetcher)

	_, err := queueRepo.Enqueue(ctx, []string{hubURL(9)})
	require.NoError(t, err)

	res, err := svc.ProcessPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)

	queue, err := queueRepo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, queue.Pending(), 1)

	rows, err := ledgerRepo.ListRows(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestImportServiceSkipsURLWithoutGameID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fetcher := &stubMatchFetcher{}
	svc, queueRepo, _ := newImportFixture(t, fetcher)

	_, err := queueRepo.Enqueue(ctx, []string{DefaultGameURLPrefix + "abc"})
	require.NoError(t, err)

	res, err := svc.ProcessPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, fetcher.calls)

	queue, err := queueRepo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, queue.Pending(), 1, "slot left as-is")
}

func TestImportServiceRejectsMalformedMatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	match := twoTeamMatch()
	match.Players = append(match.Players, ExternalPlayer{Name: "x", Team: "green"})
	svc, queueRepo, ledgerRepo := newImportFixture(t, &stubMatchFetcher{matches: map[string]ExternalMatch{"3": match}})

	_, err := queueRepo.Enqueue(ctx, []string{hubURL(3)})
	require.NoError(t, err)

	res, err := svc.ProcessPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rejected)

	urls, err := ledgerRepo.ListImportedURLs(ctx)
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestBuildGameRowsTieHasNoWinner(t *testing.T) {
	t.Parallel()

	rows, err := buildGameRows("u", ExternalMatch{Players: []ExternalPlayer{
		{Name: "a", Team: "x", Frags: 10},
		{Name: "b", Team: "y", Frags: 10},
	}})
	require.NoError(t, err)
	for _, row := range rows {
		assert.Zero(t, row.MapWon)
		assert.Zero(t, row.Efficiency)
	}
}

func TestParseGameID(t *testing.T) {
	t.Parallel()

	id, ok := parseGameID(hubURL(12345))
	assert.True(t, ok)
	assert.Equal(t, "12345", id)

	_, ok = parseGameID("https://hub.quakeworld.nu/games/")
	assert.False(t, ok)
}
