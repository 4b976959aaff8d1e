package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/riskibarqy/qw-league/internal/domain/importqueue"
	"github.com/riskibarqy/qw-league/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hubURL(id int) string {
	return fmt.Sprintf("%s%d", DefaultGameURLPrefix, id)
}

func TestIntakeServiceFiltersByPrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	queueRepo := memory.NewQueueRepository(importqueue.DefaultCapacity)
	svc := NewIntakeService(queueRepo, IntakeConfig{}, nil)

	urls := make([]string, 0, 12)
	for i := 0; i < 9; i++ {
		urls = append(urls, hubURL(100+i))
	}
	urls = append(urls, "https://example.com/?gameId=1", "", "http://hub.quakeworld.nu/games/?gameId=2")

	res, err := svc.Enqueue(ctx, urls)
	require.NoError(t, err)
	assert.Equal(t, 9, res.Accepted)
	assert.Equal(t, 3, res.Rejected)

	queue, err := queueRepo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, queue.Pending(), 9)
}

func TestIntakeServiceCapsBatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewIntakeService(memory.NewQueueRepository(importqueue.DefaultCapacity), IntakeConfig{}, nil)

	urls := make([]string, 0, 14)
	for i := 0; i < 14; i++ {
		urls = append(urls, hubURL(i))
	}

	res, err := svc.Enqueue(ctx, urls)
	require.NoError(t, err)
	assert.Equal(t, DefaultIntakeBatchLimit, res.Accepted)
	assert.Equal(t, 4, res.Dropped)
}

func TestIntakeServiceQueueFullWritesNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	queueRepo := memory.NewQueueRepository(3)
	svc := NewIntakeService(queueRepo, IntakeConfig{}, nil)

	_, err := svc.Enqueue(ctx, []string{hubURL(1), hubURL(2)})
	require.NoError(t, err)

	_, err = svc.Enqueue(ctx, []string{hubURL(3), hubURL(4)})
	require.ErrorIs(t, err, importqueue.ErrFull)

	queue, err := queueRepo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{hubURL(1), hubURL(2), ""}, queue.Slots())
}

func TestIntakeServiceNoValidURLs(t *testing.T) {
	t.Parallel()

	svc := NewIntakeService(memory.NewQueueRepository(1), IntakeConfig{}, nil)
	res, err := svc.Enqueue(context.Background(), []string{"nope"})
	require.NoError(t, err)
	assert.Zero(t, res.Accepted)
}
