package resumeinfra

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/recruitment/resume"
)

func newTestQueue(t *testing.T) (resume.JobQueue, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisQueue(client, "test:resume:jobs"), mr
}

type testPayload struct {
	JobID string `json:"job_id"`
}

func TestEnqueueDequeue(t *testing.T) {
	queue, _ := newTestQueue(t)
	ctx := context.Background()

	jobID := kernel.NewJobID("job-1")
	require.NoError(t, queue.Enqueue(ctx, jobID, testPayload{JobID: "job-1"}))

	size, err := queue.GetQueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), size)

	data, err := queue.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, data)

	var payload testPayload
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "job-1", payload.JobID)

	size, err = queue.GetQueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)
}

func TestDequeuePreservesOrder(t *testing.T) {
	queue, _ := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, queue.Enqueue(ctx, kernel.NewJobID("job-1"), testPayload{JobID: "job-1"}))
	require.NoError(t, queue.Enqueue(ctx, kernel.NewJobID("job-2"), testPayload{JobID: "job-2"}))

	first, err := queue.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	second, err := queue.Dequeue(ctx, time.Second)
	require.NoError(t, err)

	var p1, p2 testPayload
	require.NoError(t, json.Unmarshal(first, &p1))
	require.NoError(t, json.Unmarshal(second, &p2))
	assert.Equal(t, "job-1", p1.JobID)
	assert.Equal(t, "job-2", p2.JobID)
}

func TestDelayedJobsMoveWhenDue(t *testing.T) {
	queue, _ := newTestQueue(t)
	ctx := context.Background()

	jobID := kernel.NewJobID("job-retry")
	require.NoError(t, queue.EnqueueDelayed(ctx, jobID, testPayload{JobID: "job-retry"}, time.Hour))

	delayed, err := queue.GetDelayedQueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), delayed)

	// Retry time is an hour out; nothing should move yet
	moved, err := queue.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, moved)

	// A job scheduled in the past is immediately due
	require.NoError(t, queue.EnqueueDelayed(ctx, kernel.NewJobID("job-due"), testPayload{JobID: "job-due"}, -time.Minute))

	moved, err = queue.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	ready, err := queue.GetQueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ready)
}

func TestClearEmptiesBothQueues(t *testing.T) {
	queue, _ := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, queue.Enqueue(ctx, kernel.NewJobID("job-1"), testPayload{JobID: "job-1"}))
	require.NoError(t, queue.EnqueueDelayed(ctx, kernel.NewJobID("job-2"), testPayload{JobID: "job-2"}, time.Hour))

	require.NoError(t, queue.Clear(ctx))

	ready, err := queue.GetQueueSize(ctx)
	require.NoError(t, err)
	delayed, err := queue.GetDelayedQueueSize(ctx)
	require.NoError(t, err)
	assert.Zero(t, ready)
	assert.Zero(t, delayed)
}
