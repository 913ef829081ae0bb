package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counting(n int, count *atomic.Int32) []Task {
	tasks := make([]Task, n)
	for i := range tasks {
		tasks[i] = Task{Name: "task", Func: func(context.Context) error {
			count.Add(1)
			return nil
		}}
	}
	return tasks
}

func TestRunParallel_Success(t *testing.T) {
	t.Parallel()
	var count atomic.Int32

	require.NoError(t, RunParallel(context.Background(), 2, counting(5, &count)))
	assert.Equal(t, int32(5), count.Load())
}

func TestRunParallel_EmptyTasks(t *testing.T) {
	t.Parallel()
	assert.NoError(t, RunParallel(context.Background(), 4, nil))
}

func TestRunParallel_RespectsLimit(t *testing.T) {
	t.Parallel()
	var running, peak atomic.Int32

	tasks := make([]Task, 8)
	for i := range tasks {
		tasks[i] = Task{Name: "upload", Func: func(context.Context) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			running.Add(-1)
			return nil
		}}
	}

	require.NoError(t, RunParallel(context.Background(), 3, tasks))
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestRunParallel_ErrorNamesTask(t *testing.T) {
	t.Parallel()
	boom := errors.New("access denied")
	tasks := []Task{
		{Name: "manifest.json", Func: func(context.Context) error { return nil }},
		{Name: "keycloak-dev.template.json", Func: func(context.Context) error { return boom }},
	}

	err := RunParallel(context.Background(), 0, tasks)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "keycloak-dev.template.json: access denied")
}

func TestRunParallel_StopsStartingAfterFailure(t *testing.T) {
	t.Parallel()
	var started atomic.Int32
	tasks := []Task{
		{Name: "first", Func: func(context.Context) error {
			started.Add(1)
			return errors.New("failed")
		}},
	}
	for range 5 {
		tasks = append(tasks, Task{Name: "later", Func: func(context.Context) error {
			started.Add(1)
			return nil
		}})
	}

	require.Error(t, RunParallel(context.Background(), 1, tasks))
	assert.Less(t, started.Load(), int32(len(tasks)))
}

func TestRunParallel_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var count atomic.Int32

	err := RunParallel(ctx, 1, counting(3, &count))

	assert.ErrorIs(t, err, context.Canceled)
}
