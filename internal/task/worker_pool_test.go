package task

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool(t *testing.T) {
	t.Run("processes queued tasks", func(t *testing.T) {
		queue := NewTaskQueue(4, testLogger())
		pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 2}, testLogger())

		tasks := []*mockTask{newMockTask(), newMockTask(), newMockTask()}
		for _, task := range tasks {
			require.NoError(t, queue.Enqueue(task))
		}

		pool.Start()
		for _, task := range tasks {
			select {
			case <-task.executed:
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for task execution")
			}
		}
		queue.Close()
		pool.Stop()

		for _, task := range tasks {
			assert.Equal(t, 1, task.executions())
		}
	})

	t.Run("invalid worker count falls back to one", func(t *testing.T) {
		queue := NewTaskQueue(1, testLogger())
		pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: -1}, testLogger())

		assert.Equal(t, 1, pool.workerCount)
	})

	t.Run("error handler receives failures", func(t *testing.T) {
		queue := NewTaskQueue(1, testLogger())
		pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 1}, testLogger())

		taskErr := errors.New("execution failed")
		failing := newMockTask()
		failing.execErr = taskErr

		var mu sync.Mutex
		var handledErr error
		pool.SetErrorHandler(func(_ Task, err error) {
			mu.Lock()
			handledErr = err
			mu.Unlock()
		})

		require.NoError(t, queue.Enqueue(failing))
		pool.Start()

		select {
		case <-failing.executed:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for task execution")
		}
		queue.Close()
		pool.Stop()

		mu.Lock()
		defer mu.Unlock()
		assert.ErrorIs(t, handledErr, taskErr)
	})

	t.Run("panicking task does not kill the worker", func(t *testing.T) {
		queue := NewTaskQueue(2, testLogger())
		pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 1}, testLogger())

		panicking := newMockTask()
		panicking.panics = true
		follower := newMockTask()

		require.NoError(t, queue.Enqueue(panicking))
		require.NoError(t, queue.Enqueue(follower))

		pool.Start()
		select {
		case <-follower.executed:
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not survive the panic")
		}
		queue.Close()
		pool.Stop()
	})

	t.Run("stop waits for workers", func(t *testing.T) {
		queue := NewTaskQueue(1, testLogger())
		pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 2}, testLogger())

		pool.Start()
		queue.Close()

		done := make(chan struct{})
		go func() {
			pool.Stop()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Stop did not return")
		}
	})
}
