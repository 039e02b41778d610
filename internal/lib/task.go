package lib

import (
	"context"
	"errors"
	"sync"

	"github.com/Lumerin-protocol/presale-minter/internal/interfaces"
)

var ErrTaskRunning = errors.New("task is already running")

// Task runs a Runnable in a separate goroutine and allows it to be started
// again after it was stopped. Used to mount and unmount views.
type Task struct {
	runFunc func(ctx context.Context) error
	name    string

	mutex   sync.Mutex
	running bool
	cancel  context.CancelFunc
	stopCh  chan struct{}
	err     error
}

func NewTask(name string, runnable interfaces.Runnable) *Task {
	return NewTaskFunc(name, runnable.Run)
}

func NewTaskFunc(name string, f func(ctx context.Context) error) *Task {
	return &Task{runFunc: f, name: name}
}

// Start launches the task bound to ctx. Returns ErrTaskRunning if already started
func (t *Task) Start(ctx context.Context) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.running {
		return WrapError(ErrTaskRunning, errors.New(t.name))
	}

	subCtx, cancel := context.WithCancel(ctx)
	stopCh := make(chan struct{})

	t.running = true
	t.cancel = cancel
	t.stopCh = stopCh
	t.err = nil

	go func() {
		err := t.runFunc(subCtx)

		t.mutex.Lock()
		// Stop() cancels subCtx, the resulting context error is not a task failure
		if !(errors.Is(err, context.Canceled) && subCtx.Err() != nil && ctx.Err() == nil) {
			t.err = err
		}
		if t.stopCh == stopCh {
			t.running = false
		}
		t.mutex.Unlock()

		cancel()
		close(stopCh)
	}()

	return nil
}

// Stop cancels the task and returns a channel closed once the run function has returned
func (t *Task) Stop() <-chan struct{} {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.stopCh == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}

	t.cancel()
	return t.stopCh
}

func (t *Task) IsRunning() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.running
}

// Err returns the error the last run exited with, nil if it was stopped
func (t *Task) Err() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.err
}
