package lib

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTaskStopAndRestart(t *testing.T) {
	runs := 0
	task := NewTaskFunc("test", func(ctx context.Context) error {
		runs++
		<-ctx.Done()
		return ctx.Err()
	})

	require.NoError(t, task.Start(context.Background()))
	require.ErrorIs(t, task.Start(context.Background()), ErrTaskRunning)

	<-task.Stop()
	require.False(t, task.IsRunning())
	require.NoError(t, task.Err(), "stopped task should not report an error")

	require.NoError(t, task.Start(context.Background()))
	<-task.Stop()
	require.Equal(t, 2, runs)
}

func TestTaskReportsRunError(t *testing.T) {
	errKiki := errors.New("kiki")
	task := NewTaskFunc("test", func(ctx context.Context) error {
		return errKiki
	})

	require.NoError(t, task.Start(context.Background()))
	select {
	case <-task.Stop():
	case <-time.After(time.Second):
		t.Fatal("task did not exit")
	}
	require.ErrorIs(t, task.Err(), errKiki)
}

func TestTaskParentContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := NewTaskFunc("test", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	require.NoError(t, task.Start(ctx))
	cancel()
	<-task.Stop()
	require.ErrorIs(t, task.Err(), context.Canceled)
}

func TestWrapErrorMatchesBoth(t *testing.T) {
	parent := errors.New("parent")
	child := errors.New("child")

	err := WrapError(parent, child)
	require.ErrorIs(t, err, parent)
	require.ErrorIs(t, err, child)
	require.Equal(t, "parent: child", err.Error())
	require.Equal(t, parent, WrapError(parent, nil))
}
