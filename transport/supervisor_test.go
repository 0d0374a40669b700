package transport

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/impldream/smart-socket/config"
	"github.com/impldream/smart-socket/http/status"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type transportMock struct {
	stopped     *atomic.Bool
	closed      atomic.Bool
	once        bool
	loop        time.Duration
	bindError   error
	returnError error
}

func newMock(loop time.Duration, returnError error, once bool) *transportMock {
	return &transportMock{
		stopped:     new(atomic.Bool),
		once:        once,
		loop:        loop,
		returnError: returnError,
	}
}

func (t *transportMock) Bind(string) error {
	return t.bindError
}

func (t *transportMock) Listen(config.NET, Handler) error {
	for !t.stopped.Load() && !t.once {
		time.Sleep(t.loop)
	}

	return t.returnError
}

func (t *transportMock) Stop() {
	t.stopped.Store(true)
}

func (t *transportMock) Close() {
	t.closed.Store(true)
}

func (t *transportMock) Wait() {
	for !t.stopped.Load() {
		time.Sleep(1 * time.Millisecond)
	}
}

func runParallel(fn func() error) chan error {
	c := make(chan error, 1)

	go func() {
		c <- fn()
	}()

	return c
}

func runAtMost(sup *Supervisor, timeout time.Duration) error {
	select {
	case err := <-runParallel(func() error {
		return sup.Run(config.Default().NET)
	}):
		return err
	case <-time.After(timeout):
		return fmt.Errorf("supervisor timeouted")
	}
}

func newSupervisor(ts ...*transportMock) (*Supervisor, *test.Hook, error) {
	logger, hook := test.NewNullLogger()
	sup := NewSupervisor(logger)
	for i, transport := range ts {
		if err := sup.Add(fmt.Sprintf(":%d", 8080+i), transport, nil); err != nil {
			return nil, hook, err
		}
	}

	return &sup, hook, nil
}

func TestSupervisor(t *testing.T) {
	t.Run("die without error", func(t *testing.T) {
		first, second := newMock(100*time.Millisecond, nil, false), newMock(200*time.Millisecond, nil, true)
		sup, hook, err := newSupervisor(first, second)
		require.NoError(t, err)
		require.NoError(t, runAtMost(sup, 300*time.Millisecond))
		require.True(t, first.closed.Load())
		require.True(t, second.closed.Load())
		require.Len(t, hook.AllEntries(), 2)
	})

	t.Run("die with error", func(t *testing.T) {
		sup, hook, err := newSupervisor(
			newMock(100*time.Millisecond, nil, false),
			newMock(200*time.Millisecond, status.ErrInternalServerError, true),
		)
		require.NoError(t, err)
		require.ErrorIs(t, runAtMost(sup, 300*time.Millisecond), status.ErrInternalServerError)

		var failed int
		for _, entry := range hook.AllEntries() {
			if entry.Level == logrus.ErrorLevel {
				failed++
				require.Equal(t, ":8081", entry.Data["addr"])
				require.Equal(t, "transport failed", entry.Message)
			}
		}
		require.Equal(t, 1, failed)
	})

	t.Run("bind failure closes added transports", func(t *testing.T) {
		bindError := errors.New("address already in use")
		first, second := newMock(time.Millisecond, nil, false), newMock(time.Millisecond, nil, false)
		second.bindError = bindError

		_, hook, err := newSupervisor(first, second)
		require.ErrorIs(t, err, bindError)
		require.True(t, first.closed.Load())
		require.Equal(t, "cannot bind transport", hook.LastEntry().Message)
		require.Equal(t, ":8081", hook.LastEntry().Data["addr"])
	})

	t.Run("nothing to run", func(t *testing.T) {
		sup, _, err := newSupervisor()
		require.NoError(t, err)
		require.NoError(t, runAtMost(sup, 50*time.Millisecond))
	})

	t.Run("stop", func(t *testing.T) {
		sup, _, err := newSupervisor(
			newMock(100*time.Millisecond, nil, false),
			newMock(200*time.Millisecond, nil, false),
		)
		require.NoError(t, err)
		c := runParallel(func() error {
			return sup.Run(config.Default().NET)
		})
		time.Sleep(200 * time.Millisecond)
		c2 := runParallel(func() error {
			sup.Stop()
			return nil
		})

		select {
		case err = <-c2:
			require.NoError(t, err)
		case <-time.After(300 * time.Millisecond):
			require.Fail(t, "supervisor did not stop on time")
		}

		select {
		case err = <-c:
			require.NoError(t, err)
		case <-time.After(50 * time.Millisecond):
			require.Fail(t, "supervisor did not stop running on time")
		}
	})
}
