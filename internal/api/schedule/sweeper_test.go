package schedule

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/holmes-app/materialgirl/internal/mocks"
)

// newTestLogger создаёт логгер для тестов.
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// Тест 1: первый проход сразу, дальше по тикеру, ошибки прохода не останавливают планировщик.
func TestSweeper_RunsUntilCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := mocks.NewMockIMaterialControl(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	ctl.EXPECT().Run(gomock.Any()).DoAndReturn(func(context.Context) error {
		if calls.Add(1) == 3 {
			cancel()
		}
		return errors.New("rates: boom")
	}).MinTimes(3)

	s := NewSweeper(Config{Interval: 10 * time.Millisecond}, ctl, nil, newTestLogger())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("планировщик не остановился")
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

// Тест 2: первый проход не ждёт тикера.
func TestSweeper_FirstSweepIsImmediate(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := mocks.NewMockIMaterialControl(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctl.EXPECT().Run(gomock.Any()).DoAndReturn(func(context.Context) error {
		cancel()
		return nil
	}).Times(1)

	s := NewSweeper(Config{Interval: time.Hour}, ctl, nil, newTestLogger())

	start := time.Now()
	err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

// Тест 3: хранилище с явной очисткой чистится по своему тикеру.
func TestSweeper_Purges(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := mocks.NewMockIMaterialControl(ctrl)
	purger := mocks.NewMockIPurger(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctl.EXPECT().Run(gomock.Any()).Return(nil).AnyTimes()
	var purges atomic.Int32
	purger.EXPECT().Purge(gomock.Any()).DoAndReturn(func(context.Context) (int64, error) {
		if purges.Add(1) == 2 {
			cancel()
			return 0, errors.New("connection refused")
		}
		return 3, nil
	}).MinTimes(2)

	s := NewSweeper(Config{Interval: time.Hour, PurgeInterval: 10 * time.Millisecond}, ctl, purger, newTestLogger())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("планировщик не остановился")
	}
}

func TestNewSweeper_DefaultInterval(t *testing.T) {
	s := NewSweeper(Config{}, nil, nil, newTestLogger())
	assert.Equal(t, 5*time.Second, s.cfg.Interval)
}
