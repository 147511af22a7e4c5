package materializer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/holmes-app/materialgirl/internal/domain"
)

// Run — один проход обновления по всем материалам в порядке регистрации.
// Ошибка одного ключа не прерывает проход; все ошибки возвращаются вместе.
func (m *Materializer[V]) Run(ctx context.Context) error {
	var errs []error
	for _, mat := range m.snapshot() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		start := m.now()
		outcome, err := m.refresh(ctx, mat)
		m.record(ctx, mat.Key, outcome, start, err)
		if err != nil {
			m.log.Warn("material refresh failed", "key", mat.Key, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// refresh обрабатывает один ключ под блокировкой. Блокировка освобождается на любом выходе.
func (m *Materializer[V]) refresh(ctx context.Context, mat *domain.Material[V]) (domain.Outcome, error) {
	lock, err := m.storage.AcquireLock(ctx, mat.Key, mat.LockTimeout)
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("acquire lock %q: %w", mat.Key, err)
	}
	if lock == nil {
		m.log.Debug("material locked by another refresher, skip", "key", mat.Key)
		return domain.OutcomeLocked, nil
	}
	defer func() {
		if err := m.storage.ReleaseLock(context.WithoutCancel(ctx), lock); err != nil {
			m.log.Warn("release lock failed", "key", mat.Key, "error", err)
		}
	}()

	expired, err := m.storage.IsExpired(ctx, mat.Key, mat.Expiration)
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("is expired %q: %w", mat.Key, err)
	}
	// Материал, который этот процесс ещё не считал, пересчитывается, даже если в хранилище свежая копия соседа.
	if !expired && !mat.IsExpired(m.now()) {
		return domain.OutcomeFresh, nil
	}

	value, err := mat.Get(ctx)
	if err != nil {
		return domain.OutcomeFailed, err
	}
	if err := m.storage.Store(ctx, mat.Key, value, mat.Expiration, mat.GracePeriod); err != nil {
		return domain.OutcomeFailed, fmt.Errorf("store %q: %w", mat.Key, err)
	}
	mat.MarkRefreshed(m.now().Add(mat.Expiration))
	m.log.Info("material refreshed", "key", mat.Key, "expiration", mat.Expiration)
	return domain.OutcomeRefreshed, nil
}

// record пишет метрики и журнал по итогу обработки ключа. Ошибка журнала только логируется.
func (m *Materializer[V]) record(ctx context.Context, key string, outcome domain.Outcome, start time.Time, err error) {
	elapsed := m.now().Sub(start)
	refreshTotal.WithLabelValues(key, string(outcome)).Inc()
	if outcome == domain.OutcomeRefreshed || outcome == domain.OutcomeFailed {
		refreshDuration.WithLabelValues(key).Observe(elapsed.Seconds())
	}
	if m.journal == nil {
		return
	}
	ev := domain.RefreshEvent{Key: key, Outcome: outcome, Duration: elapsed, At: start}
	if err != nil {
		ev.Error = err.Error()
	}
	if jerr := m.journal.WriteRefresh(context.WithoutCancel(ctx), ev); jerr != nil {
		m.log.Warn("journal write failed", "key", key, "error", jerr)
	}
}

// Get читает значение из хранилища. При промахе и включённом computeOnMiss считает, сохраняет и возвращает.
// Блокировку не берёт: возможна гонка с записью Run.
func (m *Materializer[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	mat, err := m.lookup(key)
	if err != nil {
		return zero, false, err
	}

	value, found, err := m.storage.Retrieve(ctx, key)
	if err != nil {
		return zero, false, fmt.Errorf("retrieve %q: %w", key, err)
	}
	if found {
		getTotal.WithLabelValues(key, "hit").Inc()
		return value, true, nil
	}
	if !m.computeOnMiss {
		getTotal.WithLabelValues(key, "miss").Inc()
		return zero, false, nil
	}

	value, err = mat.Get(ctx)
	if err != nil {
		return zero, false, err
	}
	if domain.IsNoValue(value) {
		getTotal.WithLabelValues(key, "miss").Inc()
		return zero, false, nil
	}
	if err := m.storage.Store(ctx, key, value, mat.Expiration, mat.GracePeriod); err != nil {
		return zero, false, fmt.Errorf("store %q: %w", key, err)
	}
	getTotal.WithLabelValues(key, "computed").Inc()
	m.log.Info("material computed on miss", "key", key)
	return value, true, nil
}

// Expire помечает ключ устаревшим в хранилище.
func (m *Materializer[V]) Expire(ctx context.Context, key string) error {
	if _, err := m.lookup(key); err != nil {
		return err
	}
	if err := m.storage.Expire(ctx, key); err != nil {
		return fmt.Errorf("expire %q: %w", key, err)
	}
	m.log.Info("material expired", "key", key)
	return nil
}

// IsExpired спрашивает хранилище, устарел ли ключ.
func (m *Materializer[V]) IsExpired(ctx context.Context, key string) (bool, error) {
	if _, err := m.lookup(key); err != nil {
		return false, err
	}
	expired, err := m.storage.IsExpired(ctx, key, 0)
	if err != nil {
		return false, fmt.Errorf("is expired %q: %w", key, err)
	}
	return expired, nil
}
