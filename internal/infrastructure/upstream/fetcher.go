// Package upstream — производитель материалов сервиса: забирает ответ upstream-URL в domain.Snapshot.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/holmes-app/materialgirl/internal/domain"
)

// ErrUpstreamStatus — upstream ответил не 2xx.
var ErrUpstreamStatus = errors.New("upstream returned non-2xx status")

// ErrBodyTooLarge — тело ответа больше MaxBodyBytes.
var ErrBodyTooLarge = errors.New("upstream body too large")

// Config — настройки HTTP-клиента. Переменные: MATERIALGIRL_UPSTREAM_*.
type Config struct {
	Timeout      time.Duration `envconfig:"TIMEOUT" default:"10s"`
	MaxBodyBytes int64         `envconfig:"MAX_BODY_BYTES" default:"10485760"`
	UserAgent    string        `envconfig:"USER_AGENT" default:"materialgirl"`
}

// Fetcher делает GET к источникам материалов.
type Fetcher struct {
	client *http.Client
	cfg    Config
	log    *slog.Logger
	now    func() time.Time
}

// New создаёт Fetcher. client == nil — http.Client с таймаутом из конфига.
func New(cfg *Config, client *http.Client, log *slog.Logger) *Fetcher {
	if cfg == nil {
		cfg = &Config{}
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Fetcher{client: client, cfg: *cfg, log: log, now: time.Now}
}

// Producer возвращает производителя материала для источника.
func (f *Fetcher) Producer(src domain.Source) domain.Producer[domain.Snapshot] {
	return func(ctx context.Context) (domain.Snapshot, error) {
		return f.Fetch(ctx, src.Key, src.URL)
	}
}

// Fetch забирает url целиком. Не-2xx ответ и слишком большое тело — ошибка.
func (f *Fetcher) Fetch(ctx context.Context, key, url string) (domain.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("upstream request %q: %w", key, err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Debug("upstream fetch failed", "key", key, "url", url, "error", err)
		return domain.Snapshot{}, fmt.Errorf("upstream fetch %q: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.log.Debug("upstream bad status", "key", key, "url", url, "status", resp.StatusCode)
		return domain.Snapshot{}, fmt.Errorf("%w: %q: %d", ErrUpstreamStatus, key, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if f.cfg.MaxBodyBytes > 0 {
		body = io.LimitReader(resp.Body, f.cfg.MaxBodyBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("upstream read %q: %w", key, err)
	}
	if f.cfg.MaxBodyBytes > 0 && int64(len(data)) > f.cfg.MaxBodyBytes {
		return domain.Snapshot{}, fmt.Errorf("%w: %q: limit %d bytes", ErrBodyTooLarge, key, f.cfg.MaxBodyBytes)
	}

	return domain.Snapshot{
		Source:      url,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		Body:        data,
		FetchedAt:   f.now().UTC(),
	}, nil
}
