package app

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holmes-app/materialgirl/internal/domain"
	"github.com/holmes-app/materialgirl/internal/infrastructure/upstream"
)

// newTestLogger создаёт логгер для тестов.
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestOpenStorage_Memory(t *testing.T) {
	be, err := openStorage(context.Background(), Config{StorageDriver: DriverMemory, Codec: "msgpack"}, newTestLogger())
	require.NoError(t, err)
	defer be.close()

	assert.NotNil(t, be.storage)
	assert.NotNil(t, be.purger)
	assert.NoError(t, be.pinger.Ping(context.Background()))
}

func TestOpenStorage_Errors(t *testing.T) {
	_, err := openStorage(context.Background(), Config{StorageDriver: "etcd"}, newTestLogger())
	assert.ErrorContains(t, err, "unknown storage driver")

	_, err = openStorage(context.Background(), Config{StorageDriver: DriverMemory, Codec: "gob"}, newTestLogger())
	assert.ErrorContains(t, err, "unknown codec")
}

// Материалы из файла регистрируются в порядке файла, проход забирает upstream и сохраняет снимок.
func TestBuildMaterializer(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"path":"` + r.URL.Path + `"}`))
	}))
	defer srv.Close()

	be, err := openStorage(context.Background(), Config{StorageDriver: DriverMemory}, newTestLogger())
	require.NoError(t, err)

	sources := []domain.Source{
		{Key: "rates", URL: srv.URL + "/rates", Expiration: time.Minute},
		{Key: "news", URL: srv.URL + "/news"},
	}
	m, err := buildMaterializer(be, sources, upstream.New(nil, srv.Client(), newTestLogger()), newTestLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"rates", "news"}, m.Keys())

	ctx := context.Background()
	require.NoError(t, m.Run(ctx))
	assert.Equal(t, 2, calls)

	snap, found, err := m.Get(ctx, "rates")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"path":"/rates"}`, string(snap.Body))
	assert.Equal(t, 2, calls, "Get читает из хранилища")

	_, err = buildMaterializer(be, []domain.Source{{Key: "", URL: "x"}},
		upstream.New(nil, nil, newTestLogger()), newTestLogger())
	assert.ErrorIs(t, err, domain.ErrInvalidMaterial)
}
