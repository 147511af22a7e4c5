package click

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holmes-app/materialgirl/internal/domain"
	"github.com/holmes-app/materialgirl/internal/pkg/testutil"
)

// clickContainer — контейнер ClickHouse, поднимается один раз для всех тестов пакета.
var clickContainer *testutil.ClickHouseContainer

func TestMain(m *testing.M) {
	flag.Parse()
	if !testing.Short() {
		var err error
		clickContainer, err = testutil.Start(testutil.NewClickHouseContainer)
		if err != nil {
			log.Printf("click: контейнер не поднят, интеграционные тесты будут пропущены: %v", err)
			clickContainer = nil
		}
	}

	code := m.Run()

	if clickContainer != nil {
		if err := clickContainer.Terminate(context.Background()); err != nil {
			log.Printf("click: ошибка остановки контейнера: %v", err)
		}
	}
	os.Exit(code)
}

// setupClient подключается к тестовому ClickHouse.
func setupClient(t *testing.T) *Client {
	t.Helper()
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}
	if clickContainer == nil {
		t.Skip("Docker недоступен")
	}

	client, err := New(&Config{
		Host:     clickContainer.Host,
		Port:     clickContainer.Port,
		Database: clickContainer.Database,
		Username: clickContainer.User,
		Password: clickContainer.Password,
	})
	require.NoError(t, err, "не удалось подключиться к ClickHouse")
	t.Cleanup(func() {
		client.Close()
	})
	return client
}

func TestConfig_Addr(t *testing.T) {
	var cfg *Config
	assert.Equal(t, "localhost:9000", cfg.Addr())
	assert.Equal(t, "ch:9440", (&Config{Host: "ch", Port: "9440"}).Addr())
}

func TestJournalWriter_WriteRefresh(t *testing.T) {
	client := setupClient(t)
	ctx := context.Background()
	w := NewJournalWriter(client)

	// Тест 1: таблица создаётся повторно без ошибок
	require.NoError(t, w.EnsureTable(ctx))
	require.NoError(t, w.EnsureTable(ctx))
	_, err := client.DB().ExecContext(ctx, "TRUNCATE TABLE "+refreshesTable)
	require.NoError(t, err)

	// Тест 2: события разных исходов пишутся по строке на событие
	at := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, w.WriteRefresh(ctx, domain.RefreshEvent{
		Key: "rates", Outcome: domain.OutcomeRefreshed, Duration: 1500 * time.Microsecond, At: at,
	}))
	require.NoError(t, w.WriteRefresh(ctx, domain.RefreshEvent{
		Key: "rates", Outcome: domain.OutcomeFailed, Error: "boom", At: at.Add(time.Second),
	}))

	var (
		count    uint64
		duration float64
		errText  string
	)
	err = client.DB().QueryRowContext(ctx,
		"SELECT count() FROM "+refreshesTable+" WHERE key = ?", "rates").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	err = client.DB().QueryRowContext(ctx,
		"SELECT duration_ms FROM "+refreshesTable+" WHERE key = ? AND outcome = ?", "rates", "refreshed").Scan(&duration)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, duration, 0.001)

	err = client.DB().QueryRowContext(ctx,
		"SELECT error FROM "+refreshesTable+" WHERE key = ? AND outcome = ?", "rates", "failed").Scan(&errText)
	require.NoError(t, err)
	assert.Equal(t, "boom", errText)
}
