package app

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCfg_Defaults(t *testing.T) {
	cfg, err := LoadCfg("testdata/missing.env")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, "msgpack", cfg.Codec)
	assert.True(t, cfg.ComputeOnMiss)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, 5*time.Second, cfg.Sweep.Interval)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "_expired_", cfg.Redis.ExpiredPrefix)
	assert.Equal(t, "_lock", cfg.Redis.LockSuffix)
	assert.Equal(t, "materialgirl-commands", cfg.Kafka.Topic)
	assert.Equal(t, "materials", cfg.Mongo.Collection)
}

func TestLoadCfg_FromEnv(t *testing.T) {
	t.Setenv("MATERIALGIRL_STORAGE_DRIVER", "redis")
	t.Setenv("MATERIALGIRL_CODEC", "json")
	t.Setenv("MATERIALGIRL_SWEEP_INTERVAL", "250ms")
	t.Setenv("MATERIALGIRL_REDIS_EXPIRED_PREFIX", "mg:expired:")
	t.Setenv("MATERIALGIRL_SERVER_CORS_ORIGINS", "http://a,http://b")
	t.Setenv("MATERIALGIRL_COMPUTE_ON_MISS", "false")

	cfg, err := LoadCfg("testdata/missing.env")
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.StorageDriver)
	assert.Equal(t, "json", cfg.Codec)
	assert.Equal(t, 250*time.Millisecond, cfg.Sweep.Interval)
	assert.Equal(t, "mg:expired:", cfg.Redis.ExpiredPrefix)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.ComputeOnMiss)
}

func TestLoadCfg_EnvFile(t *testing.T) {
	t.Cleanup(func() {
		os.Unsetenv("MATERIALGIRL_STORAGE_DRIVER")
		os.Unsetenv("MATERIALGIRL_DB_NAME")
	})
	cfg, err := LoadCfg("testdata/test.env")
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "materials_test", cfg.DB.DBName)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.StorageDriver = "etcd" }, wantErr: "unknown storage driver"},
		{name: "unknown codec", mutate: func(c *Config) { c.Codec = "gob" }, wantErr: "unknown codec"},
		{name: "no materials file", mutate: func(c *Config) { c.MaterialsFile = "" }, wantErr: "materials file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{StorageDriver: DriverMemory, Codec: "msgpack", MaterialsFile: "materials.yaml"}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
