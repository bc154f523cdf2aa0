package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.App.TokenSignKey = "secret"
	cfg.Storage.DB.DSN = "postgres://localhost/vault"
	return cfg
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs returns the
// defaults.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceWins verifies that non-zero fields of later configs
// override earlier ones and zero fields keep earlier values.
func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0", TokenIssuer: "first"}},
		&StructuredConfig{App: App{TokenIssuer: "second"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "second", cfg.App.TokenIssuer)
	assert.Equal(t, "info", cfg.App.LogLevel, "default kept")
}

// TestWithJSON_EnvOverridesFile verifies the file sits below the source that
// named it.
func TestWithJSON_EnvOverridesFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app":    map[string]any{"token_issuer": "from-file", "version": "9.9.9"},
		"server": map[string]any{"request_timeout": "45s"},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		App:          App{TokenIssuer: "from-env"},
		JSONFilePath: path,
	})

	cfg, err := b.withJSON().build()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.App.TokenIssuer)
	assert.Equal(t, "9.9.9", cfg.App.Version)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
}

// TestWithJSON_MissingFileRecordsError verifies that a broken file makes
// build fail.
func TestWithJSON_MissingFileRecordsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})

	_, err := b.withJSON().build()
	assert.Error(t, err)
}

// TestWithJSON_NoPath is a no-op.
func TestWithJSON_NoPath(t *testing.T) {
	b := newConfigBuilder().withJSON()
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// TestWithFlags_RecordsParseError verifies flag errors are collected.
func TestWithFlags_RecordsParseError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-unknown"})
	assert.Error(t, b.err)
}

// TestBuild_FlagsOverrideEnv verifies the full priority chain.
func TestBuild_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "env-key")
	t.Setenv("STORAGE_DB_DATABASE_URI", "env-dsn")

	cfg, err := newConfigBuilder().
		withEnv().
		withFlags([]string{"-d", "flag-dsn"}).
		withJSON().
		build()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.App.TokenSignKey)
	assert.Equal(t, "flag-dsn", cfg.Storage.DB.DSN)
	require.NoError(t, cfg.validate())
}

// TestBuild_RateLimitDisabledFromEnv verifies a negative rate survives the
// merge over the default and passes validation.
func TestBuild_RateLimitDisabledFromEnv(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "env-key")
	t.Setenv("STORAGE_DB_DATABASE_URI", "env-dsn")
	t.Setenv("SERVER_RATE_LIMIT_RPS", "-1")

	cfg, err := newConfigBuilder().withEnv().withFlags(nil).withJSON().build()
	require.NoError(t, err)
	require.NoError(t, cfg.validate())

	assert.InDelta(t, -1.0, cfg.Server.RateLimitRPS, 0.0001)
	assert.False(t, cfg.Server.RateLimitEnabled())
}

// TestBuild_RateLimitZeroKeepsDefault documents that 0 cannot switch the
// limiter off.
func TestBuild_RateLimitZeroKeepsDefault(t *testing.T) {
	t.Setenv("SERVER_RATE_LIMIT_RPS", "0")

	cfg, err := newConfigBuilder().withEnv().build()
	require.NoError(t, err)
	assert.True(t, cfg.Server.RateLimitEnabled())
	assert.Equal(t, defaultConfig().Server.RateLimitRPS, cfg.Server.RateLimitRPS)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(cfg *StructuredConfig) {}},
		{name: "missing sign key", mutate: func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "zero argon time", mutate: func(cfg *StructuredConfig) { cfg.Cipher.ArgonTime = 0 }, wantErr: ErrInvalidCipherConfigs},
		{name: "unknown driver", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "oracle" }, wantErr: ErrInvalidStorageConfigs},
		{name: "missing dsn", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "missing address", mutate: func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" }, wantErr: ErrInvalidServerConfigs},
		{name: "negative rate disables limiting", mutate: func(cfg *StructuredConfig) { cfg.Server.RateLimitRPS = -1; cfg.Server.RateLimitBurst = 0 }},
		{name: "zero burst with limiting on", mutate: func(cfg *StructuredConfig) { cfg.Server.RateLimitBurst = 0 }, wantErr: ErrInvalidServerConfigs},
		{name: "zero worker batch", mutate: func(cfg *StructuredConfig) { cfg.Workers.LegacyUpgradeBatch = 0 }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateClient(t *testing.T) {
	cfg := defaultConfig()
	assert.NoError(t, cfg.validateClient())

	cfg.Adapter.HTTPAddress = ""
	assert.ErrorIs(t, cfg.validateClient(), ErrInvalidAdapterConfigs)
}
