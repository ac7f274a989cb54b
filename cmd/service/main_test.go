package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/adapters/events"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/adapters/persistence/gormdb"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/config"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"serve", "migrate", "version"})
	assert.NotNil(t, root.PersistentFlags().Lookup("profile"))
}

func TestRootCmd_NoArgsServes(t *testing.T) {
	t.Setenv("APP_DATABASE_VENDOR", "mongo")

	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: []string{}},
		{name: "profile only", args: []string{"--profile", "test"}},
		{name: "serve", args: []string{"serve", "--profile", "test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCmd()
			root.SetArgs(tt.args)

			err := root.Execute()

			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestVersionCmd(t *testing.T) {
	root := newRootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "version="+Version)
}

func TestBuildRepository(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		health := ports.NewHealthRegistry()
		cfg := &config.Config{Database: config.DatabaseConfig{Vendor: config.VendorMemory}}

		bundle, err := buildRepository(context.Background(), cfg, discardLogger(), health)
		require.NoError(t, err)
		defer bundle.close()

		assert.Equal(t, "Example", bundle.repository.EntityName())
		assert.Empty(t, health.CheckAll(context.Background()).Checks)
	})

	t.Run("sqlite", func(t *testing.T) {
		health := ports.NewHealthRegistry()
		cfg := &config.Config{Database: config.DatabaseConfig{
			Vendor:      config.VendorSQLite,
			Path:        filepath.Join(t.TempDir(), "examples.db"),
			AutoMigrate: true,
		}}

		bundle, err := buildRepository(context.Background(), cfg, discardLogger(), health)
		if err != nil {
			t.Skipf("sqlite unavailable: %v", err)
		}
		defer bundle.close()

		assert.IsType(t, &gormdb.ExampleRepository{}, bundle.repository)
		assert.Contains(t, health.CheckAll(context.Background()).Checks, "database")
	})

	t.Run("unknown vendor", func(t *testing.T) {
		cfg := &config.Config{Database: config.DatabaseConfig{Vendor: "mysql"}}

		_, err := buildRepository(context.Background(), cfg, discardLogger(), ports.NewHealthRegistry())
		assert.ErrorContains(t, err, `unsupported database vendor "mysql"`)
	})
}

func TestBuildPublisher_Disabled(t *testing.T) {
	health := ports.NewHealthRegistry()

	bundle, err := buildPublisher(&config.Config{}, discardLogger(), health)
	require.NoError(t, err)
	defer bundle.close()

	assert.IsType(t, &events.LogPublisher{}, bundle.publisher)
	assert.Empty(t, health.CheckAll(context.Background()).Checks)
}

func TestMigrate_NothingToDo(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Vendor: config.VendorRedis}}

	assert.NoError(t, migrate(cfg, discardLogger()))
}

func TestBuildPublisher_Kafka(t *testing.T) {
	health := ports.NewHealthRegistry()
	cfg := &config.Config{Events: config.EventsConfig{
		Enabled:  true,
		Brokers:  []string{"localhost:9092"},
		Topic:    "example-events",
		ClientID: "test",
		Breaker:  config.BreakerConfig{MaxFailures: 3},
	}}

	bundle, err := buildPublisher(cfg, discardLogger(), health)
	require.NoError(t, err)
	defer bundle.close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.IsType(t, &events.BreakingPublisher{}, bundle.publisher)

	result := health.CheckAll(ctx)
	require.Contains(t, result.Checks, "kafka")
	require.Contains(t, result.Checks, "event-breaker")
	assert.True(t, result.Checks["kafka"].Optional)
	assert.NotEqual(t, ports.HealthStatusUnhealthy, result.Status, "broker outages only degrade readiness")
}
