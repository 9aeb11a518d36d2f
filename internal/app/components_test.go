package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/center-assignment/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFile(t.TempDir() + "/missing.env")
	require.NoError(t, err)
	return cfg
}

func TestNewRouting_SelectsProvider(t *testing.T) {
	cfg := testConfig(t)
	assert.NotNil(t, NewRouting(cfg, zap.NewNop()))

	cfg.Routing.Provider = config.ProviderMapbox
	cfg.Routing.Mapbox.AccessToken = "pk.test"
	assert.NotNil(t, NewRouting(cfg, zap.NewNop()))
}

func TestNewComponents(t *testing.T) {
	cfg := testConfig(t)
	cfg.Assignment.UseRoadDistances = false

	c := NewComponents(cfg, zap.NewNop())

	require.NotNil(t, c.Assignment)
	require.NotNil(t, c.Distance)
	require.NotNil(t, c.Graph)
	assert.False(t, c.Distances.RoadDistances())

	grid := c.Distances.GridStats()
	require.NotNil(t, grid)
	assert.Equal(t, cfg.Grid.MaxRangeKm, grid.MaxRangeKm)
	assert.Equal(t, 0, c.Distances.CacheStats().Size)
}
