package mapbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/center-assignment/internal/config"
	"github.com/center-assignment/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) *client {
	cfg := &config.MapboxConfig{
		BaseURL:     baseURL,
		AccessToken: "test_token",
		Profile:     "mapbox/driving",
		Timeout:     2 * time.Second,
	}
	return NewMapboxClient(cfg, zap.NewNop()).(*client)
}

func TestClient_Route(t *testing.T) {
	from := domain.NewPerson(41.3851, 2.1734, domain.CategoryMale)
	to := domain.NewCenter(41.39, 2.18)

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/directions/v5/mapbox/driving/2.173400,41.385100;2.180000,41.390000", r.URL.Path)
			assert.Equal(t, "test_token", r.URL.Query().Get("access_token"))
			assert.Equal(t, "polyline", r.URL.Query().Get("geometries"))
			assert.Equal(t, "full", r.URL.Query().Get("overview"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":1520.5,"duration":240,"geometry":"_p~iF~ps|U_ulLnnqC"}]}`))
		}))
		defer server.Close()

		route, err := newTestClient(server.URL).Route(context.Background(), from, to)

		require.NoError(t, err)
		assert.InDelta(t, 1.5205, route.DistanceKm, 1e-9)
		assert.InDelta(t, 4.0, route.DurationMin, 1e-9)
		assert.Equal(t, "_p~iF~ps|U_ulLnnqC", route.Geometry)
	})

	t.Run("non 200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Not Authorized - Invalid Token"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Route(context.Background(), from, to)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	})

	t.Run("non Ok code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":"NoRoute","message":"No route found","routes":[]}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Route(context.Background(), from, to)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "NoRoute")
	})

	t.Run("empty routes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":"Ok","routes":[]}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Route(context.Background(), from, to)

		assert.Error(t, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":"Ok","routes":[]}`))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestClient(server.URL).Route(ctx, from, to)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
