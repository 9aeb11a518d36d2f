package osrm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/center-assignment/internal/config"
	"github.com/center-assignment/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string, timeout time.Duration) *client {
	cfg := &config.OSRMConfig{
		BaseURL: baseURL,
		Profile: "driving",
		Timeout: timeout,
	}
	return NewOSRMClient(cfg, zap.NewNop()).(*client)
}

func TestClient_Route(t *testing.T) {
	from := domain.NewPerson(40.4168, -3.7038, domain.CategoryPWD)
	to := domain.NewCenter(40.42, -3.69)

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/route/v1/driving/-3.703800,40.416800;-3.690000,40.420000", r.URL.Path)
			assert.Equal(t, "full", r.URL.Query().Get("overview"))
			assert.Equal(t, "polyline", r.URL.Query().Get("geometries"))
			_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":2500,"duration":300,"geometry":"a~l~Fjk~uOwHJy@P"}]}`))
		}))
		defer server.Close()

		route, err := newTestClient(server.URL, time.Second).Route(context.Background(), from, to)

		require.NoError(t, err)
		assert.InDelta(t, 2.5, route.DistanceKm, 1e-9)
		assert.InDelta(t, 5.0, route.DurationMin, 1e-9)
		assert.Equal(t, "a~l~Fjk~uOwHJy@P", route.Geometry)
	})

	t.Run("no route", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":"NoRoute","message":"Impossible route between points"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, time.Second).Route(context.Background(), from, to)

		assert.ErrorIs(t, err, ErrNoRoute)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`upstream down`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, time.Second).Route(context.Background(), from, to)

		assert.ErrorIs(t, err, ErrBadStatus)
	})

	t.Run("non Ok code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":"InvalidQuery","message":"bad coordinates"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, time.Second).Route(context.Background(), from, to)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "InvalidQuery")
	})

	t.Run("empty routes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":"Ok","routes":[]}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, time.Second).Route(context.Background(), from, to)

		assert.ErrorIs(t, err, ErrNoRoute)
	})

	t.Run("timeout", func(t *testing.T) {
		var calls int32
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		_, err := newTestClient(server.URL, 50*time.Millisecond).Route(context.Background(), from, to)

		assert.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}
