// Package osrm is a RoutingRepository backed by the OSRM HTTP route service.
package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/center-assignment/internal/config"
	"github.com/center-assignment/internal/domain"
	"github.com/center-assignment/internal/domain/repository"
	"go.uber.org/zap"
)

var (
	ErrNoRoute   = errors.New("osrm: no route between points")
	ErrBadStatus = errors.New("osrm: unexpected status")
)

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry string  `json:"geometry"`
	} `json:"routes"`
}

type client struct {
	httpClient *http.Client
	baseURL    string
	profile    string
	logger     *zap.Logger
}

func NewOSRMClient(cfg *config.OSRMConfig, logger *zap.Logger) repository.RoutingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		profile: cfg.Profile,
		logger:  logger,
	}
}

// Route calls GET /route/v1/{profile}/{lon,lat;lon,lat}
func (c *client) Route(ctx context.Context, from, to domain.GeoPoint) (*domain.Route, error) {
	coordinates := fmt.Sprintf("%f,%f;%f,%f", from.Lon, from.Lat, to.Lon, to.Lat)

	query := url.Values{}
	query.Set("overview", "full")
	query.Set("geometries", "polyline")

	endpoint := fmt.Sprintf("%s/route/v1/%s/%s?%s", c.baseURL, c.profile, coordinates, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var route routeResponse
	decodeErr := json.Unmarshal(body, &route)

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("OSRM returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("code", route.Code),
			zap.String("message", route.Message))
		if route.Code == "NoRoute" {
			return nil, ErrNoRoute
		}
		return nil, fmt.Errorf("%w %d", ErrBadStatus, resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	switch {
	case route.Code == "NoRoute":
		return nil, ErrNoRoute
	case route.Code != "Ok":
		return nil, fmt.Errorf("osrm returned code %s: %s", route.Code, route.Message)
	case len(route.Routes) == 0:
		return nil, ErrNoRoute
	}

	best := route.Routes[0]
	c.logger.Debug("OSRM route",
		zap.Float64("distance_m", best.Distance),
		zap.Float64("duration_s", best.Duration))

	return &domain.Route{
		DistanceKm:  best.Distance / 1000,
		DurationMin: best.Duration / 60,
		Geometry:    best.Geometry,
	}, nil
}
