package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/center-assignment/internal/config"
	"github.com/center-assignment/internal/domain"
	"github.com/center-assignment/internal/domain/repository"
	"go.uber.org/zap"
)

type directionsResponse struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Routes  []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry string  `json:"geometry"`
	} `json:"routes"`
}

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	profile     string
	logger      *zap.Logger
}

// NewMapboxClient creates a Mapbox Directions API routing client
func NewMapboxClient(cfg *config.MapboxConfig, logger *zap.Logger) repository.RoutingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		profile:     cfg.Profile,
		logger:      logger,
	}
}

// Route returns the driving route between two points
func (c *client) Route(ctx context.Context, from, to domain.GeoPoint) (*domain.Route, error) {
	coordinates := fmt.Sprintf("%f,%f;%f,%f", from.Lon, from.Lat, to.Lon, to.Lat)

	query := url.Values{}
	query.Set("geometries", "polyline")
	query.Set("overview", "full")
	query.Set("access_token", c.accessToken)

	endpoint := fmt.Sprintf("%s/directions/v5/%s/%s?%s", c.baseURL, c.profile, coordinates, query.Encode())

	c.logger.Debug("Calling Mapbox Directions API",
		zap.String("profile", c.profile),
		zap.String("coordinates", coordinates))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("mapbox API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var directions directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&directions); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if directions.Code != "Ok" {
		return nil, fmt.Errorf("mapbox API returned code: %s %s", directions.Code, directions.Message)
	}
	if len(directions.Routes) == 0 {
		return nil, fmt.Errorf("mapbox API returned no routes")
	}

	route := directions.Routes[0]
	return &domain.Route{
		DistanceKm:  route.Distance / 1000,
		DurationMin: route.Duration / 60,
		Geometry:    route.Geometry,
	}, nil
}
