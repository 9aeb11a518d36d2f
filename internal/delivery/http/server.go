package http

import (
	"context"
	"time"

	"github.com/center-assignment/internal/config"
	"github.com/center-assignment/internal/delivery/http/handler"
	"github.com/center-assignment/internal/delivery/http/middleware"
	"github.com/center-assignment/internal/metrics"
	"github.com/center-assignment/internal/pkg/errors"
	"github.com/center-assignment/internal/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server - Fiber HTTP server
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	assignmentHandler *handler.AssignmentHandler
	distanceHandler   *handler.DistanceHandler
	graphHandler      *handler.GraphHandler
	healthHandler     *handler.HealthHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	assignmentHandler *handler.AssignmentHandler,
	distanceHandler *handler.DistanceHandler,
	graphHandler *handler.GraphHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:     "Center Assignment Service",
		ReadTimeout: 10 * time.Second,
		// matrix builds for large requests are long running
		WriteTimeout: cfg.Server.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    16 * 1024 * 1024,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		assignmentHandler: assignmentHandler,
		distanceHandler:   distanceHandler,
		graphHandler:      graphHandler,
		healthHandler:     healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	// Assignment
	api.Post("/assignments", s.assignmentHandler.Assign)

	// Distances
	api.Post("/distances", s.distanceHandler.GetDistance)
	api.Post("/distances/matrix", s.distanceHandler.GetMatrix)
	api.Get("/cache/stats", s.distanceHandler.CacheStats)
	api.Delete("/cache", s.distanceHandler.ClearCache)

	// Graph
	api.Post("/graph/shortest-path", s.graphHandler.ShortestPath)
	api.Post("/graph/distances", s.graphHandler.Distances)
}

// App exposes the underlying fiber app, mainly for app.Test in tests
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := errors.AsAppError(err); ok {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
			return utils.SendError(c, err)
		}

		return c.Status(code).JSON(utils.ErrorResponse{
			Error: errors.New(codeFor(code), err.Error(), code),
		})
	}
}

func codeFor(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "REQUEST_TOO_LARGE"
	default:
		return "HTTP_ERROR"
	}
}
