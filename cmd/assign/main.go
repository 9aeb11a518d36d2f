// Command assign runs one assignment from a YAML scenario file and prints the
// result as JSON.
//
//	assign -f scenario.yaml [-road=false] [-capacity 10]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/center-assignment/internal/app"
	"github.com/center-assignment/internal/config"
	"github.com/center-assignment/internal/pkg/logger"
	"github.com/center-assignment/internal/progress"
	"github.com/center-assignment/internal/usecase/dto"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	file := flag.String("f", "scenario.yaml", "YAML scenario with people and centers")
	road := flag.String("road", "", "override road distances (true|false)")
	capacity := flag.Int("capacity", 0, "override capacity per center")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	req, err := loadScenario(*file)
	if err != nil {
		log.Fatal("Failed to load scenario", zap.String("file", *file), zap.Error(err))
	}
	if *capacity > 0 {
		req.CapacityPerCenter = *capacity
	}
	if *road != "" {
		enabled := *road == "true"
		req.UseRoadDistances = &enabled
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	components := app.NewComponents(cfg, log)
	resp, err := components.Assignment.Assign(ctx, *req, progress.NewLog(log, cfg.Worker.ProgressEvery))
	if err != nil {
		log.Fatal("Assignment failed", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		log.Fatal("Failed to write result", zap.Error(err))
	}
}

func loadScenario(path string) (*dto.AssignRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseScenario(raw)
}

func parseScenario(raw []byte) (*dto.AssignRequest, error) {
	var req dto.AssignRequest
	if err := yaml.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return &req, nil
}
