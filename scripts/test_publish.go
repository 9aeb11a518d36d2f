//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type point struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Role     string  `json:"role,omitempty"`
	Category string  `json:"category,omitempty"`
}

type assignmentRequestEvent struct {
	RequestID         uuid.UUID `json:"request_id"`
	People            []point   `json:"people"`
	Centers           []point   `json:"centers"`
	CapacityPerCenter int       `json:"capacity_per_center"`
	UseRoadDistances  *bool     `json:"use_road_distances,omitempty"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	road := flag.Bool("road", false, "use road distances")
	flag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Madrid, three people and two centers
	event := assignmentRequestEvent{
		RequestID: uuid.New(),
		People: []point{
			{Lat: 40.4168, Lon: -3.7038, Role: "person", Category: "male"},
			{Lat: 40.4200, Lon: -3.7100, Role: "person", Category: "pwd"},
			{Lat: 40.4300, Lon: -3.6900, Role: "person", Category: "female"},
		},
		Centers: []point{
			{Lat: 40.4150, Lon: -3.7050, Role: "center"},
			{Lat: 40.4350, Lon: -3.6850, Role: "center"},
		},
		CapacityPerCenter: 1,
		UseRoadDistances:  road,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:assignment:request",
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: stream:assignment:request\n")
	fmt.Printf("   Message ID: %s\n", id)
	fmt.Printf("   Request ID: %s\n", event.RequestID)
	fmt.Printf("\nWaiting for response in stream:assignment:done...\n")

	timeout := time.After(60 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for response")
			return
		case <-ticker.C:
			results, err := client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{"stream:assignment:done", "0"},
				Count:   100,
				Block:   -1,
			}).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				continue
			}

			for _, stream := range results {
				for _, msg := range stream.Messages {
					raw, ok := msg.Values["data"].(string)
					if !ok {
						continue
					}
					var response map[string]interface{}
					if err := json.Unmarshal([]byte(raw), &response); err != nil {
						continue
					}
					if response["request_id"] == event.RequestID.String() {
						pretty, _ := json.MarshalIndent(response, "", "  ")
						fmt.Printf("\nResponse received\n%s\n", pretty)
						return
					}
				}
			}
		}
	}
}
