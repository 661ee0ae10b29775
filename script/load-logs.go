package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

var levels = []string{"fatal", "error", "warn", "info", "debug", "trace"}

type logRequest struct {
	Level  string `json:"level"`
	Values []any  `json:"values"`
}

type logResponse struct {
	Level   string `json:"level"`
	Emitted bool   `json:"emitted"`
}

// stats aggregates outcomes per requested level
type stats struct {
	mu        sync.Mutex
	latencies []time.Duration
	emitted   map[string]int
	dropped   map[string]int
	gated     int
	errors    map[string]int
}

func (s *stats) record(level string, latency time.Duration, status int, resp *logResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latencies = append(s.latencies, latency)
	switch {
	case err != nil:
		s.errors[err.Error()]++
	case status == http.StatusServiceUnavailable:
		s.gated++
	case status != http.StatusAccepted:
		s.errors[fmt.Sprintf("HTTP status code %d", status)]++
	case resp.Emitted:
		s.emitted[level]++
	default:
		s.dropped[level]++
	}
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent requests")
	total := flag.Int("n", 100, "Total number of requests to make")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of flaglogd")
	delayMs := flag.Int("delay", 0, "Delay before each request in milliseconds")
	flag.Parse()

	fmt.Printf("Sending %d log statements to %s with %d workers\n", *total, *baseURL, *concurrency)

	s := &stats{
		emitted: make(map[string]int),
		dropped: make(map[string]int),
		errors:  make(map[string]int),
	}
	client := &http.Client{Timeout: 10 * time.Second}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*concurrency)

	start := time.Now()
	for i := 0; i < *total; i++ {
		i := i
		g.Go(func() error {
			if *delayMs > 0 {
				time.Sleep(time.Duration(*delayMs) * time.Millisecond)
			}
			level := levels[rand.Intn(len(levels))]
			send(ctx, client, *baseURL, level, i, s)
			return nil
		})
	}
	_ = g.Wait()

	printResults(s, *total, time.Since(start))
}

func send(ctx context.Context, client *http.Client, baseURL, level string, seq int, s *stats) {
	body, err := json.Marshal(logRequest{
		Level:  level,
		Values: []any{"load test statement", seq},
	})
	if err != nil {
		s.record(level, 0, 0, nil, err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/logs", bytes.NewReader(body))
	if err != nil {
		s.record(level, 0, 0, nil, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(started)
	if err != nil {
		s.record(level, latency, 0, nil, err)
		return
	}
	defer resp.Body.Close()

	var out logResponse
	if resp.StatusCode == http.StatusAccepted {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			s.record(level, latency, resp.StatusCode, nil, err)
			return
		}
	}
	s.record(level, latency, resp.StatusCode, &out, nil)
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func printResults(s *stats, total int, elapsed time.Duration) {
	sorted := slices.Clone(s.latencies)
	slices.Sort(sorted)

	fmt.Println("\n================= RESULTS =================")
	fmt.Printf("Total Requests:  %d in %.2fs (%.2f req/s)\n", total, elapsed.Seconds(), float64(total)/elapsed.Seconds())
	fmt.Printf("Gated (503):     %d\n", s.gated)

	fmt.Println("\n----------------- THRESHOLD -----------------")
	for _, level := range levels {
		fmt.Printf("%-6s emitted %4d  dropped %4d\n", level, s.emitted[level], s.dropped[level])
	}

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("P50: %v  P90: %v  P99: %v\n", percentile(sorted, 50), percentile(sorted, 90), percentile(sorted, 99))

	if len(s.errors) > 0 {
		fmt.Println("\n----------------- ERRORS -----------------")
		for msg, count := range s.errors {
			fmt.Printf("%-40s: %d\n", msg, count)
		}
	}
}
