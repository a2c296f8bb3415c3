package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
const (
	totalEntries = 24000
	countPerItem = 3
)

var (
	movies   = []string{"Inception", "Interstellar"}
	events   = []string{"play", "pause", "stop"}
	partners = []string{"netflix", "hulu"}
	sources  = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"smart-tv",
	}
	// months span a year boundary so the range crosses buckets 2015/12 .. 2016/3
	months = []time.Time{
		time.Date(2015, time.December, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2016, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2016, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
)

// ### End - fixed configs

type eventItem struct {
	Event    string `json:"event"`
	Partner  string `json:"partner"`
	Movie    string `json:"movie"`
	Source   string `json:"source"`
	DateTime string `json:"dateTime"`
	Count    int64  `json:"count"`
}

type eventInfo struct {
	Name      string `json:"name"`
	Partner   string `json:"partner"`
	Movie     string `json:"movie"`
	Count     int64  `json:"count"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type batchToSend struct {
	batchIndex int
	jsonData   []byte
	isOriginal bool
}

// main runs the e2e scenario: 001_month_bucket_rollup
//
// Ingests 24,000 events for two movies spread over four monthly buckets through POST /v1/events,
// replays a share of the batches with the same idempotency key, then asks GET /v1/movie for
// the whole range and for a single month.
//
// Expected results:
//   - every original batch is accepted (202)
//   - replayed batches return 409 on the file backend
//   - Inception over 2015-12-01 00:00 .. 2016-03-31 23:59 reports play/pause/stop with
//     4,000 items each, so count 12,000 per event type
//   - Inception over January 2016 alone reports a quarter of that
//
// Run the server with backend.driver=file and a clean backend.file.root_dir.
func main() {
	baseURL := getEnv("BASE_URL", "http://localhost:8080")
	itemsPerBatch := getEnvInt("ITEMS_PER_BATCH", 40)
	parallel := getEnvInt("PARALLEL", 4)
	totalDuplicates := getEnvInt("TOTAL_DUPLICATES", 100)

	if totalEntries%itemsPerBatch != 0 {
		fail("TOTAL_ENTRIES (%d) must be divisible by ITEMS_PER_BATCH (%d)", totalEntries, itemsPerBatch)
	}
	batchCount := totalEntries / itemsPerBatch

	fmt.Println("Starting e2e scenario: 001_month_bucket_rollup")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("ITEMS_PER_BATCH: %d\n", itemsPerBatch)
	fmt.Printf("BATCH_COUNT: %d\n", batchCount)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("TOTAL_DUPLICATES: %d\n", totalDuplicates)
	fmt.Println()

	items := generateAllItems()
	batches := make([]batchToSend, 0, batchCount+totalDuplicates)
	for batchIndex := 1; batchIndex <= batchCount; batchIndex++ {
		start := (batchIndex - 1) * itemsPerBatch
		jsonData, err := json.Marshal(items[start : start+itemsPerBatch])
		if err != nil {
			fail("failed to encode batch %d: %v", batchIndex, err)
		}
		batches = append(batches, batchToSend{batchIndex: batchIndex, jsonData: jsonData, isOriginal: true})
	}
	for i := 0; i < totalDuplicates; i++ {
		original := batches[i%batchCount]
		batches = append(batches, batchToSend{batchIndex: original.batchIndex, jsonData: original.jsonData})
	}

	client := &http.Client{Timeout: 30 * time.Second}
	var accepted, conflicted, unexpected int64
	send := func(batch batchToSend) error {
		status, err := sendBatch(client, baseURL, batch)
		if err != nil {
			return fmt.Errorf("batch %d: %w", batch.batchIndex, err)
		}
		switch {
		case status == http.StatusAccepted && batch.isOriginal:
			atomic.AddInt64(&accepted, 1)
		case status == http.StatusConflict && !batch.isOriginal:
			atomic.AddInt64(&conflicted, 1)
		default:
			atomic.AddInt64(&unexpected, 1)
			fmt.Fprintf(os.Stderr, "batch %d (original=%v) returned status %d\n", batch.batchIndex, batch.isOriginal, status)
		}
		return nil
	}

	// replays go out after every original is stored, else a replay racing its original may win
	if err := sendAll(batches[:batchCount], parallel, send); err != nil {
		fail("%v", err)
	}
	if err := sendAll(batches[batchCount:], parallel, send); err != nil {
		fail("%v", err)
	}

	fmt.Println("=== Ingestion ===")
	fmt.Printf("Accepted request: %d\n", accepted)
	fmt.Printf("Conflicted request: %d\n", conflicted)
	fmt.Printf("Unexpected status: %d\n", unexpected)
	fmt.Println()

	perEventType := int64(totalEntries/len(movies)/len(events)) * countPerItem
	checkMovie(client, baseURL, "Inception", "2015-12-01 00:00", "2016-03-31 23:59", perEventType)
	checkMovie(client, baseURL, "Inception", "2016-01-01 00:00", "2016-01-31 23:59", perEventType/int64(len(months)))

	if unexpected > 0 {
		fail("%d batches returned an unexpected status", unexpected)
	}
	fmt.Println("Scenario completed successfully")
}

// generateAllItems spreads items evenly over movies, event types and months.
func generateAllItems() []eventItem {
	items := make([]eventItem, 0, totalEntries)
	for i := 0; i < totalEntries; i++ {
		month := months[(i/(len(movies)*len(events)))%len(months)]
		at := month.Add(time.Duration(i%(27*24)) * time.Hour)
		items = append(items, eventItem{
			Event:    events[i%len(events)],
			Partner:  partners[(i/len(events))%len(partners)],
			Movie:    movies[(i/len(events))%len(movies)],
			Source:   sources[i%len(sources)],
			DateTime: at.Format("2006-01-02 15:04"),
			Count:    countPerItem,
		})
	}
	return items
}

func sendAll(batches []batchToSend, parallel int, send func(batchToSend) error) error {
	var group errgroup.Group
	group.SetLimit(parallel)
	for _, batch := range batches {
		group.Go(func() error {
			return send(batch)
		})
	}
	return group.Wait()
}

func sendBatch(client *http.Client, baseURL string, batch batchToSend) (int, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, baseURL+"/v1/events", bytes.NewReader(batch.jsonData))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// same key for every replay of a batch
	req.Header.Set("idempotency-key", fmt.Sprintf("batch-%06d", batch.batchIndex))

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

func checkMovie(client *http.Client, baseURL, movie, startDate, endDate string, wantPerEventType int64) {
	query := url.Values{}
	query.Set("name", movie)
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)

	resp, err := client.Get(baseURL + "/v1/movie?" + query.Encode())
	if err != nil {
		fail("movie query failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fail("movie query returned %d: %s", resp.StatusCode, body)
	}

	var infos []eventInfo
	if err := json.NewDecoder(resp.Body).Decode(&infos); err != nil {
		fail("failed to decode movie response: %v", err)
	}

	fmt.Printf("=== %s %s .. %s ===\n", movie, startDate, endDate)
	if len(infos) != len(events) {
		fail("expected %d event types, got %d", len(events), len(infos))
	}
	for _, info := range infos {
		fmt.Printf("%s: %d\n", info.Name, info.Count)
		if info.Count != wantPerEventType {
			fail("event %s: expected count %d, got %d", info.Name, wantPerEventType, info.Count)
		}
		if info.Movie != movie || info.StartDate != startDate || info.EndDate != endDate {
			fail("event %s: unexpected echo fields %+v", info.Name, info)
		}
	}
	fmt.Println()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
	os.Exit(1)
}
