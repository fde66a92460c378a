// Command import_events loads an exported browser collection dump (the JSON
// array formerly kept under the event-tracker-events storage key) into a
// running API instance, or directly into the file blob when the server is
// offline.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

type event struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Campus             string `json:"campus,omitempty"`
	Category           string `json:"category"`
	Public             string `json:"public"`
	OrganizerUnit      string `json:"organizerUnit"`
	SpecificDepartment string `json:"specificDepartment,omitempty"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	StartTime          string `json:"startTime,omitempty"`
	EndTime            string `json:"endTime,omitempty"`
	Status             string `json:"status,omitempty"`
	ImageURL           string `json:"imageUrl,omitempty"`
}

func main() {
	var (
		dumpPath   string
		apiBase    string
		token      string
		dataDir    string
		storageKey string
		timeout    time.Duration
	)

	flag.StringVar(&dumpPath, "dump", "", "Path to the exported JSON array (required)")
	flag.StringVar(&apiBase, "api-base", "", "API base URL incl. prefix, e.g. http://localhost:8080/api/v1; empty means write the blob file directly")
	flag.StringVar(&token, "token", "", "Bearer token for the API (required with -api-base)")
	flag.StringVar(&dataDir, "data-dir", "./data", "Data directory for direct blob writes")
	flag.StringVar(&storageKey, "storage-key", "event-tracker-events", "Storage key for direct blob writes")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	if dumpPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	events, err := loadDump(dumpPath)
	if err != nil {
		log.Fatalf("failed to load dump: %v", err)
	}
	log.Printf("loaded %d events from %s", len(events), dumpPath)

	if apiBase == "" {
		if err := writeBlob(dataDir, storageKey, events); err != nil {
			log.Fatalf("failed to write blob: %v", err)
		}
		log.Printf("wrote blob %s", filepath.Join(dataDir, storageKey+".json"))
		return
	}

	if token == "" {
		log.Fatal("-token is required with -api-base")
	}
	client := &http.Client{Timeout: timeout}
	imported := 0
	for _, ev := range events {
		if err := postEvent(client, apiBase, token, ev); err != nil {
			log.Printf("skipping %q: %v", ev.Title, err)
			continue
		}
		imported++
	}
	log.Printf("imported %d/%d events", imported, len(events))
}

func loadDump(path string) ([]event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var events []event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, ev := range events {
		if ev.Title == "" || ev.StartDate == "" || ev.EndDate == "" {
			return nil, fmt.Errorf("event %d missing title or dates", i)
		}
	}
	return events, nil
}

func writeBlob(dataDir, storageKey string, events []event) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dataDir, storageKey+".json"), data, 0o644)
}

func postEvent(client *http.Client, apiBase, token string, ev event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, apiBase+"/events", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, payload)
	}
	return nil
}
