// seed_monitors.go: standalone script to parse a fields CSV and seed drought
// monitors via the SoilHub API.
//
// CSV columns: field_id,region,latitude,longitude,crop
//
// Usage:
//
//	go run scripts/seed_monitors.go -fields fields.csv -api http://localhost:8700 -farm farm-1
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type monitorRequest struct {
	FieldID   string  `json:"field_id"`
	Region    string  `json:"region"`
	Crop      string  `json:"crop,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func main() {
	fieldsPath := flag.String("fields", "fields.csv", "path to fields CSV")
	apiURL := flag.String("api", "http://localhost:8700", "SoilHub API base URL")
	farmID := flag.String("farm", "system", "X-Farm-ID header value")
	adminToken := flag.String("token", "", "admin bearer token (optional)")
	dryRun := flag.Bool("dry-run", false, "print monitors without posting")
	flag.Parse()

	f, err := os.Open(*fieldsPath)
	if err != nil {
		log.Fatalf("open fields CSV: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		log.Fatalf("parse CSV: %v", err)
	}

	var monitors []monitorRequest
	for i, row := range rows {
		if i == 0 && strings.EqualFold(row[0], "field_id") {
			continue // header
		}
		if len(row) < 4 {
			log.Printf("row %d: expected at least 4 columns, got %d, skipping", i+1, len(row))
			continue
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			log.Printf("row %d: bad latitude %q, skipping", i+1, row[2])
			continue
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			log.Printf("row %d: bad longitude %q, skipping", i+1, row[3])
			continue
		}
		m := monitorRequest{
			FieldID:   strings.TrimSpace(row[0]),
			Region:    strings.TrimSpace(row[1]),
			Latitude:  lat,
			Longitude: lon,
		}
		if len(row) > 4 {
			m.Crop = strings.TrimSpace(row[4])
		}
		monitors = append(monitors, m)
	}

	log.Printf("parsed %d monitors from %s", len(monitors), *fieldsPath)

	if *dryRun {
		for _, m := range monitors {
			out, _ := json.MarshalIndent(m, "", "  ")
			fmt.Println(string(out))
		}
		return
	}

	created := 0
	for _, m := range monitors {
		body, _ := json.Marshal(m)
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/drought/monitors", bytes.NewReader(body))
		if err != nil {
			log.Printf("build request for %s: %v", m.FieldID, err)
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Farm-ID", *farmID)
		if *adminToken != "" {
			req.Header.Set("Authorization", "Bearer "+*adminToken)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			log.Printf("post monitor for %s: %v", m.FieldID, err)
			continue
		}
		if resp.StatusCode != http.StatusCreated {
			log.Printf("post monitor for %s: status %d", m.FieldID, resp.StatusCode)
		} else {
			created++
		}
		resp.Body.Close()
	}

	log.Printf("created %d/%d monitors", created, len(monitors))
}
