package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"itinerary_id", "itinerary_name", "occasion", "duration", "budget", "created_at",
	"position", "start_time", "experience_id", "experience_name", "neighborhood",
	"duration_minutes", "price_level",
}

// exportRow is the JSON shape of one export row. Item fields are omitted
// for an itinerary with no items.
type exportRow struct {
	ItineraryID     string    `json:"itinerary_id"`
	ItineraryName   string    `json:"itinerary_name"`
	Occasion        string    `json:"occasion"`
	Duration        string    `json:"duration"`
	Budget          string    `json:"budget,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	Position        *int      `json:"position,omitempty"`
	StartTime       string    `json:"start_time,omitempty"`
	ExperienceID    string    `json:"experience_id,omitempty"`
	ExperienceName  string    `json:"experience_name,omitempty"`
	Neighborhood    string    `json:"neighborhood,omitempty"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	PriceLevel      int       `json:"price_level,omitempty"`
}

// GetExport implements GET /export.
// It returns a flat table with one row per itinerary item.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := queryParam(r, "format", &format); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	rows := s.export.Export(r.Context())

	switch deref(format) {
	case "", "json":
		writeJSON(w, http.StatusOK, buildJSONResponse(rows))
	case "csv":
		body := buildCSVResponse(rows)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="sf-experiences.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write(body.Bytes())
	default:
		writeJSON(w, http.StatusBadRequest, requestBody(fmt.Sprintf("unsupported format %q: use json or csv", *format)))
	}
}

// buildJSONResponse converts domain rows to the JSON response.
func buildJSONResponse(rows []domain.ExportRow) []exportRow {
	out := make([]exportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, exportRow(r))
	}
	return out
}

// buildCSVResponse encodes domain rows as CSV.
func buildCSVResponse(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write(domainRowToCSVRecord(r))
	}
	w.Flush()
	return &buf
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Item fields of an itinerary without items are empty strings.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	record := []string{
		r.ItineraryID,
		r.ItineraryName,
		r.Occasion,
		r.Duration,
		r.Budget,
		r.CreatedAt.UTC().Format(time.RFC3339),
		"", "", "", "", "", "", "",
	}
	if r.Position != nil {
		copy(record[6:], []string{
			strconv.Itoa(*r.Position),
			r.StartTime,
			r.ExperienceID,
			r.ExperienceName,
			r.Neighborhood,
			strconv.Itoa(r.DurationMinutes),
			strconv.Itoa(r.PriceLevel),
		})
	}
	return record
}
