package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mattedesign/traction-pay-pilot-sub003/internal/load"
)

// GET /api/loads
func (s *Server) handleListLoads(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"loads": s.repo.List()})
}

// GET /api/loads/search?q=
func (s *Server) handleSearchLoads(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		s.writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	results := s.repo.Search(q)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"results": results})
}

// GET /api/loads/{id}
func (s *Server) handleGetLoad(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l, ok := s.repo.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "load not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"load": l})
}

// GET /api/loads/{id}/factoring
func (s *Server) handleFactoring(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l, ok := s.repo.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "load not found")
		return
	}
	breakdown, err := load.FactoringCost(*l)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "load amount is not parseable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"factoring": breakdown})
}

// POST /api/loads/{id}/routes/compare
func (s *Server) handleCompareRoutes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.repo.Get(id); !ok {
		s.writeError(w, http.StatusNotFound, "load not found")
		return
	}
	var body struct {
		Routes    []load.RouteOption `json:"routes"`
		MPG       float64            `json:"mpg"`
		FuelPrice float64            `json:"fuelPrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Routes) == 0 {
		s.writeError(w, http.StatusBadRequest, "at least one route option is required")
		return
	}
	if body.FuelPrice <= 0 {
		body.FuelPrice = 3.80
	}
	costs := load.CompareRoutes(body.Routes, body.MPG, body.FuelPrice)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"routes": costs})
}

// GET /api/loads/{id}/telemetry
func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l, ok := s.repo.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "load not found")
		return
	}
	now := s.now()
	t := mockTelemetry(*l, now)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"telemetry": t,
		"summary":   load.FormatTelemetry(t, now),
	})
}

// mockTelemetry synthesizes a plausible ELD snapshot for the pilot, which
// has no live ELD feed. In-transit loads read as moving, the rest as parked.
func mockTelemetry(l load.Load, now time.Time) load.Telemetry {
	t := load.Telemetry{
		LoadID:      l.ID,
		Location:    l.Origin,
		Odometer:    412804.6,
		EngineHours: 9318.2,
		LastPing:    now.Add(-4 * time.Minute),
	}
	if l.Status == load.StatusInTransit {
		t.SpeedMPH = 62
		t.DriveMin = 332
		t.Location = "I-20 E, Bossier City, LA"
	}
	if l.Status == load.StatusDelivered {
		t.Location = l.Destination
	}
	return t
}
