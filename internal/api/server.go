// Package api serves the grid and the adjacency engine over HTTP.
// GET endpoints are public (read-only evaluation).
// POST endpoints require a bearer token (snapshot control plane).
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/talgya/hexcity/internal/adjacency"
	"github.com/talgya/hexcity/internal/persistence"
	"github.com/talgya/hexcity/internal/rules"
	"github.com/talgya/hexcity/internal/world"
)

// Server serves grid state and adjacency results over HTTP.
type Server struct {
	Store    *persistence.Store
	Addr     string
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	// The grid is not safe for concurrent mutation; every handler takes
	// this lock (writers exclusively, readers shared).
	mu   sync.RWMutex
	grid *world.Grid
}

// NewServer creates a server around an initial grid.
func NewServer(g *world.Grid, store *persistence.Store, addr, adminKey string) *Server {
	return &Server{Store: store, Addr: addr, AdminKey: adminKey, grid: g}
}

// Grid returns the currently served grid.
func (s *Server) Grid() *world.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/map", s.handleMap)
	mux.HandleFunc("/api/v1/tile/", s.handleTile)
	mux.HandleFunc("/api/v1/adjacency/city", s.handleCityAdjacency)
	mux.HandleFunc("/api/v1/adjacency/district/", s.handleDistrictAdjacency)
	mux.HandleFunc("/api/v1/adjacency/potential", s.handlePotentialAdjacency)
	mux.HandleFunc("/api/v1/placement/best", s.handleBestPlacement)
	mux.HandleFunc("/api/v1/snapshots", s.handleSnapshots)

	mux.HandleFunc("/api/v1/snapshot/save", s.adminOnly(s.handleSnapshotSave))
	mux.HandleFunc("/api/v1/snapshot/load", s.adminOnly(s.handleSnapshotLoad))

	slog.Info("HTTP API starting", "addr", s.Addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(s.Addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins. Set
// CORS_ORIGINS to a comma-separated list; localhost dev servers are always
// allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	snap := s.grid.Snapshot()
	s.mu.RUnlock()
	writeJSON(w, snap)
}

func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	coord, ok := coordFromPath(w, r.URL.Path, "/api/v1/tile/")
	if !ok {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tile := s.grid.Get(coord)
	if tile == nil {
		http.Error(w, "tile not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]any{
		"coord":          tile.Coord,
		"terrain":        tile.Terrain.String(),
		"modifier":       tile.Modifier.String(),
		"feature":        tile.Feature.String(),
		"resource":       tile.Resource.String(),
		"category":       tile.ResourceCategory().String(),
		"district":       tile.District.String(),
		"wonder":         tile.Wonder.String(),
		"natural_wonder": tile.NaturalWonder.String(),
		"improvement":    tile.Improvement.String(),
		"river_edges":    tile.RiverEdges.Edges(),
		"owner_city_id":  tile.OwnerCityID,
		"is_city_center": tile.IsCityCenter,
		"is_water":       tile.IsWater(),
		"is_passable":    tile.IsPassable(),
		"base_yields":    tile.BaseYields(),
	})
}

func (s *Server) handleCityAdjacency(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coord, ok := coordFromQuery(r)
	if !ok {
		// Fall back to the first city center on the map.
		center := s.grid.CityCenter()
		if center == nil {
			http.Error(w, "no city center on map", http.StatusNotFound)
			return
		}
		coord = center.Coord
	}

	result, err := adjacency.CalculateCityAdjacency(s.grid, coord)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	districts := make([]map[string]any, 0, len(result.Districts))
	for _, dr := range result.Districts {
		districts = append(districts, districtResultJSON(dr))
	}
	writeJSON(w, map[string]any{
		"city_center": result.CityCenter,
		"districts":   districts,
		"total":       result.Total,
	})
}

func (s *Server) handleDistrictAdjacency(w http.ResponseWriter, r *http.Request) {
	coord, ok := coordFromPath(w, r.URL.Path, "/api/v1/adjacency/district/")
	if !ok {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result, err := adjacency.CalculateDistrictAdjacency(s.grid, coord)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, districtResultJSON(result))
}

func (s *Server) handlePotentialAdjacency(w http.ResponseWriter, r *http.Request) {
	coord, ok := coordFromQuery(r)
	if !ok {
		http.Error(w, "missing q/r query parameters", http.StatusBadRequest)
		return
	}
	district, err := rules.ParseDistrict(r.URL.Query().Get("district"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result, err := adjacency.CalculatePotentialAdjacency(s.grid, coord, district)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, districtResultJSON(result))
}

func (s *Server) handleBestPlacement(w http.ResponseWriter, r *http.Request) {
	coord, ok := coordFromQuery(r)
	if !ok {
		http.Error(w, "missing q/r query parameters", http.StatusBadRequest)
		return
	}
	district, err := rules.ParseDistrict(r.URL.Query().Get("district"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	placement, err := adjacency.FindBestDistrictPlacement(s.grid, coord, district)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"coord":  placement.Coord,
		"result": districtResultJSON(placement.Result),
	})
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "snapshot store not available", http.StatusServiceUnavailable)
		return
	}
	infos, err := s.Store.List()
	if err != nil {
		slog.Error("snapshot list failed", "error", err)
		http.Error(w, "snapshot list failed", http.StatusInternalServerError)
		return
	}
	if infos == nil {
		infos = []persistence.SnapshotInfo{}
	}
	writeJSON(w, infos)
}

func (s *Server) handleSnapshotSave(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "snapshot store not available", http.StatusServiceUnavailable)
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid json (expected {\"name\": ...})", http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	err := s.Store.Save(req.Name, s.grid)
	s.mu.RUnlock()
	if err != nil {
		slog.Error("snapshot save failed", "name", req.Name, "error", err)
		http.Error(w, "snapshot save failed", http.StatusInternalServerError)
		return
	}
	slog.Info("snapshot saved", "name", req.Name)
	writeJSON(w, map[string]string{"saved": req.Name})
}

func (s *Server) handleSnapshotLoad(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "snapshot store not available", http.StatusServiceUnavailable)
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid json (expected {\"name\": ...})", http.StatusBadRequest)
		return
	}

	g, err := s.Store.Load(req.Name)
	switch {
	case errors.Is(err, persistence.ErrNoSnapshot):
		http.Error(w, "snapshot not found", http.StatusNotFound)
		return
	case errors.Is(err, world.ErrMalformedSnapshot):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		slog.Error("snapshot load failed", "name", req.Name, "error", err)
		http.Error(w, "snapshot load failed", http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.grid = g
	s.mu.Unlock()
	slog.Info("snapshot loaded", "name", req.Name, "tiles", g.TileCount())
	writeJSON(w, map[string]any{"loaded": req.Name, "tiles": g.TileCount()})
}

// districtResultJSON shapes a DistrictResult for the wire.
func districtResultJSON(dr adjacency.DistrictResult) map[string]any {
	bonuses := make([]map[string]any, 0, len(dr.Bonuses))
	for _, b := range dr.Bonuses {
		bonuses = append(bonuses, map[string]any{
			"district": b.District.String(),
			"yield":    b.Yield.String(),
			"amount":   b.Amount,
			"source":   b.Source,
		})
	}
	return map[string]any{
		"coord":    dr.Coord,
		"district": dr.District.String(),
		"bonuses":  bonuses,
		"total":    dr.Total,
	}
}

// writeEngineError maps engine errors to HTTP statuses: expected-absent
// outcomes become 404, validation failures 400.
func writeEngineError(w http.ResponseWriter, err error) {
	var vErr *world.ValidationError
	switch {
	case errors.Is(err, world.ErrNotFound), errors.Is(err, adjacency.ErrNoPlacement):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &vErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// coordFromPath parses "/prefix/:q/:r" paths.
func coordFromPath(w http.ResponseWriter, path, prefix string) (world.HexCoord, bool) {
	parts := strings.Split(strings.TrimPrefix(path, prefix), "/")
	if len(parts) < 2 {
		http.Error(w, fmt.Sprintf("usage: %s:q/:r", prefix), http.StatusBadRequest)
		return world.HexCoord{}, false
	}
	q, err1 := strconv.Atoi(parts[0])
	r, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		http.Error(w, "invalid coordinates", http.StatusBadRequest)
		return world.HexCoord{}, false
	}
	return world.HexCoord{Q: q, R: r}, true
}

// coordFromQuery parses ?q=&r= query parameters.
func coordFromQuery(r *http.Request) (world.HexCoord, bool) {
	qs := r.URL.Query().Get("q")
	rs := r.URL.Query().Get("r")
	if qs == "" || rs == "" {
		return world.HexCoord{}, false
	}
	q, err1 := strconv.Atoi(qs)
	rr, err2 := strconv.Atoi(rs)
	if err1 != nil || err2 != nil {
		return world.HexCoord{}, false
	}
	return world.HexCoord{Q: q, R: rr}, true
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
