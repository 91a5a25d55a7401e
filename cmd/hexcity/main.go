// Command hexcity evaluates district adjacency on a hex settlement map:
// it loads or generates a map, founds a demo city, reports the best
// placements for each specialty district, and serves the HTTP API.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hexcity/internal/adjacency"
	"github.com/talgya/hexcity/internal/api"
	"github.com/talgya/hexcity/internal/config"
	"github.com/talgya/hexcity/internal/persistence"
	"github.com/talgya/hexcity/internal/render"
	"github.com/talgya/hexcity/internal/rules"
	"github.com/talgya/hexcity/internal/world"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("hexcity — settlement grid & adjacency planner")

	// ── Snapshot store ────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	store, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open snapshot store", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("snapshot store opened", "path", cfg.DBPath)

	// ── Map: load a named snapshot or generate from seed ──────────────
	var grid *world.Grid
	if cfg.Snapshot != "" {
		grid, err = store.Load(cfg.Snapshot)
		if errors.Is(err, persistence.ErrNoSnapshot) {
			slog.Error("snapshot not found", "name", cfg.Snapshot)
			os.Exit(1)
		}
		if err != nil {
			slog.Error("failed to load snapshot", "name", cfg.Snapshot, "error", err)
			os.Exit(1)
		}
		slog.Info("snapshot loaded", "name", cfg.Snapshot, "tiles", grid.TileCount())
	} else {
		genCfg := world.DefaultGenConfig()
		genCfg.Seed = cfg.Seed
		genCfg.Width = cfg.MapWidth
		genCfg.Height = cfg.MapHeight
		grid = world.Generate(genCfg)
		slog.Info("map generated",
			"seed", cfg.Seed,
			"width", grid.Width,
			"height", grid.Height,
			"tiles", humanize.Comma(int64(grid.TileCount())),
		)
	}

	// ── Demo city: reuse an existing center or found one ──────────────
	center := grid.CityCenter()
	if center == nil {
		coord := pickCitySite(grid)
		cityID, err := grid.FoundCity(coord)
		if err != nil {
			slog.Error("failed to found city", "coord", coord.Key(), "error", err)
			os.Exit(1)
		}
		center = grid.Get(coord)
		slog.Info("city founded", "coord", coord.Key(), "city_id", cityID)
	} else {
		slog.Info("city center present", "coord", center.Coord.Key())
	}

	reportPlacements(grid, center.Coord)

	if result, err := adjacency.CalculateCityAdjacency(grid, center.Coord); err == nil {
		slog.Info("city adjacency total",
			"districts", len(result.Districts),
			"food", result.Total.Food,
			"production", result.Total.Production,
			"gold", result.Total.Gold,
			"science", result.Total.Science,
			"culture", result.Total.Culture,
			"faith", result.Total.Faith,
		)
	}

	// ── Optional PNG render ───────────────────────────────────────────
	if cfg.RenderPNG != "" {
		if err := render.SavePNG(grid, cfg.RenderPNG, 14); err != nil {
			slog.Error("render failed", "path", cfg.RenderPNG, "error", err)
		} else {
			slog.Info("map rendered", "path", cfg.RenderPNG)
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.AdminKey == "" {
		slog.Warn("ADMIN_KEY not set — snapshot POST endpoints will be disabled")
	}
	server := api.NewServer(grid, store, cfg.HTTPAddr, cfg.AdminKey)
	server.Start()

	fmt.Printf("\n%s: %s tiles, city at %s.\n",
		grid.Name, humanize.Comma(int64(grid.TileCount())), center.Coord.Key())
	fmt.Printf("API: http://localhost%s/api/v1/map\n", cfg.HTTPAddr)
	fmt.Println("Serving... (Ctrl+C to stop)")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	if err := store.Save("autosave", server.Grid()); err != nil {
		slog.Error("autosave failed", "error", err)
	} else {
		slog.Info("autosave written")
	}
}

// pickCitySite chooses a city location: the passable land tile with the
// highest base yield sum, preferring river tiles on ties.
func pickCitySite(g *world.Grid) world.HexCoord {
	var best *world.Tile
	bestScore := -1
	for _, t := range g.Tiles() {
		if !t.IsLand() || !t.IsPassable() || t.HasDistrict() {
			continue
		}
		y := t.BaseYields()
		score := (y.Food + y.Production + y.Gold) * 2
		if t.HasRiver() {
			score++
		}
		if score > bestScore {
			bestScore = score
			best = t
		}
	}
	if best == nil {
		// Degenerate all-water map; fall back to the first tile.
		return g.Coords()[0]
	}
	return best.Coord
}

// reportPlacements logs the best placement for each specialty district.
func reportPlacements(g *world.Grid, center world.HexCoord) {
	specialties := []rules.District{
		rules.DistrictCampus,
		rules.DistrictHolySite,
		rules.DistrictTheaterSquare,
		rules.DistrictCommercialHub,
		rules.DistrictHarbor,
		rules.DistrictIndustrialZone,
	}
	for _, d := range specialties {
		placement, err := adjacency.FindBestDistrictPlacement(g, center, d)
		if errors.Is(err, adjacency.ErrNoPlacement) {
			slog.Info("no valid placement", "district", d.String())
			continue
		}
		if err != nil {
			slog.Error("placement search failed", "district", d.String(), "error", err)
			continue
		}
		primary := rules.Districts[d].PrimaryYield
		slog.Info("best placement",
			"district", d.String(),
			"coord", placement.Coord.Key(),
			primary.String(), placement.Result.Total.Get(primary),
		)
	}
}
