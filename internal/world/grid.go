package world

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/hexcity/internal/rules"
)

// ErrNotFound is returned for lookups on coordinates with no tile.
var ErrNotFound = errors.New("tile not found")

// WorkableRange is the radius around a city center considered for adjacency
// aggregation, placement search, and city ownership.
const WorkableRange = 3

// Grid is the addressable tile collection. The covered region is an offset
// parallelogram: for each row r in [0, height), columns span
// [-floor(r/2), width-floor(r/2)). Coordinates outside the region are
// absent, never defaulted.
type Grid struct {
	Name   string
	Width  int
	Height int

	tiles map[HexCoord]*Tile
	order []HexCoord // canonical row-major iteration order
}

// NewGrid creates a grid with a default tile at every coordinate of the
// parallelogram region.
func NewGrid(name string, width, height int) *Grid {
	g := &Grid{
		Name:   name,
		Width:  width,
		Height: height,
		tiles:  make(map[HexCoord]*Tile, width*height),
		order:  make([]HexCoord, 0, width*height),
	}
	for r := 0; r < height; r++ {
		offset := r / 2
		for q := -offset; q < width-offset; q++ {
			coord := HexCoord{Q: q, R: r}
			g.tiles[coord] = NewTile(coord)
			g.order = append(g.order, coord)
		}
	}
	return g
}

// Get returns the tile at the given coordinate, or nil if absent.
func (g *Grid) Get(coord HexCoord) *Tile {
	return g.tiles[coord]
}

// Contains reports whether the coordinate has a tile.
func (g *Grid) Contains(coord HexCoord) bool {
	_, ok := g.tiles[coord]
	return ok
}

// TileCount returns the number of tiles in the grid.
func (g *Grid) TileCount() int {
	return len(g.tiles)
}

// Coords returns the coordinates in canonical row-major order. The returned
// slice is shared; callers must not modify it.
func (g *Grid) Coords() []HexCoord {
	return g.order
}

// Tiles returns all tiles in canonical row-major order.
func (g *Grid) Tiles() []*Tile {
	result := make([]*Tile, 0, len(g.order))
	for _, coord := range g.order {
		result = append(result, g.tiles[coord])
	}
	return result
}

// Neighbors returns the existing tiles adjacent to coord, in direction
// order. Missing neighbors at the map edge are skipped, so the result may
// hold fewer than six tiles.
func (g *Grid) Neighbors(coord HexCoord) []*Tile {
	result := make([]*Tile, 0, 6)
	for _, nc := range coord.Neighbors() {
		if t := g.tiles[nc]; t != nil {
			result = append(result, t)
		}
	}
	return result
}

// TilesInRange returns the existing tiles within the given distance of
// center, including center's own tile if present.
func (g *Grid) TilesInRange(center HexCoord, radius int) []*Tile {
	coords := HexesInRange(center, radius)
	result := make([]*Tile, 0, len(coords))
	for _, c := range coords {
		if t := g.tiles[c]; t != nil {
			result = append(result, t)
		}
	}
	return result
}

// FindDistrict returns every tile holding the given district, in canonical
// order.
func (g *Grid) FindDistrict(d rules.District) []*Tile {
	var result []*Tile
	for _, coord := range g.order {
		if t := g.tiles[coord]; t.District == d {
			result = append(result, t)
		}
	}
	return result
}

// CityCenter returns the first tile marked as a city center in canonical
// order, or nil if none exists. Multiple marked tiles are a pre-existing
// data concern; the grid does not dedupe them.
func (g *Grid) CityCenter() *Tile {
	for _, coord := range g.order {
		if t := g.tiles[coord]; t.IsCityCenter {
			return t
		}
	}
	return nil
}

// FoundCity marks the tile at coord as a city center and stamps every
// unowned tile in workable range with a fresh city id. Returns the new id.
func (g *Grid) FoundCity(coord HexCoord) (string, error) {
	center := g.Get(coord)
	if center == nil {
		return "", fmt.Errorf("found city at %s: %w", coord.Key(), ErrNotFound)
	}
	if err := center.SetCityCenter(true); err != nil {
		return "", err
	}
	cityID := uuid.NewString()
	for _, t := range g.TilesInRange(coord, WorkableRange) {
		if t.OwnerCityID == nil {
			t.SetOwnerCity(&cityID)
		}
	}
	return cityID, nil
}
