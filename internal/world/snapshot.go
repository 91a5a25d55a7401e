package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/talgya/hexcity/internal/rules"
)

// SnapshotVersion is the only snapshot format version this build reads and
// writes.
const SnapshotVersion = 1

// ErrMalformedSnapshot wraps every snapshot decode failure. A failed load
// never yields a partially populated grid.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Snapshot is the persisted-state form of a grid. Enum fields serialize as
// lowercase snake_case identifiers; tile order follows the grid's canonical
// iteration order for diff-friendliness.
type Snapshot struct {
	Version int            `json:"version"`
	Name    string         `json:"name"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Tiles   []TileSnapshot `json:"tiles"`
}

// TileSnapshot is one tile's serialized state.
type TileSnapshot struct {
	Coord         HexCoord `json:"coord"`
	Terrain       string   `json:"terrain"`
	Modifier      string   `json:"modifier"`
	Feature       string   `json:"feature"`
	Resource      string   `json:"resource"`
	District      string   `json:"district"`
	Wonder        string   `json:"wonder"`
	NaturalWonder string   `json:"naturalWonder"`
	Improvement   string   `json:"improvement"`
	RiverEdges    []int    `json:"riverEdges"`
	OwnerCityID   *string  `json:"ownerCityId"`
	IsCityCenter  bool     `json:"isCityCenter"`
}

// Snapshot produces the serializable form of the grid.
func (g *Grid) Snapshot() *Snapshot {
	snap := &Snapshot{
		Version: SnapshotVersion,
		Name:    g.Name,
		Width:   g.Width,
		Height:  g.Height,
		Tiles:   make([]TileSnapshot, 0, len(g.order)),
	}
	for _, coord := range g.order {
		t := g.tiles[coord]
		ts := TileSnapshot{
			Coord:         t.Coord,
			Terrain:       t.Terrain.String(),
			Modifier:      t.Modifier.String(),
			Feature:       t.Feature.String(),
			Resource:      t.Resource.String(),
			District:      t.District.String(),
			Wonder:        t.Wonder.String(),
			NaturalWonder: t.NaturalWonder.String(),
			Improvement:   t.Improvement.String(),
			RiverEdges:    t.RiverEdges.Edges(),
			IsCityCenter:  t.IsCityCenter,
		}
		if t.OwnerCityID != nil {
			id := *t.OwnerCityID
			ts.OwnerCityID = &id
		}
		snap.Tiles = append(snap.Tiles, ts)
	}
	return snap
}

// FromSnapshot rebuilds a grid from its serialized form. Any structural
// problem (unsupported version, bad dimensions, unknown enum value, coord
// outside the grid region, duplicate coord or river edge) fails the whole
// load.
func FromSnapshot(snap *Snapshot) (*Grid, error) {
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedSnapshot, snap.Version)
	}
	if snap.Width <= 0 || snap.Height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrMalformedSnapshot, snap.Width, snap.Height)
	}

	g := NewGrid(snap.Name, snap.Width, snap.Height)
	seen := make(map[HexCoord]bool, len(snap.Tiles))

	for i, ts := range snap.Tiles {
		tile := g.Get(ts.Coord)
		if tile == nil {
			return nil, fmt.Errorf("%w: tile %d coord %s outside grid region",
				ErrMalformedSnapshot, i, ts.Coord.Key())
		}
		if seen[ts.Coord] {
			return nil, fmt.Errorf("%w: duplicate coord %s", ErrMalformedSnapshot, ts.Coord.Key())
		}
		seen[ts.Coord] = true

		if err := applyTileSnapshot(tile, ts); err != nil {
			return nil, fmt.Errorf("%w: tile %s: %v", ErrMalformedSnapshot, ts.Coord.Key(), err)
		}
	}
	return g, nil
}

func applyTileSnapshot(tile *Tile, ts TileSnapshot) error {
	terrain, err := rules.ParseTerrain(ts.Terrain)
	if err != nil {
		return err
	}
	modifier, err := rules.ParseModifier(ts.Modifier)
	if err != nil {
		return err
	}
	feature, err := rules.ParseFeature(ts.Feature)
	if err != nil {
		return err
	}
	resource, err := rules.ParseResource(ts.Resource)
	if err != nil {
		return err
	}
	district, err := rules.ParseDistrict(ts.District)
	if err != nil {
		return err
	}
	wonder, err := rules.ParseWonder(ts.Wonder)
	if err != nil {
		return err
	}
	natural, err := rules.ParseNaturalWonder(ts.NaturalWonder)
	if err != nil {
		return err
	}
	improvement, err := rules.ParseImprovement(ts.Improvement)
	if err != nil {
		return err
	}

	var mask RiverMask
	for _, e := range ts.RiverEdges {
		if e < 0 || e >= 6 {
			return fmt.Errorf("river edge %d out of range [0,6)", e)
		}
		if mask.Has(e) {
			return fmt.Errorf("duplicate river edge %d", e)
		}
		mask |= 1 << uint(e)
	}

	// Field values are restored verbatim; snapshots are trusted to hold a
	// state that was valid when written.
	tile.Terrain = terrain
	tile.Modifier = modifier
	tile.Feature = feature
	tile.Resource = resource
	tile.District = district
	tile.Wonder = wonder
	tile.NaturalWonder = natural
	tile.Improvement = improvement
	tile.RiverEdges = mask
	tile.IsCityCenter = ts.IsCityCenter
	if ts.OwnerCityID != nil {
		id := *ts.OwnerCityID
		tile.OwnerCityID = &id
	}
	return nil
}

// WriteSnapshot encodes the grid's snapshot as indented JSON.
func WriteSnapshot(w io.Writer, g *Grid) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g.Snapshot()); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes JSON into a grid, applying the same validation as
// FromSnapshot.
func ReadSnapshot(r io.Reader) (*Grid, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return FromSnapshot(&snap)
}
