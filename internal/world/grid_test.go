package world

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/talgya/hexcity/internal/rules"
)

func TestGridRegionFormula(t *testing.T) {
	g := NewGrid("test", 4, 5)

	if g.TileCount() != 4*5 {
		t.Fatalf("tile count = %d, want %d", g.TileCount(), 4*5)
	}
	for r := 0; r < 5; r++ {
		offset := r / 2
		for q := -offset; q < 4-offset; q++ {
			if g.Get(HexCoord{Q: q, R: r}) == nil {
				t.Fatalf("missing tile at (%d, %d)", q, r)
			}
		}
		// Just outside the row's column range on both sides.
		if g.Get(HexCoord{Q: -offset - 1, R: r}) != nil {
			t.Fatalf("phantom tile west of row %d", r)
		}
		if g.Get(HexCoord{Q: 4 - offset, R: r}) != nil {
			t.Fatalf("phantom tile east of row %d", r)
		}
	}
	if g.Get(HexCoord{Q: 0, R: -1}) != nil || g.Get(HexCoord{Q: 0, R: 5}) != nil {
		t.Fatal("tiles exist outside the row range")
	}
}

func TestGridNeighborsAtEdge(t *testing.T) {
	g := NewGrid("test", 4, 4)

	// The (0,0) corner only has (1,0) and (0,1) inside the region.
	corner := g.Neighbors(HexCoord{Q: 0, R: 0})
	if len(corner) != 2 {
		t.Fatalf("corner neighbors = %d, want 2", len(corner))
	}

	// An interior tile sees all 6.
	interior := g.Neighbors(HexCoord{Q: 1, R: 1})
	if len(interior) != 6 {
		t.Fatalf("interior neighbors = %d, want 6", len(interior))
	}
}

func TestCityCenterFirstInIterationOrder(t *testing.T) {
	g := NewGrid("test", 6, 6)
	if g.CityCenter() != nil {
		t.Fatal("fresh grid should have no city center")
	}

	mustSet(t, g.Get(HexCoord{Q: 3, R: 4}).SetCityCenter(true))
	mustSet(t, g.Get(HexCoord{Q: 2, R: 1}).SetCityCenter(true))

	// Row-major order: (2,1) comes before (3,4).
	center := g.CityCenter()
	if center == nil || center.Coord != (HexCoord{Q: 2, R: 1}) {
		t.Fatalf("city center = %v, want (2,1)", center)
	}
}

func TestFoundCity(t *testing.T) {
	g := NewGrid("test", 8, 8)
	coord := HexCoord{Q: 3, R: 3}

	cityID, err := g.FoundCity(coord)
	if err != nil {
		t.Fatalf("FoundCity: %v", err)
	}
	if cityID == "" {
		t.Fatal("expected a city id")
	}

	center := g.Get(coord)
	if !center.IsCityCenter || center.District != rules.DistrictCityCenter {
		t.Fatal("center tile not marked")
	}
	for _, tile := range g.TilesInRange(coord, WorkableRange) {
		if tile.OwnerCityID == nil || *tile.OwnerCityID != cityID {
			t.Fatalf("tile %v not owned by new city", tile.Coord)
		}
	}

	// Missing coordinate reports not-found.
	if _, err := g.FoundCity(HexCoord{Q: 100, R: 100}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func buildSampleGrid(t *testing.T) *Grid {
	t.Helper()
	g := NewGrid("sample", 6, 6)

	tile := g.Get(HexCoord{Q: 1, R: 1})
	mustSet(t, tile.SetTerrain(rules.TerrainPlains))
	mustSet(t, tile.SetModifier(rules.ModifierHills))
	mustSet(t, tile.SetResource(rules.ResourceIron))
	mustSet(t, tile.AddRiverEdge(2))
	mustSet(t, tile.AddRiverEdge(4))

	coast := g.Get(HexCoord{Q: 4, R: 0})
	mustSet(t, coast.SetTerrain(rules.TerrainCoast))
	mustSet(t, coast.SetFeature(rules.FeatureReef))

	mustSet(t, g.Get(HexCoord{Q: 2, R: 2}).SetCityCenter(true))
	mustSet(t, g.Get(HexCoord{Q: 3, R: 2}).SetDistrict(rules.DistrictCampus))
	mustSet(t, g.Get(HexCoord{Q: 0, R: 3}).SetNaturalWonder(rules.NaturalWonderPantanal))
	mustSet(t, g.Get(HexCoord{Q: 1, R: 3}).SetWonder(rules.WonderOracle))
	mustSet(t, g.Get(HexCoord{Q: 0, R: 4}).SetImprovement(rules.ImprovementQuarry))

	id := "city-a"
	g.Get(HexCoord{Q: 2, R: 2}).SetOwnerCity(&id)
	return g
}

func gridsEqual(a, b *Grid) bool {
	if a.Name != b.Name || a.Width != b.Width || a.Height != b.Height || a.TileCount() != b.TileCount() {
		return false
	}
	for _, coord := range a.Coords() {
		ta, tb := a.Get(coord), b.Get(coord)
		if tb == nil {
			return false
		}
		if ta.Terrain != tb.Terrain || ta.Modifier != tb.Modifier ||
			ta.Feature != tb.Feature || ta.Resource != tb.Resource ||
			ta.District != tb.District || ta.Wonder != tb.Wonder ||
			ta.NaturalWonder != tb.NaturalWonder || ta.Improvement != tb.Improvement ||
			ta.RiverEdges != tb.RiverEdges || ta.IsCityCenter != tb.IsCityCenter {
			return false
		}
		switch {
		case ta.OwnerCityID == nil && tb.OwnerCityID == nil:
		case ta.OwnerCityID != nil && tb.OwnerCityID != nil && *ta.OwnerCityID == *tb.OwnerCityID:
		default:
			return false
		}
	}
	return true
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := buildSampleGrid(t)

	restored, err := FromSnapshot(g.Snapshot())
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	if !gridsEqual(g, restored) {
		t.Fatal("round trip lost state")
	}
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	g := buildSampleGrid(t)

	var buf strings.Builder
	if err := WriteSnapshot(&buf, g); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	restored, err := ReadSnapshot(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if !gridsEqual(g, restored) {
		t.Fatal("JSON round trip lost state")
	}
}

func TestSnapshotEnumEncoding(t *testing.T) {
	g := NewGrid("enc", 2, 1)
	tile := g.Get(HexCoord{Q: 0, R: 0})
	mustSet(t, tile.SetFeature(rules.FeatureGeothermalFissure))

	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"geothermal_fissure"`, `"grass"`, `"flat"`, `"version":1`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("snapshot JSON missing %s", want)
		}
	}
}

func TestMalformedSnapshots(t *testing.T) {
	base := buildSampleGrid(t).Snapshot()

	cases := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"unknown version", func(s *Snapshot) { s.Version = 99 }},
		{"bad dimensions", func(s *Snapshot) { s.Width = 0 }},
		{"unknown terrain", func(s *Snapshot) { s.Tiles[0].Terrain = "lava" }},
		{"missing enum field", func(s *Snapshot) { s.Tiles[0].Modifier = "" }},
		{"unknown district", func(s *Snapshot) { s.Tiles[0].District = "spaceport" }},
		{"coord outside region", func(s *Snapshot) { s.Tiles[0].Coord = HexCoord{Q: 50, R: 50} }},
		{"duplicate coord", func(s *Snapshot) { s.Tiles[1].Coord = s.Tiles[0].Coord }},
		{"river edge out of range", func(s *Snapshot) { s.Tiles[0].RiverEdges = []int{6} }},
		{"duplicate river edge", func(s *Snapshot) { s.Tiles[0].RiverEdges = []int{2, 2} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := cloneSnapshot(t, base)
			tc.mutate(snap)
			if _, err := FromSnapshot(snap); !errors.Is(err, ErrMalformedSnapshot) {
				t.Fatalf("expected ErrMalformedSnapshot, got %v", err)
			}
		})
	}
}

func cloneSnapshot(t *testing.T, s *Snapshot) *Snapshot {
	t.Helper()
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Snapshot
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return &out
}
