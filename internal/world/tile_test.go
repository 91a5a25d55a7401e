package world

import (
	"errors"
	"testing"

	"github.com/talgya/hexcity/internal/rules"
)

func mustSet(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected mutation failure: %v", err)
	}
}

func TestMountainOnCoastFailsUnchanged(t *testing.T) {
	tile := NewTile(HexCoord{})
	mustSet(t, tile.SetTerrain(rules.TerrainCoast))

	err := tile.SetModifier(rules.ModifierMountain)
	if err == nil {
		t.Fatal("expected mountain on coast to fail")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if tile.Terrain != rules.TerrainCoast || tile.Modifier != rules.ModifierFlat {
		t.Fatalf("failed mutation changed state: terrain=%v modifier=%v", tile.Terrain, tile.Modifier)
	}
}

func TestWaterTerrainUnderHillsFails(t *testing.T) {
	tile := NewTile(HexCoord{})
	mustSet(t, tile.SetModifier(rules.ModifierHills))

	if err := tile.SetTerrain(rules.TerrainOcean); err == nil {
		t.Fatal("expected ocean under hills to fail")
	}
	if tile.Terrain != rules.TerrainGrass {
		t.Fatalf("failed mutation changed terrain to %v", tile.Terrain)
	}
}

func TestFeatureAllowList(t *testing.T) {
	tile := NewTile(HexCoord{})

	// Oasis requires desert; grass tile rejects it.
	if err := tile.SetFeature(rules.FeatureOasis); err == nil {
		t.Fatal("expected oasis on grass to fail")
	}
	if tile.Feature != rules.FeatureNone {
		t.Fatalf("failed mutation set feature %v", tile.Feature)
	}

	mustSet(t, tile.SetTerrain(rules.TerrainDesert))
	mustSet(t, tile.SetFeature(rules.FeatureOasis))

	// Terrain change that strands the feature fails too.
	if err := tile.SetTerrain(rules.TerrainTundra); err == nil {
		t.Fatal("expected terrain change stranding oasis to fail")
	}
	if tile.Terrain != rules.TerrainDesert {
		t.Fatalf("failed mutation changed terrain to %v", tile.Terrain)
	}
}

func TestDistrictClearsFeatureAndImprovement(t *testing.T) {
	tile := NewTile(HexCoord{})
	mustSet(t, tile.SetFeature(rules.FeatureWoods))

	mustSet(t, tile.SetDistrict(rules.DistrictCampus))
	if tile.Feature != rules.FeatureNone {
		t.Fatalf("district left feature %v", tile.Feature)
	}

	tile2 := NewTile(HexCoord{})
	mustSet(t, tile2.SetImprovement(rules.ImprovementFarm))
	mustSet(t, tile2.SetDistrict(rules.DistrictHolySite))
	if tile2.Improvement != rules.ImprovementNone {
		t.Fatalf("district left improvement %v", tile2.Improvement)
	}
}

func TestWonderClearsImprovement(t *testing.T) {
	tile := NewTile(HexCoord{})
	mustSet(t, tile.SetImprovement(rules.ImprovementMine))
	mustSet(t, tile.SetWonder(rules.WonderPyramids))
	if tile.Improvement != rules.ImprovementNone {
		t.Fatalf("wonder left improvement %v", tile.Improvement)
	}
}

func TestImprovementBlockedByDistrictAndWonder(t *testing.T) {
	tile := NewTile(HexCoord{})
	mustSet(t, tile.SetDistrict(rules.DistrictCampus))
	if err := tile.SetImprovement(rules.ImprovementFarm); err == nil {
		t.Fatal("expected improvement on districted tile to fail")
	}

	tile2 := NewTile(HexCoord{})
	mustSet(t, tile2.SetWonder(rules.WonderPetra))
	if err := tile2.SetImprovement(rules.ImprovementFarm); err == nil {
		t.Fatal("expected improvement on wonder tile to fail")
	}
}

func TestDistrictPlacementRules(t *testing.T) {
	mountain := NewTile(HexCoord{})
	mustSet(t, mountain.SetModifier(rules.ModifierMountain))
	if err := mountain.SetDistrict(rules.DistrictCampus); err == nil {
		t.Fatal("expected district on mountain to fail")
	}

	water := NewTile(HexCoord{})
	mustSet(t, water.SetTerrain(rules.TerrainCoast))
	if err := water.SetDistrict(rules.DistrictCampus); err == nil {
		t.Fatal("expected campus on water to fail")
	}
	mustSet(t, water.SetDistrict(rules.DistrictHarbor))

	land := NewTile(HexCoord{})
	if err := land.SetDistrict(rules.DistrictHarbor); err == nil {
		t.Fatal("expected harbor on land to fail")
	}
}

func TestRiverEdgeRange(t *testing.T) {
	tile := NewTile(HexCoord{})
	for _, bad := range []int{-1, 6, 42} {
		if err := tile.AddRiverEdge(bad); err == nil {
			t.Fatalf("expected edge %d to be rejected", bad)
		}
	}
	if tile.RiverEdges != 0 {
		t.Fatalf("failed mutations changed river mask to %b", tile.RiverEdges)
	}

	mustSet(t, tile.AddRiverEdge(0))
	mustSet(t, tile.AddRiverEdge(5))
	if !tile.HasRiver() {
		t.Fatal("expected river after adding edges")
	}
	got := tile.RiverEdges.Edges()
	if len(got) != 2 || got[0] != 0 || got[1] != 5 {
		t.Fatalf("edges = %v, want [0 5]", got)
	}
}

func TestSetCityCenterForcesDistrict(t *testing.T) {
	tile := NewTile(HexCoord{})
	mustSet(t, tile.SetCityCenter(true))
	if tile.District != rules.DistrictCityCenter {
		t.Fatalf("city center flag left district %v", tile.District)
	}

	mountain := NewTile(HexCoord{})
	mustSet(t, mountain.SetModifier(rules.ModifierMountain))
	if err := mountain.SetCityCenter(true); err == nil {
		t.Fatal("expected city center on mountain to fail")
	}
	if mountain.IsCityCenter {
		t.Fatal("failed mutation set the city center flag")
	}
}

func TestBaseYields(t *testing.T) {
	tile := NewTile(HexCoord{})
	// Flat grass: terrain only.
	if got := tile.BaseYields(); got != (rules.Yields{Food: 2}) {
		t.Fatalf("grass yields = %+v", got)
	}

	mustSet(t, tile.SetModifier(rules.ModifierHills))
	if got := tile.BaseYields(); got != (rules.Yields{Food: 2, Production: 1}) {
		t.Fatalf("grass hills yields = %+v", got)
	}

	mustSet(t, tile.SetFeature(rules.FeatureWoods))
	mustSet(t, tile.SetResource(rules.ResourceWheat))
	want := rules.Yields{Food: 3, Production: 2} // grass + hill + woods + wheat
	if got := tile.BaseYields(); got != want {
		t.Fatalf("yields = %+v, want %+v", got, want)
	}
}

func TestPassability(t *testing.T) {
	tile := NewTile(HexCoord{})
	if !tile.IsPassable() {
		t.Fatal("flat grass should be passable")
	}
	mustSet(t, tile.SetModifier(rules.ModifierMountain))
	if tile.IsPassable() {
		t.Fatal("mountain should be impassable")
	}

	wonderTile := NewTile(HexCoord{})
	mustSet(t, wonderTile.SetNaturalWonder(rules.NaturalWonderEverest))
	if wonderTile.IsPassable() {
		t.Fatal("everest should be impassable")
	}
	mustSet(t, wonderTile.SetNaturalWonder(rules.NaturalWonderCraterLake))
	if !wonderTile.IsPassable() {
		t.Fatal("crater lake should be passable")
	}
}

func TestCloneIsDeep(t *testing.T) {
	tile := NewTile(HexCoord{})
	id := "city-1"
	tile.SetOwnerCity(&id)

	clone := tile.Clone()
	*clone.OwnerCityID = "city-2"
	if *tile.OwnerCityID != "city-1" {
		t.Fatal("clone shares owner pointer with original")
	}
}
