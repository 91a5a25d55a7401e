package rules

import "testing"

func TestEnumNameRoundTrips(t *testing.T) {
	for v := TerrainGrass; v <= TerrainOcean; v++ {
		got, err := ParseTerrain(v.String())
		if err != nil || got != v {
			t.Fatalf("terrain %d: %q -> (%v, %v)", v, v.String(), got, err)
		}
	}
	for v := ModifierFlat; v <= ModifierMountain; v++ {
		got, err := ParseModifier(v.String())
		if err != nil || got != v {
			t.Fatalf("modifier %d: %q -> (%v, %v)", v, v.String(), got, err)
		}
	}
	for v := FeatureNone; v <= FeatureGeothermalFissure; v++ {
		got, err := ParseFeature(v.String())
		if err != nil || got != v {
			t.Fatalf("feature %d: %q -> (%v, %v)", v, v.String(), got, err)
		}
	}
	for v := ResourceNone; v <= ResourceOil; v++ {
		got, err := ParseResource(v.String())
		if err != nil || got != v {
			t.Fatalf("resource %d: %q -> (%v, %v)", v, v.String(), got, err)
		}
	}
	for v := DistrictNone; v <= DistrictWaterPark; v++ {
		got, err := ParseDistrict(v.String())
		if err != nil || got != v {
			t.Fatalf("district %d: %q -> (%v, %v)", v, v.String(), got, err)
		}
	}
	for v := WonderNone; v <= WonderRuhrValley; v++ {
		got, err := ParseWonder(v.String())
		if err != nil || got != v {
			t.Fatalf("wonder %d: %q -> (%v, %v)", v, v.String(), got, err)
		}
	}
	for v := NaturalWonderNone; v <= NaturalWonderTorresDelPaine; v++ {
		got, err := ParseNaturalWonder(v.String())
		if err != nil || got != v {
			t.Fatalf("natural wonder %d: %q -> (%v, %v)", v, v.String(), got, err)
		}
	}
	for v := ImprovementNone; v <= ImprovementLumbermill; v++ {
		got, err := ParseImprovement(v.String())
		if err != nil || got != v {
			t.Fatalf("improvement %d: %q -> (%v, %v)", v, v.String(), got, err)
		}
	}
}

func TestParseRejectsUnknownNames(t *testing.T) {
	if _, err := ParseTerrain("lava"); err == nil {
		t.Fatal("expected unknown terrain to fail")
	}
	if _, err := ParseDistrict("Campus"); err == nil {
		t.Fatal("expected case-sensitive parse to fail")
	}
	if _, err := ParseFeature(""); err == nil {
		t.Fatal("expected empty feature name to fail")
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		DisplayName(DistrictHolySite):         "Holy Site",
		DisplayName(FeatureGeothermalFissure): "Geothermal Fissure",
		DisplayName(TerrainGrass):             "Grass",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("DisplayName = %q, want %q", got, want)
		}
	}
}

func TestSpecialtyDistrictPrimaryYields(t *testing.T) {
	want := map[District]YieldKind{
		DistrictCampus:         YieldScience,
		DistrictHolySite:       YieldFaith,
		DistrictTheaterSquare:  YieldCulture,
		DistrictCommercialHub:  YieldGold,
		DistrictHarbor:         YieldGold,
		DistrictIndustrialZone: YieldProduction,
	}
	for d, yield := range want {
		info := Districts[d]
		if !info.Specialty {
			t.Fatalf("%s should be a specialty district", d)
		}
		if info.PrimaryYield != yield {
			t.Fatalf("%s primary yield = %v, want %v", d, info.PrimaryYield, yield)
		}
	}
	for _, d := range AllDistricts {
		if _, isSpecialty := want[d]; isSpecialty != IsSpecialty(d) {
			t.Fatalf("IsSpecialty(%s) = %v", d, IsSpecialty(d))
		}
	}
}

func TestWaterDistricts(t *testing.T) {
	for _, d := range AllDistricts {
		wantWater := d == DistrictHarbor || d == DistrictWaterPark
		if Districts[d].RequiresWater != wantWater {
			t.Fatalf("%s RequiresWater = %v", d, Districts[d].RequiresWater)
		}
	}
}

func TestFeatureTerrainAllowList(t *testing.T) {
	if !FeatureAllowedOn(FeatureNone, TerrainOcean) {
		t.Fatal("clearing a feature must always be allowed")
	}
	if FeatureAllowedOn(FeatureOasis, TerrainGrass) {
		t.Fatal("oasis must require desert")
	}
	if !FeatureAllowedOn(FeatureReef, TerrainCoast) {
		t.Fatal("reef belongs on coast")
	}
	if FeatureAllowedOn(FeatureReef, TerrainGrass) {
		t.Fatal("reef must not occupy land")
	}

	// Any feature carrying a yield must have at least one legal terrain.
	for f := range FeatureYields {
		if len(FeatureTerrains[f]) == 0 {
			t.Fatalf("feature %s has a yield but no legal terrain", f)
		}
	}
}

func TestResourceCategories(t *testing.T) {
	if CategoryOf(ResourceNone) != CategoryNone {
		t.Fatal("no resource should have no category")
	}
	if CategoryOf(ResourceIron) != CategoryStrategic {
		t.Fatal("iron is strategic")
	}
	if CategoryOf(ResourcePearls) != CategoryLuxury {
		t.Fatal("pearls are luxury")
	}
	// Every named resource is categorized.
	for r := ResourceWheat; r <= ResourceOil; r++ {
		if CategoryOf(r) == CategoryNone {
			t.Fatalf("resource %s has no category", r)
		}
	}
}

func TestYieldsArithmetic(t *testing.T) {
	var y Yields
	if !y.IsZero() {
		t.Fatal("zero value should be zero")
	}

	y.AddAmount(YieldScience, 2)
	y.AddAmount(YieldGold, 3)
	if y.Get(YieldScience) != 2 || y.Get(YieldGold) != 3 {
		t.Fatalf("unexpected yields after AddAmount: %+v", y)
	}

	sum := y.Add(Yields{Science: 1, Food: 4})
	if sum.Science != 3 || sum.Food != 4 || sum.Gold != 3 {
		t.Fatalf("unexpected sum: %+v", sum)
	}
	// Add is by value; the receiver stays put.
	if y.Science != 2 || y.Food != 0 {
		t.Fatalf("Add mutated its receiver: %+v", y)
	}
}
