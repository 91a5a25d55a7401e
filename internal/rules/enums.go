package rules

import "fmt"

// Terrain is the base land or water type of a tile.
type Terrain uint8

const (
	TerrainGrass Terrain = iota
	TerrainPlains
	TerrainDesert
	TerrainTundra
	TerrainSnow
	TerrainCoast
	TerrainOcean
)

var terrainNames = [...]string{"grass", "plains", "desert", "tundra", "snow", "coast", "ocean"}

// Modifier is the elevation modifier of a tile.
type Modifier uint8

const (
	ModifierFlat Modifier = iota
	ModifierHills
	ModifierMountain
)

var modifierNames = [...]string{"flat", "hills", "mountain"}

// Feature is a natural feature occupying a tile.
type Feature uint8

const (
	FeatureNone Feature = iota
	FeatureWoods
	FeatureRainforest
	FeatureMarsh
	FeatureFloodplains
	FeatureOasis
	FeatureReef
	FeatureIce
	FeatureVolcano
	FeatureGeothermalFissure
)

var featureNames = [...]string{
	"none", "woods", "rainforest", "marsh", "floodplains",
	"oasis", "reef", "ice", "volcano", "geothermal_fissure",
}

// ResourceCategory partitions resources into the three gameplay classes.
type ResourceCategory uint8

const (
	CategoryNone ResourceCategory = iota
	CategoryBonus
	CategoryLuxury
	CategoryStrategic
)

var categoryNames = [...]string{"none", "bonus", "luxury", "strategic"}

func (c ResourceCategory) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category#%d", c)
}

// Resource is a harvestable resource on a tile.
type Resource uint8

const (
	ResourceNone Resource = iota

	// Bonus resources.
	ResourceWheat
	ResourceRice
	ResourceCattle
	ResourceSheep
	ResourceDeer
	ResourceBananas
	ResourceFish
	ResourceCrabs

	// Luxury resources.
	ResourceSilk
	ResourceSpices
	ResourceWine
	ResourceMarble
	ResourcePearls
	ResourceFurs

	// Strategic resources.
	ResourceHorses
	ResourceIron
	ResourceNiter
	ResourceCoal
	ResourceOil
)

var resourceNames = [...]string{
	"none",
	"wheat", "rice", "cattle", "sheep", "deer", "bananas", "fish", "crabs",
	"silk", "spices", "wine", "marble", "pearls", "furs",
	"horses", "iron", "niter", "coal", "oil",
}

// District is a city district occupying a tile.
type District uint8

const (
	DistrictNone District = iota
	DistrictCityCenter
	DistrictCampus
	DistrictHolySite
	DistrictTheaterSquare
	DistrictCommercialHub
	DistrictHarbor
	DistrictIndustrialZone
	DistrictPreserve
	DistrictGovernmentPlaza
	DistrictAqueduct
	DistrictDam
	DistrictCanal
	DistrictWaterPark
)

var districtNames = [...]string{
	"none", "city_center", "campus", "holy_site", "theater_square",
	"commercial_hub", "harbor", "industrial_zone", "preserve",
	"government_plaza", "aqueduct", "dam", "canal", "water_park",
}

// Wonder is a player-built wonder occupying a tile.
type Wonder uint8

const (
	WonderNone Wonder = iota
	WonderPyramids
	WonderPetra
	WonderColosseum
	WonderOracle
	WonderStonehenge
	WonderHangingGardens
	WonderGreatLibrary
	WonderRuhrValley
)

var wonderNames = [...]string{
	"none", "pyramids", "petra", "colosseum", "oracle",
	"stonehenge", "hanging_gardens", "great_library", "ruhr_valley",
}

// NaturalWonder is a map-generated wonder occupying a tile.
type NaturalWonder uint8

const (
	NaturalWonderNone NaturalWonder = iota
	NaturalWonderCraterLake
	NaturalWonderGreatBarrierReef
	NaturalWonderKilimanjaro
	NaturalWonderEverest
	NaturalWonderPantanal
	NaturalWonderTorresDelPaine
)

var naturalWonderNames = [...]string{
	"none", "crater_lake", "great_barrier_reef", "kilimanjaro",
	"everest", "pantanal", "torres_del_paine",
}

// Improvement is a worked tile improvement.
type Improvement uint8

const (
	ImprovementNone Improvement = iota
	ImprovementFarm
	ImprovementMine
	ImprovementQuarry
	ImprovementPasture
	ImprovementCamp
	ImprovementPlantation
	ImprovementFishingBoats
	ImprovementLumbermill
)

var improvementNames = [...]string{
	"none", "farm", "mine", "quarry", "pasture", "camp",
	"plantation", "fishing_boats", "lumbermill",
}

func (t Terrain) String() string       { return nameOf(terrainNames[:], uint8(t), "terrain") }
func (m Modifier) String() string      { return nameOf(modifierNames[:], uint8(m), "modifier") }
func (f Feature) String() string       { return nameOf(featureNames[:], uint8(f), "feature") }
func (r Resource) String() string      { return nameOf(resourceNames[:], uint8(r), "resource") }
func (d District) String() string      { return nameOf(districtNames[:], uint8(d), "district") }
func (w Wonder) String() string        { return nameOf(wonderNames[:], uint8(w), "wonder") }
func (n NaturalWonder) String() string { return nameOf(naturalWonderNames[:], uint8(n), "natural_wonder") }
func (i Improvement) String() string   { return nameOf(improvementNames[:], uint8(i), "improvement") }

func nameOf(names []string, v uint8, kind string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s#%d", kind, v)
}

// DisplayName returns a human-readable name, e.g. "holy_site" -> "Holy Site".
func DisplayName(s fmt.Stringer) string {
	raw := s.String()
	out := make([]byte, 0, len(raw))
	upper := true
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '_' {
			out = append(out, ' ')
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out = append(out, c)
	}
	return string(out)
}

func parseName(names []string, s, kind string) (uint8, error) {
	for i, n := range names {
		if n == s {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

// ParseTerrain maps a snake_case identifier back to its Terrain value.
func ParseTerrain(s string) (Terrain, error) {
	v, err := parseName(terrainNames[:], s, "terrain")
	return Terrain(v), err
}

// ParseModifier maps a snake_case identifier back to its Modifier value.
func ParseModifier(s string) (Modifier, error) {
	v, err := parseName(modifierNames[:], s, "modifier")
	return Modifier(v), err
}

// ParseFeature maps a snake_case identifier back to its Feature value.
func ParseFeature(s string) (Feature, error) {
	v, err := parseName(featureNames[:], s, "feature")
	return Feature(v), err
}

// ParseResource maps a snake_case identifier back to its Resource value.
func ParseResource(s string) (Resource, error) {
	v, err := parseName(resourceNames[:], s, "resource")
	return Resource(v), err
}

// ParseDistrict maps a snake_case identifier back to its District value.
func ParseDistrict(s string) (District, error) {
	v, err := parseName(districtNames[:], s, "district")
	return District(v), err
}

// ParseWonder maps a snake_case identifier back to its Wonder value.
func ParseWonder(s string) (Wonder, error) {
	v, err := parseName(wonderNames[:], s, "wonder")
	return Wonder(v), err
}

// ParseNaturalWonder maps a snake_case identifier back to its NaturalWonder value.
func ParseNaturalWonder(s string) (NaturalWonder, error) {
	v, err := parseName(naturalWonderNames[:], s, "natural_wonder")
	return NaturalWonder(v), err
}

// ParseImprovement maps a snake_case identifier back to its Improvement value.
func ParseImprovement(s string) (Improvement, error) {
	v, err := parseName(improvementNames[:], s, "improvement")
	return Improvement(v), err
}
