package rules

// TerrainYields holds the intrinsic yield of each terrain type.
var TerrainYields = map[Terrain]Yields{
	TerrainGrass:  {Food: 2},
	TerrainPlains: {Food: 1, Production: 1},
	TerrainDesert: {},
	TerrainTundra: {Food: 1},
	TerrainSnow:   {},
	TerrainCoast:  {Food: 1, Gold: 1},
	TerrainOcean:  {Food: 1},
}

// waterTerrains marks terrains that count as water.
var waterTerrains = map[Terrain]bool{
	TerrainCoast: true,
	TerrainOcean: true,
}

// IsWaterTerrain reports whether t is a water terrain.
func IsWaterTerrain(t Terrain) bool {
	return waterTerrains[t]
}

// FeatureYields holds the intrinsic yield of each feature.
var FeatureYields = map[Feature]Yields{
	FeatureWoods:       {Production: 1},
	FeatureRainforest:  {Food: 1},
	FeatureMarsh:       {Food: 1},
	FeatureFloodplains: {Food: 3},
	FeatureOasis:       {Food: 3, Gold: 1},
	FeatureReef:        {Food: 1, Production: 1},
}

// FeatureTerrains is the allow-list of terrains each feature may occupy.
// Features absent from the map (including FeatureNone) have no restriction
// to check because they are never set through the validated path.
var FeatureTerrains = map[Feature][]Terrain{
	FeatureWoods:             {TerrainGrass, TerrainPlains, TerrainTundra},
	FeatureRainforest:        {TerrainPlains},
	FeatureMarsh:             {TerrainGrass},
	FeatureFloodplains:       {TerrainGrass, TerrainPlains, TerrainDesert},
	FeatureOasis:             {TerrainDesert},
	FeatureReef:              {TerrainCoast},
	FeatureIce:               {TerrainCoast, TerrainOcean},
	FeatureVolcano:           {TerrainGrass, TerrainPlains, TerrainDesert, TerrainTundra, TerrainSnow},
	FeatureGeothermalFissure: {TerrainGrass, TerrainPlains, TerrainDesert, TerrainTundra, TerrainSnow},
}

// FeatureAllowedOn reports whether f may occupy terrain t.
func FeatureAllowedOn(f Feature, t Terrain) bool {
	if f == FeatureNone {
		return true
	}
	for _, allowed := range FeatureTerrains[f] {
		if allowed == t {
			return true
		}
	}
	return false
}

// ResourceCategories maps each resource to its category.
var ResourceCategories = map[Resource]ResourceCategory{
	ResourceWheat:   CategoryBonus,
	ResourceRice:    CategoryBonus,
	ResourceCattle:  CategoryBonus,
	ResourceSheep:   CategoryBonus,
	ResourceDeer:    CategoryBonus,
	ResourceBananas: CategoryBonus,
	ResourceFish:    CategoryBonus,
	ResourceCrabs:   CategoryBonus,
	ResourceSilk:    CategoryLuxury,
	ResourceSpices:  CategoryLuxury,
	ResourceWine:    CategoryLuxury,
	ResourceMarble:  CategoryLuxury,
	ResourcePearls:  CategoryLuxury,
	ResourceFurs:    CategoryLuxury,
	ResourceHorses:  CategoryStrategic,
	ResourceIron:    CategoryStrategic,
	ResourceNiter:   CategoryStrategic,
	ResourceCoal:    CategoryStrategic,
	ResourceOil:     CategoryStrategic,
}

// CategoryOf returns the category of r (CategoryNone for ResourceNone).
func CategoryOf(r Resource) ResourceCategory {
	return ResourceCategories[r]
}

// ResourceYields holds the intrinsic yield of each resource.
var ResourceYields = map[Resource]Yields{
	ResourceWheat:   {Food: 1},
	ResourceRice:    {Food: 1},
	ResourceCattle:  {Food: 1},
	ResourceSheep:   {Food: 1},
	ResourceDeer:    {Production: 1},
	ResourceBananas: {Food: 1},
	ResourceFish:    {Food: 1},
	ResourceCrabs:   {Gold: 1},
	ResourceSilk:    {Culture: 1},
	ResourceSpices:  {Food: 2},
	ResourceWine:    {Food: 1, Gold: 1},
	ResourceMarble:  {Culture: 1},
	ResourcePearls:  {Faith: 1},
	ResourceFurs:    {Food: 1, Gold: 1},
	ResourceHorses:  {Food: 1, Production: 1},
	ResourceIron:    {Science: 1},
	ResourceNiter:   {Food: 1, Production: 1},
	ResourceCoal:    {Production: 2},
	ResourceOil:     {Production: 3},
}

// DistrictInfo describes placement requirements and adjacency identity for
// one district type.
type DistrictInfo struct {
	// Specialty districts have a primary yield and participate in adjacency
	// bonuses (including the Government Plaza cross bonus).
	Specialty    bool
	PrimaryYield YieldKind

	// RequiresWater districts may only be placed on water terrain.
	// All other districts require land.
	RequiresWater bool

	// HillsForbidden districts cannot be placed on a hills modifier.
	HillsForbidden bool
}

// Districts is the per-district placement and adjacency identity table.
var Districts = map[District]DistrictInfo{
	DistrictCityCenter:      {},
	DistrictCampus:          {Specialty: true, PrimaryYield: YieldScience},
	DistrictHolySite:        {Specialty: true, PrimaryYield: YieldFaith},
	DistrictTheaterSquare:   {Specialty: true, PrimaryYield: YieldCulture},
	DistrictCommercialHub:   {Specialty: true, PrimaryYield: YieldGold},
	DistrictHarbor:          {Specialty: true, PrimaryYield: YieldGold, RequiresWater: true},
	DistrictIndustrialZone:  {Specialty: true, PrimaryYield: YieldProduction},
	DistrictPreserve:        {},
	DistrictGovernmentPlaza: {},
	DistrictAqueduct:        {HillsForbidden: true},
	DistrictDam:             {HillsForbidden: true},
	DistrictCanal:           {HillsForbidden: true},
	DistrictWaterPark:       {RequiresWater: true},
}

// IsSpecialty reports whether d is a specialty district.
func IsSpecialty(d District) bool {
	return Districts[d].Specialty
}

// impassableNaturalWonders marks natural wonders that block passage.
var impassableNaturalWonders = map[NaturalWonder]bool{
	NaturalWonderKilimanjaro: true,
	NaturalWonderEverest:     true,
}

// NaturalWonderImpassable reports whether w blocks passage.
func NaturalWonderImpassable(w NaturalWonder) bool {
	return impassableNaturalWonders[w]
}

// AllTerrains, AllDistricts etc. support exhaustive iteration in validation
// and tests without exporting the name tables.
var (
	AllTerrains = []Terrain{
		TerrainGrass, TerrainPlains, TerrainDesert, TerrainTundra,
		TerrainSnow, TerrainCoast, TerrainOcean,
	}
	AllDistricts = []District{
		DistrictNone, DistrictCityCenter, DistrictCampus, DistrictHolySite,
		DistrictTheaterSquare, DistrictCommercialHub, DistrictHarbor,
		DistrictIndustrialZone, DistrictPreserve, DistrictGovernmentPlaza,
		DistrictAqueduct, DistrictDam, DistrictCanal, DistrictWaterPark,
	}
)
