// Map generation using layered simplex noise. Generates elevation, moisture,
// and temperature fields, then derives terrain, modifiers, features,
// resources, and river edges.
package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/hexcity/internal/rules"
)

// GenConfig holds map generation parameters.
type GenConfig struct {
	Name        string
	Width       int
	Height      int
	Seed        int64   // 0 = random
	SeaLevel    float64 // Elevation threshold for water (0.0-1.0)
	MountainLvl float64 // Elevation threshold for mountains (0.0-1.0)
	HillsLvl    float64 // Elevation threshold for hills (0.0-1.0)
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Name:        "generated",
		Width:       24,
		Height:      20,
		Seed:        0,
		SeaLevel:    0.28,
		MountainLvl: 0.78,
		HillsLvl:    0.62,
	}
}

// SmallTestConfig returns a tiny map for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Name:        "testmap",
		Width:       10,
		Height:      8,
		Seed:        42,
		SeaLevel:    0.30,
		MountainLvl: 0.78,
		HillsLvl:    0.60,
	}
}

// Generate creates a complete map. Deterministic for a fixed non-zero seed.
func Generate(cfg GenConfig) *Grid {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	elevNoise := opensimplex.NewNormalized(seed)
	moistNoise := opensimplex.NewNormalized(seed + 1)
	tempNoise := opensimplex.NewNormalized(seed + 2)
	rng := rand.New(rand.NewSource(seed + 3))

	g := NewGrid(cfg.Name, cfg.Width, cfg.Height)
	elevation := make(map[HexCoord]float64, g.TileCount())

	for _, tile := range g.Tiles() {
		coord := tile.Coord
		x, y := coord.ToPixel(1.0)

		elev := octaveNoise(elevNoise, x, y, 4, 0.10, 0.5)
		moist := octaveNoise(moistNoise, x, y, 3, 0.08, 0.5)
		temp := octaveNoise(tempNoise, x, y, 3, 0.06, 0.5)

		// Latitude band: colder toward the top and bottom rows.
		lat := math.Abs(float64(coord.R)/float64(cfg.Height)-0.5) * 2
		temp = temp*0.55 + (1.0-lat)*0.35 + (1.0-elev)*0.10

		elevation[coord] = elev

		terrain := deriveTerrain(elev, moist, temp, cfg)
		tile.Terrain = terrain

		if !rules.IsWaterTerrain(terrain) {
			switch {
			case elev > cfg.MountainLvl:
				tile.Modifier = rules.ModifierMountain
			case elev > cfg.HillsLvl:
				tile.Modifier = rules.ModifierHills
			}
		}

		placeFeature(tile, moist, temp, rng)
		placeResource(tile, rng)
	}

	traceRivers(g, elevation, seed)
	placeNaturalWonders(g, rng)

	return g
}

// deriveTerrain maps the noise fields to a terrain type.
func deriveTerrain(elev, moist, temp float64, cfg GenConfig) rules.Terrain {
	if elev < cfg.SeaLevel*0.7 {
		return rules.TerrainOcean
	}
	if elev < cfg.SeaLevel {
		return rules.TerrainCoast
	}
	if temp < 0.15 {
		return rules.TerrainSnow
	}
	if temp < 0.3 {
		return rules.TerrainTundra
	}
	if moist < 0.25 && temp > 0.55 {
		return rules.TerrainDesert
	}
	if moist < 0.5 {
		return rules.TerrainPlains
	}
	return rules.TerrainGrass
}

// placeFeature adds a feature consistent with the terrain allow-lists.
// Mountains stay bare.
func placeFeature(tile *Tile, moist, temp float64, rng *rand.Rand) {
	if tile.IsMountain() {
		return
	}
	var f rules.Feature
	switch tile.Terrain {
	case rules.TerrainGrass:
		if moist > 0.75 && !tile.IsHill() {
			f = rules.FeatureMarsh
		} else if moist > 0.55 {
			f = rules.FeatureWoods
		}
	case rules.TerrainPlains:
		if temp > 0.65 && moist > 0.6 {
			f = rules.FeatureRainforest
		} else if moist > 0.55 {
			f = rules.FeatureWoods
		}
	case rules.TerrainTundra:
		if moist > 0.6 {
			f = rules.FeatureWoods
		}
	case rules.TerrainDesert:
		if rng.Float64() < 0.05 {
			f = rules.FeatureOasis
		}
	case rules.TerrainCoast:
		if rng.Float64() < 0.08 {
			f = rules.FeatureReef
		}
	case rules.TerrainOcean:
		if temp < 0.2 {
			f = rules.FeatureIce
		}
	}
	if f == rules.FeatureNone {
		// Rare geothermal activity on any bare land tile.
		if tile.IsLand() && rng.Float64() < 0.015 {
			f = rules.FeatureGeothermalFissure
		}
	}
	if f != rules.FeatureNone && rules.FeatureAllowedOn(f, tile.Terrain) {
		tile.Feature = f
	}
}

// resourcePools lists the candidate resources per terrain.
var resourcePools = map[rules.Terrain][]rules.Resource{
	rules.TerrainGrass:  {rules.ResourceWheat, rules.ResourceCattle, rules.ResourceSheep, rules.ResourceRice, rules.ResourceWine, rules.ResourceHorses},
	rules.TerrainPlains: {rules.ResourceWheat, rules.ResourceHorses, rules.ResourceIron, rules.ResourceMarble, rules.ResourceSpices, rules.ResourceBananas},
	rules.TerrainDesert: {rules.ResourceNiter, rules.ResourceOil, rules.ResourceSilk},
	rules.TerrainTundra: {rules.ResourceDeer, rules.ResourceFurs, rules.ResourceIron},
	rules.TerrainSnow:   {rules.ResourceOil},
	rules.TerrainCoast:  {rules.ResourceFish, rules.ResourceCrabs, rules.ResourcePearls},
	rules.TerrainOcean:  {rules.ResourceFish},
}

// Hills favor extractables over farmland.
var hillResources = []rules.Resource{rules.ResourceIron, rules.ResourceCoal, rules.ResourceSheep, rules.ResourceMarble}

func placeResource(tile *Tile, rng *rand.Rand) {
	if tile.IsMountain() || tile.Feature == rules.FeatureOasis {
		return
	}
	if rng.Float64() >= 0.18 {
		return
	}
	pool := resourcePools[tile.Terrain]
	if tile.IsHill() {
		pool = hillResources
	}
	if len(pool) == 0 {
		return
	}
	tile.Resource = pool[rng.Intn(len(pool))]
}

// traceRivers walks downhill from high-elevation tiles toward water, setting
// the crossed edge on both adjacent tiles.
func traceRivers(g *Grid, elevation map[HexCoord]float64, seed int64) {
	rng := rand.New(rand.NewSource(seed + 100))

	var sources []HexCoord
	for _, t := range g.Tiles() {
		if elevation[t.Coord] > 0.68 && t.IsLand() {
			sources = append(sources, t.Coord)
		}
	}

	numRivers := len(sources) / 6
	if numRivers < 2 {
		numRivers = 2
	}
	if numRivers > 8 {
		numRivers = 8
	}
	rng.Shuffle(len(sources), func(i, j int) {
		sources[i], sources[j] = sources[j], sources[i]
	})
	if len(sources) > numRivers {
		sources = sources[:numRivers]
	}

	for _, start := range sources {
		traceRiver(g, elevation, start)
	}
}

func traceRiver(g *Grid, elevation map[HexCoord]float64, start HexCoord) {
	current := start
	visited := map[HexCoord]bool{start: true}
	const maxSteps = 40

	for step := 0; step < maxSteps; step++ {
		tile := g.Get(current)
		if tile == nil || tile.IsWater() {
			break
		}

		// Steepest descent among unvisited neighbors.
		bestDir := -1
		bestElev := elevation[current]
		for i := range HexDirections {
			nc := current.Neighbor(i)
			if visited[nc] || !g.Contains(nc) {
				continue
			}
			if ne, ok := elevation[nc]; ok && ne < bestElev {
				bestElev = ne
				bestDir = i
			}
		}
		if bestDir < 0 {
			break // No downhill path; the river ends here.
		}

		next := current.Neighbor(bestDir)
		tile.AddRiverEdge(bestDir)
		if nt := g.Get(next); nt != nil && nt.IsLand() {
			// Mirror the edge on the far side.
			nt.AddRiverEdge((bestDir + 3) % 6)
		}
		visited[next] = true
		current = next
	}
}

// placeNaturalWonders scatters a few natural wonders on eligible tiles.
func placeNaturalWonders(g *Grid, rng *rand.Rand) {
	candidates := []rules.NaturalWonder{
		rules.NaturalWonderCraterLake,
		rules.NaturalWonderGreatBarrierReef,
		rules.NaturalWonderKilimanjaro,
		rules.NaturalWonderEverest,
		rules.NaturalWonderPantanal,
		rules.NaturalWonderTorresDelPaine,
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	count := 2 + rng.Intn(2)

	tiles := g.Tiles()
	placed := 0
	for attempts := 0; attempts < 200 && placed < count; attempts++ {
		t := tiles[rng.Intn(len(tiles))]
		if t.HasNaturalWonder() || t.HasDistrict() {
			continue
		}
		w := candidates[placed]
		// Reef wonder belongs on water, the rest on land.
		if w == rules.NaturalWonderGreatBarrierReef {
			if !t.IsWater() {
				continue
			}
		} else if !t.IsLand() {
			continue
		}
		t.SetNaturalWonder(w)
		placed++
	}
}

// octaveNoise layers multiple noise frequencies into fractal detail.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
