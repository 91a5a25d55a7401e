// Package adjacency computes positional yield bonuses for districts from the
// contents of their neighboring tiles, and searches for the best placement
// of a district type around a city center. The engine is a stateless reader:
// it never mutates the grid it is given.
package adjacency

import (
	"errors"
	"fmt"

	"github.com/talgya/hexcity/internal/rules"
	"github.com/talgya/hexcity/internal/world"
)

// ErrNoPlacement is returned when no tile in workable range is eligible for
// the requested district type. It is an expected outcome, not a failure.
var ErrNoPlacement = errors.New("no valid placement")

// Bonus is one adjacency line item for a district instance.
type Bonus struct {
	District rules.District
	Yield    rules.YieldKind
	Amount   int
	Source   string
}

// DistrictResult aggregates the adjacency line items of one district
// instance into a yield total.
type DistrictResult struct {
	Coord    world.HexCoord
	District rules.District
	Bonuses  []Bonus
	Total    rules.Yields
}

// CityResult aggregates every specialty district's adjacency total within a
// city's workable range.
type CityResult struct {
	CityCenter world.HexCoord
	Districts  []DistrictResult
	Total      rules.Yields
}

// Placement is the outcome of a best-placement search.
type Placement struct {
	Coord  world.HexCoord
	Result DistrictResult
}

// CalculateDistrictAdjacency computes the adjacency bonus for the district
// on the tile at coord. A tile without a specialty district produces an
// empty result. Returns world.ErrNotFound if the coordinate has no tile.
func CalculateDistrictAdjacency(g *world.Grid, coord world.HexCoord) (DistrictResult, error) {
	tile := g.Get(coord)
	if tile == nil {
		return DistrictResult{}, fmt.Errorf("district adjacency at %s: %w", coord.Key(), world.ErrNotFound)
	}
	return evaluate(g, tile), nil
}

// CalculatePotentialAdjacency evaluates a hypothetical placement of district
// d at coord without touching the grid: the target tile's state is copied,
// only the district is overridden, and the copy is scored against the grid's
// real neighbors. Returns world.ErrNotFound if the coordinate has no tile,
// or the district's ValidationError if d cannot legally occupy the tile.
func CalculatePotentialAdjacency(g *world.Grid, coord world.HexCoord, d rules.District) (DistrictResult, error) {
	tile := g.Get(coord)
	if tile == nil {
		return DistrictResult{}, fmt.Errorf("potential adjacency at %s: %w", coord.Key(), world.ErrNotFound)
	}
	hypo := tile.Clone()
	if err := hypo.SetDistrict(d); err != nil {
		return DistrictResult{}, err
	}
	return evaluate(g, hypo), nil
}

// CalculateCityAdjacency sums the adjacency bonuses of every specialty
// district within workable range of the city center. The center tile itself
// is excluded. Returns world.ErrNotFound if the center has no tile.
func CalculateCityAdjacency(g *world.Grid, center world.HexCoord) (CityResult, error) {
	if g.Get(center) == nil {
		return CityResult{}, fmt.Errorf("city adjacency at %s: %w", center.Key(), world.ErrNotFound)
	}
	result := CityResult{CityCenter: center}
	for _, tile := range g.TilesInRange(center, world.WorkableRange) {
		if tile.Coord == center || !rules.IsSpecialty(tile.District) {
			continue
		}
		dr := evaluate(g, tile)
		result.Districts = append(result.Districts, dr)
		result.Total = result.Total.Add(dr.Total)
	}
	return result, nil
}

// FindBestDistrictPlacement scans every tile within workable range of the
// city center that has no district, is not a mountain, and satisfies d's
// terrain rules, and returns the placement maximizing d's primary yield.
// Ties keep the first candidate in grid iteration order. Returns
// ErrNoPlacement when no tile qualifies and world.ErrNotFound when the
// center has no tile.
func FindBestDistrictPlacement(g *world.Grid, center world.HexCoord, d rules.District) (Placement, error) {
	if g.Get(center) == nil {
		return Placement{}, fmt.Errorf("placement search at %s: %w", center.Key(), world.ErrNotFound)
	}
	info := rules.Districts[d]

	var best Placement
	bestScore := -1

	for _, tile := range g.Tiles() {
		if world.Distance(center, tile.Coord) > world.WorkableRange {
			continue
		}
		if !eligible(tile, info) {
			continue
		}
		result, err := CalculatePotentialAdjacency(g, tile.Coord, d)
		if err != nil {
			// Candidates are pre-filtered; a validation error here is a bug.
			return Placement{}, err
		}
		score := result.Total.Get(info.PrimaryYield)
		if score > bestScore {
			bestScore = score
			best = Placement{Coord: tile.Coord, Result: result}
		}
	}
	if bestScore < 0 {
		return Placement{}, ErrNoPlacement
	}
	return best, nil
}

// eligible applies the placement filters for a candidate tile.
func eligible(tile *world.Tile, info rules.DistrictInfo) bool {
	if tile.HasDistrict() || tile.IsMountain() {
		return false
	}
	if info.RequiresWater != tile.IsWater() {
		return false
	}
	if info.HillsForbidden && tile.IsHill() {
		return false
	}
	return true
}

// evaluate runs the per-district rule table against the tile's existing
// neighbors, then layers the Government Plaza bonus on top. Missing
// neighbors at map edges simply do not count toward any rule.
func evaluate(g *world.Grid, tile *world.Tile) DistrictResult {
	result := DistrictResult{Coord: tile.Coord, District: tile.District}
	neighbors := g.Neighbors(tile.Coord)

	emit := func(yield rules.YieldKind, amount int, source string) {
		if amount == 0 {
			return
		}
		result.Bonuses = append(result.Bonuses, Bonus{
			District: tile.District,
			Yield:    yield,
			Amount:   amount,
			Source:   source,
		})
		result.Total.AddAmount(yield, amount)
	}

	switch tile.District {
	case rules.DistrictCampus:
		mountains := countNeighbors(neighbors, func(t *world.Tile) bool { return t.IsMountain() })
		emit(rules.YieldScience, mountains, plural(mountains, "Mountain"))

		rainforest := countNeighbors(neighbors, func(t *world.Tile) bool { return t.Feature == rules.FeatureRainforest })
		districts := countNeighbors(neighbors, (*world.Tile).HasDistrict)
		pairs := (rainforest + districts) / 2
		emit(rules.YieldScience, pairs, fmt.Sprintf("%d Rainforest/district pair(s)", pairs))

		fissures := countNeighbors(neighbors, func(t *world.Tile) bool { return t.Feature == rules.FeatureGeothermalFissure })
		emit(rules.YieldScience, fissures*2, plural(fissures, "Geothermal Fissure"))

		reefs := countNeighbors(neighbors, func(t *world.Tile) bool { return t.Feature == rules.FeatureReef })
		emit(rules.YieldScience, reefs*2, plural(reefs, "Reef"))

	case rules.DistrictHolySite:
		mountains := countNeighbors(neighbors, func(t *world.Tile) bool { return t.IsMountain() })
		emit(rules.YieldFaith, mountains, plural(mountains, "Mountain"))

		woods := countNeighbors(neighbors, func(t *world.Tile) bool { return t.Feature == rules.FeatureWoods })
		districts := countNeighbors(neighbors, (*world.Tile).HasDistrict)
		pairs := (woods + districts) / 2
		emit(rules.YieldFaith, pairs, fmt.Sprintf("%d Woods/district pair(s)", pairs))

		wonders := countNeighbors(neighbors, (*world.Tile).HasNaturalWonder)
		emit(rules.YieldFaith, wonders*2, plural(wonders, "Natural Wonder"))

	case rules.DistrictTheaterSquare:
		wonders := countNeighbors(neighbors, (*world.Tile).HasWonder)
		emit(rules.YieldCulture, wonders*2, plural(wonders, "Wonder"))

		districts := countNeighbors(neighbors, (*world.Tile).HasDistrict)
		emit(rules.YieldCulture, districts/2, fmt.Sprintf("%d district pair(s)", districts/2))

	case rules.DistrictCommercialHub:
		if tile.HasRiver() {
			emit(rules.YieldGold, 2, "River")
		}
		harbors := countNeighbors(neighbors, func(t *world.Tile) bool { return t.District == rules.DistrictHarbor })
		emit(rules.YieldGold, harbors*2, plural(harbors, "Harbor"))

		districts := countNeighbors(neighbors, (*world.Tile).HasDistrict)
		emit(rules.YieldGold, districts/2, fmt.Sprintf("%d district pair(s)", districts/2))

	case rules.DistrictHarbor:
		seaResources := countNeighbors(neighbors, func(t *world.Tile) bool {
			return t.IsWater() && t.Resource != rules.ResourceNone
		})
		emit(rules.YieldGold, seaResources, plural(seaResources, "sea resource"))

		centers := countNeighbors(neighbors, func(t *world.Tile) bool { return t.District == rules.DistrictCityCenter })
		emit(rules.YieldGold, centers*2, plural(centers, "City Center"))

		districts := countNeighbors(neighbors, (*world.Tile).HasDistrict)
		emit(rules.YieldGold, districts/2, fmt.Sprintf("%d district pair(s)", districts/2))

	case rules.DistrictIndustrialZone:
		mines := countNeighbors(neighbors, func(t *world.Tile) bool { return t.Improvement == rules.ImprovementMine })
		emit(rules.YieldProduction, mines, plural(mines, "Mine"))

		quarries := countNeighbors(neighbors, func(t *world.Tile) bool { return t.Improvement == rules.ImprovementQuarry })
		emit(rules.YieldProduction, quarries, plural(quarries, "Quarry"))

		waterworks := countNeighbors(neighbors, func(t *world.Tile) bool {
			switch t.District {
			case rules.DistrictAqueduct, rules.DistrictDam, rules.DistrictCanal:
				return true
			}
			return false
		})
		emit(rules.YieldProduction, waterworks*2, plural(waterworks, "Aqueduct/Dam/Canal"))

		districts := countNeighbors(neighbors, (*world.Tile).HasDistrict)
		emit(rules.YieldProduction, districts/2, fmt.Sprintf("%d district pair(s)", districts/2))

		strategic := countNeighbors(neighbors, func(t *world.Tile) bool {
			return t.ResourceCategory() == rules.CategoryStrategic
		})
		emit(rules.YieldProduction, strategic, plural(strategic, "Strategic resource"))
	}

	// Second pass, independent of the table: a specialty district next to a
	// Government Plaza gains one extra point of its primary yield.
	info := rules.Districts[tile.District]
	if info.Specialty {
		plazas := countNeighbors(neighbors, func(t *world.Tile) bool {
			return t.District == rules.DistrictGovernmentPlaza
		})
		if plazas > 0 {
			emit(info.PrimaryYield, 1, "Government Plaza")
		}
	}

	return result
}

func countNeighbors(neighbors []*world.Tile, match func(*world.Tile) bool) int {
	n := 0
	for _, t := range neighbors {
		if match(t) {
			n++
		}
	}
	return n
}

func plural(n int, noun string) string {
	return fmt.Sprintf("%d %s(s)", n, noun)
}
