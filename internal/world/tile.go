package world

import (
	"fmt"

	"github.com/talgya/hexcity/internal/rules"
)

// ValidationError reports a failed tile mutation. The tile is left unchanged
// whenever a mutator returns one.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// RiverMask is the set of river edges on a tile, one bit per hex edge 0-5.
// Edge indices follow the HexDirections order.
type RiverMask uint8

// Has reports whether edge i is set.
func (m RiverMask) Has(i int) bool {
	return i >= 0 && i < 6 && m&(1<<uint(i)) != 0
}

// Edges returns the set edge indices in ascending order.
func (m RiverMask) Edges() []int {
	edges := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		if m.Has(i) {
			edges = append(edges, i)
		}
	}
	return edges
}

// Count returns the number of set edges.
func (m RiverMask) Count() int {
	n := 0
	for i := 0; i < 6; i++ {
		if m.Has(i) {
			n++
		}
	}
	return n
}

// Tile is a single grid cell. The coordinate is immutable; everything else
// mutates only through the validated setters, which either apply fully or
// fail with a ValidationError and change nothing.
type Tile struct {
	Coord HexCoord

	Terrain       rules.Terrain
	Modifier      rules.Modifier
	Feature       rules.Feature
	Resource      rules.Resource
	District      rules.District
	Wonder        rules.Wonder
	NaturalWonder rules.NaturalWonder
	Improvement   rules.Improvement

	RiverEdges   RiverMask
	OwnerCityID  *string
	IsCityCenter bool
}

// NewTile returns a default tile at the given coordinate: flat grass with
// everything else at its none value.
func NewTile(coord HexCoord) *Tile {
	return &Tile{
		Coord:    coord,
		Terrain:  rules.TerrainGrass,
		Modifier: rules.ModifierFlat,
	}
}

// Clone returns a deep copy of the tile.
func (t *Tile) Clone() *Tile {
	c := *t
	if t.OwnerCityID != nil {
		id := *t.OwnerCityID
		c.OwnerCityID = &id
	}
	return &c
}

// SetTerrain changes the base terrain. Fails if the change would leave a
// hills or mountain modifier on water, or strand the current feature on a
// terrain outside its allow-list.
func (t *Tile) SetTerrain(terrain rules.Terrain) error {
	if rules.IsWaterTerrain(terrain) && t.Modifier != rules.ModifierFlat {
		return validationErr("terrain", "%s cannot carry a %s modifier", terrain, t.Modifier)
	}
	if !rules.FeatureAllowedOn(t.Feature, terrain) {
		return validationErr("terrain", "feature %s is not valid on %s", t.Feature, terrain)
	}
	t.Terrain = terrain
	return nil
}

// SetModifier changes the elevation modifier. Hills and mountains are
// forbidden on water; a mountain cannot rise under an existing district.
func (t *Tile) SetModifier(m rules.Modifier) error {
	if m != rules.ModifierFlat && t.IsWater() {
		return validationErr("modifier", "%s is not allowed on %s", m, t.Terrain)
	}
	if m == rules.ModifierMountain && t.District != rules.DistrictNone {
		return validationErr("modifier", "mountain cannot replace district %s", t.District)
	}
	t.Modifier = m
	return nil
}

// SetFeature places a feature. Each non-none feature has an allow-list of
// valid terrains; outside it the call fails.
func (t *Tile) SetFeature(f rules.Feature) error {
	if !rules.FeatureAllowedOn(f, t.Terrain) {
		return validationErr("feature", "%s is not valid on %s", f, t.Terrain)
	}
	t.Feature = f
	return nil
}

// SetResource places a resource. No terrain restriction applies.
func (t *Tile) SetResource(r rules.Resource) error {
	t.Resource = r
	return nil
}

// SetDistrict places a district. Districts cannot sit on mountains; water
// terrain accepts only water districts and land terrain only land districts.
// Placing a non-none district clears any feature and improvement.
func (t *Tile) SetDistrict(d rules.District) error {
	if d == rules.DistrictNone {
		t.District = d
		return nil
	}
	if t.Modifier == rules.ModifierMountain {
		return validationErr("district", "%s cannot be placed on a mountain", d)
	}
	info := rules.Districts[d]
	if t.IsWater() && !info.RequiresWater {
		return validationErr("district", "%s cannot be placed on %s", d, t.Terrain)
	}
	if !t.IsWater() && info.RequiresWater {
		return validationErr("district", "%s requires water terrain", d)
	}
	t.District = d
	t.Feature = rules.FeatureNone
	t.Improvement = rules.ImprovementNone
	return nil
}

// SetWonder places a player-built wonder, clearing any improvement.
func (t *Tile) SetWonder(w rules.Wonder) error {
	t.Wonder = w
	if w != rules.WonderNone {
		t.Improvement = rules.ImprovementNone
	}
	return nil
}

// SetNaturalWonder places a map-generated wonder.
func (t *Tile) SetNaturalWonder(w rules.NaturalWonder) error {
	t.NaturalWonder = w
	return nil
}

// SetImprovement places an improvement. Fails while a district or wonder
// occupies the tile.
func (t *Tile) SetImprovement(i rules.Improvement) error {
	if i == rules.ImprovementNone {
		t.Improvement = i
		return nil
	}
	if t.District != rules.DistrictNone {
		return validationErr("improvement", "tile already holds district %s", t.District)
	}
	if t.Wonder != rules.WonderNone {
		return validationErr("improvement", "tile already holds wonder %s", t.Wonder)
	}
	t.Improvement = i
	return nil
}

// AddRiverEdge marks a river on edge i (0-5).
func (t *Tile) AddRiverEdge(i int) error {
	if i < 0 || i >= 6 {
		return validationErr("riverEdges", "edge index %d out of range [0,6)", i)
	}
	t.RiverEdges |= 1 << uint(i)
	return nil
}

// SetRiverEdges replaces the river edge set. All indices must be in [0,6).
func (t *Tile) SetRiverEdges(edges []int) error {
	var mask RiverMask
	for _, i := range edges {
		if i < 0 || i >= 6 {
			return validationErr("riverEdges", "edge index %d out of range [0,6)", i)
		}
		mask |= 1 << uint(i)
	}
	t.RiverEdges = mask
	return nil
}

// SetOwnerCity records which city owns the tile (nil clears ownership).
func (t *Tile) SetOwnerCity(id *string) {
	if id == nil {
		t.OwnerCityID = nil
		return
	}
	v := *id
	t.OwnerCityID = &v
}

// SetCityCenter marks or unmarks the tile as a city center. Marking forces
// the district to CityCenter, subject to the district placement rules.
func (t *Tile) SetCityCenter(isCenter bool) error {
	if isCenter {
		if err := t.SetDistrict(rules.DistrictCityCenter); err != nil {
			return err
		}
	}
	t.IsCityCenter = isCenter
	return nil
}

// IsWater reports whether the tile's terrain is water.
func (t *Tile) IsWater() bool {
	return rules.IsWaterTerrain(t.Terrain)
}

// IsLand reports whether the tile's terrain is land.
func (t *Tile) IsLand() bool {
	return !t.IsWater()
}

// IsHill reports whether the tile has a hills modifier.
func (t *Tile) IsHill() bool {
	return t.Modifier == rules.ModifierHills
}

// IsMountain reports whether the tile has a mountain modifier.
func (t *Tile) IsMountain() bool {
	return t.Modifier == rules.ModifierMountain
}

// IsPassable reports whether units could cross the tile: false for
// mountains and impassable natural wonders.
func (t *Tile) IsPassable() bool {
	if t.IsMountain() {
		return false
	}
	return !rules.NaturalWonderImpassable(t.NaturalWonder)
}

// HasRiver reports whether any river edge is set.
func (t *Tile) HasRiver() bool {
	return t.RiverEdges != 0
}

// HasDistrict reports whether a district occupies the tile.
func (t *Tile) HasDistrict() bool {
	return t.District != rules.DistrictNone
}

// HasWonder reports whether a player-built wonder occupies the tile.
func (t *Tile) HasWonder() bool {
	return t.Wonder != rules.WonderNone
}

// HasNaturalWonder reports whether a natural wonder occupies the tile.
func (t *Tile) HasNaturalWonder() bool {
	return t.NaturalWonder != rules.NaturalWonderNone
}

// ResourceCategory returns the category of the tile's resource.
func (t *Tile) ResourceCategory() rules.ResourceCategory {
	return rules.CategoryOf(t.Resource)
}

// BaseYields computes the tile's intrinsic yield: terrain, plus one
// production for hills, plus feature and resource yields. Recomputed on
// every call; never cached.
func (t *Tile) BaseYields() rules.Yields {
	y := rules.TerrainYields[t.Terrain]
	if t.IsHill() {
		y = y.Add(rules.Yields{Production: 1})
	}
	if t.Feature != rules.FeatureNone {
		y = y.Add(rules.FeatureYields[t.Feature])
	}
	if t.Resource != rules.ResourceNone {
		y = y.Add(rules.ResourceYields[t.Resource])
	}
	return y
}
