// Package render draws a grid to a PNG image for quick visual inspection.
// It is a debugging collaborator; nothing in the core depends on it.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/talgya/hexcity/internal/rules"
	"github.com/talgya/hexcity/internal/world"
)

// ColourScheme defines how tile contents are coloured.
type ColourScheme struct {
	Terrains  map[rules.Terrain]color.Color
	River     color.Color
	Districts color.Color
	CityRing  color.Color
	Mountain  color.Color
	Hills     color.Color
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Terrains: map[rules.Terrain]color.Color{
			rules.TerrainGrass:  colornames.Yellowgreen,
			rules.TerrainPlains: colornames.Darkkhaki,
			rules.TerrainDesert: colornames.Navajowhite,
			rules.TerrainTundra: colornames.Silver,
			rules.TerrainSnow:   colornames.Whitesmoke,
			rules.TerrainCoast:  colornames.Skyblue,
			rules.TerrainOcean:  colornames.Steelblue,
		},
		River:     colornames.Royalblue,
		Districts: colornames.Black,
		CityRing:  colornames.Crimson,
		Mountain:  colornames.Dimgray,
		Hills:     colornames.Gray,
	}
}

// districtGlyphs labels districts on the rendered map.
var districtGlyphs = map[rules.District]string{
	rules.DistrictCityCenter:      "CC",
	rules.DistrictCampus:          "CA",
	rules.DistrictHolySite:        "HS",
	rules.DistrictTheaterSquare:   "TS",
	rules.DistrictCommercialHub:   "CH",
	rules.DistrictHarbor:          "HB",
	rules.DistrictIndustrialZone:  "IZ",
	rules.DistrictPreserve:        "PR",
	rules.DistrictGovernmentPlaza: "GP",
	rules.DistrictAqueduct:        "AQ",
	rules.DistrictDam:             "DM",
	rules.DistrictCanal:           "CN",
	rules.DistrictWaterPark:       "WP",
}

// SavePNG renders the grid with the default scheme.
func SavePNG(g *world.Grid, path string, hexSize float64) error {
	return SavePNGAdv(g, path, hexSize, DefaultScheme())
}

// SavePNGAdv renders the grid with a custom scheme.
func SavePNGAdv(g *world.Grid, path string, hexSize float64, scheme *ColourScheme) error {
	tiles := g.Tiles()
	if len(tiles) == 0 {
		return fmt.Errorf("render: empty grid")
	}

	// Bounds in pixel space, padded by one hex.
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, t := range tiles {
		x, y := t.Coord.ToPixel(hexSize)
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	pad := 2 * hexSize
	width := int(maxX - minX + 2*pad)
	height := int(maxY - minY + 2*pad)

	dc := gg.NewContext(width, height)
	dc.SetColor(colornames.White)
	dc.Clear()

	center := func(t *world.Tile) (float64, float64) {
		x, y := t.Coord.ToPixel(hexSize)
		return x - minX + pad, y - minY + pad
	}

	// Terrain fill first, then overlays, then rivers on top.
	for _, t := range tiles {
		cx, cy := center(t)
		hexPath(dc, cx, cy, hexSize)
		dc.SetColor(scheme.Terrains[t.Terrain])
		dc.FillPreserve()
		dc.SetColor(colornames.Darkslategray)
		dc.SetLineWidth(1)
		dc.Stroke()

		switch {
		case t.IsMountain():
			dc.SetColor(scheme.Mountain)
			dc.DrawRegularPolygon(3, cx, cy, hexSize*0.45, -math.Pi/2)
			dc.Fill()
		case t.IsHill():
			dc.SetColor(scheme.Hills)
			dc.DrawArc(cx, cy+hexSize*0.2, hexSize*0.35, math.Pi, 2*math.Pi)
			dc.Fill()
		}

		if t.HasDistrict() {
			dc.SetColor(scheme.Districts)
			dc.DrawStringAnchored(districtGlyphs[t.District], cx, cy, 0.5, 0.5)
		}
		if t.IsCityCenter {
			dc.SetColor(scheme.CityRing)
			dc.SetLineWidth(2)
			dc.DrawCircle(cx, cy, hexSize*0.7)
			dc.Stroke()
		}
	}

	dc.SetColor(scheme.River)
	dc.SetLineWidth(3)
	for _, t := range tiles {
		if !t.HasRiver() {
			continue
		}
		cx, cy := center(t)
		for _, e := range t.RiverEdges.Edges() {
			x1, y1 := hexCorner(cx, cy, hexSize, float64(e*60-30))
			x2, y2 := hexCorner(cx, cy, hexSize, float64(e*60+30))
			dc.DrawLine(x1, y1, x2, y2)
			dc.Stroke()
		}
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}

// hexPath traces a pointy-top hexagon around (cx, cy).
func hexPath(dc *gg.Context, cx, cy, size float64) {
	for i := 0; i < 6; i++ {
		x, y := hexCorner(cx, cy, size, float64(i*60+30))
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

// hexCorner returns the corner of a pointy-top hex at the given angle in
// degrees.
func hexCorner(cx, cy, size, angleDeg float64) (float64, float64) {
	rad := angleDeg * math.Pi / 180
	return cx + size*math.Cos(rad), cy + size*math.Sin(rad)
}
