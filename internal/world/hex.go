// Package world provides the hex grid: axial coordinate math, the validated
// Tile type, the Grid, its snapshot codec, and map generation.
// Uses axial coordinates (q, r), pointy-top orientation.
package world

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// HexCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// CubeCoord is the full three-axis cube coordinate, used only for distance
// and rounding math. Invariant: Q + R + S = 0.
type CubeCoord struct {
	Q, R, S int
}

// Cube converts an axial coordinate to cube coordinates.
func (h HexCoord) Cube() CubeCoord {
	return CubeCoord{Q: h.Q, R: h.R, S: -h.Q - h.R}
}

// Axial drops the derived s component.
func (c CubeCoord) Axial() HexCoord {
	return HexCoord{Q: c.Q, R: c.R}
}

// HexDirections defines the six neighbor offsets in axial coordinates.
// Index 0 points east (+q); indices 1-5 continue counter-clockwise.
// River-edge indices and the ring walk use this same index order.
var HexDirections = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: 0, R: 1},
	{Q: -1, R: 1},
	{Q: -1, R: 0},
	{Q: 0, R: -1},
	{Q: 1, R: -1},
}

// Add returns h offset by d.
func (h HexCoord) Add(d HexCoord) HexCoord {
	return HexCoord{Q: h.Q + d.Q, R: h.R + d.R}
}

// Neighbor returns the adjacent coordinate in direction i (0-5).
func (h HexCoord) Neighbor(i int) HexCoord {
	return h.Add(HexDirections[i])
}

// Neighbors returns the six adjacent hex coordinates in direction order.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range HexDirections {
		result[i] = h.Add(dir)
	}
	return result
}

// Distance returns the hex distance between two coordinates: the maximum of
// the three absolute differences in cube coordinates.
func Distance(a, b HexCoord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

// HexesInRange returns every coordinate within the given distance of center,
// including center itself. Deterministic order: ascending dq, then dr.
func HexesInRange(center HexCoord, radius int) []HexCoord {
	if radius < 0 {
		return nil
	}
	result := make([]HexCoord, 0, 1+3*radius*(radius+1))
	for dq := -radius; dq <= radius; dq++ {
		lo := -radius
		if -dq-radius > lo {
			lo = -dq - radius
		}
		hi := radius
		if -dq+radius < hi {
			hi = -dq + radius
		}
		for dr := lo; dr <= hi; dr++ {
			result = append(result, HexCoord{Q: center.Q + dq, R: center.R + dr})
		}
	}
	return result
}

// HexRing returns the coordinates at exactly the given distance from center,
// walking the six directions from a fixed starting corner. Radius 0 returns
// just the center.
func HexRing(center HexCoord, radius int) []HexCoord {
	if radius < 0 {
		return nil
	}
	if radius == 0 {
		return []HexCoord{center}
	}
	result := make([]HexCoord, 0, 6*radius)
	// Start at the corner reached by walking direction 4 from center.
	cur := center
	for i := 0; i < radius; i++ {
		cur = cur.Add(HexDirections[4])
	}
	for dir := 0; dir < 6; dir++ {
		for step := 0; step < radius; step++ {
			result = append(result, cur)
			cur = cur.Neighbor(dir)
		}
	}
	return result
}

// Key returns the string map key for this coordinate. Key and ParseKey form
// a bijection: ParseKey(h.Key()) == h for every coordinate.
func (h HexCoord) Key() string {
	return strconv.Itoa(h.Q) + "," + strconv.Itoa(h.R)
}

// ParseKey inverts Key.
func ParseKey(key string) (HexCoord, error) {
	qs, rs, ok := strings.Cut(key, ",")
	if !ok {
		return HexCoord{}, fmt.Errorf("parse hex key %q: missing separator", key)
	}
	q, err := strconv.Atoi(qs)
	if err != nil {
		return HexCoord{}, fmt.Errorf("parse hex key %q: %w", key, err)
	}
	r, err := strconv.Atoi(rs)
	if err != nil {
		return HexCoord{}, fmt.Errorf("parse hex key %q: %w", key, err)
	}
	return HexCoord{Q: q, R: r}, nil
}

// ToPixel projects the coordinate to pointy-top pixel space with the given
// hex size. Used by the renderer, not by the grid logic.
func (h HexCoord) ToPixel(size float64) (x, y float64) {
	x = size * (math.Sqrt(3)*float64(h.Q) + math.Sqrt(3)/2*float64(h.R))
	y = size * 1.5 * float64(h.R)
	return x, y
}

// FromPixel inverts ToPixel, rounding to the nearest hex.
func FromPixel(x, y, size float64) HexCoord {
	fq := (math.Sqrt(3)/3*x - y/3) / size
	fr := (2.0 / 3.0 * y) / size
	return cubeRound(fq, fr, -fq-fr)
}

// cubeRound rounds fractional cube coordinates to the nearest hex: round
// each component, then recompute the component with the largest rounding
// error so that q + r + s = 0 holds.
func cubeRound(fq, fr, fs float64) HexCoord {
	q := math.Round(fq)
	r := math.Round(fr)
	s := math.Round(fs)

	dq := math.Abs(q - fq)
	dr := math.Abs(r - fr)
	ds := math.Abs(s - fs)

	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
		// Largest error in s: correcting s leaves q and r untouched.
	}
	return HexCoord{Q: int(q), R: int(r)}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
