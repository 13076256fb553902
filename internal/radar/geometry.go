// Package radar projects a five-element profile onto a polar pentagon and draws
// it onto a 2D surface.
package radar

import (
	"math"
	"strings"

	"github.com/jonathan/elemental-vibe/internal/elements"
)

// DefaultSize is the default square drawing size in pixels.
const DefaultSize = 320

// Point is a position on the drawing surface. Y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vertex is one projected axis of the profile
type Vertex struct {
	Axis     elements.Axis `json:"axis"`
	Angle    float64       `json:"angle"`
	Score    int           `json:"score"`
	Radius   float64       `json:"radius"`
	Point    Point         `json:"point"`
	Label    Point         `json:"label"`
	Dominant bool          `json:"dominant"`
	Color    string        `json:"color"`
}

// Name is the upper-case label text of the vertex.
func (v Vertex) Name() string {
	return strings.ToUpper(string(v.Axis))
}

// Layout is the complete geometry of one radar chart.
type Layout struct {
	Size      float64   `json:"size"`
	Center    Point     `json:"center"`
	MaxRadius float64   `json:"max_radius"`
	Rings     [][]Point `json:"rings"`
	Spokes    []Point   `json:"spokes"`
	Polygon   []Point   `json:"polygon"`
	Vertices  []Vertex  `json:"vertices"`
}

// Options controls the projection
type Options struct {
	Padding     float64 `json:"padding" validate:"gte=0"`
	Rings       int     `json:"rings" validate:"gte=0,lte=20"`
	LabelOffset float64 `json:"label_offset" validate:"gte=0"`
}

// DefaultOptions leaves room for labels around a five-ring grid.
func DefaultOptions() Options {
	return Options{Padding: 55, Rings: 5, LabelOffset: 28}
}

type axisSpec struct {
	axis  elements.Axis
	angle float64
	color string
}

// axes in clockwise drawing order, starting at the top
var axes = [...]axisSpec{
	{elements.Fire, -90, "#ff6b6b"},
	{elements.Wood, -18, "#95e1d3"},
	{elements.Water, 54, "#4ecdc4"},
	{elements.Metal, 126, "#e0e0e0"},
	{elements.Earth, 198, "#c7956d"},
}

// AxisColor returns the chart color of an axis.
func AxisColor(a elements.Axis) string {
	for _, ax := range axes {
		if ax.axis == a {
			return ax.color
		}
	}
	return "#ffffff"
}

func polar(center Point, angle, radius float64) Point {
	rad := angle * math.Pi / 180
	return Point{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y + radius*math.Sin(rad),
	}
}

// scoreRadius maps a score linearly onto [0, maxRadius].
func scoreRadius(score int, maxRadius float64) float64 {
	r := float64(score) / 100 * maxRadius
	return math.Max(0, math.Min(r, maxRadius))
}

// Project computes the chart geometry of p on a size x size surface. Zero
// options fields are replaced by DefaultOptions. It never fails.
func Project(p elements.Profile, size float64, opts Options) Layout {
	def := DefaultOptions()
	if opts.Padding == 0 {
		opts.Padding = def.Padding
	}
	if opts.Rings == 0 {
		opts.Rings = def.Rings
	}
	if opts.LabelOffset == 0 {
		opts.LabelOffset = def.LabelOffset
	}
	if size < 0 {
		size = 0
	}

	center := Point{X: size / 2, Y: size / 2}
	maxRadius := math.Max(0, (size-2*opts.Padding)/2)
	primary, secondary := elements.Dominant(p)

	layout := Layout{
		Size:      size,
		Center:    center,
		MaxRadius: maxRadius,
		Rings:     make([][]Point, 0, opts.Rings),
		Spokes:    make([]Point, 0, len(axes)),
		Polygon:   make([]Point, 0, len(axes)),
		Vertices:  make([]Vertex, 0, len(axes)),
	}

	for level := 1; level <= opts.Rings; level++ {
		radius := maxRadius * float64(level) / float64(opts.Rings)
		ring := make([]Point, 0, len(axes))
		for _, ax := range axes {
			ring = append(ring, polar(center, ax.angle, radius))
		}
		layout.Rings = append(layout.Rings, ring)
	}

	for _, ax := range axes {
		score := p.Score(ax.axis)
		radius := scoreRadius(score, maxRadius)
		pt := polar(center, ax.angle, radius)

		layout.Spokes = append(layout.Spokes, polar(center, ax.angle, maxRadius))
		layout.Polygon = append(layout.Polygon, pt)
		layout.Vertices = append(layout.Vertices, Vertex{
			Axis:     ax.axis,
			Angle:    ax.angle,
			Score:    score,
			Radius:   radius,
			Point:    pt,
			Label:    polar(center, ax.angle, maxRadius+opts.LabelOffset),
			Dominant: ax.axis == primary || ax.axis == secondary,
			Color:    ax.color,
		})
	}
	return layout
}

// DominantAxes returns the axes marked dominant in drawing order.
func (l Layout) DominantAxes() []elements.Axis {
	var out []elements.Axis
	for _, v := range l.Vertices {
		if v.Dominant {
			out = append(out, v.Axis)
		}
	}
	return out
}
