package radar

import "strconv"

// Paint describes how a shape is filled and stroked. Empty colors are not drawn.
type Paint struct {
	Fill        string
	FillOpacity float64
	Stroke      string
	StrokeWidth float64
}

// Font describes a centered text label
type Font struct {
	Color string
	Size  float64
	Bold  bool
}

// Surface is a 2D drawing target.
type Surface interface {
	Polygon(points []Point, paint Paint)
	Line(from, to Point, paint Paint)
	Circle(center Point, radius float64, paint Paint)
	Text(at Point, text string, font Font)
}

// Style holds the chart's colors and sizes. Dominant axes get a larger dot
// surrounded by a translucent halo. LabelGap separates the name line from the
// score line.
type Style struct {
	Grid              Paint
	Spoke             Paint
	Area              Paint
	Dot               Paint
	DotRadius         float64
	DominantDotRadius float64
	GlowRadius        float64
	GlowOpacity       float64
	NameFont          Font
	ScoreFont         Font
	LabelGap          float64
}

// DefaultStyle is the dark-background chart style.
func DefaultStyle() Style {
	return Style{
		Grid:              Paint{Stroke: "rgba(255,255,255,0.08)", StrokeWidth: 1},
		Spoke:             Paint{Stroke: "rgba(255,255,255,0.12)", StrokeWidth: 1},
		Area:              Paint{Fill: "rgba(78,205,196,0.2)", Stroke: "#4ecdc4", StrokeWidth: 2},
		Dot:               Paint{Stroke: "#ffffff", StrokeWidth: 1.5},
		DotRadius:         4,
		DominantDotRadius: 6,
		GlowRadius:        12,
		GlowOpacity:       0.35,
		NameFont:          Font{Size: 9, Bold: true},
		ScoreFont:         Font{Color: "rgba(255,255,255,0.7)", Size: 8},
		LabelGap:          7,
	}
}

// Render draws layout onto s: grid rings, spokes, the filled score polygon,
// vertex dots and labels, in that order.
func Render(s Surface, layout Layout, style Style) {
	for _, ring := range layout.Rings {
		s.Polygon(ring, style.Grid)
	}
	for _, spoke := range layout.Spokes {
		s.Line(layout.Center, spoke, style.Spoke)
	}
	if len(layout.Polygon) > 0 {
		s.Polygon(layout.Polygon, style.Area)
	}

	for _, v := range layout.Vertices {
		dot := style.Dot
		dot.Fill = v.Color
		radius := style.DotRadius
		if v.Dominant {
			s.Circle(v.Point, style.GlowRadius, Paint{Fill: v.Color, FillOpacity: style.GlowOpacity})
			radius = style.DominantDotRadius
		}
		s.Circle(v.Point, radius, dot)
	}

	for _, v := range layout.Vertices {
		name := style.NameFont
		name.Color = v.Color
		s.Text(Point{X: v.Label.X, Y: v.Label.Y - style.LabelGap}, v.Name(), name)
		s.Text(Point{X: v.Label.X, Y: v.Label.Y + style.LabelGap}, strconv.Itoa(v.Score), style.ScoreFont)
	}
}
