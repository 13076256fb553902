package radar

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/jonathan/elemental-vibe/internal/elements"
)

// SVG is a Surface that writes an SVG document. Coordinates are rounded to
// whole pixels; circle radii are not.
type SVG struct {
	canvas *svg.SVG
	w      *errWriter
}

// NewSVG starts a size x size SVG document on w. Call Close to finish it.
func NewSVG(w io.Writer, size int, background string) *SVG {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(size, size)
	if background != "" {
		canvas.Rect(0, 0, size, size, "fill:"+background)
	}
	return &SVG{canvas: canvas, w: ew}
}

// Close ends the document and returns the first write error, if any.
func (s *SVG) Close() error {
	s.canvas.End()
	return s.w.err
}

// Polygon draws a closed shape through points.
func (s *SVG) Polygon(points []Point, paint Paint) {
	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, p := range points {
		xs[i], ys[i] = px(p.X), px(p.Y)
	}
	s.canvas.Polygon(xs, ys, paintStyle(paint, true))
}

// Line draws a segment from from to to.
func (s *SVG) Line(from, to Point, paint Paint) {
	s.canvas.Line(px(from.X), px(from.Y), px(to.X), px(to.Y), paintStyle(paint, false))
}

// Circle draws a circle. The center is rounded and the radius is kept as given.
func (s *SVG) Circle(center Point, radius float64, paint Paint) {
	fmt.Fprintf(s.canvas.Writer, `<circle cx="%d" cy="%d" r="%s"`, px(center.X), px(center.Y),
		strconv.FormatFloat(radius, 'f', -1, 64))
	if style := paintStyle(paint, true); style != "" {
		fmt.Fprintf(s.canvas.Writer, ` style="%s"`, style)
	}
	fmt.Fprint(s.canvas.Writer, " />\n")
}

// Text draws text centered on at.
func (s *SVG) Text(at Point, text string, font Font) {
	s.canvas.Text(px(at.X), px(at.Y), text, fontStyle(font))
}

// WriteSVG renders p as a complete SVG chart of the given size using the
// default options and style.
func WriteSVG(w io.Writer, p elements.Profile, size int) error {
	surface := NewSVG(w, size, "")
	Render(surface, Project(p, float64(size), DefaultOptions()), DefaultStyle())
	return surface.Close()
}

func px(v float64) int {
	return int(math.Round(v))
}

func paintStyle(p Paint, closed bool) string {
	var parts []string
	switch {
	case p.Fill != "":
		parts = append(parts, "fill:"+p.Fill)
		if p.FillOpacity > 0 {
			parts = append(parts, fmt.Sprintf("fill-opacity:%g", p.FillOpacity))
		}
	case closed:
		parts = append(parts, "fill:none")
	}
	if p.Stroke != "" {
		parts = append(parts, "stroke:"+p.Stroke)
		if p.StrokeWidth > 0 {
			parts = append(parts, fmt.Sprintf("stroke-width:%g", p.StrokeWidth))
		}
		if closed {
			parts = append(parts, "stroke-linejoin:round")
		}
	}
	return strings.Join(parts, ";")
}

func fontStyle(f Font) string {
	parts := []string{
		"font-family:monospace",
		fmt.Sprintf("font-size:%gpx", f.Size),
		"text-anchor:middle",
		"dominant-baseline:middle",
	}
	if f.Bold {
		parts = append(parts, "font-weight:bold")
	}
	if f.Color != "" {
		parts = append(parts, "fill:"+f.Color)
	}
	return strings.Join(parts, ";")
}

// errWriter keeps the first write error since svgo discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
