package chart

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/BerylCAtieno/impact-assessment/internal/models"
)

// Brand colours.
const (
	ColorPrimary    = "#1A3A5F"
	ColorSecondary  = "#5D8A78"
	ColorBackground = "#F4F4F4"
)

// ScaleMax is the outer ring of the radial axis: three items at 6 each.
const ScaleMax = 18

// Radar draws a closed polar plot of the five sub-scores as SVG.
type Radar struct {
	Size  int
	Rings []int
}

// NewRadar returns a 400px radar with rings every 6 points.
func NewRadar() *Radar {
	return &Radar{
		Size:  400,
		Rings: []int{6, 12, ScaleMax},
	}
}

// Render draws the chart. Axes follow models.Dimensions, the first at twelve
// o'clock, clockwise.
func (r *Radar) Render(result models.ScoreResult) ([]byte, error) {
	if r.Size <= 0 {
		return nil, fmt.Errorf("invalid chart size %d", r.Size)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)

	center := r.Size / 2
	radius := float64(r.Size) * 0.35
	n := len(models.Dimensions)

	point := func(axis int, value float64) (int, int) {
		angle := -math.Pi/2 + 2*math.Pi*float64(axis)/float64(n)
		dist := radius * value / ScaleMax
		return center + int(math.Round(dist*math.Cos(angle))), center + int(math.Round(dist*math.Sin(angle)))
	}

	canvas.Start(r.Size, r.Size)
	canvas.Rect(0, 0, r.Size, r.Size, "fill:"+ColorBackground)

	for _, ring := range r.Rings {
		xs, ys := make([]int, n), make([]int, n)
		for i := range models.Dimensions {
			xs[i], ys[i] = point(i, float64(ring))
		}
		canvas.Polygon(xs, ys, "fill:none;stroke:#CCCCCC;stroke-width:1")
		lx, ly := point(0, float64(ring))
		canvas.Text(lx+4, ly-2, strconv.Itoa(ring), "font-size:9px;fill:#888888")
	}

	xs, ys := make([]int, n), make([]int, n)
	for i, d := range models.Dimensions {
		ax, ay := point(i, ScaleMax)
		canvas.Line(center, center, ax, ay, "stroke:#CCCCCC;stroke-width:1")

		lx, ly := point(i, ScaleMax*1.18)
		canvas.Text(lx, ly, d.String(), "font-size:12px;text-anchor:middle;dominant-baseline:middle;fill:"+ColorPrimary)

		xs[i], ys[i] = point(i, clamp(result.Score(d)))
	}

	canvas.Polygon(xs, ys, "fill:"+ColorSecondary+";fill-opacity:0.4;stroke:"+ColorPrimary+";stroke-width:2")
	canvas.End()

	out := buf.Bytes()
	// Drop the XML prolog so the document can be inlined in HTML.
	if i := bytes.Index(out, []byte("<svg")); i > 0 {
		out = out[i:]
	}
	return out, nil
}

func clamp(score int) float64 {
	return float64(max(0, min(score, ScaleMax)))
}
