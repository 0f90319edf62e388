package export

import (
	"fmt"
	"io"
	"math"
	"strings"
)

const (
	background = "#0a0a0a"
	ringColor  = "#444466"
	dotColor   = "#00ffff"
	arrowColor = "#ff00ff"
)

// RingSVG draws phases as dots on a unit circle with the order parameter
// vector from the centre, in a size x size image.
func RingSVG(w io.Writer, phases []float64, size int) error {
	if size <= 0 {
		return fmt.Errorf("svg size must be positive, got %d", size)
	}

	c := float64(size) / 2
	radius := c * 0.85
	dotRadius := math.Max(2, float64(size)/120)

	var sb strings.Builder
	header(&sb, size, size)
	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
		c, c, radius, ringColor)

	sumCos, sumSin := 0.0, 0.0
	fmt.Fprintf(&sb, `<g fill="%s">`+"\n", dotColor)
	for _, theta := range phases {
		x, y := c+radius*math.Cos(theta), c-radius*math.Sin(theta)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", x, y, dotRadius)
		sumCos += math.Cos(theta)
		sumSin += math.Sin(theta)
	}
	sb.WriteString("</g>\n")

	if n := float64(len(phases)); n > 0 {
		ox, oy := sumCos/n, sumSin/n
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
			c, c, c+radius*ox, c-radius*oy, arrowColor)
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// OrderSVG plots an order parameter series against time. The y axis always
// spans [0, 1].
func OrderSVG(w io.Writer, times, order []float64, width, height int) error {
	if len(times) < 2 || len(times) != len(order) {
		return fmt.Errorf("order plot needs matching series of at least two samples")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("svg size must be positive, got %dx%d", width, height)
	}

	t0, t1 := times[0], times[len(times)-1]
	span := t1 - t0
	if span == 0 {
		span = 1
	}

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString(`<path fill="none" stroke="` + dotColor + `" stroke-width="1.5" d="M`)
	for i := range times {
		x := (times[i] - t0) / span * float64(width)
		y := float64(height) - math.Max(0, math.Min(1, order[i]))*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}
