package viz

import (
	"math"
	"strings"
)

const brailleBlank = 0x2800

// Braille cells are 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed in dot coordinates. A canvas of
// Width x Height cells has (2*Width) x (4*Height) dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dot coordinates.
func (c *Canvas) Dots() (int, int) {
	return c.Width * 2, c.Height * 4
}

// Set turns on the dot at (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= dotBits[y%4][x%2]
}

func (c *Canvas) isSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&dotBits[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// Line draws a segment with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Circle draws a dotted circle of radius r around (cx, cy).
func (c *Canvas) Circle(cx, cy, r, dots int) {
	for k := 0; k < dots; k++ {
		a := 2 * math.Pi * float64(k) / float64(dots)
		x, y := polar(cx, cy, float64(r), a)
		c.Set(x, y)
	}
}

// Blob marks a plus-shaped cluster of dots centred on (x, y).
func (c *Canvas) Blob(x, y int) {
	c.Set(x, y)
	c.Set(x-1, y)
	c.Set(x+1, y)
	c.Set(x, y-1)
	c.Set(x, y+1)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// polar converts an angle measured counter-clockwise from the x axis to dot
// coordinates, with y growing downward.
func polar(cx, cy int, r, angle float64) (int, int) {
	x := float64(cx) + r*math.Cos(angle)
	y := float64(cy) - r*math.Sin(angle)
	return int(math.Round(x)), int(math.Round(y))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
