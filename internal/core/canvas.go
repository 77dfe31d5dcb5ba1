package core

import "math"

// Canvas is the minimal draw contract the simulation renders through.
// Coordinates are screen-space world units (world minus camera offset).
type Canvas interface {
	// Size returns the drawable area in world units.
	Size() (w, h float64)
	// Clear resets the surface to the given background ink.
	Clear(bg Ink)
	FillRect(x, y, w, h float64, ink Ink)
	FillCircle(cx, cy, r float64, ink Ink)
	Line(x0, y0, x1, y1 float64, ink Ink)
}

// CellCanvas adapts a character Screen to the Canvas contract.
// Each cell covers CellW x CellH world units.
type CellCanvas struct {
	screen *Screen
	cellW  float64
	cellH  float64
}

// NewCellCanvas creates a canvas drawing into screen at the given scale.
func NewCellCanvas(screen *Screen, cellW, cellH float64) *CellCanvas {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return &CellCanvas{screen: screen, cellW: cellW, cellH: cellH}
}

// Screen returns the underlying cell buffer.
func (c *CellCanvas) Screen() *Screen {
	return c.screen
}

// Size returns the screen dimensions converted to world units.
func (c *CellCanvas) Size() (float64, float64) {
	if c == nil || c.screen == nil {
		return 0, 0
	}
	return float64(c.screen.Width()) * c.cellW, float64(c.screen.Height()) * c.cellH
}

// Clear fills the whole screen with the background ink.
func (c *CellCanvas) Clear(bg Ink) {
	c.screen.FillCells(bg.Glyph, bg.Color)
}

// FillRect fills every cell the rectangle touches.
// Rectangles thinner than a cell still occupy the cell they start in.
func (c *CellCanvas) FillRect(x, y, w, h float64, ink Ink) {
	x0, y0 := c.cell(x, y)
	x1 := int(math.Ceil((x + w) / c.cellW))
	y1 := int(math.Ceil((y + h) / c.cellH))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			c.screen.SetCell(cx, cy, ink.Glyph, ink.Color)
		}
	}
}

// FillCircle fills the cells under the circle's bounding box.
func (c *CellCanvas) FillCircle(cx, cy, r float64, ink Ink) {
	c.FillRect(cx-r, cy-r, 2*r, 2*r, ink)
}

// Line plots a line with a simple DDA walk over cells.
func (c *CellCanvas) Line(x0, y0, x1, y1 float64, ink Ink) {
	ax, ay := c.cell(x0, y0)
	bx, by := c.cell(x1, y1)
	steps := Abs(bx - ax)
	if dy := Abs(by - ay); dy > steps {
		steps = dy
	}
	if steps == 0 {
		c.screen.SetCell(ax, ay, ink.Glyph, ink.Color)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		px := int(math.Round(float64(ax) + t*float64(bx-ax)))
		py := int(math.Round(float64(ay) + t*float64(by-ay)))
		c.screen.SetCell(px, py, ink.Glyph, ink.Color)
	}
}

// cell converts world units to the cell containing that point.
func (c *CellCanvas) cell(x, y float64) (int, int) {
	return int(math.Floor(x / c.cellW)), int(math.Floor(y / c.cellH))
}
