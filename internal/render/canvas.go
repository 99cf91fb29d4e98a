package render

import (
	"github.com/gdamore/tcell/v2"
)

// Canvas is an off-screen grid of styled cells. The map, the overlay and the
// panels are drawn here, then copied to the screen in one pass.
type Canvas struct {
	width  int
	height int
	cells  [][]Cell
}

// Cell represents a single character cell with style
type Cell struct {
	Char  rune
	Style tcell.Style
}

var blank = Cell{Char: ' ', Style: tcell.StyleDefault}

// NewCanvas creates a new blank canvas
func NewCanvas(width, height int) *Canvas {
	width = max(width, 0)
	height = max(height, 0)

	cells := make([][]Cell, height)
	for i := range cells {
		cells[i] = make([]Cell, width)
		for j := range cells[i] {
			cells[i][j] = blank
		}
	}

	return &Canvas{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// Set sets the character and style at the given position
// Coordinates are 0-indexed with (0,0) at top-left; off-canvas writes are dropped
func (c *Canvas) Set(x, y int, char rune, style tcell.Style) {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		c.cells[y][x] = Cell{Char: char, Style: style}
	}
}

// Get retrieves the cell at the given position
func (c *Canvas) Get(x, y int) Cell {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		return c.cells[y][x]
	}
	return blank
}

// Clear resets the entire canvas to spaces with default style
func (c *Canvas) Clear() {
	c.FillRect(0, 0, c.width, c.height, ' ', tcell.StyleDefault)
}

// DrawText draws a string at the given position, one rune per cell
func (c *Canvas) DrawText(x, y int, text string, style tcell.Style) {
	i := 0
	for _, char := range text {
		c.Set(x+i, y, char, style)
		i++
	}
}

// DrawPanel draws an opaque bordered box with a centered title
func (c *Canvas) DrawPanel(x, y, width, height int, title string, style tcell.Style) {
	if width < 2 || height < 2 {
		return
	}

	c.FillRect(x+1, y+1, width-2, height-2, ' ', tcell.StyleDefault)

	c.Set(x, y, '┌', style)
	c.Set(x+width-1, y, '┐', style)
	c.Set(x, y+height-1, '└', style)
	c.Set(x+width-1, y+height-1, '┘', style)

	for i := 1; i < width-1; i++ {
		c.Set(x+i, y, '─', style)
		c.Set(x+i, y+height-1, '─', style)
	}

	for i := 1; i < height-1; i++ {
		c.Set(x, y+i, '│', style)
		c.Set(x+width-1, y+i, '│', style)
	}

	if title != "" {
		c.DrawText(x+(width-len([]rune(title)))/2, y, title, style)
	}
}

// FillRect fills a rectangle with a character
func (c *Canvas) FillRect(x, y, width, height int, char rune, style tcell.Style) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			c.Set(x+dx, y+dy, char, style)
		}
	}
}

// Width returns the canvas width
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height
func (c *Canvas) Height() int {
	return c.height
}

// Blit renders the canvas to a tcell screen
func (c *Canvas) Blit(screen tcell.Screen, offsetX, offsetY int) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cell := c.cells[y][x]
			screen.SetContent(offsetX+x, offsetY+y, cell.Char, nil, cell.Style)
		}
	}
}
