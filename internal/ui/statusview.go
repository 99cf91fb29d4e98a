package ui

import (
	"fmt"

	"asciiline/internal/geo"
	"asciiline/internal/overlay"
	"asciiline/internal/render"

	"github.com/gdamore/tcell/v2"
)

// helpText lists the key bindings shown in the status panel
const helpText = "l line  a add  x remove  c clear  s style  e export  arrows pan  +/- zoom  q quit"

// StatusView is the bottom panel: distance, overlay style, map center and the
// result of the last action
type StatusView struct {
	distance string
	style    overlay.Style
	center   geo.Coordinate
	message  string
	x, y     int
	width    int
	height   int
}

// statusHeight is the panel height including its border
const statusHeight = 5

// NewStatusView creates a new status view
func NewStatusView(x, y, width int) *StatusView {
	return &StatusView{
		x:      x,
		y:      y,
		width:  width,
		height: statusHeight,
	}
}

// Update sets the values shown on the next draw
func (s *StatusView) Update(distance string, style overlay.Style, center geo.Coordinate) {
	s.distance = distance
	s.style = style
	s.center = center
}

// SetMessage shows the outcome of the last user action
func (s *StatusView) SetMessage(format string, args ...any) {
	s.message = fmt.Sprintf(format, args...)
}

// Message returns the message currently shown
func (s *StatusView) Message() string {
	return s.message
}

// Draw renders the status view onto the canvas
func (s *StatusView) Draw(canvas *render.Canvas) {
	canvas.DrawPanel(s.x, s.y, s.width, s.height, " asciiline ", render.StyleLabel)

	lines := []string{
		fmt.Sprintf("Distance: %s   Style: %s   Center: %s", s.distance, s.style, s.center),
		s.message,
		helpText,
	}

	for i, line := range lines {
		style := render.StyleLabel
		if i == len(lines)-1 {
			style = render.StyleDim
		}
		s.drawLine(canvas, s.x+2, s.y+1+i, line, style)
	}
}

// drawLine draws a single line of text clipped to the panel
func (s *StatusView) drawLine(canvas *render.Canvas, x, y int, text string, style tcell.Style) {
	runes := []rune(text)
	for i := 0; i < min(len(runes), s.width-4); i++ {
		canvas.Set(x+i, y, runes[i], style)
	}
}

// UpdateDimensions updates the view dimensions
func (s *StatusView) UpdateDimensions(x, y, width int) {
	s.x = x
	s.y = y
	s.width = width
}
