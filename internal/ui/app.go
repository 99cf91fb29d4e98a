package ui

import (
	"fmt"

	"asciiline/internal/export"
	"asciiline/internal/geo"
	"asciiline/internal/overlay"
	"asciiline/internal/render"
	"asciiline/internal/report"
	"asciiline/internal/viewport"
	"asciiline/internal/waypoint"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
)

// Panel sizes
const (
	listWidth     = 32
	maxListHeight = 12
)

// App is the main application controller
type App struct {
	screen     tcell.Screen
	controller *viewport.Controller
	store      *waypoint.Store
	exporter   *export.Exporter
	mapView    *MapView
	listView   *ListView
	statusView *StatusView
	style      overlay.Style
	initial    geo.Viewport
	quit       chan struct{}
}

// NewApp initializes screen and lays out the map and its panels. Every
// viewport change of the map is reported to controller. exporter may be nil,
// which disables export.
func NewApp(screen tcell.Screen, controller *viewport.Controller, store *waypoint.Store, features map[geo.FeatureType][]*geo.Feature, aspectRatio float64, style overlay.Style, exporter *export.Exporter) (*App, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse()
	screen.Clear()

	width, height := screen.Size()

	initial := controller.Viewport()
	mapView := NewMapView(width, height, initial, features, aspectRatio, controller.OnViewportChanged)

	app := &App{
		screen:     screen,
		controller: controller,
		store:      store,
		exporter:   exporter,
		mapView:    mapView,
		listView:   NewListView(0, 0, listWidth, maxListHeight),
		statusView: NewStatusView(0, 0, width),
		style:      style,
		initial:    initial,
		quit:       make(chan struct{}),
	}
	app.layout(width, height)
	app.statusView.SetMessage("Press l to start a line at the crosshair")

	return app, nil
}

// Run starts the application main loop
func (a *App) Run() error {
	defer a.cleanup()

	events := make(chan tcell.Event, 16)
	go a.screen.ChannelEvents(events, a.quit)

	a.render()

	for {
		select {
		case <-a.quit:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.handleEvent(ev) {
				return nil // Quit requested
			}
			a.render()
		}
	}
}

// render draws the map, the panels and flushes the screen
func (a *App) render() {
	waypoints := a.store.Snapshot()

	a.mapView.Render(overlay.Describe(waypoints, a.style))
	canvas := a.mapView.Canvas()

	a.listView.Update(waypoints)
	a.listView.Draw(canvas)

	a.statusView.Update(report.CurrentDistanceLabel(waypoints), a.style, a.controller.Viewport().Center)
	a.statusView.Draw(canvas)

	canvas.Blit(a.screen, 0, 0)
	a.screen.Show()
}

// handleEvent processes keyboard, mouse and resize events. A left click
// recenters the map on the clicked cell.
// Returns false when the user asked to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		step := panStep
		if ev.Modifiers()&tcell.ModShift != 0 {
			step = finePanStep
		}

		switch ev.Key() {
		case tcell.KeyEscape:
			close(a.quit)
			return false

		case tcell.KeyUp:
			a.mapView.Pan(step, 0)
		case tcell.KeyDown:
			a.mapView.Pan(-step, 0)
		case tcell.KeyLeft:
			a.mapView.Pan(0, -step)
		case tcell.KeyRight:
			a.mapView.Pan(0, step)

		case tcell.KeyPgUp:
			a.mapView.ZoomIn()
		case tcell.KeyPgDn:
			a.mapView.ZoomOut()

		case tcell.KeyHome:
			a.mapView.SetViewport(a.initial)

		case tcell.KeyEnter:
			a.addPoint()

		case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
			a.removeLastPoint()

		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				close(a.quit)
				return false

			case '+', '=':
				a.mapView.ZoomIn()
			case '-', '_':
				a.mapView.ZoomOut()

			case 'l', 'L':
				if a.controller.StartLine() {
					a.statusView.SetMessage("Line started at %s", a.controller.Viewport().Center)
				} else {
					a.statusView.SetMessage("Line already started")
				}

			case 'a', 'A':
				a.addPoint()

			case 'x', 'X':
				a.removeLastPoint()

			case 'c', 'C':
				removed := a.controller.Reset()
				a.statusView.SetMessage("Cleared %d waypoints", removed)

			case 's', 'S':
				a.style = a.style.Next()
				a.statusView.SetMessage("Overlay style: %s", a.style)

			case 'e', 'E':
				a.export()
			}
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			a.mapView.CenterOnCell(x, y)
		}

	case *tcell.EventResize:
		a.handleResize()
	}

	return true
}

func (a *App) addPoint() {
	wp := a.controller.AddPoint()
	a.statusView.SetMessage("Added waypoint %c at %s", render.MarkerRune(a.store.Len()-1), wp.Coordinate)
}

func (a *App) removeLastPoint() {
	if a.controller.RemoveLastPoint() {
		a.statusView.SetMessage("Removed last waypoint")
	} else {
		a.statusView.SetMessage("No waypoints to remove")
	}
}

// export writes the current overlay to the export directory
func (a *App) export() {
	if a.exporter == nil {
		a.statusView.SetMessage("Export is disabled")
		return
	}

	waypoints := a.store.Snapshot()
	if len(waypoints) == 0 {
		a.statusView.SetMessage("Nothing to export")
		return
	}

	result, err := a.exporter.Export(overlay.Describe(waypoints, a.style))
	if err != nil {
		log.Error().Err(err).Msg("Export failed")
		a.statusView.SetMessage("Export failed: %v", err)
		return
	}

	log.Info().
		Str("kml", result.KML).
		Str("geojson", result.GeoJSON).
		Str("polyline", result.Polyline).
		Int("waypoints", len(waypoints)).
		Msg("Exported waypoints")
	a.statusView.SetMessage("Exported %d waypoints to %s", len(waypoints), a.exporter.Dir())
}

// handleResize handles terminal resize events
func (a *App) handleResize() {
	a.screen.Sync()
	width, height := a.screen.Size()

	a.mapView.UpdateDimensions(width, height)
	a.layout(width, height)
}

// layout places the status panel along the bottom and the waypoint list
// above it on the left
func (a *App) layout(width, height int) {
	statusY := max(height-statusHeight, 0)
	a.statusView.UpdateDimensions(0, statusY, width)

	listHeight := min(maxListHeight, statusY)
	a.listView.UpdateDimensions(0, statusY-listHeight, listWidth, listHeight)
}

// cleanup performs cleanup before exit
func (a *App) cleanup() {
	if a.screen != nil {
		a.screen.Fini()
	}
}
