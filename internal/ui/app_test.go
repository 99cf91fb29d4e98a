package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"asciiline/internal/export"
	"asciiline/internal/geo"
	"asciiline/internal/overlay"
	"asciiline/internal/report"
	"asciiline/internal/viewport"
	"asciiline/internal/waypoint"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testViewport = geo.Viewport{
	Center:        geo.Coordinate{Latitude: 37.78825, Longitude: -122.4324},
	LatitudeSpan:  0.0922,
	LongitudeSpan: 0.0421,
}

func newTestApp(t *testing.T, exporter *export.Exporter) (*App, tcell.SimulationScreen, *waypoint.Store) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	store := waypoint.NewStore()
	controller := viewport.NewController(testViewport, store)

	app, err := NewApp(screen, controller, store, nil, 2.0, overlay.StyleLine, exporter)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	return app, screen, store
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func specialKey(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func press(t *testing.T, app *App, events ...tcell.Event) {
	t.Helper()
	for _, ev := range events {
		require.True(t, app.handleEvent(ev))
	}
}

func screenText(screen tcell.SimulationScreen) string {
	cells, width, _ := screen.GetContents()

	var b strings.Builder
	for i, cell := range cells {
		if len(cell.Runes) > 0 {
			b.WriteRune(cell.Runes[0])
		} else {
			b.WriteRune(' ')
		}
		if (i+1)%width == 0 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func TestNewApp_FitsViewportToScreen(t *testing.T) {
	app, screen, _ := newTestApp(t, nil)

	width, height := screen.Size()
	want := testViewport.WithAspect(width, height, 2.0)

	assert.Equal(t, want, app.mapView.Viewport())
	assert.Equal(t, want, app.controller.Viewport())
}

func TestApp_DrawLineWhilePanning(t *testing.T) {
	app, _, store := newTestApp(t, nil)

	press(t, app, runeKey('l'))
	require.Equal(t, 1, store.Len())
	first := store.Snapshot()[0]
	assert.Equal(t, testViewport.Center, first.Coordinate)

	// The only waypoint rides the center
	press(t, app, specialKey(tcell.KeyUp))
	center := app.controller.Viewport().Center
	assert.InDelta(t, testViewport.Center.Latitude+panStep*testViewport.LatitudeSpan, center.Latitude, 1e-9)
	assert.Equal(t, center, store.Snapshot()[0].Coordinate)
	assert.Equal(t, first.ID, store.Snapshot()[0].ID)

	press(t, app, runeKey('a'), specialKey(tcell.KeyRight))
	waypoints := store.Snapshot()
	require.Len(t, waypoints, 2)
	assert.Equal(t, center, waypoints[0].Coordinate)
	assert.Equal(t, app.controller.Viewport().Center, waypoints[1].Coordinate)
}

func TestApp_StartLineTwice(t *testing.T) {
	app, _, store := newTestApp(t, nil)

	press(t, app, runeKey('l'), runeKey('l'))
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "Line already started", app.statusView.Message())
}

func TestApp_RemoveAndReset(t *testing.T) {
	app, _, store := newTestApp(t, nil)

	press(t, app, specialKey(tcell.KeyBackspace2))
	assert.Equal(t, "No waypoints to remove", app.statusView.Message())

	press(t, app, runeKey('l'), runeKey('a'), runeKey('a'), runeKey('x'))
	assert.Equal(t, 2, store.Len())

	press(t, app, runeKey('c'))
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, "Cleared 2 waypoints", app.statusView.Message())
}

func TestApp_Zoom(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	before := app.mapView.Viewport()

	press(t, app, runeKey('+'))
	assert.InDelta(t, before.LatitudeSpan*zoomInFactor, app.controller.Viewport().LatitudeSpan, 1e-12)

	press(t, app, specialKey(tcell.KeyPgDn))
	assert.InDelta(t, before.LatitudeSpan*zoomInFactor*zoomOutFactor, app.controller.Viewport().LatitudeSpan, 1e-12)
}

func TestApp_HomeRecentersAndMovesLastWaypoint(t *testing.T) {
	app, _, store := newTestApp(t, nil)

	press(t, app, runeKey('l'), specialKey(tcell.KeyLeft), specialKey(tcell.KeyDown))
	require.NotEqual(t, testViewport.Center, store.Snapshot()[0].Coordinate)

	press(t, app, specialKey(tcell.KeyHome))
	assert.Equal(t, testViewport.Center, app.controller.Viewport().Center)
	assert.Equal(t, testViewport.Center, store.Snapshot()[0].Coordinate)
}

func TestApp_ClickRecenters(t *testing.T) {
	app, screen, store := newTestApp(t, nil)
	width, height := screen.Size()

	press(t, app, runeKey('l'))

	x, y := width/2+10, height/2-3
	want := geo.NewProjection(app.mapView.Viewport(), width, height).Unproject(x, y)

	press(t, app, tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	assert.Equal(t, want, app.controller.Viewport().Center)
	assert.Equal(t, want, store.Snapshot()[0].Coordinate)

	// Moving the mouse without a button pressed does nothing
	press(t, app, tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, want, app.controller.Viewport().Center)
}

func TestApp_CycleStyle(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	press(t, app, runeKey('s'))
	assert.Equal(t, overlay.StylePolygon, app.style)
	press(t, app, runeKey('s'), runeKey('s'))
	assert.Equal(t, overlay.StyleLine, app.style)
}

func TestApp_RenderShowsDistance(t *testing.T) {
	app, screen, store := newTestApp(t, nil)

	app.render()
	assert.Contains(t, screenText(screen), "Distance: N/A")

	press(t, app, runeKey('l'), runeKey('a'), specialKey(tcell.KeyUp))
	app.render()

	label := report.CurrentDistanceLabel(store.Snapshot())
	assert.NotEqual(t, report.NotAvailable, label)
	assert.Contains(t, screenText(screen), "Distance: "+label)
	assert.Contains(t, screenText(screen), "Waypoints (2)")
}

func TestApp_Export(t *testing.T) {
	exporter, err := export.NewExporter(t.TempDir())
	require.NoError(t, err)
	app, _, _ := newTestApp(t, exporter)

	press(t, app, runeKey('e'))
	assert.Equal(t, "Nothing to export", app.statusView.Message())

	press(t, app, runeKey('l'), specialKey(tcell.KeyUp), runeKey('a'), runeKey('e'))
	assert.True(t, strings.HasPrefix(app.statusView.Message(), "Exported 2 waypoints"))

	for _, name := range []string{export.KMLFile, export.GeoJSONFile, export.PolylineFile} {
		_, err := os.Stat(filepath.Join(exporter.Dir(), name))
		assert.NoError(t, err, name)
	}
}

func TestApp_ExportDisabled(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	press(t, app, runeKey('l'), runeKey('e'))
	assert.Equal(t, "Export is disabled", app.statusView.Message())
}

func TestApp_Resize(t *testing.T) {
	app, screen, _ := newTestApp(t, nil)

	screen.SetSize(120, 40)
	press(t, app, tcell.NewEventResize(120, 40))

	assert.Equal(t, 120, app.mapView.Canvas().Width())
	assert.Equal(t, 40, app.mapView.Canvas().Height())
	assert.Equal(t, testViewport.WithAspect(120, 40, 2.0), app.controller.Viewport())
}

func TestApp_Quit(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	assert.False(t, app.handleEvent(runeKey('q')))

	select {
	case <-app.quit:
	default:
		t.Fatal("quit channel not closed")
	}
}
