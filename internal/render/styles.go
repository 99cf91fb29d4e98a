package render

import (
	"asciiline/internal/geo"

	"github.com/gdamore/tcell/v2"
)

// Style definitions for basemap features and the waypoint overlay
var (
	StyleStateBorder = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	StyleHighway     = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	StyleRiver       = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	StyleCoastline   = tcell.StyleDefault.Foreground(tcell.ColorDarkBlue)
	StyleCity        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleLandmark    = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	StyleLabel       = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleDim         = tcell.StyleDefault.Foreground(tcell.ColorWhite).Dim(true)

	StyleOutline      = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	StyleCircle       = tcell.StyleDefault.Foreground(tcell.ColorRed)
	StyleMarker       = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	StyleActiveMarker = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen).Bold(true)
	StyleCrosshair    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	StyleListSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// Overlay glyphs
const (
	CharOutline   = '*'
	CharCircle    = 'o'
	CharCrosshair = '+'
)

// GetStyleForFeature returns the appropriate style for a feature type
func GetStyleForFeature(ftype geo.FeatureType) tcell.Style {
	switch ftype {
	case geo.FeatureStateBorder:
		return StyleStateBorder
	case geo.FeatureHighway:
		return StyleHighway
	case geo.FeatureRiver:
		return StyleRiver
	case geo.FeatureCoastline:
		return StyleCoastline
	case geo.FeatureCity:
		return StyleCity
	case geo.FeatureLandmark:
		return StyleLandmark
	default:
		return tcell.StyleDefault
	}
}

// GetCharForFeature returns the character used to draw a feature
func GetCharForFeature(ftype geo.FeatureType) rune {
	switch ftype {
	case geo.FeatureStateBorder:
		return '-'
	case geo.FeatureHighway:
		return '='
	case geo.FeatureRiver:
		return '~'
	case geo.FeatureCoastline:
		return '-'
	case geo.FeatureLandmark:
		return '@'
	default:
		return '·'
	}
}

// MarkerRune labels waypoint i: 1-9, then letters, then '#'
func MarkerRune(i int) rune {
	switch {
	case i < 9:
		return rune('1' + i)
	case i < 9+26:
		return rune('A' + i - 9)
	default:
		return '#'
	}
}
