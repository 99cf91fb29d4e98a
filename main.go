package main

import (
	"fmt"
	"io"
	"os"

	"asciiline/internal/config"
	"asciiline/internal/debug"
	"asciiline/internal/export"
	"asciiline/internal/geo"
	"asciiline/internal/ui"
	"asciiline/internal/viewport"
	"asciiline/internal/waypoint"

	"github.com/gdamore/tcell/v2"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	ConfigFile    string  `short:"c" long:"config"     env:"ASCIILINE_CONFIG"     description:"Path to YAML configuration file"`
	BasemapDir    string  `short:"b" long:"basemap"    env:"ASCIILINE_BASEMAP"    description:"Directory with Natural Earth shapefiles and landmarks.csv"`
	ExportDir     string  `short:"e" long:"export-dir" env:"ASCIILINE_EXPORT_DIR" description:"Export directory (default: ~/.asciiline/exports)"`
	Style         string  `short:"s" long:"style"      description:"Overlay style: line, polygon or circle"`
	AspectRatio   float64 `short:"a" long:"aspect"     description:"Character aspect ratio - adjust for font width (1.0-4.0)"`
	HighwayDetail int     `short:"H" long:"highways"   description:"Highway detail level - lower shows fewer roads (1-10)"`
	DebugLog      string  `short:"d" long:"debug-log"  env:"ASCIILINE_DEBUG_LOG"  description:"Debug log file (e.g., debug.log)"`
	LogLevel      string  `short:"v" long:"log-level"  env:"ASCIILINE_LOG_LEVEL"  description:"Log level" default:"info" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	os.Exit(run(&opts))
}

// run starts the map and returns the process exit code
func run(opts *Options) int {

	// Set up logging; the debug log outlives the console once the map is up
	var logFile io.Writer
	if opts.DebugLog != "" {
		f, err := os.Create(opts.DebugLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create debug log: %v\n", err)
		} else {
			defer f.Close()
			logFile = f
		}
	}
	if err := debug.Setup(logFile, opts.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}
	applyOverrides(cfg, opts)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return 1
	}

	features := map[geo.FeatureType][]*geo.Feature{}
	if cfg.BasemapDir != "" {
		log.Info().Str("dir", cfg.BasemapDir).Msg("Loading basemap")
		features = geo.NewShapefileLoader(cfg.BasemapDir).LoadAll(cfg.HighwayDetail)
	}

	exporter, err := export.NewExporter(cfg.ExportDir)
	if err != nil {
		log.Warn().Err(err).Msg("Export disabled")
	}

	store := waypoint.NewStore()
	controller := viewport.NewController(cfg.InitialViewport(), store)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Error().Err(err).Msg("Failed to create screen")
		return 1
	}

	log.Info().
		Stringer("viewport", cfg.InitialViewport()).
		Str("style", cfg.Overlay).
		Float64("aspect", cfg.AspectRatio).
		Msg("Starting asciiline")

	app, err := ui.NewApp(screen, controller, store, features, cfg.AspectRatio, cfg.OverlayStyle(), exporter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create application")
		return 1
	}

	// tcell owns the terminal from here on
	debug.Detach()

	// Run with panic recovery to ensure terminal is always restored
	code := 0
	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("Recovered from panic")
				fmt.Fprintf(os.Stderr, "\nPanic: %v\n", r)
				code = 1
			}
		}()

		if err := app.Run(); err != nil {
			log.Error().Err(err).Msg("Application stopped")
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			code = 1
		}
	}()

	log.Info().Int("waypoints", store.Len()).Msg("Exiting")
	if debug.Enabled() {
		fmt.Printf("Debug log written to %s\n", opts.DebugLog)
	}
	return code
}

// applyOverrides copies the options given on the command line over cfg
func applyOverrides(cfg *config.Config, opts *Options) {
	if opts.BasemapDir != "" {
		cfg.BasemapDir = opts.BasemapDir
	}
	if opts.ExportDir != "" {
		cfg.ExportDir = opts.ExportDir
	}
	if opts.Style != "" {
		cfg.Overlay = opts.Style
	}
	if opts.AspectRatio != 0 {
		cfg.AspectRatio = opts.AspectRatio
	}
	if opts.HighwayDetail != 0 {
		cfg.HighwayDetail = opts.HighwayDetail
	}
}
