// Command goview renders an HTML file into an interactive window.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"go-view/browser"
	"go-view/config"
	"go-view/font"
	"go-view/render"
)

func main() {
	cmd := &cli.Command{
		Name:      "goview",
		Usage:     "render an HTML document with styles, layout and text selection",
		ArgsUsage: "<file.html>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
			&cli.IntFlag{Name: "width", Usage: "window width (overrides config)"},
			&cli.IntFlag{Name: "height", Usage: "window height (overrides config)"},
			&cli.StringSliceFlag{Name: "css", Usage: "extra stylesheet file(s)"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one HTML file argument")
	}

	logger, err := newLogger(cmd.Bool("verbose"))
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	conf, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if w := cmd.Int("width"); w > 0 {
		conf.Window.Width = int(w)
	}
	if h := cmd.Int("height"); h > 0 {
		conf.Window.Height = int(h)
	}

	fonts, err := loadFonts(conf, logger)
	if err != nil {
		return err
	}

	app := browser.NewApp(logger, fonts, conf.Window.Width, conf.Window.Height)

	var sheetErrs error
	for _, path := range append(conf.Stylesheets, cmd.StringSlice("css")...) {
		data, err := os.ReadFile(path)
		if err != nil {
			sheetErrs = multierr.Append(sheetErrs, err)
			continue
		}
		app.AddStylesheet(string(data))
	}
	if sheetErrs != nil {
		logger.Warn("some stylesheets failed to load", zap.Error(sheetErrs))
	}

	htmlPath := cmd.Args().First()
	raw, err := os.ReadFile(htmlPath)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	// Default title; LoadHTML replaces it with the document's <title>.
	ebiten.SetWindowTitle("goview")
	if err := app.LoadHTML(string(raw)); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	ebiten.SetWindowSize(conf.Window.Width, conf.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(app)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

// loadFonts builds the glyph provider from the configured font files. With
// no fonts configured it uses fixed metrics; when fonts are configured and
// none of them loads, it returns an error.
func loadFonts(conf *config.Config, logger *zap.Logger) (font.Provider, error) {
	if len(conf.Fonts) == 0 {
		logger.Warn("no fonts configured, using fixed metrics")
		return font.FixedProvider(0), nil
	}

	lib := render.NewFontLibrary()
	var errs error
	loaded := 0
	for _, fc := range conf.Fonts {
		if err := lib.LoadFile(fc.Family, fc.Path); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		loaded++
	}
	if loaded == 0 {
		if errs != nil {
			return nil, fmt.Errorf("no font could be loaded: %w", errs)
		}
		return font.FixedProvider(0), nil
	}
	if errs != nil {
		logger.Warn("some fonts failed to load", zap.Error(errs))
	}
	return lib, nil
}
