package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/spf13/cobra"

	"github.com/olablt/gio-basemaps/basemap"
	"github.com/olablt/gio-basemaps/tiles"
)

const (
	windowTitle = "Free & Open Source Map Viewer (v2.0)"
	// Web Mercator cannot represent latitudes beyond this.
	maxLatitude = 85.0511
)

// options holds the command line flags. The defaults reproduce the
// original fixed configuration.
type options struct {
	lat       float64
	lon       float64
	zoom      int
	basemap   string
	sources   string
	workers   int
	userAgent string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "viewer",
		Short:         "Desktop slippy-map viewer",
		Version:       "2.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.basemap, "basemap", "b", basemap.OpenStreetMap, "initial basemap")
	pf.StringVar(&opts.sources, "sources", "", "YAML file with additional basemaps")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	f := root.Flags()
	f.Float64Var(&opts.lat, "lat", 50.11, "initial center latitude")
	f.Float64Var(&opts.lon, "lon", 8.68, "initial center longitude")
	f.IntVarP(&opts.zoom, "zoom", "z", 7, "initial zoom level")
	f.IntVar(&opts.workers, "workers", 4, "concurrent tile downloads")
	f.StringVar(&opts.userAgent, "user-agent", tiles.DefaultUserAgent, "User-Agent sent to tile servers")

	root.AddCommand(newSourcesCmd(opts), newURLCmd(opts))
	return root
}

func runViewer(cmd *cobra.Command, opts *options) error {
	if opts.lat < -maxLatitude || opts.lat > maxLatitude || opts.lon < -180 || opts.lon > 180 {
		return fmt.Errorf("center %v,%v is outside the map", opts.lat, opts.lon)
	}
	logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(opts)
	if err != nil {
		return err
	}
	src, _ := reg.Active()
	if err := checkZoom(src, opts.zoom); err != nil {
		return err
	}

	go func() {
		w := new(app.Window)
		w.Option(
			app.Title(windowTitle),
			app.Size(unit.Dp(800), unit.Dp(600)),
		)
		if err := run(w, reg, opts, logger); err != nil {
			logger.Error("viewer stopped", "err", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

func newSourcesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the available basemaps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(opts)
			if err != nil {
				return err
			}
			active, _ := reg.Active()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range reg.Names() {
				src, _ := reg.Lookup(name)
				mark := " "
				if name == active.Name {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s %s\t%d-%d\t%s\n", mark, name, src.MinZoom, src.MaxZoom, src.URL)
			}
			return tw.Flush()
		},
	}
}

func newURLCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "url <x> <y> <zoom>",
		Short: "Print the tile URL of the selected basemap",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var coords [3]int
			for i, arg := range args {
				v, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid tile coordinate %q: %w", arg, err)
				}
				coords[i] = v
			}
			reg, err := loadRegistry(opts)
			if err != nil {
				return err
			}
			src, _ := reg.Active()
			addr := basemap.TileAddress{X: coords[0], Y: coords[1], ZoomLevel: coords[2]}
			if err := checkZoom(src, addr.ZoomLevel); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), reg.ResolveURL(src, addr))
			return err
		},
	}
}

// loadRegistry returns the built-in basemaps plus those of --sources, with
// --basemap active.
func loadRegistry(opts *options) (*basemap.Registry, error) {
	reg := basemap.NewDefaultRegistry()
	if opts.sources != "" {
		f, err := os.Open(opts.sources)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		extra, err := basemap.LoadConfig(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opts.sources, err)
		}
		for _, src := range extra {
			if err := reg.Register(src); err != nil {
				return nil, err
			}
		}
	}
	if _, err := reg.Activate(opts.basemap); err != nil {
		return nil, err
	}
	return reg, nil
}

func checkZoom(src basemap.Source, level int) error {
	if level < src.MinZoom || level > src.MaxZoom {
		return fmt.Errorf("zoom level %d outside %s range %d-%d", level, src.Name, src.MinZoom, src.MaxZoom)
	}
	return nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
