package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/soypat/slab/render"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global flags
	verbose    bool
	configFile string
)

// Configuration keys. Each can also be set through the environment with
// the SLAB_ prefix, e.g. SLAB_RASTER_DPI=300.
const (
	keyDXFMaxSegment   = "dxf.max-segment"
	keySVGMargin       = "svg.margin"
	keyRasterDPI       = "raster.dpi"
	keyRasterThumbnail = "raster.thumbnail"
	keySTLCells        = "stl.cells"
	keyOut             = "out"
)

var rootCmd = &cobra.Command{
	Use:   "slab",
	Short: "Slab layout geometry and CAD export",
	Long: `Create flat slab layouts (rectangular, L and U shaped parts plus an
optional island), report their net areas and export them for fabrication.

Examples:
  slab new layout.json --shape L                 # Start a new L shaped layout
  slab areas layout.json                         # Net areas of every part
  slab export layout.json --format dxf,svg       # Write DXF and SVG files`,
	Version:       "0.3.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		return loadConfig()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("slab")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./slab.yaml if present)")

	viper.SetDefault(keyDXFMaxSegment, render.DefaultDXFMaxSegment)
	viper.SetDefault(keySVGMargin, render.DefaultSVGMargin)
	viper.SetDefault(keyRasterDPI, render.DefaultDPI)
	viper.SetDefault(keyRasterThumbnail, 0)
	viper.SetDefault(keySTLCells, render.DefaultSTLCells)
	viper.SetDefault(keyOut, ".")
	viper.SetEnvPrefix("SLAB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

func setupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func loadConfig() error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("slab")
		viper.AddConfigPath(".")
	}
	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("config loaded")
	case configFile == "" && errors.As(err, &notFound):
		// No config file is fine.
	default:
		return err
	}
	return nil
}
