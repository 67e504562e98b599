package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/soypat/slab"
	"github.com/soypat/slab/form2"
	"github.com/soypat/slab/render"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	exportFormats []string
	exportCommand string
)

var allFormats = []string{"dxf", "svg", "png", "pdf", "stl"}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export a layout for fabrication and review",
	Long: `Export a layout snapshot. Supported formats:

  dxf   one file per deliverable: a separate island gets its own file,
        otherwise both parts share countertops_sheet.dxf
  svg   countertops_all.svg with every part
  png   raster of the SVG at raster.dpi
  pdf   SVG drawn on the smallest fitting ISO A page
  stl   one solid per part extruded to the layout thickness
  cmd   SVG piped through the program given with --cmd, output to countertops.out

Examples:
  slab export layout.json --format dxf
  slab export layout.json --format png --dpi 300 --out build/
  slab export layout.json --format cmd --cmd "rsvg-convert -f pdf -w {width}mm -h {height}mm"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSheet(args[0])
		if err != nil {
			return err
		}
		formats := exportFormats
		if lo.Contains(formats, "all") {
			formats = allFormats
		}
		if unknown := lo.Without(formats, append(allFormats, "cmd")...); len(unknown) > 0 {
			return fmt.Errorf("unknown export format %q", unknown[0])
		}
		out := viper.GetString(keyOut)
		if err := os.MkdirAll(out, 0o755); err != nil {
			return err
		}
		ctx := log.Logger.WithContext(cmd.Context())
		for _, format := range lo.Uniq(formats) {
			if err := exportFormat(ctx, s, format, out); err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}
		}
		return nil
	},
}

func init() {
	flags := exportCmd.Flags()
	flags.StringSliceVar(&exportFormats, "format", []string{"dxf"}, "comma separated formats: dxf, svg, png, pdf, stl, cmd or all")
	flags.StringVar(&exportCommand, "cmd", "", "external renderer for the cmd format; {width} and {height} expand to mm")
	flags.StringP("out", "o", ".", "output directory")
	flags.Float64("max-segment", render.DefaultDXFMaxSegment, "maximum chord length of tessellated arcs in mm")
	flags.Float64("margin", render.DefaultSVGMargin, "SVG margin around the layout in mm")
	flags.Float64("dpi", render.DefaultDPI, "PNG resolution")
	flags.Uint("thumbnail", 0, "downscale PNG output so no side exceeds this many pixels")
	flags.Int("cells", render.DefaultSTLCells, "STL marching cubes cells along the longest side")
	lo.ForEach([][2]string{
		{keyOut, "out"},
		{keyDXFMaxSegment, "max-segment"},
		{keySVGMargin, "margin"},
		{keyRasterDPI, "dpi"},
		{keyRasterThumbnail, "thumbnail"},
		{keySTLCells, "cells"},
	}, func(kv [2]string, _ int) {
		if err := viper.BindPFlag(kv[0], flags.Lookup(kv[1])); err != nil {
			panic(err)
		}
	})
	rootCmd.AddCommand(exportCmd)
}

func exportFormat(ctx context.Context, s slab.Sheet, format, dir string) error {
	svgOpts := render.SVGOptions{Margin: viper.GetFloat64(keySVGMargin)}
	switch format {
	case "dxf":
		opts := render.DXFOptions{MaxSegment: viper.GetFloat64(keyDXFMaxSegment)}
		for _, d := range s.Deliverables() {
			var buf bytes.Buffer
			if err := render.WriteDeliverable(&buf, d, opts); err != nil {
				return err
			}
			if err := writeFile(dir, d.Name+".dxf", buf.Bytes()); err != nil {
				return err
			}
		}
		return nil
	case "svg":
		doc, err := render.NewDocument(s, svgOpts)
		if err != nil {
			return err
		}
		return writeFile(dir, "countertops_all.svg", doc.SVG)
	case "stl":
		opts := render.STLOptions{Cells: viper.GetInt(keySTLCells), MaxSegment: viper.GetFloat64(keyDXFMaxSegment)}
		for _, pp := range s.Scene() {
			var buf bytes.Buffer
			if err := render.WriteSTL(&buf, pp.Part, s.Thickness, opts); err != nil {
				return fmt.Errorf("%s: %w", pp.Role, err)
			}
			w, h := pp.Part.Size()
			name := fmt.Sprintf("countertop_%s_%sx%sx%smm.stl", pp.Role,
				form2.FormatFloat(w), form2.FormatFloat(h), form2.FormatFloat(s.Thickness))
			if err := writeFile(dir, name, buf.Bytes()); err != nil {
				return err
			}
		}
		return nil
	}

	doc, err := render.NewDocument(s, svgOpts)
	if err != nil {
		return err
	}
	var (
		r    render.Renderer
		name string
	)
	switch format {
	case "png":
		raster := render.Raster{DPI: viper.GetFloat64(keyRasterDPI), Thumbnail: viper.GetUint(keyRasterThumbnail)}
		w, h := raster.PixelSize(doc)
		r, name = raster, fmt.Sprintf("countertops_%dx%d_%sdpi.png", w, h, form2.FormatFloat(raster.Resolution()))
	case "pdf":
		r, name = render.PDF{}, "countertops.pdf"
	case "cmd":
		fields := strings.Fields(exportCommand)
		if len(fields) == 0 {
			return fmt.Errorf("the cmd format needs --cmd")
		}
		r, name = render.Command{Name: fields[0], Args: fields[1:]}, "countertops.out"
	}
	res := <-render.Start(ctx, r, doc)
	if res.Err != nil {
		return res.Err
	}
	return writeFile(dir, name, res.Data)
}

func writeFile(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	log.Info().Str("file", path).Int("bytes", len(data)).Msg("exported")
	return nil
}
