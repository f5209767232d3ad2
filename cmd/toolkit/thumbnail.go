package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/youruser/cardtoolkit/internal/bitmap"
	"github.com/youruser/cardtoolkit/internal/config"
	"github.com/youruser/cardtoolkit/internal/deck"
	imagepkg "github.com/youruser/cardtoolkit/internal/image"
	"github.com/youruser/cardtoolkit/internal/setting"
	"github.com/youruser/cardtoolkit/internal/surface"
	"github.com/youruser/cardtoolkit/internal/util"
)

type thumbnailOptions struct {
	image    string
	text     string
	textFile string
	format   string
	width    int
	height   int

	font        string
	size        float64
	color       string
	thickness   string
	strokeSize  float64
	strokeColor string
	opacity     float64
	highlight   bool
	background  string
}

func newThumbnailCmd(a *app) *cobra.Command {
	def := setting.DefaultThumbnail()
	o := &thumbnailOptions{}
	cmd := &cobra.Command{
		Use:   "thumbnail",
		Short: "Overlay a text block on an image and write thumbnail.<format>",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runThumbnail(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.image, "image", "i", "", "source image (png, jpeg, gif, webp)")
	f.StringVarP(&o.text, "text", "t", "", `overlay text; "\n" starts a new line`)
	f.StringVar(&o.textFile, "text-file", "", `read the overlay text from a file ("-" for stdin)`)
	f.StringVarP(&o.format, "format", "f", string(surface.FormatPNG), "png or webp")
	f.IntVar(&o.width, "width", config.DefaultThumbnailWidth, "output width in pixels")
	f.IntVar(&o.height, "height", config.DefaultThumbnailHeight, "output height in pixels")

	f.StringVar(&o.font, "font", def.Font, "font family")
	f.Float64Var(&o.size, "size", def.TextSize, "text size in pixels")
	f.StringVar(&o.color, "color", string(def.TextColor), "text color")
	f.StringVar(&o.thickness, "thickness", def.TextThickness, "font weight: normal, bold, lighter, bolder or 100..900")
	f.Float64Var(&o.strokeSize, "stroke-size", def.TextStrokeSize, "text outline width, 0 disables it")
	f.StringVar(&o.strokeColor, "stroke-color", string(def.TextStrokeColor), "text outline color")
	f.Float64Var(&o.opacity, "opacity", def.ImageOpacity, "image opacity between 0 and 1")
	f.BoolVar(&o.highlight, "highlight", def.TextHighlight, "draw a translucent box behind the text")
	f.StringVar(&o.background, "background", string(def.BackgroundColor), "color used when no image is given")
	return cmd
}

func (o *thumbnailOptions) style() setting.ThumbnailStyle {
	return setting.DefaultThumbnail().
		WithFont(o.font).
		WithText(o.size, setting.Color(o.color), o.thickness).
		WithStroke(o.strokeSize, setting.Color(o.strokeColor)).
		WithImageOpacity(o.opacity).
		WithHighlight(o.highlight).
		WithBackgroundColor(setting.Color(o.background))
}

func (a *app) runThumbnail(cmd *cobra.Command, o *thumbnailOptions) error {
	text := strings.ReplaceAll(o.text, `\n`, "\n")
	if o.textFile != "" {
		b, err := util.ReadInput(o.textFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		text = strings.TrimRight(string(b), "\r\n")
	}
	if o.image == "" && text == "" {
		slog.Info("no image or text given, nothing to render")
		return nil
	}

	format, err := surface.ParseFormat(o.format)
	if err != nil {
		return err
	}
	style := o.style()
	if err := style.Validate(); err != nil {
		return err
	}

	var img *bitmap.Bitmap
	if o.image != "" {
		img = a.loader.LoadFile(o.image)
	}
	canvas := surface.NewCanvas(o.width, o.height, a.fonts)
	if err := imagepkg.RenderThumbnail(cmd.Context(), canvas, img, text, style); err != nil {
		return err
	}
	data, name, err := deck.ExportSurface(canvas, format)
	if err != nil {
		return err
	}
	path, err := util.WriteFile(a.cfg.OutputDir, name, data)
	if err != nil {
		return err
	}
	slog.Info("thumbnail written", "path", path, "width", o.width, "height", o.height, "bytes", len(data))
	return nil
}
