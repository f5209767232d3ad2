package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/youruser/cardtoolkit/internal/cards"
	"github.com/youruser/cardtoolkit/internal/deck"
	imagepkg "github.com/youruser/cardtoolkit/internal/image"
	"github.com/youruser/cardtoolkit/internal/setting"
	"github.com/youruser/cardtoolkit/internal/util"
)

// DefaultArchiveName is the file card news archives are written to.
const DefaultArchiveName = "card-news.zip"

type cardNewsOptions struct {
	script     string
	setting    string
	background string
	footerQR   string
	pages      []int
	words      string
	archive    string
}

func newCardNewsCmd(a *app) *cobra.Command {
	o := &cardNewsOptions{}
	cmd := &cobra.Command{
		Use:   "cardnews",
		Short: "Render a card script onto 1080x1080 images and zip them",
		Long: `Render every card of a script onto its own 1080x1080 image and write
them as canvas-image-<n>.png entries of one zip archive.

Cards in the script are separated by two blank lines. The first line of a
card is its title, the remaining lines are its content.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCardNews(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.script, "script", "s", "", `card script ("-" for stdin)`)
	f.StringVar(&o.setting, "setting", "", "JSON render setting; absent keys keep their defaults")
	f.StringVarP(&o.background, "background", "b", "", "background image, overrides the setting's backgroundImage")
	f.StringVar(&o.footerQR, "footer-qr", "", "text encoded as a QR code in the bottom-right corner")
	f.IntSliceVar(&o.pages, "pages", nil, "only export these page numbers")
	f.StringVar(&o.words, "words", "", "only export cards containing all of these words")
	f.StringVar(&o.archive, "archive", DefaultArchiveName, "archive file name inside the output directory")
	return cmd
}

func (o *cardNewsOptions) renderSetting() (setting.RenderSetting, string, error) {
	if o.setting == "" {
		return setting.Default(), o.background, nil
	}
	f, err := setting.LoadFile(o.setting)
	if err != nil {
		return setting.RenderSetting{}, "", err
	}
	bg := f.BackgroundImagePath
	if o.background != "" {
		bg = o.background
	}
	return f.RenderSetting, bg, nil
}

func (a *app) runCardNews(cmd *cobra.Command, o *cardNewsOptions) error {
	if o.script == "" {
		slog.Info("no script given, nothing to render")
		return nil
	}
	raw, err := util.ReadInput(o.script, cmd.InOrStdin())
	if err != nil {
		return err
	}
	cs := cards.Filter(cards.SplitScript(string(raw)), cards.FilterOptions{Pages: o.pages, FreeWords: o.words})
	if len(cs) == 0 {
		slog.Info("script has no cards to export", "script", o.script)
		return nil
	}

	st, bgPath, err := o.renderSetting()
	if err != nil {
		return err
	}
	if bgPath != "" {
		st = st.WithBackgroundImage(a.loader.LoadFile(bgPath), st.BackgroundImageOpacity)
	}
	if o.footerQR != "" {
		st = st.WithFooterQR(o.footerQR)
	}
	if err := st.Validate(); err != nil {
		return err
	}

	d := deck.New(imagepkg.CardSize, imagepkg.CardSize, st,
		deck.WithFonts(a.fonts),
		deck.WithWorkers(a.cfg.Workers))
	defer d.Close()
	if err := d.SetCards(cs); err != nil {
		return err
	}
	blob, err := d.ExportArchive(cmd.Context(), deck.NewZip())
	if err != nil {
		return err
	}
	path, err := util.WriteFile(a.cfg.OutputDir, o.archive, blob)
	if err != nil {
		return err
	}
	slog.Info("card news written", "path", path, "cards", len(cs), "bytes", len(blob))
	return nil
}
