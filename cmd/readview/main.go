package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"

	"github.com/kyaoi/readview/internal/app"
	"github.com/kyaoi/readview/internal/config"
	"github.com/kyaoi/readview/internal/settings"
)

// CLI defines the readview command structure.
type CLI struct {
	Read    ReadCmd    `cmd:"" default:"withargs" help:"Open an article in the reader"`
	Export  ExportCmd  `cmd:"" help:"Write an article as an HTML page with the given settings"`
	Options OptionsCmd `cmd:"" help:"List the selectable values for every setting"`
}

// ReadCmd is the default command that runs the TUI.
type ReadCmd struct {
	Path string `arg:"" optional:"" help:"Markdown article (default: bundled sample)"`
}

// Run executes the TUI command.
func (c *ReadCmd) Run(cfg *config.Config) error {
	return app.Run(cfg, c.Path)
}

// ExportCmd renders an article to HTML.
type ExportCmd struct {
	Path            string `arg:"" optional:"" help:"Markdown article (default: bundled sample)"`
	Output          string `short:"o" default:"-" help:"Output file, - for stdout"`
	FontFamily      string `help:"Font family value (see 'readview options')"`
	FontSize        string `help:"Font size value"`
	FontColor       string `help:"Font color value"`
	BackgroundColor string `help:"Background color value"`
	ContentWidth    string `help:"Content width value"`
}

// Run executes the export command.
func (c *ExportCmd) Run() error {
	s, err := settings.FromValues(map[settings.Field]string{
		settings.FontFamily:      c.FontFamily,
		settings.FontSize:        c.FontSize,
		settings.FontColor:       c.FontColor,
		settings.BackgroundColor: c.BackgroundColor,
		settings.ContentWidth:    c.ContentWidth,
	})
	if err != nil {
		return err
	}
	if c.Output == "-" {
		return app.Export(os.Stdout, c.Path, s)
	}
	return app.ExportFile(c.Output, c.Path, s)
}

// OptionsCmd prints every catalog.
type OptionsCmd struct{}

// Run executes the options command.
func (c *OptionsCmd) Run() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, field := range settings.Fields() {
		cat := field.Catalog()
		fmt.Fprintf(w, "%s (%s)\n", strings.ToUpper(field.String()), field.Var())
		for _, opt := range cat.Options() {
			marker := " "
			if opt == cat.Default() {
				marker = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, opt.Value, opt.Label, opt.StyleValue)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("readview"),
		kong.Description("Terminal article reader with adjustable presentation settings."),
		kong.UsageOnError(),
		kong.Bind(cfg),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
