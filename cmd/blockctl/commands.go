package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/Notifuse/canvas/internal/editor"
	"github.com/Notifuse/canvas/pkg/blocks"
	"github.com/Notifuse/canvas/pkg/logger"
	"github.com/Notifuse/canvas/pkg/render"
)

// Flags holds the global options shared by every command
type Flags struct {
	LogLevel string
}

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func (s *streams) logger(flags *Flags) logger.Logger {
	return logger.NewLoggerWithWriter(zerolog.ConsoleWriter{Out: s.err, NoColor: true, TimeFormat: time.Kitchen}, flags.LogLevel)
}

// readDocument reads raw document bytes from path, or stdin for "-"
func (s *streams) readDocument(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("a document path is required (use - for stdin)")
	}
	if path == "-" {
		return io.ReadAll(s.in)
	}
	return os.ReadFile(path)
}

func writeJSONTo(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type PaletteCmd struct {
	flags   *Flags
	streams *streams

	jsonOutput bool
}

func NewPaletteCmd(flags *Flags, s *streams) *PaletteCmd {
	return &PaletteCmd{flags: flags, streams: s}
}

func (cmd *PaletteCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "palette",
		Usage:     "List the block kinds that can be dropped into a document",
		UsageText: "blockctl palette [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *PaletteCmd) run(ctx context.Context, c *cli.Command) error {
	palette := blocks.Palette()
	if cmd.jsonOutput {
		return writeJSONTo(cmd.streams.out, palette)
	}

	w := tabwriter.NewWriter(cmd.streams.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tNAME\tCATEGORY\tFIELDS")
	for _, entry := range palette {
		fields := make([]string, len(entry.Fields))
		for i, f := range entry.Fields {
			fields[i] = string(f)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", entry.Kind, entry.Name, entry.Category, strings.Join(fields, ","))
	}
	return w.Flush()
}

type TemplatesCmd struct {
	flags   *Flags
	streams *streams

	jsonOutput bool
}

func NewTemplatesCmd(flags *Flags, s *streams) *TemplatesCmd {
	return &TemplatesCmd{flags: flags, streams: s}
}

func (cmd *TemplatesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "templates",
		Usage:     "List the starter templates",
		UsageText: "blockctl templates [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *TemplatesCmd) run(ctx context.Context, c *cli.Command) error {
	catalog, err := blocks.DefaultCatalog()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	if cmd.jsonOutput {
		return writeJSONTo(cmd.streams.out, catalog.Templates)
	}

	w := tabwriter.NewWriter(cmd.streams.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBLOCKS\tSUBJECT")
	for _, t := range catalog.Templates {
		fmt.Fprintf(w, "%s\t%d\t%s\n", t.Name, len(t.Blocks), t.Subject)
	}
	return w.Flush()
}

// SeedCmd prints a starting document, useful as input for the other commands
type SeedCmd struct {
	flags   *Flags
	streams *streams

	template string
}

func NewSeedCmd(flags *Flags, s *streams) *SeedCmd {
	return &SeedCmd{flags: flags, streams: s}
}

func (cmd *SeedCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "seed",
		Usage:     "Print the default document, or one built from a starter template",
		UsageText: "blockctl seed [--template name]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "template",
				Aliases:     []string{"t"},
				Usage:       "starter template to build",
				Destination: &cmd.template,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *SeedCmd) run(ctx context.Context, c *cli.Command) error {
	doc := blocks.NewSeedDocument()
	if cmd.template != "" {
		catalog, err := blocks.DefaultCatalog()
		if err != nil {
			return fmt.Errorf("load templates: %w", err)
		}
		tmpl, err := catalog.Find(cmd.template)
		if err != nil {
			return err
		}
		if doc, err = tmpl.Build(); err != nil {
			return err
		}
	}
	return writeJSONTo(cmd.streams.out, doc)
}

type ValidateCmd struct {
	flags   *Flags
	streams *streams
}

func NewValidateCmd(flags *Flags, s *streams) *ValidateCmd {
	return &ValidateCmd{flags: flags, streams: s}
}

func (cmd *ValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "validate",
		Usage:     "Check a serialized document against the document schema",
		UsageText: "blockctl validate <path|->",
		Action:    cmd.run,
	})
	return app
}

func (cmd *ValidateCmd) run(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	data, err := cmd.streams.readDocument(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	doc, err := blocks.ParseDocument(data)
	if err != nil {
		cmd.streams.logger(cmd.flags).WithField("path", path).Debug(err.Error())
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(cmd.streams.out, "%s: ok (%d blocks)\n", path, doc.Len())
	return nil
}

type RenderCmd struct {
	flags   *Flags
	streams *streams

	format  string
	subject string
	data    string
	output  string
}

func NewRenderCmd(flags *Flags, s *streams) *RenderCmd {
	return &RenderCmd{flags: flags, streams: s}
}

func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Render a document to MJML, HTML or plain text",
		UsageText: "blockctl render [--format html] [--subject text] [--data json] [--out path] <path|->",
		Description: `Merge tags such as {{ first_name }} are filled from the --data JSON object.

--format json prints every rendering along with the success flag.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format: mjml, html, text or json",
				Value:       "html",
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "subject",
				Usage:       "subject written into the document head",
				Value:       editor.DefaultSubject,
				Destination: &cmd.subject,
			},
			&cli.StringFlag{
				Name:        "data",
				Usage:       "JSON object used to fill merge tags",
				Destination: &cmd.data,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "write to this file instead of stdout",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	format := strings.ToLower(cmd.format)
	switch format {
	case "mjml", "html", "text", "json":
	default:
		return fmt.Errorf("unknown format %q", cmd.format)
	}

	var templateData map[string]interface{}
	if cmd.data != "" {
		if err := json.Unmarshal([]byte(cmd.data), &templateData); err != nil {
			return fmt.Errorf("--data must be a JSON object: %w", err)
		}
	}

	path := c.Args().First()
	raw, err := cmd.streams.readDocument(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	doc, err := blocks.ParseDocument(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	log := cmd.streams.logger(cmd.flags)
	start := time.Now()
	result, err := render.Render(ctx, render.Request{
		Document: doc,
		Options: render.Options{
			Subject:      cmd.subject,
			TemplateData: templateData,
		},
		SkipHTML: format == "mjml",
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"blocks":   doc.Len(),
		"success":  result.Success,
		"duration": time.Since(start).String(),
	}).Debug("Rendered document")

	if !result.Success && format != "json" {
		msg := "unknown error"
		if result.Error != nil {
			msg = result.Error.Message
		}
		return fmt.Errorf("render failed: %s", msg)
	}

	out := cmd.streams.out
	if cmd.output != "" {
		f, err := os.Create(cmd.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "mjml":
		_, err = io.WriteString(out, result.MJML)
	case "html":
		_, err = io.WriteString(out, result.HTML)
	case "text":
		_, err = io.WriteString(out, result.Text)
	default:
		err = writeJSONTo(out, result)
	}
	return err
}
