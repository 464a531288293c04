package qrgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Badsnus/qrgen-studio/internal/domain/service"
	qr "github.com/Badsnus/qrgen-studio/pkg/qrcode"
)

type exportOpts struct {
	state    stateOpts
	size     int
	formats  []string
	output   string
	snapshot string
	session  string
	ics      bool
	mailTo   string
}

func newExportCmd(app *App) *cobra.Command {
	var opts exportOpts
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a code at full size",
		Long: `Render a code at one of the export sizes and write it as PNG, SVG or JPEG.
With several formats every file is written next to --output with its own extension.`,
		Example: `  qrgen export -t url -f url=https://example.com --size 1000 -o qr
  qrgen export --state launch.json --format png,svg,jpeg --ics -o launch
  qrgen export -t text -f text=hi --format svg -o - > hi.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("size") {
				opts.size = app.Config.ExportSize
			}
			return runExport(cmd, app, &opts)
		},
	}
	opts.state.bind(cmd)
	cmd.Flags().IntVar(&opts.size, "size", service.DefaultExportSize, fmt.Sprintf("output size in px, one of %v", service.ExportSizes))
	cmd.Flags().StringSliceVar(&opts.formats, "format", []string{"png"}, "output formats: png, svg, jpeg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "qr-code", "output path without extension, - for stdout")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "saved code id to record the download on")
	cmd.Flags().StringVar(&opts.session, "session", "", "only export when this checkout session has paid")
	cmd.Flags().BoolVar(&opts.ics, "ics", false, "also write the .ics file of an event code")
	cmd.Flags().StringVar(&opts.mailTo, "mail", "", "also mail the first format to this address")
	return cmd
}

func runExport(cmd *cobra.Command, app *App, opts *exportOpts) error {
	ctx := cmd.Context()
	formats, err := parseFormats(opts.formats)
	if err != nil {
		return err
	}
	state, err := opts.state.build(app.Config.LogoMaxSize, app.Logger)
	if err != nil {
		return err
	}
	if err := requireEntitled(ctx, app, opts.session); err != nil {
		return err
	}

	exporter, err := app.Exporter(ctx, opts.snapshot != "")
	if err != nil {
		return err
	}

	if opts.output == "-" {
		if len(formats) != 1 || opts.ics || opts.mailTo != "" {
			return errors.New("stdout takes exactly one format and no companion files")
		}
		return exporter.Export(ctx, state, service.ExportOptions{
			Size:       opts.size,
			Format:     formats[0],
			SnapshotID: opts.snapshot,
		}, cmd.OutOrStdout())
	}

	files, err := exporter.ExportBundle(ctx, state, opts.size, formats)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(opts.output, filepath.Ext(opts.output))
	err = writeBundle(cmd, base, formats, files, func() {
		exporter.RecordDownloads(ctx, opts.snapshot, formats)
	})
	if err != nil {
		return err
	}

	if opts.ics {
		data, err := exporter.ExportCalendar(state)
		if err != nil {
			return err
		}
		if err := writeFile(cmd, base+".ics", data); err != nil {
			return err
		}
	}

	if opts.mailTo != "" {
		f := formats[0]
		name := filepath.Base(base) + "." + f.Ext()
		if err := app.Mailer().SendCode(ctx, opts.mailTo, name, f.MIME(), files[f]); err != nil {
			return fmt.Errorf("mail %s: %w", name, err)
		}
	}
	return nil
}

func requireEntitled(ctx context.Context, app *App, session string) error {
	if session == "" {
		return nil
	}
	checkout, err := app.Checkout(ctx)
	if err != nil {
		return err
	}
	return checkout.RequireEntitled(ctx, session)
}

func parseFormats(values []string) ([]qr.Format, error) {
	var formats []qr.Format
	for _, v := range values {
		f, err := qr.ParseFormat(v)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return nil, errors.New("no output format")
	}
	return formats, nil
}

// writeBundle writes one file per format next to base and calls done once all of them
// are on disk.
func writeBundle(cmd *cobra.Command, base string, formats []qr.Format, files map[qr.Format][]byte, done func()) error {
	for _, f := range formats {
		if err := writeFile(cmd, base+"."+f.Ext(), files[f]); err != nil {
			return err
		}
	}
	done()
	return nil
}

func writeFile(cmd *cobra.Command, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", path, humanize.Bytes(uint64(len(data))))
	return err
}
