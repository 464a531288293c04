package qrgen

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Badsnus/qrgen-studio/internal/domain/dto"
	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	"github.com/Badsnus/qrgen-studio/internal/domain/service"
	"github.com/Badsnus/qrgen-studio/pkg/logger"
	"github.com/Badsnus/qrgen-studio/pkg/logger/types"
	qr "github.com/Badsnus/qrgen-studio/pkg/qrcode"
)

const previewHelp = `commands:
  type <type>            switch the QR type, fields are kept
  set <field> <value>    set a form field
  unset <field>          clear a form field
  preset <name>          apply a style preset
  fg|bg <color>          set a color
  dots <pattern>         set the dot pattern
  corners <style>        set the corner style
  transparent on|off     toggle the transparent background
  size <px>              change the preview size
  entitled               show the real payload instead of the demo one
  show                   print the current render request
  quit`

// fileTarget shows the preview by rewriting a PNG file on every mount.
type fileTarget struct {
	path   string
	wait   time.Duration
	logger *types.Logger
}

func (t *fileTarget) Clear() {}

func (t *fileTarget) Mount(img service.RenderedImage, req dto.RenderRequest) {
	select {
	case <-img.Ready():
	case <-time.After(t.wait):
	}

	tmp, err := os.CreateTemp(filepath.Dir(t.path), ".preview-*.png")
	if err != nil {
		t.logger.Errorf("failed to write preview: %v", err)
		return
	}
	if err := img.Encode(tmp, qr.FormatPNG); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		t.logger.Errorf("failed to encode preview: %v", err)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		t.logger.Errorf("failed to write preview: %v", err)
		return
	}
	if err := os.Rename(tmp.Name(), t.path); err != nil {
		t.logger.Errorf("failed to replace preview: %v", err)
		return
	}
	t.logger.Infof("preview updated (%dpx): %s", req.Size, req.Data)
}

func newPreviewCmd(app *App) *cobra.Command {
	var (
		opts     stateOpts
		out      string
		entitled bool
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Edit a code interactively while a preview file follows along",
		Long:  "Reads editing commands from stdin and keeps --out in sync.\n\n" + previewHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := opts.build(app.Config.LogoMaxSize, app.Logger)
			if err != nil {
				return err
			}
			target := &fileTarget{path: out, wait: app.Config.Export.GracePeriod, logger: logger.MustNamed("preview")}
			c := service.NewPreviewController(
				app.Renderer(),
				target,
				service.RealClock(),
				logger.MustNamed("preview"),
				app.Config.Preview,
				state,
			)
			defer c.Close()
			c.SetEntitled(entitled)
			c.Mount(cmd.Context())

			err = runPreview(cmd.Context(), c, cmd.InOrStdin(), cmd.OutOrStdout())
			c.Flush()
			return err
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "preview.png", "preview file")
	cmd.Flags().BoolVar(&entitled, "entitled", false, "show the real payload from the start")
	return cmd
}

func runPreview(ctx context.Context, c *service.PreviewController, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := previewCommand(c, line, out); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func previewCommand(c *service.PreviewController, line string, out io.Writer) error {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "type":
		t := entity.QRType(strings.ToLower(rest))
		if !t.Valid() {
			return fmt.Errorf("unknown type %q", rest)
		}
		c.SetType(t)
	case "set":
		field, value, _ := strings.Cut(rest, " ")
		if field == "" {
			return fmt.Errorf("usage: set <field> <value>")
		}
		c.SetField(field, strings.TrimSpace(value))
	case "unset":
		c.Update(func(s *entity.State) { delete(s.Fields, rest) })
	case "preset":
		p, ok := entity.PresetByName(rest)
		if !ok {
			return fmt.Errorf("unknown preset %q", rest)
		}
		c.ApplyPreset(p)
	case "fg":
		c.Update(func(s *entity.State) { s.Style.Foreground = rest })
	case "bg":
		c.Update(func(s *entity.State) {
			s.Style.Background = rest
			s.Style.Transparent = false
		})
	case "dots":
		c.Update(func(s *entity.State) { s.Style.DotPattern = entity.DotPattern(rest) })
	case "corners":
		c.Update(func(s *entity.State) { s.Style.CornerStyle = entity.CornerStyle(rest) })
	case "transparent":
		on := rest != "off"
		c.Update(func(s *entity.State) { s.Style.Transparent = on })
	case "size":
		n, err := strconv.Atoi(rest)
		if err != nil || n <= 0 {
			return fmt.Errorf("bad size %q", rest)
		}
		c.SetPreviewSize(n)
	case "entitled":
		c.SetEntitled(true)
	case "show":
		req := c.Request()
		fmt.Fprintf(out, "%dpx %s\n", req.Size, req.Data)
	case "help":
		fmt.Fprintln(out, previewHelp)
	default:
		return fmt.Errorf("unknown command %q, try help", name)
	}
	return nil
}
