package qrgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	"github.com/Badsnus/qrgen-studio/pkg/logger/types"
	"github.com/Badsnus/qrgen-studio/pkg/logo"
)

// stateOpts are the flags that describe a code. Flags are applied on top of --state, and
// style flags on top of --preset.
type stateOpts struct {
	file   string
	qrType string
	fields map[string]string

	preset            string
	fg, bg            string
	transparent       bool
	dots, corners     string
	cornerSquareColor string
	cornerDotColor    string

	gradient       string
	gradientColors []string
	rotation       float64

	logo       string
	logoSize   float64
	logoMargin int
}

func (o *stateOpts) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.file, "state", "", "JSON state file to start from")
	f.StringVarP(&o.qrType, "type", "t", "", "QR type (see `qrgen types`)")
	f.StringToStringVarP(&o.fields, "field", "f", nil, "form field, e.g. -f ssid=HomeNet (repeatable)")
	f.StringVar(&o.preset, "preset", "", "style preset (see `qrgen presets`)")
	f.StringVar(&o.fg, "fg", "", "foreground color")
	f.StringVar(&o.bg, "bg", "", "background color")
	f.BoolVar(&o.transparent, "transparent", false, "transparent background")
	f.StringVar(&o.dots, "dots", "", "dot pattern: square, dots, rounded, extra-rounded, classy, classy-rounded")
	f.StringVar(&o.corners, "corners", "", "corner style: square, dot, extra-rounded")
	f.StringVar(&o.cornerSquareColor, "corner-square-color", "", "outer finder color")
	f.StringVar(&o.cornerDotColor, "corner-dot-color", "", "inner finder color")
	f.StringVar(&o.gradient, "gradient", "", "dot gradient: linear or radial")
	f.StringSliceVar(&o.gradientColors, "gradient-colors", nil, "two gradient colors")
	f.Float64Var(&o.rotation, "rotation", 0, "linear gradient rotation in radians")
	f.StringVar(&o.logo, "logo", "", "logo image file or data URL")
	f.Float64Var(&o.logoSize, "logo-size", 0, "logo size as a fraction of the code, 0.1 to 0.5")
	f.IntVar(&o.logoMargin, "logo-margin", -1, "cleared margin around the logo in px")
}

func (o *stateOpts) build(logoMaxSize int, log *types.Logger) (entity.State, error) {
	state := entity.NewState()
	if o.file != "" {
		data, err := os.ReadFile(o.file)
		if err != nil {
			return entity.State{}, err
		}
		if err := json.Unmarshal(data, &state); err != nil {
			return entity.State{}, fmt.Errorf("parse %s: %w", o.file, err)
		}
		if state.Fields == nil {
			state.Fields = entity.FormFields{}
		}
	}

	if o.qrType != "" {
		t := entity.QRType(strings.ToLower(o.qrType))
		if !t.Valid() {
			return entity.State{}, fmt.Errorf("unknown type %q", o.qrType)
		}
		state.Type = t
	}
	for k, v := range o.fields {
		state.Fields[k] = v
	}

	if err := o.applyStyle(&state.Style); err != nil {
		return entity.State{}, err
	}
	if err := o.applyLogo(&state.Style, logoMaxSize, log); err != nil {
		return entity.State{}, err
	}
	state.Style.Normalize()
	return state, nil
}

func (o *stateOpts) applyStyle(s *entity.StyleConfig) error {
	if o.preset != "" {
		p, ok := entity.PresetByName(o.preset)
		if !ok {
			return fmt.Errorf("unknown preset %q", o.preset)
		}
		s.ApplyPreset(p)
	}
	if o.fg != "" {
		s.Foreground = o.fg
	}
	if o.bg != "" {
		s.Background = o.bg
		s.Transparent = false
	}
	if o.transparent {
		s.Transparent = true
	}
	if o.dots != "" {
		s.DotPattern = entity.DotPattern(o.dots)
	}
	if o.corners != "" {
		s.CornerStyle = entity.CornerStyle(o.corners)
	}
	if o.cornerSquareColor != "" {
		s.CornerSquareColor = o.cornerSquareColor
	}
	if o.cornerDotColor != "" {
		s.CornerDotColor = o.cornerDotColor
	}

	if o.gradient != "" {
		t := entity.GradientType(o.gradient)
		if t != entity.GradientLinear && t != entity.GradientRadial {
			return fmt.Errorf("unknown gradient %q", o.gradient)
		}
		s.Gradient.Enabled = true
		s.Gradient.Type = t
		s.Gradient.Rotation = o.rotation
	}
	switch len(o.gradientColors) {
	case 0:
	case 2:
		s.Gradient.Color1, s.Gradient.Color2 = o.gradientColors[0], o.gradientColors[1]
	default:
		return errors.New("--gradient-colors takes exactly two colors")
	}
	return nil
}

// applyLogo compresses a logo file into a data URL. An unreadable image is reported and
// the code is built without it.
func (o *stateOpts) applyLogo(s *entity.StyleConfig, maxSize int, log *types.Logger) error {
	if o.logoSize > 0 {
		s.Logo.Size = o.logoSize
	}
	if o.logoMargin >= 0 {
		s.Logo.Margin = o.logoMargin
	}
	if o.logo == "" {
		return nil
	}
	if strings.HasPrefix(o.logo, "data:") {
		s.Logo.Image = o.logo
		return nil
	}

	f, err := os.Open(o.logo)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := logo.Compress(f, maxSize)
	if errors.Is(err, logo.ErrDecode) {
		log.Warnf("%s: %v, continuing without logo", o.logo, err)
		return nil
	}
	if err != nil {
		return err
	}
	log.Info(res.Notice())
	s.Logo.Image = res.DataURL
	return nil
}
