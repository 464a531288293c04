package qrgen

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	"github.com/Badsnus/qrgen-studio/internal/domain/payload"
	"github.com/Badsnus/qrgen-studio/internal/domain/utils/validator"
)

func newEncodeCmd(app *App) *cobra.Command {
	var (
		opts        stateOpts
		placeholder bool
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the payload a code would carry",
		Example: `  qrgen encode -t wifi -f ssid=HomeNet -f password=secret
  qrgen encode -t event -f title=Launch -f start=2026-03-01T09:30 --json > launch.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := opts.build(app.Config.LogoMaxSize, app.Logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, state)
			}
			if placeholder {
				_, err = fmt.Fprintln(out, payload.Placeholder(state.Type))
				return err
			}
			_, err = fmt.Fprintln(out, payload.Encode(state.Type, state.Fields))
			return err
		},
	}
	opts.bind(cmd)
	cmd.Flags().BoolVar(&placeholder, "placeholder", false, "print the demo payload shown before payment")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the whole state as JSON, usable with --state")
	return cmd
}

func newHintsCmd(app *App) *cobra.Command {
	var opts stateOpts
	cmd := &cobra.Command{
		Use:   "hints",
		Short: "Check form fields and print advisory hints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := opts.build(app.Config.LogoMaxSize, app.Logger)
			if err != nil {
				return err
			}
			hints := validator.Hints(state.Type, state.Fields)
			out := cmd.OutOrStdout()
			if len(hints) == 0 {
				_, err = fmt.Fprintln(out, "no hints")
				return err
			}
			for _, h := range hints {
				if _, err := fmt.Fprintf(out, "%s: %s\n", h.Field, h.Message); err != nil {
					return err
				}
			}
			return nil
		},
	}
	opts.bind(cmd)
	return cmd
}

func newTypesCmd() *cobra.Command {
	var schema string
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List QR types, or the form fields of one type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if schema != "" {
				t := entity.QRType(strings.ToLower(schema))
				if !t.Valid() {
					return fmt.Errorf("unknown type %q", schema)
				}
				writeSchema(w, t)
			} else {
				fmt.Fprintln(w, "TYPE\tLABEL\tCATEGORY")
				for _, info := range entity.Types {
					fmt.Fprintf(w, "%s\t%s\t%s\n", info.Type, info.Label, info.Category)
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&schema, "schema", "", "print the form fields of this type")
	return cmd
}

func writeSchema(w io.Writer, t entity.QRType) {
	fmt.Fprintln(w, "FIELD\tKIND\tLABEL\tDEFAULT")
	for _, f := range payload.Schema(t) {
		def := f.Fallback
		if len(f.Options) > 0 {
			def = strings.Join(f.Options, "|")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Name, f.Kind, f.Label, def)
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List style presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFOREGROUND\tBACKGROUND\tDOTS\tCORNERS")
			for _, p := range entity.Presets {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.Foreground, p.Background, p.DotPattern, p.CornerStyle)
			}
			return w.Flush()
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
