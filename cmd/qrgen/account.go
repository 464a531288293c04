package qrgen

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Badsnus/qrgen-studio/internal/adapters/database/postgres"
	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Save codes and list saved codes",
	}
	cmd.AddCommand(newHistorySaveCmd(app), newHistoryListCmd(app), newHistoryShowCmd(app))
	return cmd
}

func newHistorySaveCmd(app *App) *cobra.Command {
	var (
		opts   stateOpts
		userID string
	)
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a code to the history of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := opts.build(app.Config.LogoMaxSize, app.Logger)
			if err != nil {
				return err
			}
			history, err := app.History(cmd.Context())
			if err != nil {
				return err
			}
			saved, err := history.Save(cmd.Context(), userID, state)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), saved.ID)
			return err
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	var (
		userID        string
		limit, offset int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the saved codes of a user, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := app.History(cmd.Context())
			if err != nil {
				return err
			}
			codes, err := history.List(cmd.Context(), userID, limit, offset)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tCREATED\tDOWNLOADS\tPAYLOAD")
			for _, c := range codes {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					c.ID, c.Label, humanize.Time(c.CreatedAt), c.DownloadCount, truncate(c.Payload, 48))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().IntVar(&limit, "limit", 20, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "page offset")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved code as a state file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := app.History(cmd.Context())
			if err != nil {
				return err
			}
			saved, err := history.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), saved.State)
		},
	}
}

func newCheckoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Pay for downloads",
	}

	var (
		opts      stateOpts
		sessionID string
		email     string
	)
	begin := &cobra.Command{
		Use:   "begin",
		Short: "Keep the code as a draft and print the checkout URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := opts.build(app.Config.LogoMaxSize, app.Logger)
			if err != nil {
				return err
			}
			checkout, err := app.Checkout(cmd.Context())
			if err != nil {
				return err
			}
			session, err := checkout.Begin(cmd.Context(), sessionID, state, email)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), session.URL)
			return err
		},
	}
	opts.bind(begin)
	begin.Flags().StringVar(&email, "email", "", "receipt address")

	var checkoutID string
	confirm := &cobra.Command{
		Use:   "confirm",
		Short: "Check a checkout and print the preserved draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checkout, err := app.Checkout(cmd.Context())
			if err != nil {
				return err
			}
			state, err := checkout.Confirm(cmd.Context(), sessionID, checkoutID)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), state)
		},
	}
	confirm.Flags().StringVar(&checkoutID, "checkout", "", "checkout id returned by the payment page")
	_ = confirm.MarkFlagRequired("checkout")

	status := &cobra.Command{
		Use:   "status",
		Short: "Print whether a session has paid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checkout, err := app.Checkout(cmd.Context())
			if err != nil {
				return err
			}
			ok, err := checkout.Entitled(cmd.Context(), sessionID)
			if err != nil {
				return err
			}
			label := "not paid"
			if ok {
				label = "paid"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), label)
			return err
		},
	}

	for _, c := range []*cobra.Command{begin, confirm, status} {
		c.Flags().StringVar(&sessionID, "session", "", "browser session id")
		_ = c.MarkFlagRequired("session")
	}
	cmd.AddCommand(begin, confirm, status)
	return cmd
}

func newCaptureCmd(app *App) *cobra.Command {
	var (
		opts  stateOpts
		email string
	)
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Keep a code for a user without an account and mail them a save link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := opts.build(app.Config.LogoMaxSize, app.Logger)
			if err != nil {
				return err
			}
			capture, err := app.Capture(cmd.Context())
			if err != nil {
				return err
			}
			id, err := capture.Capture(cmd.Context(), email, state)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&email, "email", "", "address to send the save link to")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newClaimCmd(app *App) *cobra.Command {
	var sessionID, userID string
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Move the codes of a captured session into a user's history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			capture, err := app.Capture(cmd.Context())
			if err != nil {
				return err
			}
			saved, err := capture.Claim(cmd.Context(), sessionID, userID)
			if err != nil {
				return err
			}
			for _, c := range saved {
				fmt.Fprintln(cmd.OutOrStdout(), c.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "captured session id")
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count analytics events of the last days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be positive, got %d", days)
			}
			db, err := app.Database(cmd.Context())
			if err != nil {
				return err
			}
			events := postgres.NewEventStorage(db)
			since := time.Now().AddDate(0, 0, -days)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "EVENT\tSINCE %s\n", since.Format(time.DateOnly))
			for _, t := range entity.EventTypes {
				count, err := events.CountSince(cmd.Context(), t, since)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", t, humanize.Comma(count))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "window size in days")
	return cmd
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
