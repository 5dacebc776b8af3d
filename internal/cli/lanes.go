package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coresick/lifeline/internal/layout"
)

// LanesOptions holds flags for the lanes command.
type LanesOptions struct {
	*RootOptions
	Owners   []string
	Start    string
	PxPerDay float64
}

// NewLanesCommand creates the lanes command.
func NewLanesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LanesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lanes",
		Short: "Lay out events in horizontal swimlanes",
		Long: `Lay out events in horizontal swimlanes, one lane per owner.

Events relevant to a single lane become cards centered in that lane;
events shared across lanes become bridge cards spanning them.

Example:
  lifeline lanes --db ./timeline.db --owners user-1,user-2 --start 2024-01-01`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLanes(opts, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Owners, "owners", nil, "lane owner ids, top to bottom (required)")
	cmd.Flags().StringVar(&opts.Start, "start", "", "date anchoring the left edge (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&opts.PxPerDay, "px-per-day", 40, "horizontal pixels per day")
	_ = cmd.MarkFlagRequired("owners")

	return cmd
}

func runLanes(opts *LanesOptions, cmd *cobra.Command) error {
	if len(opts.Owners) == 0 {
		return NewExitError(ExitCommandError, "--owners must name at least one id")
	}
	start, err := parseDate(opts.Start)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --start", err)
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore(st)

	events, err := st.ListEvents(cmd.Context(), "")
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list events", err)
	}

	items := layout.Swimlanes(events, opts.Owners, layout.SwimlaneConfig{
		StartDate: start,
		PxPerDay:  opts.PxPerDay,
	})

	return opts.formatter(cmd).Success(items, func(w io.Writer) {
		fmt.Fprintf(w, "%d cards across %d lanes\n", len(items), len(opts.Owners))
		for _, item := range items {
			kind := "card"
			if item.IsBridge {
				kind = "bridge"
			}
			fmt.Fprintf(w, "  %-6s lanes %d-%d  x=%.0f  %s\n",
				kind, item.MinLane, item.MaxLane, item.Rect.X, item.Event.Title)
		}
	})
}
