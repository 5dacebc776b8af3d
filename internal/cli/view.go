package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coresick/lifeline/internal/aggregate"
	"github.com/coresick/lifeline/internal/model"
)

// ViewOptions holds flags for the view command.
type ViewOptions struct {
	*RootOptions
	Tier   string
	Owner  string
	From   string
	To     string
	Expand []string
	Config string
}

// NewViewCommand creates the view command.
func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ViewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Render the timeline at a zoom tier",
		Long: `Render the timeline at a zoom tier.

Buckets whose event count exceeds the tier threshold collapse into a
single cluster node unless explicitly expanded with --expand.

Example:
  lifeline view --db ./timeline.db --tier month --from 2024-01-01 --to 2025-01-01
  lifeline view --db ./timeline.db --tier day --expand 2024-06-01`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Tier, "tier", string(aggregate.TierMonth), "zoom tier (year|month|week|day|focus)")
	cmd.Flags().StringVar(&opts.Owner, "owner", "", "filter events by owner id")
	cmd.Flags().StringVar(&opts.From, "from", "", "window start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.To, "to", "", "window end date (YYYY-MM-DD, exclusive)")
	cmd.Flags().StringSliceVar(&opts.Expand, "expand", nil, "bucket keys to keep expanded")
	cmd.Flags().StringVar(&opts.Config, "config", "", "path to engine config file")

	return cmd
}

func runView(opts *ViewOptions, cmd *cobra.Command) error {
	tier, err := aggregate.ParseTier(opts.Tier)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --tier", err)
	}
	window, err := parseWindow(opts.From, opts.To)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid window", err)
	}
	cfg, err := LoadConfig(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore(st)

	events, err := st.ListEvents(cmd.Context(), opts.Owner)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list events", err)
	}

	expanded := make(map[string]bool, len(opts.Expand))
	for _, key := range opts.Expand {
		expanded[key] = true
	}

	nodes := aggregate.Aggregate(events, tier, window, expanded, cfg.AggregationThresholds())

	return opts.formatter(cmd).Success(nodes, func(w io.Writer) {
		fmt.Fprintf(w, "%d nodes at %s tier\n", len(nodes), tier)
		for _, n := range nodes {
			switch n.Kind {
			case model.NodeKindEvent:
				fmt.Fprintf(w, "  event    %s  %s  %s\n",
					n.Event.Timestamp.Format("2006-01-02 15:04"), n.Event.EventType, n.Event.Title)
			case model.NodeKindCluster:
				fmt.Fprintf(w, "  cluster  %s  %d events\n", n.Cluster.ID, n.Cluster.Count)
			}
		}
	})
}

func parseWindow(from, to string) (aggregate.Window, error) {
	var w aggregate.Window
	var err error
	if w.From, err = parseDate(from); err != nil {
		return w, err
	}
	if w.To, err = parseDate(to); err != nil {
		return w, err
	}
	if !w.From.IsZero() && !w.To.IsZero() && !w.From.Before(w.To) {
		return w, fmt.Errorf("window start %s is not before end %s", from, to)
	}
	return w, nil
}
