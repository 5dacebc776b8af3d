package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coresick/lifeline/internal/aggregate"
)

// BubblesOptions holds flags for the bubbles command.
type BubblesOptions struct {
	*RootOptions
	Tier   string
	Owner  string
	Config string
}

// NewBubblesCommand creates the bubbles command.
func NewBubblesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BubblesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bubbles",
		Short: "Summarize the timeline as colored overview bubbles",
		Long: `Summarize the timeline as colored overview bubbles.

Each bubble covers one calendar bucket, sized by event count and colored
by the bucket's dominant category.

Example:
  lifeline bubbles --db ./timeline.db --tier month --owner user-1`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBubbles(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Tier, "tier", string(aggregate.TierMonth), "zoom tier (year|month|week|day)")
	cmd.Flags().StringVar(&opts.Owner, "owner", "", "filter events by owner id")
	cmd.Flags().StringVar(&opts.Config, "config", "", "path to engine config file")

	return cmd
}

func runBubbles(opts *BubblesOptions, cmd *cobra.Command) error {
	tier, err := aggregate.ParseTier(opts.Tier)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --tier", err)
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

	bubbles := aggregate.Bubbles(events, tier, cfg.BubblePalette())

	return opts.formatter(cmd).Success(bubbles, func(w io.Writer) {
		fmt.Fprintf(w, "%d bubbles at %s tier\n", len(bubbles), tier)
		for _, b := range bubbles {
			fmt.Fprintf(w, "  %-12s %-22s %3d events  %s  x%.1f\n",
				b.BucketID, b.Label, b.EventCount, b.DominantCategory, b.SizeMultiplier)
		}
	})
}
