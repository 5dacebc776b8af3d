package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coresick/lifeline/internal/layout"
	"github.com/coresick/lifeline/internal/model"
)

// FlowSummary is the flow command's JSON payload. Positions are rounded to
// whole pixels so output stays stable across platforms.
type FlowSummary struct {
	Paths         []FlowPathSummary `json:"paths"`
	Intersections []string          `json:"intersections,omitempty"`
}

// FlowPathSummary describes one participant's path.
type FlowPathSummary struct {
	ParticipantID string            `json:"participant_id"`
	DisplayName   string            `json:"display_name"`
	OriginX       int               `json:"origin_x"`
	OriginY       int               `json:"origin_y"`
	Segments      int               `json:"segments"`
	Nodes         []FlowNodeSummary `json:"nodes"`
}

// FlowNodeSummary is one event position along a path.
type FlowNodeSummary struct {
	EventID    string `json:"event_id"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	IsJunction bool   `json:"is_junction"`
	Thumbnail  string `json:"thumbnail,omitempty"`
}

func summarizeFlow(result layout.FlowResult) FlowSummary {
	summary := FlowSummary{}
	for _, p := range result.Paths {
		ps := FlowPathSummary{
			ParticipantID: p.ParticipantID,
			DisplayName:   p.DisplayName,
			OriginX:       model.SnapshotPx(p.Origin.X),
			OriginY:       model.SnapshotPx(p.Origin.Y),
			Segments:      len(p.Curve),
		}
		for _, n := range p.Nodes {
			ps.Nodes = append(ps.Nodes, FlowNodeSummary{
				EventID:    n.Event.ID,
				X:          model.SnapshotPx(n.Position.X),
				Y:          model.SnapshotPx(n.Position.Y),
				IsJunction: n.IsJunction,
				Thumbnail:  n.ThumbnailAsset,
			})
		}
		summary.Paths = append(summary.Paths, ps)
	}
	for _, e := range result.Intersections {
		summary.Intersections = append(summary.Intersections, e.ID)
	}
	return summary
}

// FlowOptions holds flags for the flow command.
type FlowOptions struct {
	*RootOptions
	Participants []string
	Start        string
	PxPerDay     float64
	LaneWidth    float64
	Width        float64
}

// NewFlowCommand creates the flow command.
func NewFlowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FlowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Lay out participant flow paths",
		Long: `Lay out one continuous curve per selected participant.

Paths merge at events the participants share and diverge afterwards; two
participants staying together across consecutive shared events get a
double-helix weave between them.

Example:
  lifeline flow --db ./timeline.db --participants user-1,user-2 --start 2024-01-01`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlow(opts, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Participants, "participants", nil, "participant ids, in lane order (required)")
	cmd.Flags().StringVar(&opts.Start, "start", "", "date anchoring the top of the diagram (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&opts.PxPerDay, "px-per-day", 40, "vertical pixels per day")
	cmd.Flags().Float64Var(&opts.LaneWidth, "lane-width", 200, "horizontal distance between adjacent lanes")
	cmd.Flags().Float64Var(&opts.Width, "width", 800, "viewport width in pixels")
	_ = cmd.MarkFlagRequired("participants")

	return cmd
}

func runFlow(opts *FlowOptions, cmd *cobra.Command) error {
	if len(opts.Participants) == 0 {
		return NewExitError(ExitCommandError, "--participants must name at least one id")
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

	result := layout.Flow(events, opts.Participants, layout.FlowConfig{
		StartDate:     start,
		PxPerDay:      opts.PxPerDay,
		LaneWidth:     opts.LaneWidth,
		ViewportWidth: opts.Width,
	})

	return opts.formatter(cmd).Success(summarizeFlow(result), func(w io.Writer) {
		fmt.Fprintf(w, "%d paths, %d shared events\n", len(result.Paths), len(result.Intersections))
		for _, p := range result.Paths {
			junctions := 0
			for _, n := range p.Nodes {
				if n.IsJunction {
					junctions++
				}
			}
			fmt.Fprintf(w, "  %-12s %3d nodes  %3d junctions  %3d segments\n",
				p.DisplayName, len(p.Nodes), junctions, len(p.Curve))
		}
	})
}
