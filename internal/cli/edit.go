package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coresick/lifeline/internal/editor"
	"github.com/coresick/lifeline/internal/model"
	"github.com/coresick/lifeline/internal/store"
)

// EditOptions holds flags shared by the edit subcommands.
type EditOptions struct {
	*RootOptions
}

// NewEditCommand creates the edit command group.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Rework events: split, merge, move assets, pick key assets",
		Long: `Rework events after import.

Every operation validates first and leaves the database untouched when
rejected; rejected edits exit with status 1 and a structured error code.`,
	}

	cmd.AddCommand(newSplitCommand(opts))
	cmd.AddCommand(newMergeCommand(opts))
	cmd.AddCommand(newMoveCommand(opts))
	cmd.AddCommand(newKeyCommand(opts))

	return cmd
}

func newSplitCommand(opts *EditOptions) *cobra.Command {
	var eventID, groups string

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split one event into several",
		Long: `Split one event into several, one per asset group.

Groups are semicolon-separated lists of comma-separated asset ids and
must partition the event's assets exactly.

Example:
  lifeline edit split --db ./timeline.db --event ev-1 --groups 'a-1,a-2;a-3'`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEvent(cmd, eventID, func(ctx context.Context, st *store.Store, ev model.TimelineEvent) error {
				parsed := parseGroups(groups)
				results, err := editor.Split(ev, parsed, model.UUIDv7Generator{})
				if err != nil {
					return opts.editFailure(cmd, err)
				}
				if err := st.ApplyEdit(ctx, []string{ev.ID}, results); err != nil {
					return WrapExitError(ExitCommandError, "failed to persist split", err)
				}
				return opts.formatter(cmd).Success(results, func(w io.Writer) {
					fmt.Fprintf(w, "Split %s into %d events\n", ev.ID, len(results))
					for _, r := range results {
						fmt.Fprintf(w, "  %s  %d assets\n", r.ID, len(r.Assets))
					}
				})
			})
		},
	}

	cmd.Flags().StringVar(&eventID, "event", "", "event id to split (required)")
	cmd.Flags().StringVar(&groups, "groups", "", "asset groups, e.g. 'a-1,a-2;a-3' (required)")
	_ = cmd.MarkFlagRequired("event")
	_ = cmd.MarkFlagRequired("groups")

	return cmd
}

func newMergeCommand(opts *EditOptions) *cobra.Command {
	var eventIDs []string
	var primaryID string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge two or more events into one",
		Long: `Merge two or more events into one.

The primary event (earliest by default) contributes type, privacy, and
the timestamp anchor.

Example:
  lifeline edit merge --db ./timeline.db --events ev-1,ev-2 --primary ev-2`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(opts.RootOptions)
			if err != nil {
				return err
			}
			defer closeStore(st)

			ctx := cmd.Context()
			events := make([]model.TimelineEvent, 0, len(eventIDs))
			for _, id := range eventIDs {
				ev, err := st.GetEvent(ctx, id)
				if err != nil {
					return eventLoadError(id, err)
				}
				events = append(events, ev)
			}

			merged, err := editor.Merge(events, primaryID, model.UUIDv7Generator{})
			if err != nil {
				return opts.editFailure(cmd, err)
			}
			if err := st.ApplyEdit(ctx, eventIDs, []model.TimelineEvent{merged}); err != nil {
				return WrapExitError(ExitCommandError, "failed to persist merge", err)
			}
			return opts.formatter(cmd).Success(merged, func(w io.Writer) {
				fmt.Fprintf(w, "Merged %d events into %s (%d assets)\n",
					len(events), merged.ID, len(merged.Assets))
			})
		},
	}

	cmd.Flags().StringSliceVar(&eventIDs, "events", nil, "event ids to merge (required)")
	cmd.Flags().StringVar(&primaryID, "primary", "", "primary event id (default: earliest)")
	_ = cmd.MarkFlagRequired("events")

	return cmd
}

func newMoveCommand(opts *EditOptions) *cobra.Command {
	var fromID, toID string
	var assetIDs []string

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move assets between events",
		Long: `Move assets from one event to another.

The move is rejected if it would leave the source event empty.

Example:
  lifeline edit move --db ./timeline.db --from ev-1 --to ev-2 --assets a-3,a-4`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(opts.RootOptions)
			if err != nil {
				return err
			}
			defer closeStore(st)

			ctx := cmd.Context()
			source, err := st.GetEvent(ctx, fromID)
			if err != nil {
				return eventLoadError(fromID, err)
			}
			target, err := st.GetEvent(ctx, toID)
			if err != nil {
				return eventLoadError(toID, err)
			}

			newSource, newTarget, err := editor.MoveAssets(assetIDs, source, target)
			if err != nil {
				return opts.editFailure(cmd, err)
			}
			if err := st.ApplyEdit(ctx, nil, []model.TimelineEvent{newSource, newTarget}); err != nil {
				return WrapExitError(ExitCommandError, "failed to persist move", err)
			}
			return opts.formatter(cmd).Success([]model.TimelineEvent{newSource, newTarget}, func(w io.Writer) {
				fmt.Fprintf(w, "Moved %d assets from %s to %s\n", len(assetIDs), fromID, toID)
			})
		},
	}

	cmd.Flags().StringVar(&fromID, "from", "", "source event id (required)")
	cmd.Flags().StringVar(&toID, "to", "", "target event id (required)")
	cmd.Flags().StringSliceVar(&assetIDs, "assets", nil, "asset ids to move (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("assets")

	return cmd
}

func newKeyCommand(opts *EditOptions) *cobra.Command {
	var eventID, assetID string

	cmd := &cobra.Command{
		Use:   "key",
		Short: "Choose an event's key asset",
		Long: `Choose the asset that represents an event in overviews.

Example:
  lifeline edit key --db ./timeline.db --event ev-1 --asset a-2`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEvent(cmd, eventID, func(ctx context.Context, st *store.Store, ev model.TimelineEvent) error {
				updated, err := editor.SetKeyAsset(ev, assetID)
				if err != nil {
					return opts.editFailure(cmd, err)
				}
				if err := st.PutEvent(ctx, updated); err != nil {
					return WrapExitError(ExitCommandError, "failed to persist key asset", err)
				}
				return opts.formatter(cmd).Success(updated, func(w io.Writer) {
					fmt.Fprintf(w, "Key asset of %s is now %s\n", eventID, assetID)
				})
			})
		},
	}

	cmd.Flags().StringVar(&eventID, "event", "", "event id (required)")
	cmd.Flags().StringVar(&assetID, "asset", "", "asset id to promote (required)")
	_ = cmd.MarkFlagRequired("event")
	_ = cmd.MarkFlagRequired("asset")

	return cmd
}

// withEvent opens the store, loads one event, and runs fn against it.
func (o *EditOptions) withEvent(cmd *cobra.Command, eventID string, fn func(context.Context, *store.Store, model.TimelineEvent) error) error {
	st, err := openStore(o.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := cmd.Context()
	ev, err := st.GetEvent(ctx, eventID)
	if err != nil {
		return eventLoadError(eventID, err)
	}
	return fn(ctx, st, ev)
}

// editFailure reports a rejected edit: the structured code goes to output,
// the exit status is the domain-failure code.
func (o *EditOptions) editFailure(cmd *cobra.Command, err error) error {
	code := string(editor.CodeOf(err))
	if code == "" {
		code = "EDIT_REJECTED"
	}
	_ = o.formatter(cmd).Error(code, err.Error())
	return NewExitError(ExitFailure, "edit rejected")
}

func eventLoadError(id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return WrapExitError(ExitFailure, fmt.Sprintf("event %s not found", id), err)
	}
	return WrapExitError(ExitCommandError, "failed to load event", err)
}

// parseGroups splits 'a,b;c,d' into [[a b] [c d]], dropping empty entries.
func parseGroups(raw string) [][]string {
	var groups [][]string
	for _, part := range strings.Split(raw, ";") {
		var group []string
		for _, id := range strings.Split(part, ",") {
			if id = strings.TrimSpace(id); id != "" {
				group = append(group, id)
			}
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}
