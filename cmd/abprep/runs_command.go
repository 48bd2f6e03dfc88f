package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"abprep/internal/runlog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded preparation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *runlog.Store) error {
				runs, err := store.ListRuns(cmd.Context())
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
					return nil
				}

				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortID(run.ID),
						string(run.Kind),
						formatTime(run.StartedAt),
						runStatus(run),
						strconv.Itoa(run.Paired),
						strconv.Itoa(run.Skipped),
						strconv.Itoa(run.TrainCount),
						strconv.Itoa(run.ValCount),
						strconv.FormatInt(run.Seed, 10),
					})
				}

				headers := []string{"ID", "KIND", "STARTED", "STATUS", "PAIRED", "SKIPPED", "TRAIN", "VAL", "SEED"}
				aligns := []columnAlignment{
					alignLeft, alignLeft, alignLeft, alignLeft,
					alignRight, alignRight, alignRight, alignRight, alignRight,
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
				return nil
			})
		},
	}

	runsCmd.AddCommand(newRunsShowCommand(ctx))
	return runsCmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a run and its recorded split assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *runlog.Store) error {
				run, err := findRun(cmd, store, args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s (%s)\n", run.ID, run.Kind)
				fmt.Fprintf(out, "  started:  %s\n", formatTime(run.StartedAt))
				if run.FinishedAt != nil {
					fmt.Fprintf(out, "  finished: %s\n", formatTime(*run.FinishedAt))
				}
				fmt.Fprintf(out, "  status:   %s\n", runStatus(run))
				if run.ErrorMessage != "" {
					fmt.Fprintf(out, "  error:    %s\n", run.ErrorMessage)
				}
				fmt.Fprintf(out, "  ratio:    %.2f  seed: %d\n", run.Ratio, run.Seed)
				fmt.Fprintf(out, "  paired:   %d  skipped: %d  train: %d  val: %d\n",
					run.Paired, run.Skipped, run.TrainCount, run.ValCount)

				assignments, err := store.Assignments(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				if len(assignments) == 0 {
					return nil
				}

				rows := make([][]string, 0, len(assignments))
				for _, a := range assignments {
					rows = append(rows, []string{a.Filename, string(a.Subset)})
				}
				fmt.Fprintln(out, renderTable([]string{"FILE", "SUBSET"}, rows, []columnAlignment{alignLeft, alignLeft}))
				return nil
			})
		},
	}
}

// findRun resolves a full or shortened run identifier.
func findRun(cmd *cobra.Command, store *runlog.Store, id string) (*runlog.Run, error) {
	run, err := store.GetRun(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	if run != nil {
		return run, nil
	}

	runs, err := store.ListRuns(cmd.Context())
	if err != nil {
		return nil, err
	}
	var match *runlog.Run
	for _, candidate := range runs {
		if len(id) >= 4 && len(candidate.ID) >= len(id) && candidate.ID[:len(id)] == id {
			if match != nil {
				return nil, fmt.Errorf("run id %q is ambiguous", id)
			}
			match = candidate
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no run with id %q", id)
	}
	return match, nil
}

func runStatus(run *runlog.Run) string {
	switch {
	case run.FinishedAt == nil:
		return "incomplete"
	case run.ErrorMessage != "":
		return "failed"
	default:
		return "ok"
	}
}
