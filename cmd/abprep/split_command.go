package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"abprep/internal/runlog"
	"abprep/internal/splitter"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "split",
		Short: "Copy combined images into train/val subsets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunEnv(cmd.Context(), func(runCtx context.Context, env *runEnv) error {
				record, err := env.store.Begin(runCtx, runlog.KindSplit, env.cfg.Split.Ratio, env.cfg.Split.Seed)
				if err != nil {
					return err
				}

				result, runErr := splitter.New(env.cfg, env.logger).Run(runCtx)
				if result != nil {
					record.Seed = result.Seed
					record.TrainCount = result.TrainCount
					record.ValCount = result.ValCount
					recordAssignments(env, record.ID, result.Assignment)
				}
				finishRun(env, record, runErr)
				if runErr != nil {
					return runErr
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Split %d image(s): %d train, %d val (seed %d)\n",
					result.Total, result.TrainCount, result.ValCount, result.Seed)
				return nil
			})
		},
	}
}
