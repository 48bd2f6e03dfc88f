package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"abprep/internal/pairer"
	"abprep/internal/runlog"
	"abprep/internal/splitter"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Pair images and split the combined set in one pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunEnv(cmd.Context(), func(runCtx context.Context, env *runEnv) error {
				record, err := env.store.Begin(runCtx, runlog.KindRun, env.cfg.Split.Ratio, env.cfg.Split.Seed)
				if err != nil {
					return err
				}

				pairResult, pairErr := pairer.New(env.cfg, env.logger).Run(runCtx)
				if pairResult != nil {
					record.Paired = pairResult.Paired
					record.Skipped = pairResult.SkippedSource + pairResult.SkippedAnnotation
				}
				if pairErr != nil {
					finishRun(env, record, pairErr)
					return pairErr
				}

				splitResult, splitErr := splitter.New(env.cfg, env.logger).Run(runCtx)
				if splitResult != nil {
					record.Seed = splitResult.Seed
					record.TrainCount = splitResult.TrainCount
					record.ValCount = splitResult.ValCount
					recordAssignments(env, record.ID, splitResult.Assignment)
				}
				finishRun(env, record, splitErr)
				if splitErr != nil {
					return splitErr
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Paired %d image(s), split into %d train / %d val (seed %d)\n",
					pairResult.Paired, splitResult.TrainCount, splitResult.ValCount, splitResult.Seed)
				return nil
			})
		},
	}
}
