package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"abprep/internal/pairer"
	"abprep/internal/runlog"
)

func newPairCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pair",
		Short: "Concatenate matched source/annotation images into AB images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunEnv(cmd.Context(), func(runCtx context.Context, env *runEnv) error {
				record, err := env.store.Begin(runCtx, runlog.KindPair, env.cfg.Split.Ratio, env.cfg.Split.Seed)
				if err != nil {
					return err
				}

				result, runErr := pairer.New(env.cfg, env.logger).Run(runCtx)
				if result != nil {
					record.Paired = result.Paired
					record.Skipped = result.SkippedSource + result.SkippedAnnotation
				}
				finishRun(env, record, runErr)
				if runErr != nil {
					return runErr
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Paired %d image(s) into %s (%d unmatched skipped)\n",
					result.Paired, env.cfg.Paths.CombinedDir, record.Skipped)
				return nil
			})
		},
	}
}
