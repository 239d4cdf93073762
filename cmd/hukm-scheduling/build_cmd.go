package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Shiftrdw/hukm-scheduling/internal/roster"
)

func newBuildCmd() *cobra.Command {
	var (
		affirmWeight   int
		excessDefault  int
		solveTimeLimit time.Duration
		shuffleSeed    int64
	)

	cmd := &cobra.Command{
		Use:   "build <scenario.json>",
		Short: "Solve a roster scenario and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := loadScenario(args[0])
			if err != nil {
				return fmt.Errorf("load scenario: %w", err)
			}

			cfg := roster.DefaultConfig()
			cfg.AffirmWeight = affirmWeight
			cfg.ExcessCover.Default = excessDefault
			cfg.SolveTimeLimit = solveTimeLimit
			cfg.WorkerShuffleSeed = shuffleSeed

			result, err := roster.Build(input, cfg)
			if err != nil {
				return fmt.Errorf("build roster: %w", err)
			}

			printStatus(result)
			printRoster(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&affirmWeight, "affirm-weight", -50, "objective weight applied to a satisfied AFFIRM request")
	cmd.Flags().IntVar(&excessDefault, "excess-cover-weight", 5, "default per-duty excess-cover penalty weight")
	cmd.Flags().DurationVar(&solveTimeLimit, "solve-time-limit", 30*time.Second, "solver wall-clock budget (0 = no limit)")
	cmd.Flags().Int64Var(&shuffleSeed, "shuffle-seed", 0, "deterministic worker-order shuffle seed (0 = no shuffle)")

	return cmd
}
