package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/malphas-lang/lambda/internal/golden"
	"github.com/malphas-lang/lambda/internal/logging"
)

func (a *app) testCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test [paths...]",
		Short: "Check programs against their expected normal forms.",
		Long: `Runs every *.lc program under the given paths (default ".").
A program passes when its normal form matches the sibling .nf file, or
when it fails with the diagnostic code held in the sibling .err file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := golden.Run(cmd.Context(), args, a.options(""))
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(a.stdout, "No test files found")
				return nil
			}

			var passed, failed int
			for _, r := range results {
				if r.Passed {
					passed++
					fmt.Fprintf(a.stdout, "  ✓ %s\n", r.Name)
					continue
				}
				failed++
				fmt.Fprintf(a.stdout, "  ✗ %s\n", r.Name)
				if r.Err != nil {
					fmt.Fprintf(a.stdout, "    Error: %v\n", r.Err)
				} else {
					fmt.Fprintf(a.stdout, "    Got:  %s\n    Want: %s\n", r.Got, r.Want)
				}
			}

			fmt.Fprintf(a.stdout, "\nTest Results: %d total, %d passed, %d failed\n", len(results), passed, failed)
			if err := golden.Summary(results); err != nil {
				logging.Debugf("%v", err)
				return errReported
			}
			return nil
		},
	}
}
