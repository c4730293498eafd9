package main

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/malphas-lang/lambda/internal/logging"
	"github.com/malphas-lang/lambda/internal/pipeline"
)

func (a *app) runCmd() *cobra.Command {
	var trace bool
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Reduce a program to normal form.",
		Long: `Reduces a program in normal order, printing each step as
"<index>: <term>". With --trace=false only the normal form is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("trace") {
				a.cfg.Trace = trace
			}
			path := programArg(args)
			name := displayName(path)
			text, err := readProgram(cmd, path)
			if err != nil {
				return err
			}

			opts := a.options(name)
			if a.cfg.Trace {
				opts.Trace = pipeline.TextTrace(a.stdout)
			}
			res, err := pipeline.RunString(cmd.Context(), text, opts)
			if err != nil {
				return a.report(err, name, text)
			}
			if !a.cfg.Trace {
				fmt.Fprintln(a.stdout, res.Normal)
			}
			logging.Infof("%s: normal form after %s steps", name, humanize.Comma(int64(res.Steps)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", true, "print every reduction step")
	return cmd
}
