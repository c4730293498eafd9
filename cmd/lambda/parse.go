package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/malphas-lang/lambda/internal/parser"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func (a *app) parseCmd() *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the parsed term of a program.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := programArg(args)
			name := displayName(path)
			text, err := readProgram(cmd, path)
			if err != nil {
				return err
			}

			expr, err := parser.ParseString(text, parser.WithFilename(name))
			if err != nil {
				return a.report(err, name, text)
			}
			if dump {
				dumpConfig.Fdump(a.stdout, expr)
				return nil
			}
			fmt.Fprintln(a.stdout, expr)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "print the full tree structure")
	return cmd
}
