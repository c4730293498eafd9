package main

import (
	"io"
	"strconv"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/malphas-lang/lambda/internal/diag"
	"github.com/malphas-lang/lambda/internal/lexer"
	"github.com/malphas-lang/lambda/internal/logging"
	"github.com/malphas-lang/lambda/internal/source"
)

func (a *app) lexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lex [file]",
		Short: "Print the token stream of a program.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := programArg(args)
			name := displayName(path)

			in, err := openProgram(cmd, path)
			if err != nil {
				return err
			}
			defer in.Close()

			// Keep a copy of the text for diagnostic snippets.
			var text strings.Builder
			reader := source.NewLineReader(io.TeeReader(in, &text))
			results := source.Collect[lexer.Result]()
			lexer.New(results).Run(reader)
			if err := reader.Err(); err != nil {
				return err
			}

			var ds []diag.Diagnostic
			table := tablewriter.NewWriter(a.stdout)
			table.SetHeader([]string{"#", "Token", "Text", "Position"})
			table.SetAutoWrapText(false)
			for i, r := range results.Items {
				row := []string{strconv.Itoa(i)}
				if r.OK() {
					row = append(row, r.Token.Type.String(), r.Token.Text, r.Token.Position.String())
				} else {
					row = append(row, r.Err.Kind.String(), string(r.Err.Char), r.Err.Position.String())
					ds = append(ds, r.Err.ToDiagnostic().WithFilename(name))
				}
				table.Append(row)
			}
			table.Render()
			logging.Debugf("lexed %s results from %s", humanize.Comma(int64(len(results.Items))), name)

			if len(ds) > 0 {
				f := diag.NewFormatter(a.stderr, a.cfg.Color)
				f.AddSource(name, text.String())
				f.FormatAll(ds)
				return errReported
			}
			return nil
		},
	}
}
