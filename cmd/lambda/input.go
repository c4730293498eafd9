package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/malphas-lang/lambda/internal/source"
)

const stdinName = "<stdin>"

// programArg returns the single path argument, "-" when absent.
func programArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// displayName is the name diagnostics use for path.
func displayName(path string) string {
	if path == "-" {
		return stdinName
	}
	return path
}

// readProgram returns the whole text of path, reading the command's stdin for
// "-".
func readProgram(cmd *cobra.Command, path string) (string, error) {
	if path != "-" {
		return source.ReadFile(path)
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, "reading stdin")
	}
	return string(b), nil
}

// openProgram returns a reader over path, or the command's stdin for "-".
func openProgram(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	return f, nil
}
