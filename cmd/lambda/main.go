// Command lambda lexes, parses and reduces untyped lambda-calculus programs.
//
// Usage:
//
//	lambda run prog.lc        print the reduction trace and normal form
//	lambda lex prog.lc        print the token stream
//	lambda parse --dump -     print the tree of a program read from stdin
//	lambda repl               interactive evaluation
//	lambda test [paths...]    check *.lc programs against their .nf files
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	if err == nil {
		return
	}
	if !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	stop()
	os.Exit(1)
}
