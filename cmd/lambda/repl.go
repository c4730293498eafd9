package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/malphas-lang/lambda/internal/logging"
	"github.com/malphas-lang/lambda/internal/parser"
	"github.com/malphas-lang/lambda/internal/pipeline"
)

const (
	promptMain = "λ> "
	promptCont = ".. "
	replName   = "<repl>"
)

const replHelp = `Enter a term to reduce it. Unfinished input continues on the next line.
  :trace on|off   print every reduction step, or only the normal form
  :quit           leave the REPL`

// prompter reads one line of input. *liner.State implements it.
type prompter interface {
	Prompt(prompt string) (string, error)
}

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Reduce terms interactively.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			if path := a.cfg.HistoryFile; path != "" {
				loadHistory(ln, path)
				defer saveHistory(ln, path)
			}

			r := a.newREPL()
			r.history = ln.AppendHistory
			fmt.Fprintln(a.stdout, "Type :help for commands.")
			r.loop(cmd.Context(), ln)
			return nil
		},
	}
}

// history is the part of *liner.State that persists input lines.
type history interface {
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
}

// loadHistory reads path into h. A missing file is not an error.
func loadHistory(h history, path string) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		logging.Warningf("reading history: %v", err)
		return
	}
	defer f.Close()
	if _, err := h.ReadHistory(f); err != nil {
		logging.Warningf("reading history %s: %v", path, err)
	}
}

// saveHistory writes the lines of h to path.
func saveHistory(h history, path string) {
	f, err := os.Create(path)
	if err != nil {
		logging.Warningf("writing history: %v", err)
		return
	}
	if _, err := h.WriteHistory(f); err != nil {
		logging.Warningf("writing history %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		logging.Warningf("closing history %s: %v", path, err)
	}
}

// repl evaluates one term per input and keeps the :trace setting between
// inputs.
type repl struct {
	a       *app
	trace   bool
	result  *color.Color
	history func(string)
}

func (a *app) newREPL() *repl {
	c := color.New(color.FgGreen)
	if a.cfg.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return &repl{a: a, trace: a.cfg.Trace, result: c, history: func(string) {}}
}

func (r *repl) loop(ctx context.Context, p prompter) {
	for ctx.Err() == nil {
		input, ok := readInput(p, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(r.a.stdout)
			return
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		r.history(strings.ReplaceAll(input, "\n", " "))
		if quit := r.handle(ctx, input); quit {
			return
		}
	}
}

// handle runs a command or evaluates a term. It reports true for :quit.
func (r *repl) handle(ctx context.Context, input string) bool {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, ":") {
		r.eval(ctx, input)
		return false
	}

	fields := strings.Fields(trimmed)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(r.a.stdout, replHelp)
	case ":trace":
		switch {
		case len(fields) == 2 && fields[1] == "on":
			r.trace = true
		case len(fields) == 2 && fields[1] == "off":
			r.trace = false
		default:
			fmt.Fprintf(r.a.stdout, "trace is %s; use :trace on|off\n", onOff(r.trace))
		}
	default:
		fmt.Fprintf(r.a.stdout, "unknown command %s. Type :help for commands.\n", fields[0])
	}
	return false
}

func (r *repl) eval(ctx context.Context, input string) {
	opts := r.a.options(replName)
	if r.trace {
		opts.Trace = pipeline.TextTrace(r.a.stdout)
	}
	res, err := pipeline.RunString(ctx, input, opts)
	if err != nil {
		if rerr := r.a.report(err, replName, input); !errors.Is(rerr, errReported) {
			fmt.Fprintln(r.a.stderr, "Error:", rerr)
		}
		return
	}
	if !r.trace {
		r.result.Fprintln(r.a.stdout, res.Normal)
	}
}

// readInput reads lines until they form a term that is either complete or
// wrong in a way more input cannot fix. It reports false at end of input.
func readInput(p prompter, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		current := prompt
		if b.Len() > 0 {
			current = cont
		}
		line, err := p.Prompt(current)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			logging.Errorf("reading input: %v", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := parser.ParseString(src); !parser.IsIncomplete(perr) {
			return src, true
		}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
