// Package pipeline runs source text through the lexer, parser and
// interpreter and enforces the reduction budget.
//
// Phase progression:
//
//	runes -> Lexer -> tokens -> Parser -> tree -> Interpreter -> normal form
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/pkg/errors"

	"github.com/malphas-lang/lambda/internal/ast"
	"github.com/malphas-lang/lambda/internal/interp"
	"github.com/malphas-lang/lambda/internal/lexer"
	"github.com/malphas-lang/lambda/internal/logging"
	"github.com/malphas-lang/lambda/internal/parser"
	"github.com/malphas-lang/lambda/internal/source"
)

// ErrStepLimit is returned when a term is still reducible after the
// configured number of steps.
var ErrStepLimit = errors.New("step limit reached before normal form")

// Options configures a run.
type Options struct {
	// MaxSteps bounds the number of reductions; 0 means unbounded.
	MaxSteps int
	// Timeout bounds the wall time spent reducing; 0 means none.
	Timeout time.Duration
	// Trace receives the initial term and every reduct. May be nil.
	Trace source.Sink[Step]
	// Filename is attached to parse errors.
	Filename string
}

// Step is one term of a reduction trace. Index 0 is the parsed term.
type Step struct {
	Index int
	Term  ast.Expression
}

// Result is the outcome of a run.
type Result struct {
	// Normal is the normal form, or the last term reached when the run
	// stopped early.
	Normal ast.Expression
	// Steps is the number of reductions performed.
	Steps int
	// Tokens is the number of tokens lexed.
	Tokens int
}

// Run lexes, parses and reduces src. A parse failure returns a nil Result.
// When the budget is exhausted or ctx is done the partial Result is returned
// alongside ErrStepLimit or the context error.
func Run(ctx context.Context, src source.Source[rune], opts Options) (*Result, error) {
	start := time.Now()

	lexed := source.Collect[lexer.Result]()
	lexer.New(lexed).Run(src)

	tree, err := parser.Parse(source.FromSlice(lexed.Items), parser.WithFilename(opts.Filename))
	if err != nil {
		return nil, err
	}
	res := &Result{Normal: tree, Tokens: len(lexed.Items)}
	logging.Debugf("parsed %s tokens in %s", humanize.Comma(int64(res.Tokens)), durafmt.Parse(time.Since(start)))

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	trace := opts.Trace
	if trace == nil {
		trace = source.Discard[Step]()
	}

	index := 0
	for term := range interp.Interpret(tree) {
		if err := ctx.Err(); err != nil {
			return res, errors.Wrapf(err, "reduction stopped after %s steps", humanize.Comma(int64(res.Steps)))
		}
		if opts.MaxSteps > 0 && index > opts.MaxSteps {
			return res, errors.Wrapf(ErrStepLimit, "limit of %s", humanize.Comma(int64(opts.MaxSteps)))
		}
		trace.Put(Step{Index: index, Term: term})
		res.Normal = term
		res.Steps = index
		index++
	}

	logging.Debugf("normal form after %s steps in %s", humanize.Comma(int64(res.Steps)), durafmt.Parse(time.Since(start)))
	return res, nil
}

// RunString is Run over an in-memory program.
func RunString(ctx context.Context, src string, opts Options) (*Result, error) {
	return Run(ctx, source.FromString(src), opts)
}

// TextTrace returns a sink printing each step as "<index>: <term>".
func TextTrace(w io.Writer) source.Sink[Step] {
	return source.SinkFunc[Step](func(s Step) {
		fmt.Fprintf(w, "%d: %s\n", s.Index, s.Term)
	})
}
