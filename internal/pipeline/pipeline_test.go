package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malphas-lang/lambda/internal/diag"
	"github.com/malphas-lang/lambda/internal/parser"
	"github.com/malphas-lang/lambda/internal/pipeline"
	"github.com/malphas-lang/lambda/internal/source"
)

const omega = "(λx.x x) (λx.x x)"

func TestRunString_NormalForm(t *testing.T) {
	res, err := pipeline.RunString(context.Background(), "(λx.λy.x) a b", pipeline.Options{})
	require.NoError(t, err)
	assert.Equal(t, "a", res.Normal.String())
	assert.Equal(t, 2, res.Steps)
	assert.Equal(t, 11, res.Tokens)
}

func TestRun_TextTrace(t *testing.T) {
	var buf bytes.Buffer
	_, err := pipeline.RunString(context.Background(), "(λx.λy.x) a b", pipeline.Options{Trace: pipeline.TextTrace(&buf)})
	require.NoError(t, err)
	assert.Equal(t, "0: (λx.λy.x) a b\n1: (λ#0.a) b\n2: a\n", buf.String())
}

func TestRun_TraceCollectsSteps(t *testing.T) {
	steps := source.Collect[pipeline.Step]()
	_, err := pipeline.RunString(context.Background(), "(λx.x) y", pipeline.Options{Trace: steps})
	require.NoError(t, err)
	require.Len(t, steps.Items, 2)
	assert.Equal(t, 1, steps.Items[1].Index)
	assert.Equal(t, "y", steps.Items[1].Term.String())
}

func TestRun_StepLimit(t *testing.T) {
	steps := source.Collect[pipeline.Step]()
	res, err := pipeline.RunString(context.Background(), omega, pipeline.Options{MaxSteps: 10, Trace: steps})
	require.ErrorIs(t, err, pipeline.ErrStepLimit)
	require.NotNil(t, res)
	assert.Equal(t, 10, res.Steps)
	assert.Len(t, steps.Items, 11)

	ds := pipeline.Diagnostics(err)
	require.Len(t, ds, 1)
	assert.Equal(t, diag.CodeInterpStepLimit, ds[0].Code)
}

func TestRun_LimitNotHitAtExactBudget(t *testing.T) {
	res, err := pipeline.RunString(context.Background(), "(λx.λy.x) a b", pipeline.Options{MaxSteps: 2})
	require.NoError(t, err)
	assert.Equal(t, "a", res.Normal.String())
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := pipeline.RunString(ctx, omega, pipeline.Options{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Steps)
}

func TestRun_Timeout(t *testing.T) {
	_, err := pipeline.RunString(context.Background(), omega, pipeline.Options{Timeout: 20 * time.Millisecond})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRun_ParseErrorCarriesFilename(t *testing.T) {
	res, err := pipeline.RunString(context.Background(), "(x", pipeline.Options{Filename: "open.lc"})
	assert.Nil(t, res)

	var pe *parser.Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, parser.ErrMissingClosingBracket, pe.Kind)

	ds := pipeline.Diagnostics(err)
	require.Len(t, ds, 1)
	assert.Equal(t, "open.lc", ds[0].Span.Filename)
}

func TestDiagnostics_Other(t *testing.T) {
	assert.Nil(t, pipeline.Diagnostics(nil))
	assert.Nil(t, pipeline.Diagnostics(context.Canceled))
}
