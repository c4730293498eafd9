package logging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/malphas-lang/lambda/internal/logging"
)

func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := logging.SetLogger(logging.New(logging.ToWriter(buf), verbose))
	t.Cleanup(func() { logging.SetLogger(prev) })
	return buf
}

func TestInfofWritesMessage(t *testing.T) {
	buf := capture(t, false)
	logging.Infof("reduced in %d steps", 3)
	assert.Contains(t, buf.String(), "reduced in 3 steps")
}

func TestDebugfNeedsVerbose(t *testing.T) {
	buf := capture(t, false)
	logging.Debugf("hidden")
	assert.NotContains(t, buf.String(), "hidden")

	buf = capture(t, true)
	logging.Debugf("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNopDiscards(t *testing.T) {
	buf := capture(t, true)
	logging.SetLogger(logging.Nop())
	logging.Warningf("dropped")
	logging.Errorf("dropped")
	assert.Empty(t, buf.String())
}

func TestInitWritesToDestination(t *testing.T) {
	buf := capture(t, false)
	logging.Init(buf, true)
	logging.Debugf("visible at debug")
	assert.Contains(t, buf.String(), "visible at debug")
}
