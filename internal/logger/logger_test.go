package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetTestOutput(&buf)
	t.Cleanup(UnsetTestOutput)
	return &buf
}

func TestInitLogger_LevelFiltering(t *testing.T) {
	buf := captureOutput(t)
	InitLogger("warn")

	Debugf("hidden %d", 1)
	Infof("also hidden")
	Warnf("shown %s", "warning")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warning")
}

func TestInitLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	buf := captureOutput(t)
	InitLogger("verbose")

	Debug("debug message")
	Info("info message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.Contains(t, out, "info message")
}

func TestFields(t *testing.T) {
	buf := captureOutput(t)
	InitLogger("info")

	Info("downloaded", Fields{"repo": "unfoldingword/en/obs"})

	assert.Contains(t, buf.String(), "repo=unfoldingword/en/obs")
}

func TestSuccessf(t *testing.T) {
	buf := captureOutput(t)
	InitLogger("info")

	Successf("fetched %d repositories", 3)

	assert.Contains(t, buf.String(), "SUCCESS: fetched 3 repositories")
}
