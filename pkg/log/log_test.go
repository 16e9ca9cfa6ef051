package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return &buf
}

func TestDebugfGatedByVerbose(t *testing.T) {
	buf := capture(t)

	Debugf("hidden %s", "detail")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debugf("shown %s", "detail")
	assert.Contains(t, buf.String(), "shown detail")
}

func TestErrorfWritesErrorLevel(t *testing.T) {
	buf := capture(t)

	Errorf("robots fetch failed: %v", "boom")
	assert.Contains(t, buf.String(), "robots fetch failed: boom")
	assert.Contains(t, buf.String(), "ERR")
}
