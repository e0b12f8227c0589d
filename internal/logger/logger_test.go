package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	code := m.Run()
	SetOutput(os.Stderr)
	os.Exit(code)
}

func TestDebug_SuppressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden %d", 1)
	Info("hidden too")

	assert.Empty(t, buf.String())
}

func TestDebug_EmittedWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	defer SetVerbose(false)

	Debug("check %s", "abc")
	Section("candidates")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] check abc")
	assert.Contains(t, out, "=== candidates ===")
}

func TestWarn_AlwaysEmitted(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Warn("corpus %d unreadable", 7)

	assert.Contains(t, buf.String(), "[WARN] corpus 7 unreadable")
}

func TestAudit_AlwaysEmitted(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Audit("CHECK_COMPLETED", "check=%d", 12)

	assert.Contains(t, buf.String(), "[AUDIT] CHECK_COMPLETED check=12")
}
