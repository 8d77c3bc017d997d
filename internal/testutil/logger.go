package testutil

import (
	"bytes"
	"testing"

	"github.com/quantmind-br/hdlmanifest/internal/utils"
	"github.com/rs/zerolog"
)

// NewTestLogger creates a debug-level JSON logger writing into the returned buffer
func NewTestLogger(t *testing.T) (*utils.Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	zlogger := zerolog.New(&buf).
		Level(zerolog.DebugLevel).
		With().
		Str("test", t.Name()).
		Logger()

	return &utils.Logger{Logger: zlogger}, &buf
}
