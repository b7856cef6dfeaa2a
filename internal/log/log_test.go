package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := New(&buf, LevelInfo)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("appended input", zap.String("path", "one.pdf"))
	require.NoError(t, l.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "appended input")
	assert.Contains(t, buf.String(), "one.pdf")
}

func TestNew_DefaultIsWarn(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := New(&buf, "")
	require.NoError(t, err)

	l.Info("quiet")
	l.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestNew_BadLevel(t *testing.T) {
	t.Parallel()

	_, err := New(&bytes.Buffer{}, "verbose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "debug, info, warn, error")
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	require.NotNil(t, From(context.Background()))

	l := zap.NewExample()
	ctx := With(context.Background(), l)
	assert.Same(t, l, From(ctx))
}
