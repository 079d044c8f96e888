package enumgo

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopLogger_Discards(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestLogger_WithDomain(t *testing.T) {
	l := NoopLogger().WithDomain("test.Domain")
	assert.NotNil(t, l.Logger)
}
