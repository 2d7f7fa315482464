package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"jobmirror/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name         string
		env          string
		debugEnabled bool
	}{
		{"local logs debug", config.EnvLocal, true},
		{"dev logs debug", config.EnvDev, true},
		{"prod logs info and above", config.EnvProd, false},
		{"unknown env falls back to local", "staging", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.env)
			require.NotNil(t, log)

			ctx := context.Background()
			assert.Equal(t, tt.debugEnabled, log.Enabled(ctx, slog.LevelDebug))
			assert.True(t, log.Enabled(ctx, slog.LevelInfo))
			assert.True(t, log.Enabled(ctx, slog.LevelError))
		})
	}
}
