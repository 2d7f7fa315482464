package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacerEnforcesMinimumSpacing(t *testing.T) {
	p := newPacer(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, p.wait(ctx))
	}

	// First token is free, the next two must each wait out the spacing.
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestPacerFirstRequestNotDelayed(t *testing.T) {
	p := newPacer(time.Minute)

	start := time.Now()
	require.NoError(t, p.wait(context.Background()))

	assert.Less(t, time.Since(start), time.Second)
}

func TestPacerCancelledWhileWaiting(t *testing.T) {
	p := newPacer(time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, p.wait(ctx))
	assert.Error(t, p.wait(ctx))
}
