package commands

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowSeesWriteDuringFirstRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaderboard.html")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	renders := make(chan int32, 16)
	var count atomic.Int32
	render := func() {
		n := count.Add(1)
		if n == 1 {
			assert.NoError(t, os.WriteFile(path, []byte("v2"), 0644))
		}
		renders <- n
	}

	done := make(chan error, 1)
	go func() { done <- follow(ctx, path, render) }()

	assert.Equal(t, int32(1), <-renders)
	select {
	case n := <-renders:
		assert.Equal(t, int32(2), n)
	case <-time.After(5 * time.Second):
		t.Fatal("write during first render was not seen")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestFollowMissingDir(t *testing.T) {
	err := follow(context.Background(), filepath.Join(t.TempDir(), "missing", "x.html"), func() {})
	assert.Error(t, err)
}
