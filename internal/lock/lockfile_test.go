package lock_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prajwal-Prathiksh/rainchart/internal/lock"
)

func TestTryAcquire(t *testing.T) {
	t.Parallel()

	l := &lock.File{Path: filepath.Join(t.TempDir(), "sub", "cache.lock")}
	ok, err := l.TryAcquire()
	require.NoError(t, err)
	require.True(t, ok)

	b, err := os.ReadFile(l.Path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(b))

	// Our own PID is alive, so a second attempt fails.
	ok, err = l.TryAcquire()
	require.NoError(t, err)
	assert.False(t, ok)

	l.Release()
	ok, err = l.TryAcquire()
	require.NoError(t, err)
	assert.True(t, ok)
	l.Release()
}

func TestStaleLockIsTakenOver(t *testing.T) {
	t.Parallel()

	l := &lock.File{Path: filepath.Join(t.TempDir(), "cache.lock")}
	require.NoError(t, os.WriteFile(l.Path, []byte("999999999"), 0o644))

	ok, err := l.TryAcquire()
	require.NoError(t, err)
	assert.True(t, ok)
	l.Release()
}

func TestAcquireTimesOut(t *testing.T) {
	t.Parallel()

	l := &lock.File{Path: filepath.Join(t.TempDir(), "cache.lock")}
	require.NoError(t, l.Acquire(context.Background(), time.Millisecond))
	defer l.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := l.Acquire(ctx, 5*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, lock.ErrHeld))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
