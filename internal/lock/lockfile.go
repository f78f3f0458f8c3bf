// Package lock provides an exclusive lock file keyed on the owner's PID.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrHeld is returned by Acquire when the context ends while another
// live process holds the lock.
var ErrHeld = errors.New("lock: held by another process")

// File is a lock file holding the PID of its owner. A file whose owner is
// no longer running is stale and gets taken over.
type File struct {
	Path string
}

// TryAcquire takes the lock once without waiting.
func (f *File) TryAcquire() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return false, err
	}
	ok, err := f.create()
	if ok || err != nil {
		return ok, err
	}

	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f.create()
		}
		return false, err
	}
	if pid, _ := strconv.Atoi(strings.TrimSpace(string(b))); pid > 0 && alive(pid) {
		return false, nil
	}
	_ = os.Remove(f.Path)
	return f.create()
}

// create makes the lock file with O_EXCL. It reports false when the file
// already exists.
func (f *File) create() (bool, error) {
	fh, err := os.OpenFile(f.Path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, os.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer fh.Close()
	_, _ = fh.WriteString(strconv.Itoa(os.Getpid()))
	return true, nil
}

// Acquire polls TryAcquire every interval until the lock is taken or ctx
// is done.
func (f *File) Acquire(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		ok, err := f.TryAcquire()
		if err != nil {
			return fmt.Errorf("lock %s: %w", f.Path, err)
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s: %w", ErrHeld, f.Path, ctx.Err())
		case <-t.C:
		}
	}
}

// Release removes the lock file.
func (f *File) Release() { _ = os.Remove(f.Path) }

func alive(pid int) bool {
	_, err := os.Stat(fmt.Sprintf("/proc/%d", pid))
	return err == nil
}
