// Package cache stores analysed chart documents on disk, keyed by session.
package cache

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
	"github.com/Prajwal-Prathiksh/rainchart/internal/lock"
)

var (
	// ErrMiss is returned by Get when no entry exists for a key.
	ErrMiss = errors.New("cache: miss")
	// ErrExpired is returned by Get when the entry is older than MaxAge.
	ErrExpired = errors.New("cache: expired")
)

// DefaultMaxAge is how long an entry stays fresh.
const DefaultMaxAge = 24 * time.Hour

// Key identifies one session.
type Key struct {
	Year    int
	Race    string
	Session string
}

// String returns the file name stem rain_analysis_{year}_{race}_{session}.
func (k Key) String() string {
	return fmt.Sprintf("rain_analysis_%d_%s_%s", k.Year, component(k.Race), component(k.Session))
}

func component(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ', r == '/', r == '\\', r == os.PathSeparator:
			return '_'
		}
		return r
	}, s)
}

// Entry is the on-disk form of a cached document.
type Entry struct {
	Key      string         `json:"key"`
	CachedAt time.Time      `json:"cached_at"`
	Document chart.Document `json:"document"`
}

// Store is a directory of JSON entries.
type Store struct {
	Dir    string
	MaxAge time.Duration
	Logger *log.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// New returns a store rooted at dir.
func New(dir string, maxAge time.Duration, logger *log.Logger) *Store {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{Dir: dir, MaxAge: maxAge, Logger: logger, Now: time.Now}
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Path returns the entry file for k.
func (s *Store) Path(k Key) string {
	return filepath.Join(s.Dir, k.String()+".json")
}

// Get reads the entry for k. Expired entries are still returned, along
// with ErrExpired.
func (s *Store) Get(k Key) (Entry, error) {
	path := s.Path(k)
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Entry{}, fmt.Errorf("%w: %s", ErrMiss, k)
	}
	if err != nil {
		return Entry{}, err
	}

	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		return Entry{}, fmt.Errorf("cache: decode %s: %w", path, err)
	}
	if age := s.now().Sub(e.CachedAt); age > s.MaxAge {
		s.Logger.Debug("cache entry expired", "key", k, "age", age.Round(time.Second))
		return e, fmt.Errorf("%w: %s cached %s ago", ErrExpired, k, age.Round(time.Second))
	}
	s.Logger.Debug("cache hit", "key", k)
	return e, nil
}

// Put writes the entry for k. The file is written next to its final path
// and renamed under the store's lock file.
func (s *Store) Put(ctx context.Context, k Key, doc chart.Document) (Entry, error) {
	if err := ensureDir(s.Path(k)); err != nil {
		return Entry{}, err
	}
	l := &lock.File{Path: filepath.Join(s.Dir, ".lock")}
	if err := l.Acquire(ctx, 50*time.Millisecond); err != nil {
		return Entry{}, err
	}
	defer l.Release()

	e := Entry{Key: k.String(), CachedAt: s.now().UTC(), Document: doc}
	if err := writeAtomic(s.Path(k), e); err != nil {
		return Entry{}, err
	}
	s.Logger.Debug("cache stored", "key", k, "path", s.Path(k))
	return e, nil
}

func writeAtomic(path string, e Entry) error {
	tmp := path + ".tmp"
	dst, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer dst.Close()

	bw := bufio.NewWriter(dst)
	enc := json.NewEncoder(bw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path) // atomic within same dir
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
