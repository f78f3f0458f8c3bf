package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
	"github.com/Prajwal-Prathiksh/rainchart/internal/config"
)

// isolate points the XDG dirs at a temp dir and returns it.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func load(t *testing.T, explicit string) config.Config {
	t.Helper()
	v, err := config.New(explicit)
	require.NoError(t, err)
	cfg, err := config.Load(v)
	require.NoError(t, err)
	return cfg
}

func TestDefaults(t *testing.T) {
	dir := isolate(t)

	cfg := load(t, "")
	assert.Equal(t, config.Defaults(), cfg)
	assert.Equal(t, filepath.Join(dir, "cache", "rainchart"), cfg.CacheDir)
	assert.Equal(t, 24*time.Hour, cfg.CacheMaxAge)
	assert.Equal(t, 30.0, cfg.MinDuration)
	assert.Equal(t, 900.0, cfg.ResampleInterval())
	assert.Equal(t, 10*time.Second, cfg.Refresh())

	styles, err := cfg.StyleTable()
	require.NoError(t, err)
	assert.Equal(t, analytics.DefaultStyles(), styles)

	cc, err := cfg.Chart()
	require.NoError(t, err)
	assert.Equal(t, chart.DefaultConfig(), cc)
}

func TestUserFileOverrides(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config", "rainchart", "config.toml"), `
min_duration = 60
cache_max_age = "12h"

[zoom]
in = 1.5

[styles.heavy]
code = "X"

[colors]
left = "rgb(255,0,0)"
`)

	cfg := load(t, "")
	assert.Equal(t, 60.0, cfg.MinDuration)
	assert.Equal(t, 12*time.Hour, cfg.CacheMaxAge)
	assert.Equal(t, 1.5, cfg.Interact().ZoomIn)
	assert.Equal(t, 0.7, cfg.Interact().ZoomOut)

	styles, err := cfg.StyleTable()
	require.NoError(t, err)
	heavy := styles.Lookup(analytics.Heavy)
	assert.Equal(t, "X", heavy.Code)
	assert.Equal(t, chart.RGBA(0, 0, 139, 0.5), heavy.Region)

	cc, err := cfg.Chart()
	require.NoError(t, err)
	assert.Equal(t, chart.RGBA(255, 0, 0, 1), cc.LeftColor)

	b, err := cfg.Builder()
	require.NoError(t, err)
	assert.Equal(t, 60.0, b.MinDuration())

	_, existing := config.GetConfigPaths()
	assert.Contains(t, existing, filepath.Join(dir, "config", "rainchart", "config.toml"))
}

func TestEnvOverridesFiles(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config", "rainchart", "config.toml"), "min_duration = 60\n")
	t.Setenv("RAINCHART_MIN_DURATION", "45")
	t.Setenv("RAINCHART_ZOOM_OUT", "0.5")

	cfg := load(t, "")
	assert.Equal(t, 45.0, cfg.MinDuration)
	assert.Equal(t, 0.5, cfg.Zoom.Out)
}

func TestExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, "refresh_secs = 3\n")

	cfg := load(t, path)
	assert.Equal(t, 3*time.Second, cfg.Refresh())

	_, err := config.New(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}

func TestInvalidConfig(t *testing.T) {
	dir := isolate(t)

	cases := map[string]string{
		"bad color":         "[colors]\nleft = \"nope\"\n",
		"unknown intensity": "[styles.purple]\ncode = \"P\"\n",
		"bad zoom":          "[zoom]\nmin_scale = 0\n",
		"bad refresh":       "refresh_secs = 0\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name+".toml")
		writeFile(t, path, body)

		v, err := config.New(path)
		require.NoError(t, err, name)
		_, err = config.Load(v)
		assert.Error(t, err, name)
	}
}

func TestSettings(t *testing.T) {
	isolate(t)
	v, err := config.New("")
	require.NoError(t, err)

	settings := config.Settings(v)
	assert.Contains(t, settings, "min_duration = 30")
	assert.Contains(t, settings, "styles.heavy.code = H")
}

func TestStyleColorOverridesMarker(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Styles: map[string]config.Style{
		"light": {Color: "rgba(10,20,30,0.25)"},
	}}
	styles, err := cfg.StyleTable()
	require.NoError(t, err)

	light := styles.Lookup(analytics.Light)
	assert.Equal(t, chart.RGBA(10, 20, 30, 0.25), light.Region)
	assert.Equal(t, chart.RGBA(10, 20, 30, 1), light.Marker)
	assert.Equal(t, "L", light.Code)
	assert.Equal(t, analytics.DefaultStyles().Lookup(analytics.Heavy), styles.Lookup(analytics.Heavy))
}
