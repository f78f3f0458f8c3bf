package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
	"github.com/Prajwal-Prathiksh/rainchart/internal/interact"
)

// EnvPrefix prefixes environment overrides, e.g. RAINCHART_MIN_DURATION.
const EnvPrefix = "RAINCHART"

type Config struct {
	LogLevel        string           `mapstructure:"log_level"`
	LogFile         string           `mapstructure:"log_file"` // TUI mode only
	CacheDir        string           `mapstructure:"cache_dir"`
	CacheMaxAge     time.Duration    `mapstructure:"cache_max_age"`
	MinDuration     float64          `mapstructure:"min_duration"`
	ResampleMinutes float64          `mapstructure:"resample_minutes"`
	RefreshSecs     int              `mapstructure:"refresh_secs"`
	Zoom            Zoom             `mapstructure:"zoom"`
	Styles          map[string]Style `mapstructure:"styles"`
	Colors          Colors           `mapstructure:"colors"`
}

type Zoom struct {
	In          float64 `mapstructure:"in"`
	Out         float64 `mapstructure:"out"`
	ModifierIn  float64 `mapstructure:"modifier_in"`
	ModifierOut float64 `mapstructure:"modifier_out"`
	MinScale    float64 `mapstructure:"min_scale"`
	MaxScale    float64 `mapstructure:"max_scale"`
}

type Style struct {
	Color string `mapstructure:"color"`
	Code  string `mapstructure:"code"`
}

type Colors struct {
	Left  string `mapstructure:"left"`
	Right string `mapstructure:"right"`
}

func Defaults() Config {
	zoom := interact.DefaultConfig()
	styles := map[string]Style{}
	for lvl, st := range analytics.DefaultStyles() {
		styles[lvl.String()] = Style{Color: st.Region.CSS(), Code: st.Code}
	}
	return Config{
		LogLevel:        "info",
		LogFile:         filepath.Join(xdgStateHome(), "rainchart", "rainchart.log"),
		CacheDir:        filepath.Join(xdgCacheHome(), "rainchart"),
		CacheMaxAge:     24 * time.Hour,
		MinDuration:     analytics.DefaultMinDuration,
		ResampleMinutes: 15,
		RefreshSecs:     10,
		Zoom: Zoom{
			In:          zoom.ZoomIn,
			Out:         zoom.ZoomOut,
			ModifierIn:  zoom.ModifierIn,
			ModifierOut: zoom.ModifierOut,
			MinScale:    zoom.MinScale,
			MaxScale:    zoom.MaxScale,
		},
		Styles: styles,
		Colors: Colors{Left: "#FFA366", Right: "#66B3FF"},
	}
}

// getConfigPathsInternal returns the list of config file paths that are checked
func getConfigPathsInternal() []string {
	return []string{
		// Local project config
		filepath.Join("internal", "config", "config.toml"),
		// User config
		filepath.Join(xdgConfigHome(), "rainchart", "config.toml"),
		// System config
		"/etc/rainchart/config.toml",
	}
}

// GetConfigPaths returns the list of config file paths that are checked, and which ones exist
func GetConfigPaths() ([]string, []string) {
	var allPaths []string
	var existingPaths []string

	for _, path := range getConfigPathsInternal() {
		absPath, err := filepath.Abs(path)
		if err != nil {
			absPath = path
		}
		allPaths = append(allPaths, absPath)

		if _, err := os.Stat(path); err == nil {
			existingPaths = append(existingPaths, absPath)
		}
	}

	return allPaths, existingPaths
}

// New returns a viper instance holding the defaults, every existing
// config file in search order (later ones override earlier ones), and
// RAINCHART_ environment overrides. An explicit file, if given, is merged
// last.
func New(explicit string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v, Defaults())

	paths := getConfigPathsInternal()
	if explicit != "" {
		paths = append(paths, explicit)
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) && path != explicit {
				continue
			}
			return nil, fmt.Errorf("config: %w", err)
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("cache_dir", d.CacheDir)
	v.SetDefault("cache_max_age", d.CacheMaxAge)
	v.SetDefault("min_duration", d.MinDuration)
	v.SetDefault("resample_minutes", d.ResampleMinutes)
	v.SetDefault("refresh_secs", d.RefreshSecs)
	v.SetDefault("zoom.in", d.Zoom.In)
	v.SetDefault("zoom.out", d.Zoom.Out)
	v.SetDefault("zoom.modifier_in", d.Zoom.ModifierIn)
	v.SetDefault("zoom.modifier_out", d.Zoom.ModifierOut)
	v.SetDefault("zoom.min_scale", d.Zoom.MinScale)
	v.SetDefault("zoom.max_scale", d.Zoom.MaxScale)
	for name, st := range d.Styles {
		v.SetDefault("styles."+name+".color", st.Color)
		v.SetDefault("styles."+name+".code", st.Code)
	}
	v.SetDefault("colors.left", d.Colors.Left)
	v.SetDefault("colors.right", d.Colors.Right)
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	var err error
	if cfg.CacheDir, err = homedir.Expand(cfg.CacheDir); err != nil {
		return Config{}, fmt.Errorf("config: cache_dir: %w", err)
	}
	if cfg.LogFile, err = homedir.Expand(cfg.LogFile); err != nil {
		return Config{}, fmt.Errorf("config: log_file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every derived setting.
func (c Config) Validate() error {
	var errs []error
	if c.MinDuration < 0 {
		errs = append(errs, fmt.Errorf("min_duration must be non-negative, got %g", c.MinDuration))
	}
	if c.ResampleMinutes < 0 {
		errs = append(errs, fmt.Errorf("resample_minutes must be non-negative, got %g", c.ResampleMinutes))
	}
	if c.RefreshSecs < 1 {
		errs = append(errs, fmt.Errorf("refresh_secs must be at least 1, got %d", c.RefreshSecs))
	}
	if c.CacheMaxAge <= 0 {
		errs = append(errs, fmt.Errorf("cache_max_age must be positive, got %s", c.CacheMaxAge))
	}
	if err := c.Interact().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.StyleTable(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Chart(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Interact returns the zoom policy.
func (c Config) Interact() interact.Config {
	return interact.Config{
		ZoomIn:      c.Zoom.In,
		ZoomOut:     c.Zoom.Out,
		ModifierIn:  c.Zoom.ModifierIn,
		ModifierOut: c.Zoom.ModifierOut,
		MinScale:    c.Zoom.MinScale,
		MaxScale:    c.Zoom.MaxScale,
	}
}

// StyleTable returns the configured styles merged over the defaults.
func (c Config) StyleTable() (analytics.StyleTable, error) {
	t := analytics.StyleTable{}
	for name, st := range c.Styles {
		lvl, ok := analytics.ParseIntensity(name)
		if !ok || !strings.EqualFold(lvl.String(), strings.TrimSpace(name)) {
			return nil, fmt.Errorf("styles: unknown intensity %q", name)
		}
		out := analytics.DefaultStyles().Lookup(lvl)
		if st.Color != "" {
			col, err := chart.ParseColor(st.Color)
			if err != nil {
				return nil, fmt.Errorf("styles.%s.color: %w", name, err)
			}
			out.Region = col
			out.Marker = col.Opaque()
		}
		if st.Code != "" {
			out.Code = st.Code
		}
		t[lvl] = out
	}
	return analytics.DefaultStyles().Merge(t), nil
}

// Builder returns an annotation builder for the configured duration and styles.
func (c Config) Builder() (*analytics.Builder, error) {
	styles, err := c.StyleTable()
	if err != nil {
		return nil, err
	}
	return analytics.NewBuilder(analytics.MinDuration(c.MinDuration), analytics.WithStyles(styles)), nil
}

// Chart returns the chart configuration with the configured series colors.
func (c Config) Chart() (chart.Config, error) {
	cfg := chart.DefaultConfig()
	var err error
	if c.Colors.Left != "" {
		if cfg.LeftColor, err = chart.ParseColor(c.Colors.Left); err != nil {
			return chart.Config{}, fmt.Errorf("colors.left: %w", err)
		}
	}
	if c.Colors.Right != "" {
		if cfg.RightColor, err = chart.ParseColor(c.Colors.Right); err != nil {
			return chart.Config{}, fmt.Errorf("colors.right: %w", err)
		}
	}
	return cfg, nil
}

// ResampleInterval returns the resample step in seconds.
func (c Config) ResampleInterval() float64 { return c.ResampleMinutes * 60 }

// Refresh returns the TUI refresh period.
func (c Config) Refresh() time.Duration { return time.Duration(c.RefreshSecs) * time.Second }

// Settings lists every effective key = value pair, sorted by key.
func Settings(v *viper.Viper) []string {
	keys := v.AllKeys()
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s = %v", k, v.Get(k)))
	}
	return out
}

func xdgConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

func xdgStateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state")
}

func xdgCacheHome() string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache")
}
