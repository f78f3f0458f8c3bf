package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Prajwal-Prathiksh/rainchart/internal/cache"
	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
	"github.com/Prajwal-Prathiksh/rainchart/internal/config"
	"github.com/Prajwal-Prathiksh/rainchart/internal/source"
	"github.com/Prajwal-Prathiksh/rainchart/internal/timeline"
)

// app is the state shared by every command once the config is loaded.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     config.Config
	logger  *log.Logger
}

// flagKeys maps command flags onto the config keys they override.
var flagKeys = map[string]string{
	"log-level":    "log_level",
	"cache-dir":    "cache_dir",
	"min-duration": "min_duration",
	"interval":     "resample_minutes",
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "rainchart <command>",
		Short: "Rain analysis charts for F1 session weather",
		Long: heredoc.Doc(`
			Detects rain intervals in session weather data and charts them with
			air temperature and wind speed, in the terminal or as PNG, SVG, HTML
			and xlsx exports.

			Input files are chart documents, detailed weather timelines (JSON) or
			weather CSV files; the format is detected automatically.
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config file, merged after the standard search paths")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("cache-dir", "", "Cache directory (default $XDG_CACHE_HOME/rainchart)")

	cmd.AddCommand(
		a.newTUICmd(),
		a.newIntervalsCmd(),
		a.newRenderCmd(),
		a.newReportCmd(),
		a.newConvertCmd(),
		a.newCacheCmd(),
		a.newConfigCmd(),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	v, err := config.New(a.cfgFile)
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind --%s: %w", name, err)
			}
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	a.v, a.cfg, a.logger = v, cfg, logger
	return nil
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "rainchart",
		Level:           lvl,
	}), nil
}

func (a *app) store() *cache.Store {
	return cache.New(a.cfg.CacheDir, a.cfg.CacheMaxAge, a.logger)
}

func (a *app) sourceOptions() (source.Options, error) {
	b, err := a.cfg.Builder()
	if err != nil {
		return source.Options{}, err
	}
	return source.Options{Builder: b, ResampleInterval: a.cfg.ResampleInterval()}, nil
}

// analysisFlags registers the flags that tune annotation building.
func analysisFlags(cmd *cobra.Command) {
	d := config.Defaults()
	cmd.Flags().Float64("min-duration", d.MinDuration, "Minimum rain interval duration in seconds")
	cmd.Flags().Float64("interval", d.ResampleMinutes, "Resample interval in minutes for timelines and CSV (0 keeps every sample)")
}

// sessionFlags selects a cached session.
type sessionFlags struct {
	year    int
	race    string
	session string
}

func (s *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&s.year, "year", 0, "Season year of the cached session")
	cmd.Flags().StringVar(&s.race, "race", "", "Race name of the cached session")
	cmd.Flags().StringVar(&s.session, "session", "", "Session name of the cached session (e.g. Race, Qualifying)")
}

func (s sessionFlags) set() bool {
	return s.year != 0 || s.race != "" || s.session != ""
}

func (s sessionFlags) key() (cache.Key, error) {
	if s.year == 0 || s.race == "" || s.session == "" {
		return cache.Key{}, errors.New("--year, --race and --session must all be given")
	}
	return cache.Key{Year: s.year, Race: s.race, Session: s.session}, nil
}

// dataset loads the file in args, or the cached session selected by sf.
func (a *app) dataset(args []string, sf sessionFlags) (source.Dataset, error) {
	if sf.set() {
		return a.cachedDataset(sf)
	}
	if len(args) == 0 {
		return source.Dataset{}, errors.New("a data file or --year/--race/--session is required")
	}
	opts, err := a.sourceOptions()
	if err != nil {
		return source.Dataset{}, err
	}
	ds, err := source.Load(args[0], opts)
	if err != nil {
		return source.Dataset{}, err
	}
	a.logger.Debug("loaded", "path", ds.Path, "kind", ds.Kind, "intervals", len(ds.Intervals))
	return ds, nil
}

func (a *app) cachedDataset(sf sessionFlags) (source.Dataset, error) {
	k, err := sf.key()
	if err != nil {
		return source.Dataset{}, err
	}
	st := a.store()
	e, err := st.Get(k)
	switch {
	case errors.Is(err, cache.ErrExpired):
		a.logger.Warn("using expired cache entry", "key", k, "cached_at", e.CachedAt)
	case err != nil:
		return source.Dataset{}, err
	}
	ds, err := source.FromDocument(e.Document)
	if err != nil {
		return source.Dataset{}, err
	}
	ds.Path = st.Path(k)
	ds.Metadata = &timeline.Metadata{Year: sf.year, Race: sf.race, Session: sf.session}
	return ds, nil
}

// loadModel builds a chart model for a dataset with the configured colors.
func (a *app) loadModel(ds source.Dataset) (*chart.Model, error) {
	cc, err := a.cfg.Chart()
	if err != nil {
		return nil, err
	}
	m := chart.NewModel(cc)
	if err := m.Load(ds.Document); err != nil {
		return nil, err
	}
	return m, nil
}

// createOutput opens path for writing, creating its directory. "-" is
// the command's stdout.
func createOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
