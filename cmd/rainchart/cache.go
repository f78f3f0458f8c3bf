package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Prajwal-Prathiksh/rainchart/internal/cache"
	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
	"github.com/Prajwal-Prathiksh/rainchart/internal/config"
)

func (a *app) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache <command>",
		Short: "Cache commands",
		Long:  `Commands for reading and writing cached session documents.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(a.newCacheGetCmd(), a.newCachePutCmd(), a.newCachePathCmd())
	return cmd
}

func (a *app) newCacheGetCmd() *cobra.Command {
	var sf sessionFlags
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print a cached document",
		Long:  `Print the cached document of a session. Expired entries are printed with a warning.`,
		Example: heredoc.Doc(`
			$ rainchart cache get --year 2024 --race Monaco --session Race
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := sf.key()
			if err != nil {
				return err
			}
			e, err := a.store().Get(k)
			switch {
			case errors.Is(err, cache.ErrExpired):
				a.logger.Warn("cache entry expired", "key", k, "cached_at", e.CachedAt)
			case err != nil:
				return err
			}
			return e.Document.Encode(cmd.OutOrStdout())
		},
	}
	sf.register(cmd)
	return cmd
}

func (a *app) newCachePutCmd() *cobra.Command {
	var sf sessionFlags
	cmd := &cobra.Command{
		Use:   "put <document.json>",
		Short: "Store a chart document in the cache",
		Example: heredoc.Doc(`
			$ rainchart cache put monaco.json --year 2024 --race Monaco --session Race
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := sf.key()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			doc, err := chart.DecodeDocument(f)
			if err != nil {
				return err
			}
			if err := chart.NewModel(chart.DefaultConfig()).Load(doc); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			e, err := a.store().Put(cmd.Context(), k, doc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.store().Path(k))
			a.logger.Debug("cached", "key", e.Key, "at", e.CachedAt)
			return nil
		},
	}
	sf.register(cmd)
	return cmd
}

func (a *app) newCachePathCmd() *cobra.Command {
	var sf sessionFlags
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory, or the entry path of a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !sf.set() {
				fmt.Fprintln(cmd.OutOrStdout(), a.cfg.CacheDir)
				return nil
			}
			k, err := sf.key()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.store().Path(k))
			return nil
		},
	}
	sf.register(cmd)
	return cmd
}

func (a *app) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the config search paths and effective settings",
		Example: heredoc.Doc(`
			$ rainchart config
			$ RAINCHART_MIN_DURATION=60 rainchart config
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			all, existing := config.GetConfigPaths()
			found := map[string]bool{}
			for _, p := range existing {
				found[p] = true
			}
			fmt.Fprintln(w, "Config search paths (later files override earlier ones):")
			for _, p := range all {
				mark := " "
				if found[p] {
					mark = "*"
				}
				fmt.Fprintf(w, "  %s %s\n", mark, p)
			}
			if a.cfgFile != "" {
				fmt.Fprintf(w, "  * %s (--config)\n", a.cfgFile)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Effective settings:")
			for _, s := range config.Settings(a.v) {
				fmt.Fprintln(w, "  "+s)
			}
			return nil
		},
	}
}
