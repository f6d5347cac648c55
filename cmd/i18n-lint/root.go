package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/i18n-lint/internal/catalog"
	"github.com/rancher-sandbox/i18n-lint/internal/config"
	"github.com/rancher-sandbox/i18n-lint/internal/lint"
	"github.com/rancher-sandbox/i18n-lint/internal/logger"
	"github.com/rancher-sandbox/i18n-lint/internal/source"
	"github.com/rancher-sandbox/i18n-lint/internal/usage"
)

type rootOptions struct {
	configFile string
	stdout     io.Writer
	stderr     io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "i18n-lint",
		Short:         "Find undefined, unused, empty and misspelled translation keys",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Config file (default .i18n-lint.yaml in the working directory or repository root)")
	flags.StringP("project", "p", "", "Glob or directory of view files, e.g. 'src/app/**/*.{html,ts}'")
	flags.StringP("languages", "l", "", "Glob or directory of locale files, or the URL of one catalog")
	flags.StringP("ignore", "i", "", "Comma-separated paths or globs to skip")
	flags.StringP("format", "f", "text", "Output format: text, json, sarif")
	flags.Int("concurrency", 0, "Files processed at once (default GOMAXPROCS)")
	flags.Duration("fetch-timeout", 10*time.Second, "Timeout for fetching a catalog URL")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	flags.String("log-format", "text", "Log format: text, json")

	cmd.AddCommand(
		newLintCmd(opts),
		newLanguagesCmd(opts),
		newKeysCmd(opts),
		newReferencesCmd(opts),
		newVersionCmd(opts),
	)
	return cmd
}

// session is everything a command needs once configuration is resolved.
type session struct {
	cfg    *config.Config
	log    *logger.ZapLogger
	linter *lint.Linter
}

type inputs struct {
	views   bool
	locales bool
}

// setup loads the configuration, reads the requested inputs and builds the
// linter.
func (o *rootOptions) setup(ctx context.Context, cmd *cobra.Command, need inputs) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	searchPaths := []string{cwd}
	if root, err := source.RepoRoot(cwd); err == nil && root != cwd {
		searchPaths = append(searchPaths, root)
	}

	cfg, used, err := config.NewLoader(o.configFile, cmd.Flags()).WithSearchPaths(searchPaths...).Load()
	if err != nil {
		return nil, err
	}
	logCfg := cfg.LoggerConfig()
	logCfg.Output = o.stderr
	log := logger.New(logCfg)
	if used != "" {
		log.Debug("using config file", "path", used)
	}

	ignore := source.ParseIgnore(cfg.Ignore, cwd)

	var locales []catalog.Source
	if need.locales {
		if locales, err = readLocales(ctx, cfg, ignore, log); err != nil {
			return nil, err
		}
	}
	var views []usage.File
	if need.views {
		if views, err = readViews(cfg, ignore, log); err != nil {
			return nil, err
		}
	}

	linter, err := lint.New(views, locales, cfg.Rules,
		lint.WithLogger(log.With("component", "lint")),
		lint.WithConcurrency(cfg.Concurrency),
	)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: log, linter: linter}, nil
}

func readLocales(ctx context.Context, cfg *config.Config, ignore []string, log logger.Logger) ([]catalog.Source, error) {
	if cfg.Languages == "" {
		return nil, fmt.Errorf("--languages is required")
	}
	if source.IsURL(cfg.Languages) {
		src, err := source.NewFetcher(cfg.FetchTimeout).Fetch(ctx, cfg.Languages)
		if err != nil {
			return nil, err
		}
		log.Info("fetched catalog", "url", cfg.Languages, "bytes", len(src.Data))
		return []catalog.Source{src}, nil
	}
	paths, err := source.Expand(cfg.Languages, source.LocaleExtensions, ignore)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		log.Warn("no locale files matched", "pattern", cfg.Languages)
	}
	return source.ReadCatalogs(paths)
}

func readViews(cfg *config.Config, ignore []string, log logger.Logger) ([]usage.File, error) {
	if cfg.Project == "" {
		return nil, fmt.Errorf("--project is required")
	}
	paths, err := source.Expand(cfg.Project, source.ViewExtensions, ignore)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		log.Warn("no view files matched", "pattern", cfg.Project)
	}
	return source.ReadViews(paths)
}
