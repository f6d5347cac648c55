package main

import (
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/i18n-lint/internal/lint"
	"github.com/rancher-sandbox/i18n-lint/internal/report"
)

func newLintCmd(opts *rootOptions) *cobra.Command {
	var maxWarning int
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Lint check: undefined, zombie, empty and misprint keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := opts.setup(ctx, cmd, inputs{views: true, locales: true})
			if err != nil {
				return err
			}
			defer func() { _ = s.log.Sync() }()

			var runOpts []lint.RunOption
			if cmd.Flags().Changed("max-warning") {
				runOpts = append(runOpts, lint.WithMaxWarning(maxWarning))
			}
			res, err := s.linter.Lint(ctx, runOpts...)
			if err != nil {
				return err
			}
			if err := report.Write(opts.stdout, s.cfg.Format, res); err != nil {
				return err
			}
			if res.Failed() {
				return errChecksFailed
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxWarning, "max-warning", 0, "Warning budget for this run (overrides rules.maxWarning)")
	cmd.Flags().String("deep-search", "", "Match dynamic keys by prefix: enable or disable")
	return cmd
}
