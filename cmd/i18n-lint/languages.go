package main

import (
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/i18n-lint/internal/report"
)

func newLanguagesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "Locale files with their key counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.setup(cmd.Context(), cmd, inputs{locales: true})
			if err != nil {
				return err
			}
			langs, err := s.linter.Languages(cmd.Context())
			if err != nil {
				return err
			}
			return report.Languages(opts.stdout, langs, s.cfg.Format)
		},
	}
}
