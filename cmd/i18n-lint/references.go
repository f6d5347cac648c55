package main

import (
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/i18n-lint/internal/report"
)

func newReferencesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "references",
		Short: "Where each key is used (file:line)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.setup(cmd.Context(), cmd, inputs{views: true})
			if err != nil {
				return err
			}
			usages, err := s.linter.Usages(cmd.Context())
			if err != nil {
				return err
			}
			return report.References(opts.stdout, usages, s.cfg.Format)
		},
	}
}
