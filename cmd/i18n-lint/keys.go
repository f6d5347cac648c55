package main

import (
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/i18n-lint/internal/report"
)

func newKeysCmd(opts *rootOptions) *cobra.Command {
	var missing, names bool
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Catalog keys with the locale files defining them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.setup(cmd.Context(), cmd, inputs{locales: true})
			if err != nil {
				return err
			}
			keys, err := s.linter.Keys(cmd.Context())
			if err != nil {
				return err
			}
			if names {
				var list []string
				for _, k := range keys {
					if !missing || len(k.Missing) > 0 {
						list = append(list, k.Name)
					}
				}
				return report.Strings(opts.stdout, list, s.cfg.Format, "keys")
			}
			return report.Keys(opts.stdout, keys, s.cfg.Format, missing)
		},
	}
	cmd.Flags().BoolVar(&missing, "missing", false, "Only keys absent from at least one locale file")
	cmd.Flags().BoolVar(&names, "names", false, "Print key names only")
	return cmd
}
