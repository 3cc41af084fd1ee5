package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/navkit/internal/errors"
)

func checkCmd(flags *globalFlags) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate navkit.json",
		Long: `Load navkit.json, apply environment overrides and check that every
route is well formed: patterns parse, names are unique and named redirect
targets exist.

Check also warns about routes that can never match because an earlier
route matches first, and about redirects that lead nowhere or loop. With
--strict those warnings fail the check.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			cfg, err := loadProject(flags)
			if err != nil {
				return err
			}
			table, err := cfg.Table()
			if err != nil {
				return err
			}

			issues := table.Lint()
			for _, issue := range issues {
				warn(w, "%s", issue)
			}
			if strict && len(issues) > 0 {
				return errors.New("N025").
					WithDetail(fmt.Sprintf("%d route warnings", len(issues))).
					WithLocation(cfg.Path(), 0)
			}

			success(w, "%s is valid (%d routes, %s mode)", cfg.Path(), len(cfg.Routes), cfg.Mode)
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")

	return cmd
}
