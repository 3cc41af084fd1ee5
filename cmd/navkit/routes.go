package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/navkit/internal/config"
)

func routesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the route table in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject(flags)
			if err != nil {
				return err
			}
			printRoutes(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func printRoutes(w io.Writer, cfg *config.Config) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, headerStyle.Render("#")+"\t"+headerStyle.Render("PATH")+"\t"+headerStyle.Render("NAME")+"\t"+headerStyle.Render("TARGET"))
	for i, rc := range cfg.Routes {
		target := fmt.Sprintf("%q", rc.View)
		if rc.Redirect != nil {
			target = "→ " + rc.Redirect.Ref().String()
		}
		name := rc.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, rc.Path, name, target)
	}
	tw.Flush()
}
