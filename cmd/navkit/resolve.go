package main

import (
	"encoding/json"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/navkit/internal/errors"
	"github.com/vango-dev/navkit/pkg/router"
)

func resolveCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Resolve a route path through the table",
		Long: `Resolve a route path the way the router would, following redirects,
and print the chain of addresses visited with the final route, its
parameters and query.

Examples:
  navkit resolve /
  navkit resolve '/items/42?tab=notes'
  navkit resolve /old/7 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject(flags)
			if err != nil {
				return err
			}
			table, err := cfg.Table()
			if err != nil {
				return err
			}
			res, resErr := table.Resolve(args[0], cfg.MaxRedirects)

			w := cmd.OutOrStdout()
			if asJSON {
				if err := writeResolutionJSON(w, res, resErr); err != nil {
					return err
				}
			} else {
				printResolution(w, res)
			}
			if resErr != nil {
				return errors.FromRouter(resErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the resolution as JSON")

	return cmd
}

func printResolution(w io.Writer, res *router.Resolution) {
	field(w, "Chain", strings.Join(res.Chain, " → "))
	if res.Match == nil {
		return
	}
	field(w, "Route", routeName(res.Match.Route))
	field(w, "Params", formatPairs(res.Match.Params))
	field(w, "Query", formatPairs(res.Match.Query))
	if res.Match.Route.Render != nil {
		field(w, "View", res.Match.Route.Render())
	}
}

type resolutionJSON struct {
	Chain     []string          `json:"chain"`
	Redirects int               `json:"redirects"`
	Route     string            `json:"route,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
	Query     map[string]string `json:"query,omitempty"`
	Error     string            `json:"error,omitempty"`
	Code      string            `json:"code,omitempty"`
}

func writeResolutionJSON(w io.Writer, res *router.Resolution, resErr error) error {
	out := resolutionJSON{Chain: res.Chain, Redirects: res.Redirects()}
	if res.Match != nil {
		out.Route = routeName(res.Match.Route)
		out.Params = res.Match.Params
		out.Query = res.Match.Query
	}
	if resErr != nil {
		out.Error = resErr.Error()
		out.Code = errors.FromRouter(resErr).Code
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// routeName names a route by its name, or its pattern when unnamed.
func routeName(r *router.Route) string {
	if r.Name != "" {
		return r.Name
	}
	return r.Path
}

// formatPairs renders a map as sorted "k=v" pairs.
func formatPairs(m map[string]string) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + m[k]
	}
	return strings.Join(pairs, " ")
}
