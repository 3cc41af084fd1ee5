package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/navkit/internal/errors"
	"github.com/vango-dev/navkit/pkg/location"
	"github.com/vango-dev/navkit/pkg/router"
)

func hrefCmd(flags *globalFlags) *cobra.Command {
	var query map[string]string

	cmd := &cobra.Command{
		Use:   "href <name|path> [param=value...]",
		Short: "Build the link address for a route",
		Long: `Build the address-bar form of a named route (or a literal path) the
way links are rendered: "#/path" in hash mode and base+path in history mode.

Examples:
  navkit href item id=42
  navkit href items --query sort=name
  navkit href /about`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0], args[1:])
			if err != nil {
				return err
			}
			if len(query) > 0 {
				ref = ref.WithQuery(query)
			}

			cfg, err := loadProject(flags)
			if err != nil {
				return err
			}
			rc, err := cfg.RouterConfig()
			if err != nil {
				return err
			}
			r, err := router.NewFromConfig(rc, location.NewMemory("/"))
			if err != nil {
				return errors.FromRouter(err)
			}

			href, err := r.Href(ref)
			if err != nil {
				return errors.FromRouter(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), href)
			return nil
		},
	}

	cmd.Flags().StringToStringVarP(&query, "query", "q", nil, "Query values (key=value)")

	return cmd
}

// parseRef builds a ref from a route name or literal path and key=value
// parameter arguments.
func parseRef(target string, pairs []string) (router.Ref, error) {
	if strings.HasPrefix(target, "/") {
		if len(pairs) > 0 {
			return router.Ref{}, errors.New("N060").
				WithDetail("Parameters only apply to named routes").
				WithExample("navkit href item id=42")
		}
		return router.To(target), nil
	}

	params := make(router.Params, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return router.Ref{}, errors.New("N060").
				WithDetail(fmt.Sprintf("Invalid parameter %q", pair)).
				WithSuggestion("Write parameters as name=value")
		}
		params[key] = value
	}
	return router.Named(target, params), nil
}
