package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/navkit/internal/config"
	"github.com/vango-dev/navkit/internal/errors"
)

func initCmd(flags *globalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Create a navkit.json with a starter route table",
		Long: `Create navkit.json in the project directory (--dir, default the
current directory) with a small sample route table.

Examples:
  navkit init
  navkit init shop --dir ./web`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := flags.dir
			if dir == "" {
				dir = "."
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runInit(cmd, dir, name, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing navkit.json")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name string, force bool) error {
	w := cmd.OutOrStdout()

	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if name == "" {
		name = filepath.Base(abs)
	}
	if config.Exists(abs) && !force {
		return errors.New("N060").
			WithDetail(config.ConfigFileName + " already exists in " + abs).
			WithSuggestion("Pass --force to overwrite it")
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return err
	}

	cfg := config.Sample(name)
	path := filepath.Join(abs, config.ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	success(w, "Created %s", path)
	info(w, "%d routes, %s mode", len(cfg.Routes), cfg.Mode)
	info(w, "Try: navkit resolve / --dir %s", dir)
	return nil
}
