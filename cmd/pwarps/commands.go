package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/pwarps/internal/app"
	"github.com/five82/pwarps/internal/nav"
)

type rootFlags struct {
	configPath string
	path       string
	debug      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "pwarps",
		Short: "Browse the pwarps catalog in the terminal",
		Long: `pwarps lists the community warps published by a catalog site.

Search and sort the catalog, open a warp for details and copy its
/pwarp command. --path starts at a navigable path such as /warp/<name>.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: flags.configPath,
				StartPath:  flags.path,
				Debug:      flags.debug,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/pwarps/config.toml)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "log at debug level")
	cmd.Flags().StringVar(&flags.path, "path", "", "start at this path, e.g. /warp/<name>")

	cmd.AddCommand(newOpenCmd(flags))
	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newLogsCmd(flags))
	return cmd
}

func newOpenCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "open <name>",
		Short: "Start with one warp's detail view open",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: root.configPath,
				StartPath:  nav.WarpPath(args[0]),
				Debug:      root.debug,
			})
		},
	}
}

type listFlags struct {
	search string
	sort   string
	order  string
	format string
	seed   uint64
}

func newListCmd(root *rootFlags) *cobra.Command {
	flags := &listFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the catalog view without the TUI",
		Long: `Print the catalog once, filtered and sorted like the TUI.

Formats: table, plain, json, yaml. Without --format a terminal gets a
table and a pipe gets one name per line.`,
		Example: `  pwarps list --sort visits --order desc
  pwarps list --search base --format json
  pwarps list --sort shuffle --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.List(cmd.Context(), app.ListOptions{
				ConfigPath: root.configPath,
				Search:     flags.search,
				SortBy:     flags.sort,
				Order:      flags.order,
				Format:     flags.format,
				Seed:       flags.seed,
				HasSeed:    cmd.Flags().Changed("seed"),
			}, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&flags.search, "search", "", "case-insensitive filter on name and owner")
	cmd.Flags().StringVar(&flags.sort, "sort", "name", "sort key: name, owner, created, visits or shuffle")
	cmd.Flags().StringVar(&flags.order, "order", "asc", "sort order: asc or desc")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: table, plain, json or yaml")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "seed for a reproducible shuffle")
	return cmd
}

func newLogsCmd(root *rootFlags) *cobra.Command {
	opts := app.LogsOptions{}
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the pwarps log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = root.configPath
			return app.Logs(opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&opts.Lines, "lines", "n", 50, "number of lines to show (0 for all)")
	cmd.Flags().StringVar(&opts.Level, "level", "info", "minimum level: debug, info, warn or error")
	return cmd
}
