package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasklist/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(newConfigInitCmd(opts), newConfigShowCmd(opts))
	return cmd
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.WriteDefault(opts.configPath, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "store_path     = %s\n", cfg.StorePath)
			fmt.Fprintf(out, "backend        = %s\n", cfg.Backend)
			fmt.Fprintf(out, "log_path       = %s\n", cfg.LogPath)
			fmt.Fprintf(out, "default_filter = %s\n", cfg.DefaultFilter)
			fmt.Fprintf(out, "default_icon   = %s\n", cfg.DefaultIcon)
			fmt.Fprintf(out, "confirm_delete = %t\n", cfg.ConfirmDelete)
			return nil
		},
	}
}
