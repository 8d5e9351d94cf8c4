package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/raphi011/scopecheck/internal/config"
	"github.com/raphi011/scopecheck/internal/log"
	"github.com/raphi011/scopecheck/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage scopecheck configuration.

Settings file: ~/.config/scopecheck/config.toml

The settings only affect presentation. Registry mappings always come from
.npmrc files.`,
		Example: `  scopecheck config init   # Create default settings file
  scopecheck config show   # Show effective settings`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  scopecheck config init      # Create settings file
  scopecheck config init -f   # Overwrite existing settings file
  scopecheck config init -s   # Print settings to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if stdout {
				out.Print(config.DefaultConfig())
				return nil
			}

			path, err := config.Path()
			if err != nil {
				return err
			}
			if err := config.Init(path, force); err != nil {
				return err
			}

			log.FromContext(ctx).Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Example: `  scopecheck config show          # Show settings
  scopecheck config show --json   # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}

			if cfg.Path != "" {
				out.Printf("Config file: %s\n", cfg.Path)
			} else {
				out.Printf("Config file: (none, using defaults)\n")
			}
			out.Println()
			out.Printf("format: %s\n", cfg.Format)
			out.Printf("theme.name: %s\n", cfg.Theme.Name)
			out.Printf("theme.mode: %s\n", cfg.Theme.Mode)
			out.Printf("theme.emoji: %v\n", cfg.Theme.UseEmoji())
			out.Printf("hints.enabled: %v\n", cfg.Hints.IsEnabled())

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
