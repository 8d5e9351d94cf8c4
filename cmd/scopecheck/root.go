package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/scopecheck/internal/config"
	"github.com/raphi011/scopecheck/internal/lockfile"
	"github.com/raphi011/scopecheck/internal/log"
	"github.com/raphi011/scopecheck/internal/npmrc"
	"github.com/raphi011/scopecheck/internal/output"
	"github.com/raphi011/scopecheck/internal/ui/styles"
)

// ErrMissingArgument is returned when no lockfile path is given.
var ErrMissingArgument = errors.New("missing lockfile argument")

// Command group IDs for organizing help output
const (
	GroupConfig = "config"
)

// rootOptions holds the flags of the scan command.
type rootOptions struct {
	verbose    bool
	quiet      bool
	format     string
	jsonOutput bool
	userConfig string
	theme      string
	copy       bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "scopecheck [flags] <lockfile>",
		Short: "Show which pnpm packages resolve to a custom npm registry",
		Long: `scopecheck reads the user and project .npmrc files that apply to a
pnpm-lock.yaml and reports which scoped packages resolve to a registry other
than the default one.

The user config is ~/.npmrc (or $NPM_CONFIG_USERCONFIG); the project config
is the .npmrc next to the lockfile and takes precedence.`,
		Example: `  scopecheck pnpm-lock.yaml            # Text report
  scopecheck --json ./app/pnpm-lock.yaml # Machine readable report
  scopecheck -v pnpm-lock.yaml           # Show which files were read
  scopecheck --copy pnpm-lock.yaml       # Copy custom-registry packages`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		Args: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 0, len(args) == 1 && strings.TrimSpace(args[0]) == "":
				return ErrMissingArgument
			case len(args) > 1:
				return fmt.Errorf("accepts 1 lockfile argument, received %d", len(args))
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.New(cmd.ErrOrStderr(), opts.verbose, opts.quiet)
			ctx = log.WithLogger(ctx, logger)

			cfg := *config.FromContext(ctx)
			if opts.theme != "" {
				cfg.Theme.Name = opts.theme
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx = config.WithConfig(ctx, &cfg)
			styles.Init(cfg.Theme)

			logger.Debug("settings", "path", cfg.Path, "format", cfg.Format, "theme", cfg.Theme.Name)

			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(cmd, &opts)
			if err != nil {
				return err
			}

			userConfig := opts.userConfig
			if userConfig == "" {
				userConfig, err = npmrc.UserConfigPath()
				if err != nil {
					return err
				}
			}

			return runScan(cmd.Context(), scanOptions{
				lockfile:   args[0],
				userConfig: userConfig,
				format:     format,
				copy:       opts.copy,
			})
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show which config files and settings were used")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress all log output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: text, json or toml")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON (same as --format json)")
	cmd.MarkFlagsMutuallyExclusive("format", "json")
	cmd.Flags().StringVar(&opts.userConfig, "userconfig", "", "User-level .npmrc (default: $"+npmrc.EnvUserConfig+" or ~/.npmrc)")
	cmd.PersistentFlags().StringVar(&opts.theme, "theme", "", "Color theme: "+joinNames(config.ValidThemeNames))
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the custom-registry package list to the clipboard")

	cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(config.ValidFormats, cobra.ShellCompDirectiveNoFileComp))
	cmd.RegisterFlagCompletionFunc("theme", cobra.FixedCompletions(config.ValidThemeNames, cobra.ShellCompDirectiveNoFileComp))
	cmd.MarkFlagFilename("userconfig")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddGroup(&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"})
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// execute runs the CLI with the given arguments and returns the exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Load settings; a broken file falls back to defaults
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}
	ctx = config.WithConfig(ctx, &loadedCfg)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, stdout)

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		printError(stderr, cmd, err)
		return 1
	}
	return 0
}

// printError writes err to w in the CLI's error format.
func printError(w io.Writer, cmd *cobra.Command, err error) {
	if errors.Is(err, ErrMissingArgument) {
		fmt.Fprintln(w, errorLine(w, "Error: "+err.Error()))
		fmt.Fprintln(w)
		fmt.Fprint(w, cmd.UsageString())
		return
	}

	if errors.Is(err, lockfile.ErrLockfileNotFound) {
		fmt.Fprintln(w, errorLine(w, err.Error()))
		return
	}

	fmt.Fprintln(w, errorLine(w, "Error: "+err.Error()))
}

// errorLine prefixes msg with the error marker, colored only on a terminal.
func errorLine(w io.Writer, msg string) string {
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return styles.FormatError(msg)
	}
	return styles.ErrorMarker + " " + msg
}
