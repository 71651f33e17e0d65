// Package cli implements the npmreg command-line interface.
package cli

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/npmregistry/pkg/buildinfo"
	"github.com/matzehuels/npmregistry/pkg/observability"
	"github.com/matzehuels/npmregistry/pkg/registry"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "npmreg"

	// envPrefix prefixes the environment variables read by the CLI.
	envPrefix = "NPMREG_"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output. Err receives the spinner and prompts.
	Out io.Writer
	Err io.Writer

	flags  globalFlags
	getenv func(string) string
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	registry   string
	mirror     string
	user       string
	password   string
	timeout    time.Duration
	rate       float64
	json       bool
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Err:    w,
		getenv: os.Getenv,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "npmreg queries npm registries and their mirrors",
		Long:         `npmreg looks up package metadata on the npm registry or one of its mirrors: the base record of a package, the merged details of a release including licenses, and the full release history.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetRegistryHooks(&logHooks{logger: c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.SetErr(c.Err)

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/npmreg/config.toml)")
	pf.StringVar(&c.flags.registry, "registry", "", "registry base URL (overrides --mirror)")
	pf.StringVar(&c.flags.mirror, "mirror", "", "mirror name, see 'npmreg mirrors'")
	pf.StringVar(&c.flags.user, "user", "", "registry user for basic auth")
	pf.StringVar(&c.flags.password, "password", "", "registry password for basic auth")
	pf.DurationVar(&c.flags.timeout, "timeout", 0, "per-request timeout (default 10s)")
	pf.Float64Var(&c.flags.rate, "rate", 0, "max requests per second (0 = unlimited)")
	pf.BoolVar(&c.flags.json, "json", false, "print JSON instead of text")

	_ = root.RegisterFlagCompletionFunc("mirror", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return registry.MirrorNames(), cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(c.getCommand())
	root.AddCommand(c.detailsCommand())
	root.AddCommand(c.releasesCommand())
	root.AddCommand(c.mirrorsCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient builds a registry client from the effective configuration.
func (c *CLI) newClient(cmd *cobra.Command) (*registry.Client, error) {
	cfg, err := c.resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return registry.New(cfg.registryConfig(c.Logger))
}
