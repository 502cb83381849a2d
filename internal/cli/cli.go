// Package cli implements the g6conv command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/g6conv/internal/config"
	"github.com/matzehuels/g6conv/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and completions.
const appName = "g6conv"

// runIDLength is the number of uuid characters tagged onto log lines.
const runIDLength = 8

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

	// Config is resolved in the root command's PersistentPreRunE.
	Config config.Config

	configPath string
	envFile    string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New creates a new CLI instance. Logs and status lines go to w; converted
// graphs go to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "g6conv converts graph6 and digraph6 files",
		Long: `g6conv reads graphs in nauty's graph6 and digraph6 formats (or as flat 0/1
adjacency matrices), one graph per line, and writes them as adjacency
matrices, DOT, Pajek NET, flat matrices, graph6/digraph6, or Graphviz drawings.`,
		Version:           buildinfo.Get().Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/g6conv/config.toml)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "load G6CONV_* variables from this file if it exists")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.formatsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads configuration and attaches a run-scoped logger to the
// command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.envFile != "" {
		if err := config.LoadDotenv(c.envFile); err != nil {
			return err
		}
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.Config = cfg

	logger := c.Logger.With("run", uuid.NewString()[:runIDLength])
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}
	cmd.SetContext(withLogger(cmd.Context(), logger))
	return nil
}
