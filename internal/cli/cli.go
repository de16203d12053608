// Package cli provides the command-line interface for showroom.
// The CLI is the admin dashboard and a client for the public site pages.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/voltrak-labs/showroom/internal/backend"
	"github.com/voltrak-labs/showroom/internal/config"
	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/internal/observability"
	"github.com/voltrak-labs/showroom/internal/storage"
	"github.com/voltrak-labs/showroom/pkg/api"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitConfig     = 2
	ExitBackend    = 3
	ExitInternal   = 4
)

// Version information (set at build time)
var (
	Version   = api.Version
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// CLI holds the command-line interface state.
type CLI struct {
	rootCmd *cobra.Command
	cfg     *config.Config

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// Global flags
	configPath string
	backendURL string
	timeout    time.Duration
	jsonOutput bool
	quiet      bool
	debug      bool

	// closers run after the command finishes.
	closers []func()
}

// New creates a new CLI instance reading stdin and writing stdout/stderr.
func New() *CLI {
	c := &CLI{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	c.rootCmd = c.newRootCmd()
	return c
}

// SetIO replaces the standard streams.
func (c *CLI) SetIO(in io.Reader, out, errOut io.Writer) {
	c.in, c.out, c.errOut = in, out, errOut
	c.rootCmd.SetIn(in)
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(errOut)
}

// Execute runs the CLI with os.Args.
func (c *CLI) Execute() int {
	return c.Run(os.Args[1:])
}

// Run runs the CLI with args and returns the exit code.
func (c *CLI) Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer c.close()

	c.rootCmd.Version = Version
	c.rootCmd.SetVersionTemplate(GetVersionString() + "\n")
	c.rootCmd.SetArgs(args)
	if err := c.rootCmd.ExecuteContext(ctx); err != nil {
		c.errorf("Error: %v\n", err)
		return exitCode(err)
	}
	return ExitSuccess
}

func exitCode(err error) int {
	switch errors.CodeOf(err) {
	case errors.CodeValidation:
		return ExitValidation
	case errors.CodeConfig:
		return ExitConfig
	case errors.CodeBackend:
		return ExitBackend
	}
	return ExitInternal
}

func (c *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "showroom",
		Short: "Showroom - catalog admin and site client",
		Long: `Showroom manages the electric tractor catalog behind the public site.

It provides:
  • An admin dashboard for products, Q&A, awards, media, requests and applications
  • The public catalog, blog, FAQ and gallery pages
  • Order, demo, careers and newsletter forms
  • A running cost (TCO) calculator

Every page and dashboard tab talks to the REST backend at {backend}/api.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig()
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.showroom/config.yaml)")
	cmd.PersistentFlags().StringVar(&c.backendURL, "backend", "", "backend base URL (overrides config)")
	cmd.PersistentFlags().DurationVar(&c.timeout, "timeout", 0, "per-request timeout, 0 for none (overrides config)")
	cmd.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "machine-readable JSON output")
	cmd.PersistentFlags().BoolVar(&c.quiet, "quiet", false, "suppress non-essential output")
	cmd.PersistentFlags().BoolVar(&c.debug, "debug", false, "verbose debug logs")

	cmd.AddCommand(c.newAdminCmd())

	// Public pages
	cmd.AddCommand(c.newProductsCmd())
	cmd.AddCommand(c.newProductCmd())
	cmd.AddCommand(c.newBlogsCmd())
	cmd.AddCommand(c.newBlogCmd())
	cmd.AddCommand(c.newQnACmd())
	cmd.AddCommand(c.newGalleryCmd())
	cmd.AddCommand(c.newTCOCmd())

	// Public forms
	cmd.AddCommand(c.newOrderCmd())
	cmd.AddCommand(c.newDemoCmd())
	cmd.AddCommand(c.newApplyCmd())
	cmd.AddCommand(c.newSubscribeCmd())

	// Operations
	cmd.AddCommand(c.newSeedCmd())
	cmd.AddCommand(c.newAuditCmd())
	cmd.AddCommand(c.newDoctorCmd())
	cmd.AddCommand(c.newVersionCmd())

	return cmd
}

func (c *CLI) initConfig() error {
	cfg, err := config.Load(config.Options{ConfigPath: c.configPath})
	if err != nil {
		return errors.NewConfigInvalid(err)
	}
	c.cfg = cfg

	// Override with flags
	if c.backendURL != "" {
		c.cfg.Backend.URL = c.backendURL
	}
	if c.rootCmd.PersistentFlags().Changed("timeout") {
		c.cfg.Backend.Timeout = c.timeout
	}

	c.debugf("backend: %q timeout: %s\n", c.cfg.Backend.URL, c.cfg.Backend.Timeout)
	return nil
}

func (c *CLI) close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Helper functions for output

func (c *CLI) printf(format string, args ...interface{}) {
	if !c.quiet {
		fmt.Fprintf(c.out, format, args...)
	}
}

func (c *CLI) println(args ...interface{}) {
	if !c.quiet {
		fmt.Fprintln(c.out, args...)
	}
}

func (c *CLI) errorf(format string, args ...interface{}) {
	fmt.Fprintf(c.errOut, format, args...)
}

func (c *CLI) debugf(format string, args ...interface{}) {
	if c.debug {
		fmt.Fprintf(c.errOut, "[DEBUG] "+format, args...)
	}
}

func (c *CLI) outputJSON(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newClient creates a backend client from the current config.
func (c *CLI) newClient() *backend.Client {
	return backend.New(c.cfg.Backend.URL, c.cfg.Backend.Timeout)
}

// newLogger builds the sync logger from logging.* and audit.*. With an audit
// store configured, entries are persisted and mirrored to the log writer.
func (c *CLI) newLogger(ctx context.Context) (observability.SyncLogger, error) {
	w, err := c.logWriter()
	if err != nil {
		return nil, err
	}

	if !c.cfg.Audit.Enabled() {
		return observability.NewJSONLogger(w, c.cfg.Logging.Level), nil
	}

	db, err := storage.OpenMigrated(ctx, c.cfg.Audit.Driver, c.cfg.Audit.DSN)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, func() { db.Close() })

	var mirror io.Writer
	if w != io.Discard {
		mirror = w
	}
	return observability.NewPersistentLoggerWithWriter(db, mirror)
}

// logWriter is logging.file when set, stderr with --debug, else discarded.
func (c *CLI) logWriter() (io.Writer, error) {
	if c.cfg.Logging.File != "" {
		f, err := os.OpenFile(c.cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		c.closers = append(c.closers, func() { f.Close() })
		return f, nil
	}
	if c.debug {
		return c.errOut, nil
	}
	return io.Discard, nil
}
