// Package cli provides the Cobra command structure for padview.
package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/padview/internal/app"
	"github.com/dshills/padview/internal/config"
	"github.com/dshills/padview/internal/integration/process"
	"github.com/dshills/padview/internal/logging"
	"github.com/dshills/padview/internal/renderer/backend"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Env is the process environment the commands run in.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// LookupEnv reads environment variables.
	LookupEnv func(string) (string, bool)

	// IsTerminal reports whether stdin is an interactive terminal.
	IsTerminal func() bool

	// NewBackend creates the screen backend.
	NewBackend func() (backend.Backend, error)

	// Runner runs the editor. Nil means os/exec.
	Runner process.Runner

	// SkipDefaultConfig ignores the per-user config file.
	SkipDefaultConfig bool
}

// DefaultEnv returns the real process environment.
func DefaultEnv() Env {
	return Env{
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		LookupEnv: os.LookupEnv,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		NewBackend: func() (backend.Backend, error) {
			return backend.NewTerminal()
		},
	}
}

// rootFlags holds the root command's flag values.
type rootFlags struct {
	configPath string
	editor     string
	logFile    string
	logLevel   string
	watch      bool
	debug      bool
}

// NewRootCommand creates the root padview command with all subcommands.
func NewRootCommand(info BuildInfo, env Env) *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "padview [file]",
		Short: "View a text file and jump into your editor at the cursor",
		Long: `padview shows a single text file in a scrollable window.

Move with h j k l or the arrow keys. Press i, a, I, A, o or O to open the
file in an external editor at the cursor's line and column; padview saves the
file first, waits for the editor to exit and reloads the result. Press q to
quit.

The file defaults to README.md. The editor comes from --editor, the config
file, $PADVIEW_EDITOR, $VISUAL or $EDITOR, in that order, and falls back to vim.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("%w: accepts at most one file, got %d", ErrUsage, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd, args, flags, env)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetIn(env.Stdin)
	rootCmd.SetOut(env.Stdout)
	rootCmd.SetErr(env.Stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "path to config file (.toml, .yaml, .json)")
	rootCmd.Flags().StringVarP(&flags.editor, "editor", "e", "",
		"editor command with {line}, {col}, {mode} and {file} placeholders")
	rootCmd.Flags().StringVar(&flags.logFile, "log-file", "", "append logs to this file")
	rootCmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "reload the file when it changes on disk")

	rootCmd.AddCommand(newVersionCommand(info))
	rootCmd.AddCommand(newKeysCommand())

	return rootCmd
}

// resolveConfig layers flags over the loaded configuration.
func resolveConfig(cmd *cobra.Command, args []string, flags rootFlags, env Env) (config.Config, string, error) {
	cfg, source, err := config.Load(config.Options{
		Path:            flags.configPath,
		SkipDefaultPath: env.SkipDefaultConfig,
		LookupEnv:       env.LookupEnv,
	})
	if err != nil {
		return cfg, source, err
	}

	if len(args) == 1 {
		cfg.File = args[0]
	}
	if cmd.Flags().Changed("editor") {
		cfg.Editor.Command = flags.editor
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = flags.logFile
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch = flags.watch
	}
	if flags.debug {
		cfg.Log.Level = "debug"
	}

	return cfg, source, cfg.Validate()
}

func runViewer(cmd *cobra.Command, args []string, flags rootFlags, env Env) error {
	cfg, source, err := resolveConfig(cmd, args, flags, env)
	if err != nil {
		return err
	}
	tmpl, err := cfg.EditorTemplate()
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	logging.SetDefault(logger)
	logger.Debug("configuration loaded",
		logging.FieldConfig, source,
		logging.FieldPath, cfg.File,
		logging.FieldEditor, tmpl.String(),
		logging.FieldWatch, cfg.Watch,
	)
	if missing := tmpl.Missing(); len(missing) > 0 {
		logger.Warn("editor command drops cursor fields; set editor.command to pass them",
			logging.FieldEditor, tmpl.String(),
			logging.FieldMissing, missing,
		)
	}

	if env.IsTerminal != nil && !env.IsTerminal() {
		return ErrNotTerminal
	}

	be, err := env.NewBackend()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	style := cfg.StatusStyle()
	application := app.New(be, app.Options{
		Path:        cfg.File,
		Template:    tmpl,
		Runner:      env.Runner,
		TabWidth:    cfg.UI.TabWidth,
		StatusStyle: &style,
		Watch:       cfg.Watch,
		Logger:      logger,
		Stdin:       env.Stdin,
		Stdout:      env.Stdout,
		Stderr:      env.Stderr,
	})

	// Raw mode turns Ctrl-C into a key; these signals still need the
	// terminal restored on the way out.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})
	defer func() {
		signal.Stop(signals)
		close(done)
	}()
	go forwardSignals(signals, done, application.RequestQuit)

	if err := application.Run(); err != nil {
		logger.Error("viewer failed", logging.FieldError, err)
		return err
	}
	return nil
}

// forwardSignals calls quit on the first signal. It returns when done is
// closed.
func forwardSignals(signals <-chan os.Signal, done <-chan struct{}, quit func() error) {
	select {
	case <-signals:
		_ = quit()
	case <-done:
	}
}

// newLogger opens the configured log sink. The returned func closes it.
func newLogger(cfg config.Config) (*log.Logger, func(), error) {
	if cfg.Log.File == "" {
		return logging.New(logging.Options{Level: cfg.Log.Level}), func() {}, nil
	}
	f, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(logging.Options{Level: cfg.Log.Level, Output: f})
	return logger, func() { _ = f.Close() }, nil
}
