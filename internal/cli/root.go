// Package cli implements the agenda command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/agenda/internal/logging"
	"github.com/mesh-intelligence/agenda/internal/paths"
	"github.com/mesh-intelligence/agenda/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// errFailed reports that a command ran but some of its checks or operations
// failed; the details are already on stdout.
var errFailed = errors.New("one or more operations failed")

// app holds global flag values and the state PersistentPreRunE derives from
// them. Each root command owns its own app, so commands can run in-process
// side by side.
type app struct {
	configDir string
	backend   string
	logLevel  string
	jsonMode  bool

	stderr io.Writer
	v      *viper.Viper
	logger *slog.Logger
}

// NewRootCmd creates the top-level "agenda" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{stderr: os.Stderr}

	root := &cobra.Command{
		Use:   "agenda",
		Short: "Validate and apply appointment, contact, and task records",
		Long: "Agenda keeps appointments, contacts, and tasks in in-memory registries\n" +
			"that validate every field and assign sequential ids.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.stderr = cmd.ErrOrStderr()
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "table backend: memory or sqlite")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, or error")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd(a))
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newApplyCmd(a))
	root.AddCommand(newCheckCmd(a))

	return root
}

// setup resolves the config directory, loads configuration, and builds the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	dir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = dir

	v, err := loadConfig(dir, cmd.Root().PersistentFlags())
	if err != nil {
		return userError(err)
	}
	a.v = v

	logger, err := logging.New(a.stderr, v.GetString(cfgKeyLogLevel), logging.FormatText)
	if err != nil {
		return userError(err)
	}
	a.logger = logger
	return nil
}

// config returns the backend configuration after flag, env, and file merging.
func (a *app) config() (types.Config, error) {
	cfg := types.Config{Backend: a.v.GetString(cfgKeyBackend)}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("backend %q: %w", cfg.Backend, err)
	}
	return cfg, nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:]))
}

// run executes root with args and maps the result to an exit code.
func run(root *cobra.Command, args []string) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	if !errors.Is(err, errFailed) {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
