// Package cli implements the typeparse command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/typeparse/pkg/parse"
)

// Exit codes. A rejected value is a successful run.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// builtinInput is the value validated when typeparse runs without a subcommand.
const builtinInput = 1

// app holds global flag values and the state shared by subcommands.
type app struct {
	configDir    string
	outputFormat string
	logLevel     string

	cfg    *viper.Viper
	log    zerolog.Logger
	format string
}

// NewRootCmd creates the top-level "typeparse" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "typeparse",
		Short: "Validate typed values against sentinel rules",
		Long: `typeparse validates integers, text and JSON objects against fixed
sentinel rules and prints the outcome. Run without a subcommand it validates
the built-in value 1.

A rejected value is reported as data and still exits 0.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.log.Debug().Int("input", builtinInput).Msg("validating built-in input")
			return a.render(cmd.OutOrStdout(), parse.Validate(builtinInput))
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/typeparse)")
	root.PersistentFlags().StringVarP(&a.outputFormat, "output-format", "o", defaultOutput, "output format: debug, json or dump")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, error")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newIntCmd(a))
	root.AddCommand(newTextCmd(a))
	root.AddCommand(newObjectCmd(a))
	root.AddCommand(newBatchCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command tree with the given arguments and streams and
// returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		return exitCode(err)
	}
	return exitSuccess
}

// cliError carries the exit code for a failed command.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }

func (e *cliError) Unwrap() error { return e.err }

// userError marks err as caused by bad arguments or input.
func userError(err error) error {
	return &cliError{code: exitUserError, err: err}
}

// sysError marks err as an environment or I/O failure.
func sysError(err error) error {
	return &cliError{code: exitSysError, err: err}
}

func exitCode(err error) int {
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	// Errors raised by cobra itself (unknown command, bad flag) are usage errors.
	return exitUserError
}

// setup loads .env and config.yaml, then builds the logger. It runs before
// every subcommand.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	dotenvErr := loadDotenv()

	configDir, err := resolveConfigDir(a.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	cfg, err := loadConfig(configDir, cmd.Root().PersistentFlags())
	if err != nil {
		return userError(err)
	}
	a.cfg = cfg

	log, err := newLogger(cmd.ErrOrStderr(), cfg.GetString(cfgKeyLogLevel))
	if err != nil {
		return userError(err)
	}
	a.log = log

	format, err := parseFormat(cfg.GetString(cfgKeyOutput))
	if err != nil {
		return userError(err)
	}
	a.format = format

	if dotenvErr != nil {
		a.log.Warn().Err(dotenvErr).Msg("could not load .env")
	}
	a.log.Debug().
		Str("config_dir", configDir).
		Str("config_file", cfg.ConfigFileUsed()).
		Str("output", a.format).
		Msg("configuration loaded")
	return nil
}
