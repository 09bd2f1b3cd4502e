package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/angeloszaimis/enver/config"
	"github.com/angeloszaimis/enver/pkg/envfile"
	"github.com/angeloszaimis/enver/pkg/logger"
)

// stdinPath makes list and get read the env file from standard input.
const stdinPath = "-"

// RunFunc starts name with args and the given environment and waits for it.
type RunFunc func(ctx context.Context, name string, args, environ []string, stdin io.Reader, stdout, stderr io.Writer) error

// Deps are the process resources the commands use.
type Deps struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Env    envfile.Environ
	Fs     afero.Fs
	Run    RunFunc
}

// DefaultDeps wires the commands to the real process.
func DefaultDeps() Deps {
	return Deps{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Env:    envfile.OSEnviron{},
		Fs:     afero.NewOsFs(),
		Run:    runProcess,
	}
}

type session struct {
	deps Deps
	cfg  *config.Config
	log  *slog.Logger
}

// loadOptions turns the resolved settings into loader options.
func (s *session) loadOptions(setEnv bool) envfile.Options {
	return envfile.Options{
		SkipSetEnv:      !setEnv,
		IgnoreMissing:   s.cfg.File.IgnoreMissing,
		ExcludeOverride: s.cfg.File.ExcludeOverride,
		Env:             s.deps.Env,
		Fs:              s.deps.Fs,
		Logger:          s.log,
	}
}

func (s *session) load(setEnv bool) ([]envfile.Pair, error) {
	opts := s.loadOptions(setEnv)
	if s.cfg.File.Path == stdinPath {
		return envfile.Parse(s.deps.Stdin, "stdin", opts)
	}
	return envfile.Load(s.cfg.File.Path, opts)
}

// NewRoot constructs the enver root command.
func NewRoot(deps Deps) *cobra.Command {
	s := &session{deps: deps}

	root := &cobra.Command{
		Use:           "enver",
		Short:         "Load, inspect and write env files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			s.cfg = cfg
			s.log = logger.NewWithWriter(deps.Stderr, cfg.Logging.Level, false, cfg.Logging.Environment)
			return nil
		},
	}
	root.SetIn(deps.Stdin)
	root.SetOut(deps.Stdout)
	root.SetErr(deps.Stderr)

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newListCommand(s))
	root.AddCommand(newGetCommand(s))
	root.AddCommand(newWriteCommand(s))
	root.AddCommand(newExecCommand(s))
	return root
}

// ExitCode maps a command error to a process exit status. A child process
// that exited non-zero passes its own status through.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}
