package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/angeloszaimis/enver/config"
	"github.com/angeloszaimis/enver/internal/cli"
	"github.com/angeloszaimis/enver/pkg/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	code := run(ctx, os.Args[1:], cli.DefaultDeps())
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, deps cli.Deps) int {
	root := cli.NewRoot(deps)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		code := cli.ExitCode(err)
		if code == 1 {
			errorLogger(deps.Stderr, args).Error("command failed", slog.Any("err", err))
		}
		return code
	}
	return 0
}

// errorLogger resolves the environment from the same flags, ENVER_* variables
// and settings file as the commands. It falls back to dev when those settings
// are themselves invalid.
func errorLogger(w io.Writer, args []string) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	flags := pflag.NewFlagSet("enver", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.ParseErrorsAllowlist.UnknownFlags = true
	config.RegisterFlags(flags)

	environment := config.EnvDev
	if err := flags.Parse(args); err == nil {
		if cfg, err := config.Load(flags); err == nil {
			environment = cfg.Logging.Environment
		}
	}

	return logger.NewWithWriter(w, config.LogLevelError, false, environment)
}
