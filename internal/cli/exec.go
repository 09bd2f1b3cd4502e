package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/angeloszaimis/enver/pkg/envfile"
)

func newExecCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec -- CMD [ARGS...]",
		Short: "Load the env file into the environment and run a command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := s.load(true)
			if err != nil {
				return err
			}

			environ := childEnviron(pairs, s.deps.Env)

			s.log.Debug("running command",
				slog.String("command", args[0]),
				slog.Int("vars", len(pairs)))

			return s.deps.Run(cmd.Context(), args[0], args[1:], environ,
				cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	// Flags after CMD belong to CMD.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// childEnviron overlays the loaded variables, as held by env, on the process
// environment. A variable env does not hold stays undefined for the child.
func childEnviron(pairs []envfile.Pair, env envfile.Environ) []string {
	environ := os.Environ()
	for _, p := range pairs {
		if v, ok := env.Lookup(p.Name); ok {
			environ = append(environ, p.Name+"="+v)
		}
	}
	return environ
}

func runProcess(ctx context.Context, name string, args, environ []string, stdin io.Reader, stdout, stderr io.Writer) error {
	c := exec.CommandContext(ctx, name, args...)
	c.Env = environ
	c.Stdin = stdin
	c.Stdout = stdout
	c.Stderr = stderr
	return c.Run()
}
