package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/angeloszaimis/enver/config"
	"github.com/angeloszaimis/enver/pkg/envfile"
)

func newWriteCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "write KEY=VALUE...",
		Short: "Create or replace the env file with the given variables",
		Long: "Create or replace the env file with the given variables, one line each in argument order.\n" +
			"Values are written verbatim; a value containing a newline will not load back intact.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.cfg.File.Path == stdinPath {
				return fmt.Errorf("cannot write to %q", stdinPath)
			}

			pairs, err := parseAssignments(args)
			if err != nil {
				return err
			}

			if err := envfile.WritePairs(s.cfg.File.Path, pairs, s.deps.Fs); err != nil {
				return err
			}
			s.log.Info("wrote env file",
				slog.String("file", s.cfg.File.Path),
				slog.Int("vars", len(pairs)))
			return nil
		},
	}
}

func parseAssignments(args []string) ([]envfile.Pair, error) {
	pairs := make([]envfile.Pair, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("argument %q: want KEY=VALUE", arg)
		}
		if err := config.ValidateVarName(name); err != nil {
			return nil, fmt.Errorf("argument %q: %w", arg, err)
		}
		pairs = append(pairs, envfile.Pair{Name: name, Value: value})
	}
	return pairs, nil
}
