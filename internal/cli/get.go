package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/angeloszaimis/enver/pkg/enver"
)

const (
	typeString = "string"
	typeInt    = "int"
	typeFloat  = "float"
	typeBool   = "bool"
	typeList   = "list"
	typeMap    = "map"
)

var ErrVarNotSet = errors.New("variable not set")

func newGetCommand(s *session) *cobra.Command {
	var (
		kind     string
		def      string
		required bool
	)

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print one variable converted to the requested type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			pairs, err := s.load(false)
			if err != nil {
				return err
			}
			e := enver.FromPairs(pairs, s.log)

			if _, ok := e.Lookup(key); !ok && required {
				return fmt.Errorf("%s: %w", key, ErrVarNotSet)
			}

			return printTyped(cmd.OutOrStdout(), e, key, kind, def)
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", typeString, "result type: string, int, float, bool, list or map")
	cmd.Flags().StringVarP(&def, "default", "d", "", "value used when the variable is absent or does not parse")
	cmd.Flags().BoolVar(&required, "required", false, "fail when the variable is absent")
	return cmd
}

func printTyped(out io.Writer, e *enver.Enver, key, kind, def string) error {
	switch kind {
	case typeString:
		_, err := fmt.Fprintln(out, e.String(key, def))
		return err

	case typeInt:
		d, err := parseDefault(def, 0, enver.AsInt)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, e.Int(key, d))
		return err

	case typeFloat:
		d, err := parseDefault(def, 0, enver.AsFloat)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, strconv.FormatFloat(e.Float(key, d), 'g', -1, 64))
		return err

	case typeBool:
		d, err := parseDefault(def, false, enver.AsBool)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, e.Bool(key, d))
		return err

	case typeList:
		var d []string
		if def != "" {
			d = strings.Split(def, ",")
		}
		for _, item := range e.List(key, d) {
			if _, err := fmt.Fprintln(out, item); err != nil {
				return err
			}
		}
		return nil

	case typeMap:
		var d map[string]any
		if def != "" {
			if err := json.Unmarshal([]byte(def), &d); err != nil {
				return fmt.Errorf("invalid --default for map: %w", err)
			}
		}
		return json.NewEncoder(out).Encode(e.Map(key, d))

	default:
		return fmt.Errorf("unknown type %q: want string, int, float, bool, list or map", kind)
	}
}

func parseDefault[T any](def string, zero T, conv func(string) (T, error)) (T, error) {
	if def == "" {
		return zero, nil
	}
	v, err := conv(def)
	if err != nil {
		return zero, fmt.Errorf("invalid --default %q: %w", def, err)
	}
	return v, nil
}
