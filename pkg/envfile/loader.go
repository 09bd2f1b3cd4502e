package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

const exportPrefix = "export "

// Pair is one parsed variable. Order follows the file and names may repeat.
type Pair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Options tune Load and Parse. The zero value writes every variable into the
// process environment, read from the OS filesystem, and fails on a missing
// file.
type Options struct {
	// SkipSetEnv leaves Env untouched.
	SkipSetEnv bool
	// IgnoreMissing turns a missing file into an empty result.
	IgnoreMissing bool
	// ExcludeOverride names variables whose current Env value wins over the
	// file. They are never written and are reported with the Env value.
	ExcludeOverride []string

	Env    Environ
	Fs     afero.Fs
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Env == nil {
		o.Env = OSEnviron{}
	}
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Load reads the env file at path.
//
// Variables are written into opts.Env as they are read. A malformed line stops
// the load with a *ParseError; writes made before it are kept.
func Load(path string, opts Options) ([]Pair, error) {
	opts = opts.withDefaults()

	f, err := opts.Fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if opts.IgnoreMissing {
				opts.Logger.Debug("env file not found, skipping", slog.String("file", path))
				return []Pair{}, nil
			}
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("open env file %s: %w", path, err)
	}
	defer f.Close()

	pairs, err := parse(f, path, opts)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("loaded env file",
		slog.String("file", path),
		slog.Int("vars", len(pairs)))

	return pairs, nil
}

// Parse applies the Load rules to r. name is only used in errors and logs.
func Parse(r io.Reader, name string, opts Options) ([]Pair, error) {
	return parse(r, name, opts.withDefaults())
}

func parse(r io.Reader, name string, opts Options) ([]Pair, error) {
	pairs := []Pair{}
	reader := bufio.NewReader(r)

	for lineNo := 1; ; lineNo++ {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("read env file %s: %w", name, readErr)
		}
		if raw == "" && readErr != nil {
			break
		}

		text := strings.TrimRight(raw, "\r\n")
		key, value, ok, err := parseLine(text)
		if err != nil {
			opts.Logger.Error("failed to parse env line",
				slog.String("file", name),
				slog.Int("line", lineNo),
				slog.String("text", text))
			return nil, &ParseError{File: name, Line: lineNo, Text: text}
		}
		if ok {
			pair, err := apply(key, value, opts)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, pair)
		}

		if readErr != nil {
			break
		}
	}

	return pairs, nil
}

// parseLine returns ok=false for blank and comment lines.
func parseLine(text string) (key, value string, ok bool, err error) {
	line := strings.TrimSpace(text)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false, nil
	}

	if len(line) >= len(exportPrefix) && strings.EqualFold(line[:len(exportPrefix)], exportPrefix) {
		line = strings.TrimSpace(line[len(exportPrefix):])
	}

	key, value, found := strings.Cut(line, "=")
	if !found || key == "" {
		return "", "", false, ErrParse
	}
	return key, value, true, nil
}

func apply(key, value string, opts Options) (Pair, error) {
	if slices.Contains(opts.ExcludeOverride, key) {
		current, _ := opts.Env.Lookup(key)
		return Pair{Name: key, Value: current}, nil
	}

	if !opts.SkipSetEnv {
		if err := opts.Env.Set(key, value); err != nil {
			return Pair{}, fmt.Errorf("set %s: %w", key, err)
		}
	}
	return Pair{Name: key, Value: value}, nil
}
