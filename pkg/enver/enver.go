package enver

import (
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/angeloszaimis/enver/pkg/envfile"
)

const listSeparator = ","

type Enver struct {
	pairs  []envfile.Pair
	values map[string]string
	logger *slog.Logger
}

// New loads path with envfile.Load and wraps the result.
func New(path string, opts envfile.Options) (*Enver, error) {
	pairs, err := envfile.Load(path, opts)
	if err != nil {
		return nil, err
	}
	return FromPairs(pairs, opts.Logger), nil
}

// FromPairs wraps pairs that were loaded elsewhere. When a name repeats, the
// last pair wins.
func FromPairs(pairs []envfile.Pair, logger *slog.Logger) *Enver {
	if logger == nil {
		logger = slog.Default()
	}

	values := make(map[string]string, len(pairs))
	for _, p := range pairs {
		values[p.Name] = p.Value
	}

	return &Enver{
		pairs:  slices.Clone(pairs),
		values: values,
		logger: logger,
	}
}

// Pairs returns the loaded pairs in file order.
func (e *Enver) Pairs() []envfile.Pair {
	return slices.Clone(e.pairs)
}

// Keys returns the distinct variable names, sorted.
func (e *Enver) Keys() []string {
	return slices.Sorted(maps.Keys(e.values))
}

func (e *Enver) Lookup(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

func (e *Enver) String(key, def string) string {
	raw, ok := e.values[key]
	if !ok {
		return def
	}
	return raw
}

func (e *Enver) Int(key string, def int) int {
	raw, ok := e.values[key]
	if !ok {
		return def
	}
	v, err := AsInt(raw)
	if err != nil {
		e.warnInvalid(key, raw, "int", err)
		return def
	}
	return v
}

func (e *Enver) Float(key string, def float64) float64 {
	raw, ok := e.values[key]
	if !ok {
		return def
	}
	v, err := AsFloat(raw)
	if err != nil {
		e.warnInvalid(key, raw, "float", err)
		return def
	}
	return v
}

// Bool reads the value as an integer: zero is false, anything else is true.
// Words such as "true" or "yes" are not accepted.
func (e *Enver) Bool(key string, def bool) bool {
	raw, ok := e.values[key]
	if !ok {
		return def
	}
	v, err := AsBool(raw)
	if err != nil {
		e.warnInvalid(key, raw, "bool", err)
		return def
	}
	return v
}

// List splits the value on commas. An empty value yields def.
func (e *Enver) List(key string, def []string) []string {
	// AsString cannot fail.
	v, _ := ListOf(e, key, def, AsString)
	return v
}

// Map decodes the value as a JSON object. An empty value yields def.
func (e *Enver) Map(key string, def map[string]any) map[string]any {
	raw, ok := e.values[key]
	if !ok || raw == "" {
		return def
	}

	var v map[string]any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		e.logger.Error("failed to decode env var as JSON object",
			slog.String("key", key),
			slog.String("value", raw),
			slog.String("error", err.Error()))
		return def
	}
	if v == nil {
		return def
	}
	return v
}

// ListOf splits the value of key on commas and converts every element with
// conv. An absent or empty value yields def unchanged. The first conversion
// error is returned.
func ListOf[T any](e *Enver, key string, def []T, conv func(string) (T, error)) ([]T, error) {
	raw, ok := e.values[key]
	if !ok || raw == "" {
		return def, nil
	}

	parts := strings.Split(raw, listSeparator)
	out := make([]T, 0, len(parts))
	for i, part := range parts {
		v, err := conv(part)
		if err != nil {
			return nil, &ElementError{Key: key, Index: i, Value: part, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

func (e *Enver) warnInvalid(key, raw, kind string, err error) {
	e.logger.Warn("env var is not a valid "+kind+", using default",
		slog.String("key", key),
		slog.String("value", raw),
		slog.String("error", err.Error()))
}

func AsString(s string) (string, error) {
	return s, nil
}

// AsInt parses a base-10 integer, ignoring surrounding whitespace.
func AsInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// AsFloat parses a decimal float, ignoring surrounding whitespace. Hex floats
// such as 0x1p3 are rejected.
func AsFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xX") {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: s, Err: strconv.ErrSyntax}
	}
	return strconv.ParseFloat(s, 64)
}

func AsBool(s string) (bool, error) {
	n, err := AsInt(s)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}
