package envfile

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/afero"
)

const filePerm = 0o644

// Write creates or truncates path and writes one KEY=VALUE line per entry in
// key order. Values are written verbatim: a value holding '\n' will not load
// back as a single variable.
func Write(path string, vars map[string]string, fsys afero.Fs) error {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, Pair{Name: k, Value: vars[k]})
	}
	return WritePairs(path, pairs, fsys)
}

// WritePairs is Write with caller-controlled line order.
func WritePairs(path string, pairs []Pair, fsys afero.Fs) error {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	f, err := fsys.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("create env file %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, p := range pairs {
		if _, err := fmt.Fprintf(w, "%s=%s\n", p.Name, p.Value); err != nil {
			f.Close()
			return fmt.Errorf("write env file %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write env file %s: %w", path, err)
	}
	return f.Close()
}
