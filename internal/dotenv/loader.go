package dotenv

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"sort"

	"EnvKit/internal/envtable"
)

// Loader parses env documents and merges the result into a Table.
// The zero value merges into the process environment without overriding
// existing variables.
type Loader struct {
	// Table receives the merged variables. Nil means the process
	// environment.
	Table envtable.Table
	// Override controls whether keys already present in the table are
	// replaced.
	Override bool
}

func (l *Loader) table() envtable.Table {
	if l.Table == nil {
		return envtable.OS()
	}
	return l.Table
}

// merge applies each variable to the table under the override policy and
// returns the parsed variables unchanged, so callers can inspect what was
// read even when nothing was written.
func (l *Loader) merge(vars *Vars) (*Vars, error) {
	t := l.table()
	for _, key := range vars.Keys() {
		if t.Contains(key) && !l.Override {
			continue
		}
		value, _ := vars.Get(key)
		if err := t.Set(key, value); err != nil {
			return nil, err
		}
	}
	return vars, nil
}

// LoadString parses text and merges the result.
func (l *Loader) LoadString(text string) (*Vars, error) {
	vars, err := ParseString(text)
	if err != nil {
		return nil, err
	}
	return l.merge(vars)
}

// LoadReader reads r fully, parses it, and merges the result.
func (l *Loader) LoadReader(r io.Reader) (*Vars, error) {
	vars, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return l.merge(vars)
}

// LoadFile reads the file at path, parses it, and merges the result.
// A missing file is an I/O error, distinct from any parse error.
func (l *Loader) LoadFile(path string) (*Vars, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return l.LoadString(string(data))
}

// LoadFileIfExists is LoadFile, except a missing file reports ok=false with
// no error. Any other failure, parse errors included, is returned as is.
func (l *Loader) LoadFileIfExists(path string) (vars *Vars, ok bool, err error) {
	vars, err = l.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return vars, true, nil
}

// LoadVars merges an already-built mapping, no parsing involved.
func (l *Loader) LoadVars(vars *Vars) (*Vars, error) {
	return l.merge(vars)
}

// LoadMap merges a plain map. Keys are applied in sorted order since the
// map carries no order of its own.
func (l *Loader) LoadMap(m map[string]string) (*Vars, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vars := NewVars()
	for _, k := range keys {
		vars.Set(k, m[k])
	}
	return l.merge(vars)
}

// Load parses the file at path and merges it into the process environment.
func Load(path string, override bool) (*Vars, error) {
	l := Loader{Override: override}
	return l.LoadFile(path)
}

// LoadString parses text and merges it into the process environment.
func LoadString(text string, override bool) (*Vars, error) {
	l := Loader{Override: override}
	return l.LoadString(text)
}

// LoadIfExists is Load, except a missing file reports ok=false with no
// error.
func LoadIfExists(path string, override bool) (*Vars, bool, error) {
	l := Loader{Override: override}
	return l.LoadFileIfExists(path)
}
