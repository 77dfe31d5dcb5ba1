package level

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed levels/*.yaml
var builtinFS embed.FS

// Parse decodes and validates one YAML level definition.
// Unknown keys are rejected so typos surface instead of silently defaulting.
func Parse(data []byte) (Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return Definition{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// LoadFile reads and parses a single level file.
func LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	def, err := Parse(data)
	if err != nil {
		return Definition{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return def, nil
}

// LoadDir recursively loads every level file under dir, sorted by ID.
// Files that fail to parse are skipped; their errors are joined and returned
// alongside the levels that did load.
func LoadDir(dir string) ([]Definition, error) {
	var (
		defs []Definition
		errs []error
	)

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsLevelFile(path) {
			return nil
		}

		def, err := LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		defs = append(defs, def)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", dir, err)
	}

	sortByID(defs)
	return defs, errors.Join(errs...)
}

// Builtin returns the levels compiled into the binary.
func Builtin() ([]Definition, error) {
	var defs []Definition

	err := fs.WalkDir(builtinFS, "levels", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsLevelFile(path) {
			return nil
		}

		data, err := builtinFS.ReadFile(path)
		if err != nil {
			return err
		}
		def, err := Parse(data)
		if err != nil {
			return fmt.Errorf("builtin %s: %w", path, err)
		}
		defs = append(defs, def)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortByID(defs)
	return defs, nil
}

// NewBuiltinRegistry creates a registry preloaded with the built-in levels.
func NewBuiltinRegistry() (*Registry, error) {
	defs, err := Builtin()
	if err != nil {
		return nil, err
	}

	reg := NewRegistry()
	for _, def := range defs {
		if err := reg.Register(def); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// LoadDir loads a directory into the registry, overriding same-ID entries.
// Returns how many levels were applied; parse failures are reported but do
// not stop the valid files from loading.
func (r *Registry) LoadDir(dir string) (int, error) {
	defs, loadErr := LoadDir(dir)

	n := 0
	for _, def := range defs {
		if err := r.Replace(def); err != nil {
			loadErr = errors.Join(loadErr, err)
			continue
		}
		n++
	}
	return n, loadErr
}

// IsLevelFile reports whether path looks like a level definition.
func IsLevelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func sortByID(defs []Definition) {
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ID < defs[j].ID
	})
}
