package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/nyanko/internal/game/unit"
)

// catalogFile is the on-disk shape of one catalog YAML file.
type catalogFile struct {
	Cats []*unit.Record `yaml:"cats"`
}

// LoadFile parses a single catalog YAML file.
//
// Precondition: path must name a readable file.
// Postcondition: Returns the file's records in file order or a non-nil error.
func LoadFile(path string) ([]*unit.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes catalog YAML. name is used only in error messages.
func Parse(data []byte, name string) ([]*unit.Record, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", name, err)
	}
	for i, r := range f.Cats {
		if r == nil {
			return nil, fmt.Errorf("parsing catalog file %s: entry %d is empty", name, i)
		}
	}
	return f.Cats, nil
}

// LoadDir reads every .yaml file in dir in lexicographic file order.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all records (may be empty) in file order, then
// in-file order, or a non-nil error.
func LoadDir(dir string) ([]*unit.Record, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	var out []*unit.Record
	for _, path := range files {
		recs, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog dir %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Source supplies catalog records from some backing store.
type Source interface {
	Records(ctx context.Context) ([]*unit.Record, error)
}

// DirSource reads records from a directory of YAML files.
type DirSource struct {
	Dir string
}

// Records implements Source.
func (s DirSource) Records(_ context.Context) ([]*unit.Record, error) {
	return LoadDir(s.Dir)
}

// Load builds a Catalog from src.
//
// Postcondition: Returns a validated Catalog or a non-nil error.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	recs, err := src.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog records: %w", err)
	}
	return New(recs)
}
