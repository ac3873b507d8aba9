package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"nathanbeddoewebdev/sapmon/internal/sources"
)

// DefaultFiles are the export file names expected in the data directory
// when no manifest overrides them.
var DefaultFiles = map[sources.Source]string{
	sources.Memory:          "memory_final_cleaned_clean.xlsx",
	sources.HitlistDB:       "HITLIST_DATABASE_final_cleaned_clean.xlsx",
	sources.Times:           "Times_final_cleaned_clean.xlsx",
	sources.TaskTimes:       "TASKTIMES_final_cleaned_clean.xlsx",
	sources.UserTcode:       "USERTCODE_cleaned.xlsx",
	sources.Performance:     "AL_GET_PERFORMANCE_final_cleaned_clean.xlsx",
	sources.SQLTraceSummary: "performance_trace_summary_final_cleaned_clean.xlsx",
	sources.Usr02:           "usr02_data.xlsx",
}

// Manifest maps every source to the export file it is read from.
type Manifest struct {
	DataDir string
	Paths   map[sources.Source]string
}

// manifestFile is the YAML shape of a manifest:
//
//	data_dir: /srv/exports
//	sources:
//	  memory: memory.xlsx
//	  usr02: users.csv
type manifestFile struct {
	DataDir string            `yaml:"data_dir"`
	Sources map[string]string `yaml:"sources"`
}

// DefaultManifest returns the default file names under dataDir. An empty
// dataDir means the current directory.
func DefaultManifest(dataDir string) Manifest {
	if dataDir == "" {
		dataDir = "."
	}
	m := Manifest{DataDir: dataDir, Paths: make(map[sources.Source]string, len(DefaultFiles))}
	for src, name := range DefaultFiles {
		m.Paths[src] = name
	}
	return m
}

// LoadManifest reads a YAML manifest and layers it over the defaults.
// A data_dir in the file wins over dataDir; a relative data_dir resolves
// against the manifest's own directory. Unknown source keys are an error.
func LoadManifest(path, dataDir string) (Manifest, error) {
	m := DefaultManifest(dataDir)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m, fmt.Errorf("pipeline: manifest %s not found: %w", path, err)
		}
		return m, fmt.Errorf("pipeline: failed to read manifest %s: %w", path, err)
	}

	var mf manifestFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return m, fmt.Errorf("pipeline: failed to parse manifest %s: %w", path, err)
	}

	if mf.DataDir != "" {
		dir := mf.DataDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(filepath.Dir(path), dir)
		}
		m.DataDir = dir
	}

	keys := make([]string, 0, len(mf.Sources))
	for k := range mf.Sources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		src, err := sources.ParseSource(k)
		if err != nil {
			return m, fmt.Errorf("pipeline: manifest %s: %w", path, err)
		}
		if p := mf.Sources[k]; p != "" {
			m.Paths[src] = p
		}
	}
	return m, nil
}

// With returns a copy of m with src read from path.
func (m Manifest) With(src sources.Source, path string) Manifest {
	out := Manifest{DataDir: m.DataDir, Paths: make(map[sources.Source]string, len(m.Paths))}
	for k, v := range m.Paths {
		out.Paths[k] = v
	}
	out.Paths[src] = path
	return out
}

// Path returns the resolved file path for src. Relative entries are joined
// with DataDir.
func (m Manifest) Path(src sources.Source) string {
	p, ok := m.Paths[src]
	if !ok {
		p = DefaultFiles[src]
	}
	if filepath.IsAbs(p) || m.DataDir == "" {
		return p
	}
	return filepath.Join(m.DataDir, p)
}

// MarshalYAML renders the manifest in the same shape LoadManifest reads.
func (m Manifest) MarshalYAML() (any, error) {
	mf := manifestFile{DataDir: m.DataDir, Sources: make(map[string]string, len(m.Paths))}
	for src, p := range m.Paths {
		mf.Sources[src.String()] = p
	}
	return mf, nil
}
