package palette

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/meikuraledutech/flow"
	"go.uber.org/zap"
)

//go:embed templates/*.toml
var builtinFS embed.FS

// templateFile is the on-disk shape of a palette file.
type templateFile struct {
	Templates []flow.Template `toml:"templates"`
}

// Builtin returns the catalog shipped with the binary.
func Builtin() (*Catalog, error) {
	templates, err := LoadFS(builtinFS, "templates")
	if err != nil {
		return nil, err
	}
	return New(templates), nil
}

// LoadFS reads and validates every .toml file in dir.
func LoadFS(fsys fs.FS, dir string) ([]flow.Template, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("palette: read %s: %w", dir, err)
	}

	var templates []flow.Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("palette: read %s: %w", entry.Name(), err)
		}
		parsed, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("palette: %s: %w", entry.Name(), err)
		}
		templates = append(templates, parsed...)
	}
	return templates, nil
}

// Parse decodes and validates one palette file.
func Parse(data []byte) ([]flow.Template, error) {
	var tf templateFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	for _, t := range tf.Templates {
		if err := Validate(t); err != nil {
			return nil, err
		}
	}
	return tf.Templates, nil
}

// LoadAll merges the built-in templates with the files in dir; templates from
// dir override built-ins with the same id. A missing dir is not an error.
// Port divergences found by Lint are logged as warnings.
func LoadAll(dir string, log *zap.Logger) (*Catalog, error) {
	if log == nil {
		log = zap.NewNop()
	}
	templates, err := LoadFS(builtinFS, "templates")
	if err != nil {
		return nil, err
	}

	if dir != "" {
		if _, statErr := os.Stat(dir); statErr == nil {
			external, err := LoadFS(os.DirFS(filepath.Clean(dir)), ".")
			if err != nil {
				return nil, err
			}
			templates = append(templates, external...)
		} else {
			log.Debug("palette directory not found", zap.String("dir", dir))
		}
	}

	templates = dedup(templates)
	for _, t := range templates {
		for _, finding := range Lint(t) {
			log.Warn("template port mismatch", zap.String("template", t.ID), zap.String("finding", finding))
		}
	}
	return New(templates), nil
}

// dedup removes duplicate templates by id. The last definition wins but keeps
// the position of the first.
func dedup(templates []flow.Template) []flow.Template {
	index := make(map[string]int, len(templates))
	result := make([]flow.Template, 0, len(templates))
	for _, t := range templates {
		if i, seen := index[t.ID]; seen {
			result[i] = t
			continue
		}
		index[t.ID] = len(result)
		result = append(result, t)
	}
	return result
}
