package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/inkwell/editor"
	"github.com/iw2rmb/inkwell/loader"
)

// File is a decoded props file.
type File struct {
	editor.Props `mapstructure:",squash"`

	Engine loader.Config `mapstructure:"engine"`

	// Path is the file the props were read from.
	Path string `mapstructure:"-"`
	// Unused lists keys present in the file that no field consumed.
	Unused []string `mapstructure:"-"`
}

// Load reads and decodes the props file at path. Decoding is weakly typed,
// so a height may be written as 20 or "20" and a width as "50%".
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, &ParseError{Path: path, Err: err}
	}
	f, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return File{}, &ParseError{Path: path, Err: err}
	}
	f.Path = path
	f.Engine = resolvePaths(filepath.Dir(path), f.Engine)
	return f, nil
}

// Decode decodes props from data in the format named by ext (".yaml",
// ".yml" or ".toml").
func Decode(data []byte, ext string) (File, error) {
	var raw map[string]any
	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		return File{}, ErrUnsupportedFormat
	}
	if err != nil {
		return File{}, err
	}

	var f File
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &f,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return File{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return File{}, err
	}
	sort.Strings(md.Unused)
	f.Unused = md.Unused
	return f, nil
}

func resolvePaths(dir string, cfg loader.Config) loader.Config {
	abs := func(paths []string) []string {
		if len(paths) == 0 {
			return paths
		}
		out := make([]string, len(paths))
		for i, p := range paths {
			if filepath.IsAbs(p) {
				out[i] = p
			} else {
				out[i] = filepath.Join(dir, p)
			}
		}
		return out
	}
	return loader.Config{
		ThemeFiles:   abs(cfg.ThemeFiles),
		SnippetFiles: abs(cfg.SnippetFiles),
		Extensions:   abs(cfg.Extensions),
	}
}
