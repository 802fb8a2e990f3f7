// Package config loads diary settings: logging and vocabulary extensions.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/diary/diary"
)

var log = commonlog.GetLogger("diary.config")

// Names searched by Discover, in order.
var FileNames = []string{"diary.yaml", "diary.yml", "diary.toml"}

type Config struct {
	Log        LogConfig        `yaml:"log" toml:"log"`
	Extensions VocabularyConfig `yaml:"vocabulary" toml:"vocabulary"`

	// Path is the file the configuration was read from, if any.
	Path string `yaml:"-" toml:"-"`
}

type LogConfig struct {
	Verbosity int    `yaml:"verbosity" toml:"verbosity"`
	File      string `yaml:"file" toml:"file"`
}

type VocabularyConfig struct {
	// Meals maps an alias to a canonical meal name.
	Meals  map[string]string `yaml:"meals" toml:"meals"`
	Units  []UnitConfig      `yaml:"units" toml:"units"`
	Macros []MacroConfig     `yaml:"macros" toml:"macros"`
}

type UnitConfig struct {
	Symbol    string   `yaml:"symbol" toml:"symbol"`
	Dimension string   `yaml:"dimension" toml:"dimension"`
	Aliases   []string `yaml:"aliases" toml:"aliases"`
}

type MacroConfig struct {
	Kind    string   `yaml:"kind" toml:"kind"`
	Aliases []string `yaml:"aliases" toml:"aliases"`
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{}
}

// Load reads path, choosing TOML for ".toml" files and YAML otherwise.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Op: "config.load", Kind: KindNotFound, Path: path, Err: err}
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(b), cfg)
		if err != nil {
			return nil, &Error{Op: "config.load", Kind: KindInvalid, Path: path, Err: err}
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, &Error{Op: "config.load", Kind: KindInvalid, Path: path,
				Err: fmt.Errorf("unknown key %q", undecoded[0].String())}
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !isEmptyYAML(err) {
			return nil, &Error{Op: "config.load", Kind: KindInvalid, Path: path, Err: err}
		}
	}
	cfg.Path = path

	if _, err := cfg.Vocabulary(); err != nil {
		return nil, &Error{Op: "config.vocabulary", Kind: KindInvalid, Path: path, Err: err}
	}
	log.Debugf("loaded %s", path)
	return cfg, nil
}

// isEmptyYAML reports the decoder's answer to a document with no content.
func isEmptyYAML(err error) bool {
	return errors.Is(err, io.EOF)
}

// Discover returns the first of FileNames present in dir.
func Discover(dir string) (string, bool) {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Vocabulary returns the default vocabulary extended with the configured
// meals, units and macros.
func (c *Config) Vocabulary() (*diary.Vocabulary, error) {
	v := diary.DefaultVocabulary()
	if c == nil {
		return v, nil
	}
	vc := c.Extensions

	for _, alias := range slices.Sorted(maps.Keys(vc.Meals)) {
		name := vc.Meals[alias]
		kind, ok := diary.ParseMealKind(name)
		if !ok {
			return nil, fmt.Errorf("meal alias %q: unknown meal %q", alias, name)
		}
		if err := v.AddMealAlias(alias, kind); err != nil {
			return nil, err
		}
	}
	for _, u := range vc.Units {
		dim, ok := diary.ParseDimension(u.Dimension)
		if !ok {
			return nil, fmt.Errorf("unit %q: unknown dimension %q", u.Symbol, u.Dimension)
		}
		if err := v.AddUnit(diary.Unit(u.Symbol), dim, u.Aliases...); err != nil {
			return nil, err
		}
	}
	for _, m := range vc.Macros {
		if !diary.IsMacroToken(m.Kind) {
			return nil, fmt.Errorf("macro %q: not a valid key", m.Kind)
		}
		if err := v.AddMacro(diary.MacroKind(strings.ToLower(m.Kind)), m.Aliases...); err != nil {
			return nil, err
		}
	}
	return v, nil
}
