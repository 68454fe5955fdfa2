package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/vvka-141/wsup/internal/paths"
	"github.com/vvka-141/wsup/pkg/wsup"
)

// ErrConfigNotFound is returned when an explicitly requested config file does
// not exist. It also matches wsup.ErrInvalidConfig.
var ErrConfigNotFound = fmt.Errorf("%w: config file not found", wsup.ErrInvalidConfig)

// Environment variables applied on top of the resolved file.
const (
	EnvLogLevel        = "WSUP_LOG_LEVEL"
	EnvLogToFile       = "WSUP_LOG_TO_FILE"
	EnvOpenItemPage    = "WSUP_OPEN_ITEM_PAGE"
	EnvDefaultGlobs    = "WSUP_DEFAULT_GLOBS"
	defaultsSourceName = "defaults"
)

// AppConfig is the application configuration stored as TOML. The same tags
// drive `wsup config show` in yaml and json.
type AppConfig struct {
	OpenItemPageOnComplete bool     `toml:"open_item_page_on_complete" yaml:"open_item_page_on_complete" json:"open_item_page_on_complete"`
	LogLevel               string   `toml:"log_level" yaml:"log_level" json:"log_level"`
	LogToFile              bool     `toml:"log_to_file" yaml:"log_to_file" json:"log_to_file"`
	DefaultGlobs           []string `toml:"default_globs" yaml:"default_globs" json:"default_globs"`
}

// Default returns the built-in configuration.
func Default() AppConfig {
	return AppConfig{
		OpenItemPageOnComplete: true,
		LogLevel:               "info",
	}
}

// Validate checks field values.
func (c AppConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		return fmt.Errorf("%w: log_level %q is not one of trace, debug, info, warn, error", wsup.ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// Source is one candidate location of the configuration.
type Source struct {
	Name string
	Path string
	// Required sources must exist; used for an explicit --config path.
	Required bool
	// Persist marks the location that receives the defaults on first run.
	Persist bool
}

// Sources returns the candidates in lookup order: the explicit path, the
// override beside the executable, then the per-user config file.
func Sources(explicit string, p *paths.Paths) []Source {
	var sources []Source
	if explicit != "" {
		sources = append(sources, Source{Name: "flag", Path: explicit, Required: true})
	}
	if local := p.LocalConfigFile(); local != "" {
		sources = append(sources, Source{Name: "local", Path: local})
	}
	sources = append(sources, Source{Name: "user", Path: p.ConfigFile(), Persist: true})
	return sources
}

// Resolved is the effective configuration and where it came from.
type Resolved struct {
	Config AppConfig
	// Source names the winning source, or "defaults".
	Source string
	// Path is the file the configuration was read from or written to.
	Path string
	// Created is set when the defaults were written on this run.
	Created bool
	// PersistErr is set when writing the defaults failed. Resolution still
	// succeeds with the defaults.
	PersistErr error
	// Undecoded lists keys in the file that wsup does not know.
	Undecoded []string
}

// Resolve walks sources in order; the first existing file wins. Without any,
// the defaults are used and written to the first Persist source. Environment
// variables from lookup are applied last. lookup defaults to os.LookupEnv.
func Resolve(sources []Source, lookup func(string) (string, bool)) (*Resolved, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	res, err := resolveFile(sources)
	if err != nil {
		return nil, err
	}

	if err := applyEnv(&res.Config, lookup); err != nil {
		return nil, err
	}
	if err := res.Config.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

func resolveFile(sources []Source) (*Resolved, error) {
	for _, src := range sources {
		cfg, undecoded, err := Load(src.Path)
		if errors.Is(err, fs.ErrNotExist) {
			if src.Required {
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, src.Path)
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		return &Resolved{Config: cfg, Source: src.Name, Path: src.Path, Undecoded: undecoded}, nil
	}

	res := &Resolved{Config: Default(), Source: defaultsSourceName}
	for _, src := range sources {
		if !src.Persist {
			continue
		}
		res.Path = src.Path
		if err := Store(src.Path, res.Config); err != nil {
			res.PersistErr = err
		} else {
			res.Created = true
		}
		break
	}
	return res, nil
}

// Load reads a config file over the defaults, so absent keys keep their
// default values. Unknown keys are returned, not rejected.
func Load(path string) (AppConfig, []string, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil, err
		}
		return cfg, nil, fmt.Errorf("%w: %s: %v", wsup.ErrInvalidConfig, path, err)
	}

	var undecoded []string
	for _, key := range md.Undecoded() {
		undecoded = append(undecoded, key.String())
	}
	return cfg, undecoded, nil
}

// Store writes cfg to path, creating parent directories.
func Store(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return f.Close()
}

func applyEnv(cfg *AppConfig, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	for name, target := range map[string]*bool{
		EnvLogToFile:    &cfg.LogToFile,
		EnvOpenItemPage: &cfg.OpenItemPageOnComplete,
	} {
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", wsup.ErrInvalidConfig, name, v)
		}
		*target = b
	}

	if v, ok := lookup(EnvDefaultGlobs); ok && v != "" {
		cfg.DefaultGlobs = splitList(v)
	}
	return nil
}

// splitList splits a comma separated list of globs, dropping empty items.
// Commas inside {a,b} alternations or after a backslash belong to the glob.
func splitList(v string) []string {
	var out []string
	add := func(item string) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	depth, start := 0, 0
	for i := 0; i < len(v); i++ {
		switch v[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				add(v[start:i])
				start = i + 1
			}
		}
	}
	add(v[start:])
	return out
}
