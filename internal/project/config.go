package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the project file looked up from the checked path upwards.
const ManifestName = "cymbol.toml"

// Config mirrors cymbol.toml.
type Config struct {
	Check  CheckConfig  `toml:"check"`
	Output OutputConfig `toml:"output"`
}

type CheckConfig struct {
	MaxDiagnostics int  `toml:"max_diagnostics"`
	WarnShadowing  bool `toml:"warn_shadowing"`
	Jobs           int  `toml:"jobs"`
	Cache          bool `toml:"cache"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// Manifest is a loaded cymbol.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Defaults returns the configuration used when no manifest is found.
func Defaults() Config {
	return Config{
		Check:  CheckConfig{MaxDiagnostics: 100},
		Output: OutputConfig{Format: "pretty", Color: "auto"},
	}
}

// FindManifest walks up from startDir to locate cymbol.toml.
// startDir may also name a file, in which case its directory is used.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if st, statErr := os.Stat(dir); statErr == nil && !st.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest finds and loads the manifest for startDir. A missing
// manifest is not an error: ok is false and the defaults are returned.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return &Manifest{Config: Defaults()}, false, nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig decodes path on top of Defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid value at once.
func (c Config) Validate() error {
	var errs []error
	if c.Check.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("[check].max_diagnostics must be >= 0, got %d", c.Check.MaxDiagnostics))
	}
	if c.Check.Jobs < 0 {
		errs = append(errs, fmt.Errorf("[check].jobs must be >= 0, got %d", c.Check.Jobs))
	}
	switch c.Output.Format {
	case "pretty", "short", "json", "sarif":
	default:
		errs = append(errs, fmt.Errorf("[output].format must be pretty|short|json|sarif, got %q", c.Output.Format))
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		errs = append(errs, fmt.Errorf("[output].color must be auto|on|off, got %q", c.Output.Color))
	}
	return errors.Join(errs...)
}
