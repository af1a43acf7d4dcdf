// Package config loads CLI defaults from a .posprintf.toml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/bjaus/posprintf"
	"github.com/bjaus/posprintf/internal/charset"
	"github.com/bjaus/posprintf/internal/report"
)

// FileName is the config file searched for by [Find].
const FileName = ".posprintf.toml"

// ErrInvalid reports a config value outside its allowed set.
var ErrInvalid = errors.New("invalid config")

// Config holds CLI defaults. Zero values mean "use the built-in default".
type Config struct {
	Divider      string `toml:"divider"`
	ShortDivider string `toml:"short_divider"`
	LongDivider  string `toml:"long_divider"`
	Capacity     int    `toml:"capacity"`
	Output       string `toml:"output"`
	Charset      string `toml:"charset"`
	Jobs         int    `toml:"jobs"`
	Color        string `toml:"color"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Divider:  "native",
		Capacity: 256,
		Output:   string(report.Plain),
		Charset:  "ascii",
		Jobs:     4,
		Color:    "auto",
	}
}

// Find walks up from startDir looking for [FileName].
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: %s: unknown key %q", ErrInvalid, path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads the explicit path when given, otherwise the nearest
// [FileName] above startDir, otherwise the defaults. It returns the path
// used, empty when none.
func Resolve(explicit, startDir string) (Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate checks every field against its allowed values.
func (c Config) Validate() error {
	dividers := []struct{ key, name string }{
		{"divider", c.Divider},
		{"short_divider", c.ShortDivider},
		{"long_divider", c.LongDivider},
	}
	for _, d := range dividers {
		if d.name == "" {
			continue
		}
		if _, err := posprintf.DividerByName(d.name); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, d.key, err)
		}
	}
	if c.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative, got %d", ErrInvalid, c.Capacity)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalid, c.Jobs)
	}
	if c.Output != "" {
		if _, err := report.ParseFormat(c.Output); err != nil {
			return fmt.Errorf("%w: output: %w", ErrInvalid, err)
		}
	}
	if c.Charset != "" {
		if _, err := charset.Lookup(c.Charset); err != nil {
			return fmt.Errorf("%w: charset: %w", ErrInvalid, err)
		}
	}
	if c.Color != "" && !slices.Contains([]string{"auto", "on", "off"}, c.Color) {
		return fmt.Errorf("%w: color must be auto, on or off, got %q", ErrInvalid, c.Color)
	}
	return nil
}

// PrinterOptions converts the divider settings to [posprintf.Option]s. The
// per-path settings override Divider.
func (c Config) PrinterOptions() ([]posprintf.Option, error) {
	var opts []posprintf.Option
	if c.Divider != "" {
		d, err := posprintf.DividerByName(c.Divider)
		if err != nil {
			return nil, err
		}
		opts = append(opts, posprintf.WithDivider(d))
	}
	if c.ShortDivider != "" {
		d, err := posprintf.DividerByName(c.ShortDivider)
		if err != nil {
			return nil, err
		}
		opts = append(opts, posprintf.WithShortDivider(d))
	}
	if c.LongDivider != "" {
		d, err := posprintf.DividerByName(c.LongDivider)
		if err != nil {
			return nil, err
		}
		opts = append(opts, posprintf.WithLongDivider(d))
	}
	return opts, nil
}
