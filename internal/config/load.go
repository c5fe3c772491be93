package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "CELLGRID_"

// Load resolves defaults, the TOML file at path and environment overrides,
// then validates the result. An empty path or a missing file skips the file layer.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := decode(cfg, path, data); err != nil {
				return nil, err
			}
		}
	}
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes data over the defaults and validates it. The environment is not consulted.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := decode(cfg, "<input>", data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays data onto cfg. Unknown keys are errors so typos do not pass silently.
func decode(cfg *Config, source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		pe := &ParseError{Path: source, Err: err}
		var derr *toml.DecodeError
		var serr *toml.StrictMissingError
		switch {
		case errors.As(err, &derr):
			pe.Line, pe.Column = derr.Position()
		case errors.As(err, &serr) && len(serr.Errors) > 0:
			pe.Line, pe.Column = serr.Errors[0].Position()
		}
		return pe
	}
	return nil
}

type envSetter func(c *Config, value string) error

var envSettings = map[string]envSetter{
	"VIEWPORT":         func(c *Config, v string) error { c.Renderer.Viewport = v; return nil },
	"CLEAR_ON_REPAINT": func(c *Config, v string) error { return parseBool(v, &c.Renderer.ClearOnRepaint) },
	"CURSOR_STYLE":     func(c *Config, v string) error { c.Renderer.CursorStyle = v; return nil },
	"CACHE_SIZE":       func(c *Config, v string) error { return parseInt(v, &c.Renderer.CacheSize) },
	"LOG_LEVEL":        func(c *Config, v string) error { c.Log.Level = v; return nil },
	"LOG_FILE":         func(c *Config, v string) error { c.Log.File = v; return nil },
	"BACKEND":          func(c *Config, v string) error { c.Demo.Backend = v; return nil },
	"DIRECTION":        func(c *Config, v string) error { c.Demo.Direction = v; return nil },
	"FLEX":             func(c *Config, v string) error { c.Demo.Flex = v; return nil },
	"SPACING":          func(c *Config, v string) error { return parseU16(v, &c.Demo.Spacing) },
	"FRAMES":           func(c *Config, v string) error { return parseInt(v, &c.Demo.Frames) },
	// Constraints are separated by semicolons since Ratio may contain a comma.
	"CONSTRAINTS": func(c *Config, v string) error {
		c.Demo.Constraints = nil
		for _, s := range strings.Split(v, ";") {
			if s = strings.TrimSpace(s); s != "" {
				c.Demo.Constraints = append(c.Demo.Constraints, s)
			}
		}
		return nil
	},
}

// EnvVars returns the names of every supported environment override, sorted.
func EnvVars() []string {
	names := make([]string, 0, len(envSettings))
	for k := range envSettings {
		names = append(names, EnvPrefix+k)
	}
	slices.Sort(names)
	return names
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error
	for _, name := range EnvVars() {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := envSettings[strings.TrimPrefix(name, EnvPrefix)](cfg, v); err != nil {
			errs = append(errs, &ValidationError{Setting: name, Value: v, Err: err})
		}
	}
	return errors.Join(errs...)
}

func parseBool(s string, dst *bool) error {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func parseInt(s string, dst *int) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func parseU16(s string, dst *uint16) error {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return err
	}
	*dst = uint16(n)
	return nil
}
