package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Properties is a read-only source of named string settings
type Properties interface {
	Get(key string) (string, bool)
}

type envProperties struct {
	lookup func(string) (string, bool)
}

// envAliases maps property names to the environment variables that have always carried them
var envAliases = map[string]string{
	PropForceMem: "GBM_FORCE_MEM",
	PropDebug:    "GBM_DEBUG",
}

// EnvName returns the environment variable a property is read from: its alias if it has one,
// otherwise the property name upper-cased with dots replaced by underscores
func EnvName(key string) string {
	if alias, ok := envAliases[key]; ok {
		return alias
	}
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Env reads properties from the process environment
func Env() Properties {
	return envProperties{lookup: os.LookupEnv}
}

func (p envProperties) Get(key string) (string, bool) {
	return p.lookup(EnvName(key))
}

// Map is a fixed set of properties, as read from a property file
type Map map[string]string

func (m Map) Get(key string) (string, bool) {
	value, ok := m[key]
	return value, ok
}

// LoadFile reads a flat key/value property file. The format is chosen by extension.
// Supports: .yaml/.yml, .toml
func LoadFile(path string) (Map, error) {
	if path == "" {
		return nil, errors.New("empty property file path")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read property file %s", path)
	}

	raw := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &raw)
	case ".toml":
		err = toml.Unmarshal(b, &raw)
	default:
		return nil, errors.Newf("unsupported property file extension: %s", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse property file %s", path)
	}

	props := Map{}
	flatten("", raw, props)
	return props, nil
}

// flatten turns nested tables into dotted keys, so that a toml [sys.icr.gralloc] table and a
// quoted "sys.icr.gralloc.force_mem" key mean the same thing
func flatten(prefix string, raw map[string]any, out Map) {
	for key, value := range raw {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		switch typed := value.(type) {
		case map[string]any:
			flatten(name, typed, out)
		case string:
			out[name] = typed
		default:
			out[name] = stringify(typed)
		}
	}
}

func stringify(value any) string {
	switch typed := value.(type) {
	case bool:
		if typed {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		out, err := yaml.Marshal(typed)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(out))
	}
}

type layered []Properties

// Layered returns the value of the first source that defines a property
func Layered(sources ...Properties) Properties {
	return layered(sources)
}

func (l layered) Get(key string) (string, bool) {
	for _, source := range l {
		if source == nil {
			continue
		}
		if value, ok := source.Get(key); ok {
			return value, true
		}
	}
	return "", false
}
