package loader

import (
	"os"
	"strings"
)

// DefaultEnvPrefix is the prefix of variables read by EnvLoader.
const DefaultEnvPrefix = "MULTIPICK_"

// EnvLoader loads configuration from environment variables.
// Values are kept as strings; typed conversion happens when the map is
// applied to a config struct.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "MULTIPICK_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "MULTIPICK_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
		environ: os.Environ,
	}
}

// defaultEnvMapping returns shorthand variables that do not follow the
// PREFIX_SECTION_KEY layout.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"MULTIPICK_ENDPOINT":  "source.endpoint",
		"MULTIPICK_LOG_LEVEL": "logging.level",
		"MULTIPICK_LOG_FILE":  "logging.file",
		"MULTIPICK_LIMIT":     "select.limit",
	}
}

// Load reads environment variables and returns a configuration map.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	mapped := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		if path, ok := l.mapping[name]; ok {
			setByPath(mapped, path, value)
			continue
		}

		path := l.envToPath(name)
		if path == "" {
			continue
		}
		setByPath(config, path, value)
	}

	// Explicit mappings win over generic ones for the same path.
	return DeepMerge(config, mapped), nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// envToPath converts MULTIPICK_SOURCE_CACHE_TTL to source.cache_ttl.
// Variables without a key part map to no path.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return strings.ToLower(section) + "." + strings.ToLower(key)
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}
