package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the routing document: the upstream model list plus the
// agent-to-alias defaults. Entries keep their metadata and params as raw
// maps; only the fields the gateway reads are interpreted.
type Document struct {
	ModelList []ModelEntry      `yaml:"model_list"`
	Defaults  map[string]string `yaml:"hulukipedia_defaults"`
}

// ModelEntry is one element of model_list.
type ModelEntry struct {
	ModelName     string                 `yaml:"model_name"`
	Metadata      map[string]interface{} `yaml:"metadata"`
	LiteLLMParams map[string]interface{} `yaml:"litellm_params"`
}

// LoadDocument reads and parses the routing document at path. An empty
// path means DefaultConfigPath. A missing or unparsable file is an error
// the caller must treat as fatal.
func LoadDocument(path string) (*Document, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found at %s: set HULUKIPEDIA_LITELLM_CONFIG or create %s", path, DefaultConfigPath)
		}
		return nil, fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	return ParseDocument(data)
}

// ParseDocument parses a routing document from YAML bytes.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	doc.Defaults = normalizeDefaults(doc.Defaults)
	return &doc, nil
}

// normalizeDefaults lowercases agent labels so lookups are case-insensitive.
// When several labels fold to the same key, a label already in lowercase
// wins; otherwise the first label in sorted order does.
func normalizeDefaults(in map[string]string) map[string]string {
	agents := make([]string, 0, len(in))
	for agent := range in {
		agents = append(agents, agent)
	}
	sort.Strings(agents)

	out := make(map[string]string, len(in))
	exact := make(map[string]bool, len(in))
	for _, agent := range agents {
		key := strings.ToLower(strings.TrimSpace(agent))
		isExact := key == agent
		if _, seen := out[key]; seen && (exact[key] || !isExact) {
			continue
		}
		out[key] = in[agent]
		exact[key] = isExact
	}
	return out
}

// String reads a string field from a raw map, returning "" when absent or
// not a scalar.
func String(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return v
	case nil:
		return ""
	case int, int64, float64, bool:
		return fmt.Sprintf("%v", v)
	default:
		return ""
	}
}

// StringSlice reads a list of strings from a raw map. Non-string items are
// skipped.
func StringSlice(m map[string]interface{}, key string) []string {
	if m == nil {
		return nil
	}
	switch v := m[key].(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return append([]string(nil), v...)
	default:
		return nil
	}
}
