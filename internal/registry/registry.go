// Package registry holds the immutable alias -> provider metadata snapshot
// built from the routing document at startup.
package registry

import (
	"context"

	"github.com/hulukipedia/gateway/internal/config"
	"github.com/hulukipedia/gateway/internal/logger"
)

// UnknownProvider is reported when neither metadata nor params name a provider.
const UnknownProvider = "unknown"

// ProviderInfo describes one configured alias.
type ProviderInfo struct {
	Alias        string   `json:"alias" example:"gpt-demo"`
	DisplayName  string   `json:"display_name" example:"GPT Demo"`
	Provider     string   `json:"provider" example:"openai"`
	Model        *string  `json:"model" example:"openai/gpt-4o-mini"`
	Description  *string  `json:"description" example:"Fast general purpose model"`
	Capabilities []string `json:"capabilities"`
}

// Registry is an ordered alias -> ProviderInfo map. It is never mutated after
// Build returns, so concurrent reads need no locking.
type Registry struct {
	order   []string
	entries map[string]ProviderInfo
}

// Build derives the registry from the routing document's model list.
// Entries without a model_name are skipped.
func Build(ctx context.Context, entries []config.ModelEntry) *Registry {
	ctx = logger.WithComponent(ctx, logger.ComponentNames.Registry)
	r := &Registry{entries: make(map[string]ProviderInfo, len(entries))}

	for i, entry := range entries {
		alias := entry.ModelName
		if alias == "" {
			logger.Debug(ctx, "Skipping model entry without model_name", "index", i)
			continue
		}
		if _, exists := r.entries[alias]; !exists {
			r.order = append(r.order, alias)
		}
		r.entries[alias] = newProviderInfo(alias, entry)
	}

	logger.Info(ctx, "Provider registry built",
		"configured_entries", len(entries),
		"aliases", len(r.order),
	)
	return r
}

func newProviderInfo(alias string, entry config.ModelEntry) ProviderInfo {
	info := ProviderInfo{
		Alias:        alias,
		DisplayName:  alias,
		Provider:     UnknownProvider,
		Capabilities: []string{},
	}

	if name := config.String(entry.Metadata, "display_name"); name != "" {
		info.DisplayName = name
	}

	if provider := config.String(entry.Metadata, "provider"); provider != "" {
		info.Provider = provider
	} else if provider := config.String(entry.LiteLLMParams, "provider"); provider != "" {
		info.Provider = provider
	}

	if model := config.String(entry.LiteLLMParams, "model"); model != "" {
		info.Model = &model
	}
	if description := config.String(entry.Metadata, "description"); description != "" {
		info.Description = &description
	}
	if capabilities := config.StringSlice(entry.Metadata, "capabilities"); capabilities != nil {
		info.Capabilities = capabilities
	}

	return info
}

// Lookup returns the provider info for alias.
func (r *Registry) Lookup(alias string) (ProviderInfo, bool) {
	info, ok := r.entries[alias]
	return info, ok
}

// List returns every alias in configuration-file order.
func (r *Registry) List() []ProviderInfo {
	out := make([]ProviderInfo, 0, len(r.order))
	for _, alias := range r.order {
		out = append(out, r.entries[alias])
	}
	return out
}

// Len returns the number of aliases.
func (r *Registry) Len() int {
	return len(r.order)
}
