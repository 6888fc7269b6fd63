package selector

import (
	"errors"
	"strings"
)

// ImagesAgent is the defaults key consulted for image requests without an
// explicit model.
const ImagesAgent = "images"

// ErrNoAliasResolvable is returned when neither model, provider nor a mapped
// agent yields an alias.
var ErrNoAliasResolvable = errors.New("no model alias was provided or configured for this agent")

// Selector picks the alias a request is routed to.
type Selector interface {
	Resolve(agent, provider, model string) (string, error)
}

// Resolver resolves aliases with a fixed precedence:
// explicit model, then provider alias, then the agent's configured default.
// The agent map is copied at construction and never mutated.
type Resolver struct {
	defaults map[string]string
}

// NewResolver creates a Resolver over the agent -> alias defaults.
func NewResolver(defaults map[string]string) *Resolver {
	copied := make(map[string]string, len(defaults))
	for agent, alias := range defaults {
		copied[strings.ToLower(agent)] = alias
	}
	return &Resolver{defaults: copied}
}

// Resolve returns the alias to dispatch to. It does not check that the
// alias exists; unknown aliases are rejected by the upstream router.
func (r *Resolver) Resolve(agent, provider, model string) (string, error) {
	if model != "" {
		return model, nil
	}
	if provider != "" {
		return provider, nil
	}
	if agent != "" {
		if alias := r.defaults[strings.ToLower(agent)]; alias != "" {
			return alias, nil
		}
	}
	return "", ErrNoAliasResolvable
}

// ImageDefault returns the alias configured for image generation, if any.
func (r *Resolver) ImageDefault() string {
	return r.defaults[ImagesAgent]
}

var _ Selector = (*Resolver)(nil)
