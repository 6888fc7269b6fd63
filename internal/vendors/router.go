package vendors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hulukipedia/gateway/internal/config"
	"github.com/hulukipedia/gateway/internal/logger"
	"github.com/hulukipedia/gateway/internal/monitoring"
)

// Upstream call outcomes recorded in metrics.
const (
	OutcomeSuccess     = "success"
	OutcomeError       = "error"
	OutcomeUnsupported = "unsupported"
)

type route struct {
	alias    string
	vendor   string
	model    string
	backend  Backend
	defaults map[string]interface{}
	err      error
}

// Router dispatches calls by alias to the backend built for it. Routes are
// fixed at construction.
type Router struct {
	routes map[string]route
}

// NewRouter builds a backend for every named entry. Entries whose backend
// cannot be built stay routable but fail each call with ErrBackendUnavailable.
func NewRouter(ctx context.Context, factory *Factory, entries []config.ModelEntry) *Router {
	ctx = logger.WithComponent(ctx, logger.ComponentNames.Vendors)
	r := &Router{routes: make(map[string]route, len(entries))}

	for _, entry := range entries {
		alias := entry.ModelName
		if alias == "" {
			continue
		}

		cfg, err := ParseBackendConfig(ctx, alias, entry.LiteLLMParams)
		var backend Backend
		if err == nil {
			backend, err = factory.CreateBackend(ctx, cfg)
		}
		if err != nil {
			logger.Warn(ctx, "Model alias has no usable backend",
				"alias", alias,
				"error", err,
			)
			r.routes[alias] = route{alias: alias, vendor: cfg.Vendor, model: cfg.Model, err: err}
			continue
		}

		r.routes[alias] = route{
			alias:    alias,
			vendor:   cfg.Vendor,
			model:    cfg.Model,
			backend:  backend,
			defaults: cfg.Defaults,
		}
		logger.Debug(ctx, "Backend configured",
			"alias", alias,
			"vendor", cfg.Vendor,
			"model", cfg.Model,
			"timeout", cfg.Timeout.String(),
		)
	}

	logger.Info(ctx, "Model router initialized", "routes", len(r.routes))
	return r
}

// Len returns the number of routed aliases.
func (r *Router) Len() int {
	return len(r.routes)
}

// Completion sends messages to the backend behind alias.
func (r *Router) Completion(ctx context.Context, alias string, messages []Message, options map[string]interface{}) (interface{}, error) {
	rt, err := r.lookup(alias)
	if err != nil {
		return nil, err
	}
	return r.dispatch(ctx, rt, OperationCompletion, func(ctx context.Context, opts map[string]interface{}) (interface{}, error) {
		return rt.backend.Completion(ctx, messages, opts)
	}, options)
}

// ImageGeneration asks the backend behind alias for one image.
func (r *Router) ImageGeneration(ctx context.Context, alias, prompt, size string, options map[string]interface{}) (interface{}, error) {
	rt, err := r.lookup(alias)
	if err != nil {
		return nil, err
	}
	return r.dispatch(ctx, rt, OperationImage, func(ctx context.Context, opts map[string]interface{}) (interface{}, error) {
		return rt.backend.ImageGeneration(ctx, prompt, size, opts)
	}, options)
}

func (r *Router) lookup(alias string) (route, error) {
	rt, ok := r.routes[alias]
	if !ok {
		return route{}, fmt.Errorf("%w: %s", ErrUnknownAlias, alias)
	}
	if rt.err != nil {
		return route{}, fmt.Errorf("%w: %s: %v", ErrBackendUnavailable, alias, rt.err)
	}
	return rt, nil
}

func (r *Router) dispatch(
	ctx context.Context,
	rt route,
	operation string,
	call func(context.Context, map[string]interface{}) (interface{}, error),
	options map[string]interface{},
) (interface{}, error) {
	ctx = logger.WithComponent(ctx, logger.ComponentNames.Vendors)
	logger.Debug(logger.WithStage(ctx, logger.LogStages.VendorRequest), "Dispatching upstream call",
		"alias", rt.alias,
		"vendor", rt.vendor,
		"operation", operation,
	)

	start := time.Now()
	result, err := call(ctx, mergeOptions(rt.defaults, options))
	duration := time.Since(start)

	outcome := OutcomeSuccess
	switch {
	case errors.Is(err, ErrCapabilityUnsupported):
		outcome = OutcomeUnsupported
	case err != nil:
		outcome = OutcomeError
	}
	monitoring.RecordUpstream(rt.alias, rt.vendor, operation, outcome, duration)

	stageCtx := logger.WithStage(ctx, logger.LogStages.VendorResponse)
	if err != nil {
		logger.Warn(stageCtx, "Upstream call failed",
			"alias", rt.alias,
			"vendor", rt.vendor,
			"operation", operation,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return nil, err
	}
	logger.Debug(stageCtx, "Upstream call completed",
		"alias", rt.alias,
		"vendor", rt.vendor,
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
	)
	return result, nil
}

var _ Upstream = (*Router)(nil)
