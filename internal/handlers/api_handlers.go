package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hulukipedia/gateway/internal/database"
	"github.com/hulukipedia/gateway/internal/errors"
	"github.com/hulukipedia/gateway/internal/logger"
	"github.com/hulukipedia/gateway/internal/registry"
	"github.com/hulukipedia/gateway/internal/selector"
	"github.com/hulukipedia/gateway/internal/transformers"
	"github.com/hulukipedia/gateway/internal/types"
	"github.com/hulukipedia/gateway/internal/validator"
	"github.com/hulukipedia/gateway/internal/vendors"
)

// DefaultImageSize is used when an image request does not name a size.
const DefaultImageSize = "1024x1024"

// Client-facing messages
const (
	msgNoAlias           = "No model alias was provided or configured for this agent."
	msgImageUnsupported  = "The configured router does not support image generation. Verify model capabilities."
	msgEmptyResponse     = "The model returned an empty response."
	msgNoContent         = "The model response did not include text content."
	msgNoImageData       = "Image generation returned no data."
	msgMissingImageData  = "Image data missing from provider response."
	msgUnparseablePrefix = "Unable to parse model response: "
)

// AliasResolver picks the alias a request is dispatched to.
type AliasResolver interface {
	selector.Selector
	ImageDefault() string
}

// UsageSink receives one record per completed generate or image call.
type UsageSink interface {
	Record(ctx context.Context, record database.UsageRecord)
}

// APIHandlers contains the dependencies needed for API handlers
type APIHandlers struct {
	Registry *registry.Registry
	Resolver AliasResolver
	Upstream vendors.Upstream
	Usage    UsageSink
}

// NewAPIHandlers creates a new APIHandlers instance
func NewAPIHandlers(reg *registry.Registry, resolver AliasResolver, upstream vendors.Upstream, usage UsageSink) *APIHandlers {
	return &APIHandlers{
		Registry: reg,
		Resolver: resolver,
		Upstream: upstream,
		Usage:    usage,
	}
}

// HealthHandler handles the health check endpoint
// @Summary      Health check endpoint
// @Description  Always reports ok while the process is serving
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Router       /v1/health [get]
func (h *APIHandlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, types.HealthResponse{Status: "ok"})
}

// ProvidersHandler lists every configured alias
// @Summary      List configured providers
// @Description  Returns every configured model alias in configuration file order
// @Tags         providers
// @Produce      json
// @Success      200  {array}   registry.ProviderInfo
// @Router       /v1/providers [get]
func (h *APIHandlers) ProvidersHandler(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithComponent(r.Context(), logger.ComponentNames.Handler)
	providers := h.Registry.List()
	logger.Debug(ctx, "Providers listed", "count", len(providers))
	writeJSON(ctx, w, http.StatusOK, providers)
}

// GenerateHandler handles text generation
// @Summary      Generate text
// @Description  Resolves an alias from model, provider or agent and returns the first completion
// @Tags         generate
// @Accept       json
// @Produce      json
// @Param        request  body      types.GenerateRequest   true  "Generation request"
// @Success      200      {object}  types.GenerateResponse
// @Failure      400      {object}  errors.ErrorResponse  "Invalid body or no resolvable alias"
// @Failure      500      {object}  errors.ErrorResponse  "Upstream call or normalization failed"
// @Failure      502      {object}  errors.ErrorResponse  "Upstream returned no usable content"
// @Router       /v1/generate [post]
func (h *APIHandlers) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := logger.WithComponent(r.Context(), logger.ComponentNames.Handler)

	var req types.GenerateRequest
	if err := validator.DecodeRequest(r.Body, &req); err != nil {
		errors.HandleErrorCtx(logger.WithStage(ctx, logger.LogStages.Validation), w, err, http.StatusBadRequest)
		return
	}

	alias, err := h.Resolver.Resolve(req.Agent, req.Provider, req.Model)
	if err != nil {
		errors.HandleErrorCtx(logger.WithStage(ctx, logger.LogStages.Resolution), w,
			errors.NewValidationError(msgNoAlias), http.StatusBadRequest)
		return
	}
	logger.Debug(logger.WithStage(ctx, logger.LogStages.Resolution), "Alias resolved",
		"agent", req.Agent,
		"provider", req.Provider,
		"model", req.Model,
		"alias", alias)

	call := usageCall{alias: alias, operation: vendors.OperationCompletion, start: start}
	messages := []vendors.Message{{Role: "user", Content: req.PromptText()}}

	result, err := h.Upstream.Completion(ctx, alias, messages, req.Options)
	if err != nil {
		h.fail(ctx, w, call, errors.NewInternalError(err.Error()), http.StatusInternalServerError)
		return
	}

	payload, err := transformers.Normalize(result)
	if err != nil {
		h.fail(logger.WithStage(ctx, logger.LogStages.Normalization), w, call,
			unparseableError(err), http.StatusInternalServerError)
		return
	}

	content, err := transformers.ExtractText(payload)
	if err != nil {
		h.fail(logger.WithStage(ctx, logger.LogStages.Extraction), w, call,
			contractError(err), http.StatusBadGateway)
		return
	}

	usage := transformers.Usage(payload)
	provider, model := h.describe(alias)
	writeJSON(ctx, w, http.StatusOK, types.GenerateResponse{
		Alias:    alias,
		Provider: provider,
		Model:    model,
		Content:  content,
		Usage:    usage,
	})
	h.record(ctx, call, http.StatusOK, usage, nil)
}

// ImagesHandler handles image generation
// @Summary      Generate an image
// @Description  Resolves an alias (the "images" default when no model is given) and returns base64 image data
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        request  body      types.ImageRequest   true  "Image request"
// @Success      200      {object}  types.ImageResponse
// @Failure      400      {object}  errors.ErrorResponse  "Invalid body, no resolvable alias or unsupported capability"
// @Failure      500      {object}  errors.ErrorResponse  "Upstream call or normalization failed"
// @Failure      502      {object}  errors.ErrorResponse  "Upstream returned no image data"
// @Router       /v1/images [post]
func (h *APIHandlers) ImagesHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := logger.WithComponent(r.Context(), logger.ComponentNames.Handler)

	var req types.ImageRequest
	if err := validator.DecodeRequest(r.Body, &req); err != nil {
		errors.HandleErrorCtx(logger.WithStage(ctx, logger.LogStages.Validation), w, err, http.StatusBadRequest)
		return
	}

	model := req.Model
	if model == "" {
		model = h.Resolver.ImageDefault()
	}
	alias, err := h.Resolver.Resolve(req.Agent, req.Provider, model)
	if err != nil {
		errors.HandleErrorCtx(logger.WithStage(ctx, logger.LogStages.Resolution), w,
			errors.NewValidationError(msgNoAlias), http.StatusBadRequest)
		return
	}

	size := req.Size
	if size == "" {
		size = DefaultImageSize
	}

	call := usageCall{alias: alias, operation: vendors.OperationImage, start: start}

	result, err := h.Upstream.ImageGeneration(ctx, alias, req.PromptText(), size, req.Options)
	if err != nil {
		if stderrors.Is(err, vendors.ErrCapabilityUnsupported) {
			h.fail(ctx, w, call, errors.NewCapabilityError(msgImageUnsupported), http.StatusBadRequest)
			return
		}
		h.fail(ctx, w, call, errors.NewInternalError(err.Error()), http.StatusInternalServerError)
		return
	}

	payload, err := transformers.Normalize(result)
	if err != nil {
		h.fail(logger.WithStage(ctx, logger.LogStages.Normalization), w, call,
			unparseableError(err), http.StatusInternalServerError)
		return
	}

	imageB64, err := transformers.ExtractImage(payload)
	if err != nil {
		h.fail(logger.WithStage(ctx, logger.LogStages.Extraction), w, call,
			contractError(err), http.StatusBadGateway)
		return
	}

	usage := transformers.Usage(payload)
	provider, modelName := h.describe(alias)
	writeJSON(ctx, w, http.StatusOK, types.ImageResponse{
		Alias:    alias,
		Provider: provider,
		Model:    modelName,
		ImageB64: imageB64,
		Usage:    usage,
	})
	h.record(ctx, call, http.StatusOK, usage, nil)
}

// describe returns the registry's provider and model for alias, nil when unknown.
func (h *APIHandlers) describe(alias string) (*string, *string) {
	info, ok := h.Registry.Lookup(alias)
	if !ok {
		return nil, nil
	}
	provider := info.Provider
	return &provider, info.Model
}

type usageCall struct {
	alias     string
	operation string
	start     time.Time
}

func (h *APIHandlers) fail(ctx context.Context, w http.ResponseWriter, call usageCall, apiErr *errors.APIError, statusCode int) {
	errors.HandleErrorCtx(ctx, w, apiErr, statusCode)
	h.record(ctx, call, statusCode, nil, apiErr)
}

func (h *APIHandlers) record(ctx context.Context, call usageCall, statusCode int, usage map[string]interface{}, err error) {
	if h.Usage == nil {
		return
	}

	record := database.UsageRecord{
		RequestID:  logger.RequestIDFromContext(ctx),
		Alias:      call.alias,
		Operation:  call.operation,
		Status:     database.StatusSuccess,
		StatusCode: statusCode,
		DurationMs: time.Since(call.start).Milliseconds(),
		Usage:      usage,
	}
	if provider, model := h.describe(call.alias); provider != nil {
		record.Provider = *provider
		if model != nil {
			record.Model = *model
		}
	}
	if err != nil {
		record.Status = database.StatusError
		record.Error = err.Error()
	}
	h.Usage.Record(ctx, record)
}

// unparseableError reports a normalization failure with the cause once.
func unparseableError(err error) *errors.APIError {
	cause := strings.TrimPrefix(err.Error(), transformers.ErrUnparseableResponse.Error()+": ")
	return errors.NewInternalError(msgUnparseablePrefix + cause)
}

// contractError maps an extraction failure onto its client message.
func contractError(err error) *errors.APIError {
	switch {
	case stderrors.Is(err, transformers.ErrEmptyResponse):
		return errors.NewUpstreamError(msgEmptyResponse)
	case stderrors.Is(err, transformers.ErrNoContent):
		return errors.NewUpstreamError(msgNoContent)
	case stderrors.Is(err, transformers.ErrNoImageData):
		return errors.NewUpstreamError(msgNoImageData)
	case stderrors.Is(err, transformers.ErrMissingImageData):
		return errors.NewUpstreamError(msgMissingImageData)
	default:
		return errors.NewUpstreamError(fmt.Sprintf("Invalid model response: %v", err))
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		errors.HandleErrorCtx(ctx, w, errors.NewInternalError("Failed to encode response"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(data); err != nil {
		logger.Error(logger.WithStage(ctx, logger.LogStages.ResponseSent), "Failed to write response", err,
			"response_size", len(data))
	}
}
