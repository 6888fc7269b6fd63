package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/hulukipedia/gateway/internal/logger"
	"github.com/hulukipedia/gateway/internal/utils"
)

// Header constants
const (
	RequestIDHeader     = utils.HeaderRequestID
	CorrelationIDHeader = utils.HeaderCorrelationID
)

// maxLoggedBody bounds how much of a response body is kept for logging.
const maxLoggedBody = 10240

// quietPaths are only logged when they fail.
var quietPaths = map[string]bool{
	"/v1/health": true,
	"/metrics":   true,
}

// TrackingIDSources contains information about where tracking IDs came from
type TrackingIDSources struct {
	RequestIDSource     string `json:"request_id_source"`
	CorrelationIDSource string `json:"correlation_id_source"`
}

// RequestCorrelationMiddleware assigns request and correlation IDs, echoes
// them as response headers and logs each request and its outcome.
func RequestCorrelationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, correlationID, sources := extractTrackingIDs(r)

		w.Header().Set(RequestIDHeader, requestID)
		w.Header().Set(CorrelationIDHeader, correlationID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		ctx = logger.WithCorrelationID(ctx, correlationID)
		logCtx := logger.WithComponent(ctx, logger.ComponentNames.Middleware)

		logger.Debug(logger.WithStage(logCtx, logger.LogStages.TrackingSetup),
			"Generated tracking IDs",
			"request_id_source", sources.RequestIDSource,
			"correlation_id_source", sources.CorrelationIDSource,
		)

		quiet := quietPaths[r.URL.Path]
		if !quiet {
			logStructuredRequest(logCtx, r)
		}

		start := time.Now()
		wrapper := &responseWriterWrapper{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			body:           &bytes.Buffer{},
		}
		next.ServeHTTP(wrapper, r.WithContext(ctx))

		if !quiet || wrapper.statusCode >= http.StatusBadRequest {
			logStructuredResponse(logCtx, wrapper, time.Since(start))
		}
	})
}

// extractTrackingIDs prefers client supplied IDs, then the CloudFlare ray,
// then a generated UUID. The correlation ID falls back to the request ID.
func extractTrackingIDs(r *http.Request) (requestID, correlationID string, sources TrackingIDSources) {
	if clientRequestID := r.Header.Get(utils.HeaderRequestID); clientRequestID != "" {
		requestID = clientRequestID
		sources.RequestIDSource = "client-x-request-id"
	} else if cfRay := r.Header.Get(utils.HeaderCloudFlareRay); cfRay != "" {
		requestID = cfRay
		sources.RequestIDSource = "cloudflare-ray"
	} else {
		requestID = utils.GenerateRequestID()
		sources.RequestIDSource = "generated-uuid"
	}

	if clientCorrelationID := r.Header.Get(utils.HeaderCorrelationID); clientCorrelationID != "" {
		correlationID = clientCorrelationID
		sources.CorrelationIDSource = "client-x-correlation-id"
	} else {
		correlationID = requestID
		sources.CorrelationIDSource = "request-id-fallback"
	}

	return requestID, correlationID, sources
}

func logStructuredRequest(ctx context.Context, r *http.Request) {
	requestData := map[string]interface{}{
		"method":         r.Method,
		"endpoint":       r.URL.Path,
		"user_agent":     r.Header.Get(utils.HeaderUserAgent),
		"client_ip":      getClientIP(r),
		"headers":        utils.SanitizeHeaders(r.Header),
		"content_length": r.ContentLength,
	}

	logger.Info(logger.WithStage(ctx, logger.LogStages.RequestReceived),
		"Incoming request",
		"request", requestData,
	)
}

func logStructuredResponse(ctx context.Context, w *responseWriterWrapper, duration time.Duration) {
	responseData := map[string]interface{}{
		"status_code":    w.statusCode,
		"duration_ms":    duration.Milliseconds(),
		"content_length": w.written,
	}

	if w.body.Len() > 0 && !w.truncated {
		var bodyData interface{}
		if err := json.Unmarshal(w.body.Bytes(), &bodyData); err == nil {
			responseData["body"] = utils.TruncateLongStrings(bodyData)
		}
	}

	stage := logger.LogStages.RequestCompleted
	if w.statusCode >= http.StatusBadRequest {
		stage = logger.LogStages.RequestFailed
	}

	logger.Info(logger.WithStage(ctx, stage),
		"Request completed",
		"response", responseData,
	)
}

// getClientIP extracts client IP with priority cascade
func getClientIP(r *http.Request) string {
	// Priority: X-Forwarded-For > X-Real-IP > CF-Connecting-IP > RemoteAddr
	if forwardedFor := r.Header.Get(utils.HeaderXForwardedFor); forwardedFor != "" {
		return strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
	}
	if realIP := r.Header.Get(utils.HeaderXRealIP); realIP != "" {
		return realIP
	}
	if cfIP := r.Header.Get(utils.HeaderCFConnectingIP); cfIP != "" {
		return cfIP
	}
	return r.RemoteAddr
}

// responseWriterWrapper passes writes through while keeping the status code
// and a bounded copy of the body for logging.
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
	body        *bytes.Buffer
	written     int
	truncated   bool
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.statusCode = statusCode
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWrapper) Write(data []byte) (int, error) {
	w.wroteHeader = true
	if w.body.Len()+len(data) <= maxLoggedBody {
		w.body.Write(data)
	} else {
		w.truncated = true
	}

	n, err := w.ResponseWriter.Write(data)
	w.written += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *responseWriterWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
