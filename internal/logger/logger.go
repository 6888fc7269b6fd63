package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger levels
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Context keys
type contextKey string

const (
	RequestIDKey     contextKey = "request_id"
	CorrelationIDKey contextKey = "correlation_id"
	ComponentKey     contextKey = "component"
	StageKey         contextKey = "stage"
)

// Global logger instance
var Logger *slog.Logger

// Config for logger
type Config struct {
	Level       slog.Level
	Format      string // "json" or "text"
	Output      string // "stdout", "stderr", or file path
	TimeFormat  string
	ServiceName string
	Environment string
}

// DefaultConfig is used when the logger is touched before Init.
var DefaultConfig = Config{
	Level:       LevelInfo,
	Format:      "json",
	Output:      "stdout",
	TimeFormat:  time.RFC3339,
	ServiceName: "hulukipedia-gateway",
	Environment: "development",
}

// StructuredLogEntry is the JSON shape of every log line.
type StructuredLogEntry struct {
	Timestamp   string                 `json:"timestamp"`
	Level       string                 `json:"level"`
	Message     string                 `json:"message"`
	Service     string                 `json:"service"`
	Environment string                 `json:"environment"`
	Component   string                 `json:"component,omitempty"`
	Stage       string                 `json:"stage,omitempty"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
	Request     map[string]interface{} `json:"request,omitempty"`
	Response    map[string]interface{} `json:"response,omitempty"`
	Error       map[string]interface{} `json:"error,omitempty"`
}

// Init initializes the global logger
func Init(config Config) error {
	var output io.Writer

	switch config.Output {
	case "stdout", "":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		f, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", config.Output, err)
		}
		output = f
	}

	Logger = slog.New(newHandler(output, config))
	return nil
}

func newHandler(w io.Writer, config Config) slog.Handler {
	if config.Format == "text" {
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: config.Level})
	}
	timeFormat := config.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}
	return &StructuredJSONHandler{
		writer:      w,
		mu:          &sync.Mutex{},
		level:       config.Level,
		timeFormat:  timeFormat,
		serviceName: config.ServiceName,
		environment: config.Environment,
	}
}

// StructuredJSONHandler writes StructuredLogEntry lines, routing attributes
// into request/response/error sections by key prefix.
type StructuredJSONHandler struct {
	writer      io.Writer
	mu          *sync.Mutex
	level       slog.Level
	timeFormat  string
	serviceName string
	environment string
	attrs       []slog.Attr
}

func (h *StructuredJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *StructuredJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup is not supported; groups are flattened.
func (h *StructuredJSONHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *StructuredJSONHandler) Handle(ctx context.Context, r slog.Record) error {
	entry := StructuredLogEntry{
		Timestamp:   r.Time.UTC().Format(h.timeFormat),
		Level:       r.Level.String(),
		Message:     r.Message,
		Service:     h.serviceName,
		Environment: h.environment,
	}

	if ctx != nil {
		if component, ok := ctx.Value(ComponentKey).(string); ok {
			entry.Component = component
		}
		if stage, ok := ctx.Value(StageKey).(string); ok {
			entry.Stage = stage
		}
		if requestID := ctx.Value(RequestIDKey); requestID != nil {
			section(&entry.Request)["request_id"] = requestID
		}
		if correlationID := ctx.Value(CorrelationIDKey); correlationID != nil {
			section(&entry.Request)["correlation_id"] = correlationID
		}
	}

	route := func(a slog.Attr) bool {
		key := a.Key
		value := a.Value.Any()

		switch {
		case key == "error":
			errSection := section(&entry.Error)
			if err, ok := value.(error); ok {
				errSection["message"] = err.Error()
				errSection["type"] = fmt.Sprintf("%T", err)
			} else {
				errSection["message"] = fmt.Sprintf("%v", value)
			}
		case strings.HasPrefix(key, "request_"):
			section(&entry.Request)[strings.TrimPrefix(key, "request_")] = value
		case strings.HasPrefix(key, "response_"):
			section(&entry.Response)[strings.TrimPrefix(key, "response_")] = value
		case strings.HasPrefix(key, "error_"):
			section(&entry.Error)[strings.TrimPrefix(key, "error_")] = value
		case key == "request" || key == "response":
			if m, ok := value.(map[string]interface{}); ok {
				target := section(&entry.Request)
				if key == "response" {
					target = section(&entry.Response)
				}
				for k, v := range m {
					target[k] = v
				}
				return true
			}
			section(&entry.Attributes)[key] = value
		default:
			section(&entry.Attributes)[key] = value
		}
		return true
	}

	for _, a := range h.attrs {
		route(a)
	}
	r.Attrs(route)

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = fmt.Fprintln(h.writer, string(data))
	return err
}

func section(m *map[string]interface{}) map[string]interface{} {
	if *m == nil {
		*m = make(map[string]interface{})
	}
	return *m
}

func base() *slog.Logger {
	if Logger == nil {
		if err := Init(DefaultConfig); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize default logger: %v\n", err)
			return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: LevelDebug}))
		}
	}
	return Logger
}

func ctxOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// WithComponent tags every log line emitted with ctx by component name.
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctxOrBackground(ctx), ComponentKey, component)
}

// WithStage tags every log line emitted with ctx by processing stage.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctxOrBackground(ctx), StageKey, stage)
}

// WithRequestID attaches the request id used for log correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctxOrBackground(ctx), RequestIDKey, requestID)
}

// WithCorrelationID attaches the correlation id used for log correlation.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctxOrBackground(ctx), CorrelationIDKey, correlationID)
}

// RequestIDFromContext returns the request id or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func Debug(ctx context.Context, msg string, args ...any) {
	base().DebugContext(ctxOrBackground(ctx), msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	base().InfoContext(ctxOrBackground(ctx), msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	base().WarnContext(ctxOrBackground(ctx), msg, args...)
}

// Error logs at error level; err lands in the entry's error section.
func Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append([]any{"error", err}, args...)
	}
	base().ErrorContext(ctxOrBackground(ctx), msg, args...)
}

// ParseLevel maps a LOG_LEVEL string onto a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}
