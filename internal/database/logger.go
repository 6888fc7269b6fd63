package database

import (
	"context"
	"sync"
	"time"

	"github.com/hulukipedia/gateway/internal/logger"
)

const recordTimeout = 5 * time.Second

// UsageWriter stores usage records.
type UsageWriter interface {
	InsertUsage(ctx context.Context, record *UsageRecord) error
}

// UsageLogger writes usage records in the background so requests never
// wait on MongoDB. A disabled logger drops every record.
type UsageLogger struct {
	writer      UsageWriter
	conn        *Connection
	environment string
	wg          sync.WaitGroup
}

// NewUsageLogger connects to MongoDB when config carries a URI. Without a URI,
// or when the connection fails, it returns a disabled logger.
func NewUsageLogger(ctx context.Context, config *DatabaseConfig) *UsageLogger {
	ctx = logger.WithComponent(ctx, logger.ComponentNames.Database)

	if !config.Enabled() {
		logger.Info(ctx, "Usage logging disabled: no MongoDB URI provided")
		return &UsageLogger{}
	}

	conn, err := Connect(ctx, config)
	if err != nil {
		logger.Warn(ctx, "Usage logging disabled: MongoDB unavailable", "error", err)
		return &UsageLogger{environment: config.Environment}
	}

	logger.Info(ctx, "Usage logging enabled", "database", config.DatabaseName)
	return &UsageLogger{
		writer:      NewUsageRepository(conn),
		conn:        conn,
		environment: config.Environment,
	}
}

// NewUsageLoggerWithWriter builds a logger around an existing writer.
func NewUsageLoggerWithWriter(writer UsageWriter, environment string) *UsageLogger {
	return &UsageLogger{writer: writer, environment: environment}
}

// Enabled reports whether records are persisted.
func (l *UsageLogger) Enabled() bool {
	return l != nil && l.writer != nil
}

// Record persists record asynchronously. Failures are logged, never returned.
func (l *UsageLogger) Record(ctx context.Context, record UsageRecord) {
	if !l.Enabled() {
		return
	}
	if record.Environment == "" {
		record.Environment = l.environment
	}
	if record.RequestID == "" {
		record.RequestID = logger.RequestIDFromContext(ctx)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	// The request context ends with the response; keep its values only.
	detached := logger.WithComponent(context.WithoutCancel(ctx), logger.ComponentNames.Database)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		writeCtx, cancel := context.WithTimeout(detached, recordTimeout)
		defer cancel()

		if err := l.writer.InsertUsage(writeCtx, &record); err != nil {
			logger.Warn(detached, "Failed to record usage",
				"error", err,
				"alias", record.Alias,
				"operation", record.Operation)
		}
	}()
}

// Close waits for pending writes, bounded by ctx, then disconnects.
func (l *UsageLogger) Close(ctx context.Context) error {
	if l == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn(ctx, "Usage logger closed with pending writes")
	}

	return l.conn.Disconnect(ctx)
}
