package database

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hulukipedia/gateway/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.Config{Level: logger.LevelError, Format: "json", Output: "stdout"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type memoryWriter struct {
	mu      sync.Mutex
	records []UsageRecord
	err     error
}

func (w *memoryWriter) InsertUsage(ctx context.Context, record *UsageRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.records = append(w.records, *record)
	return nil
}

func (w *memoryWriter) snapshot() []UsageRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]UsageRecord(nil), w.records...)
}

func TestUsageLogger_Record(t *testing.T) {
	writer := &memoryWriter{}
	usage := NewUsageLoggerWithWriter(writer, "test")
	require.True(t, usage.Enabled())

	ctx, cancel := context.WithCancel(logger.WithRequestID(context.Background(), "req-1"))
	usage.Record(ctx, UsageRecord{
		Alias:     "gpt-demo",
		Provider:  "openai",
		Operation: "completion",
		Status:    StatusSuccess,
		Usage:     map[string]interface{}{"total_tokens": 5},
	})
	// Cancelling the request context must not abort the write.
	cancel()

	require.NoError(t, usage.Close(context.Background()))

	records := writer.snapshot()
	require.Len(t, records, 1)
	assert.Equal(t, "req-1", records[0].RequestID)
	assert.Equal(t, "test", records[0].Environment)
	assert.Equal(t, "gpt-demo", records[0].Alias)
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestUsageLogger_KeepsExplicitFields(t *testing.T) {
	writer := &memoryWriter{}
	usage := NewUsageLoggerWithWriter(writer, "test")
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	usage.Record(context.Background(), UsageRecord{
		RequestID:   "explicit",
		Environment: "production",
		CreatedAt:   created,
	})
	require.NoError(t, usage.Close(context.Background()))

	records := writer.snapshot()
	require.Len(t, records, 1)
	assert.Equal(t, "explicit", records[0].RequestID)
	assert.Equal(t, "production", records[0].Environment)
	assert.Equal(t, created, records[0].CreatedAt)
}

func TestUsageLogger_WriterErrorIsSwallowed(t *testing.T) {
	writer := &memoryWriter{err: errors.New("write failed")}
	usage := NewUsageLoggerWithWriter(writer, "test")

	usage.Record(context.Background(), UsageRecord{Alias: "a"})
	require.NoError(t, usage.Close(context.Background()))
	assert.Empty(t, writer.snapshot())
}

func TestUsageLogger_Disabled(t *testing.T) {
	usage := NewUsageLogger(context.Background(), NewDatabaseConfig("", "svc", "test"))
	assert.False(t, usage.Enabled())

	usage.Record(context.Background(), UsageRecord{Alias: "ignored"})
	assert.NoError(t, usage.Close(context.Background()))

	var nilLogger *UsageLogger
	assert.False(t, nilLogger.Enabled())
	nilLogger.Record(context.Background(), UsageRecord{})
	assert.NoError(t, nilLogger.Close(context.Background()))
}

func TestConnect_RequiresURI(t *testing.T) {
	_, err := Connect(context.Background(), &DatabaseConfig{})
	assert.Error(t, err)
}
