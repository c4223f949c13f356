package logger

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	common_models "go-support/internal/common/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to our worker
type LogEntry struct {
	Level      zapcore.Level
	Message    string
	Caller     string // Function name
	RequestID  string
	TicketID   string
	CustomerID string
}

// logInserter is the slice of *mongo.Collection the writer needs.
type logInserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	collection logInserter
	logChan    chan LogEntry
	appId      string

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewDBLogWriter starts the background worker that drains entries into the logs collection.
func NewDBLogWriter(collection logInserter, appId string, buffer int) *DBLogWriter {
	writer := &DBLogWriter{
		collection: collection,
		logChan:    make(chan LogEntry, buffer),
		appId:      appId,
		done:       make(chan struct{}),
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by our Zap hook
func (w *DBLogWriter) AddLog(entry LogEntry) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return
	}
	select {
	case w.logChan <- entry:
	default:
		// Channel full: drop rather than block the request path.
		fmt.Fprintln(os.Stderr, "DB log channel full, dropping log:", entry.Message)
	}
}

// Close stops accepting entries and waits for the queue to drain.
func (w *DBLogWriter) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.logChan)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *DBLogWriter) processLogs() {
	defer close(w.done)
	for entry := range w.logChan {
		logRecord := common_models.Log{
			Message:    entry.Message,
			Level:      entry.Level.String(),
			LevelId:    mapLevelToInt(entry.Level),
			Caller:     entry.Caller,
			RequestId:  entry.RequestID,
			TicketId:   entry.TicketID,
			CustomerId: entry.CustomerID,
			AppId:      w.appId,
			CreatedAt:  time.Now().UTC(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if _, err := w.collection.InsertOne(ctx, logRecord); err != nil {
			fmt.Fprintln(os.Stderr, "DB log insert failed:", err)
		}
		cancel()
	}
}

func mapLevelToInt(l zapcore.Level) int {
	switch l {
	case zapcore.DebugLevel:
		return 10
	case zapcore.InfoLevel:
		return 20
	case zapcore.WarnLevel:
		return 30
	case zapcore.ErrorLevel:
		return 40
	case zapcore.FatalLevel:
		return 50
	default:
		return 20
	}
}
