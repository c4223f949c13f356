package logger

import (
	"go.uber.org/zap/zapcore"
)

// Field keys the DB core lifts out of structured log entries.
const (
	FieldRequestID  = "request_id"
	FieldTicketID   = "ticket_id"
	FieldCustomerID = "customer_id"
)

// DBCore is a custom Zap Core that tees entries at or above minLevel into the DB writer.
type DBCore struct {
	zapcore.Core
	writer   LogSink
	minLevel zapcore.Level
	fields   []zapcore.Field
}

// LogSink receives entries copied out of the logging pipeline.
type LogSink interface {
	AddLog(entry LogEntry)
}

// NewDBCore wraps an existing core (like console logger) and adds DB logging
func NewDBCore(baseCore zapcore.Core, writer LogSink, minLevel zapcore.Level) zapcore.Core {
	return &DBCore{
		Core:     baseCore,
		writer:   writer,
		minLevel: minLevel,
	}
}

// With keeps contextual fields so child loggers still report request and ticket ids.
func (c *DBCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &DBCore{
		Core:     c.Core.With(fields),
		writer:   c.writer,
		minLevel: c.minLevel,
		fields:   merged,
	}
}

// Write is called for every log entry
func (c *DBCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if entry.Level >= c.minLevel {
		record := LogEntry{
			Level:   entry.Level,
			Message: entry.Message,
			Caller:  entry.Caller.Function,
		}
		record.apply(c.fields)
		record.apply(fields)
		c.writer.AddLog(record)
	}

	return c.Core.Write(entry, fields)
}

// Check decides if we should log this level
func (c *DBCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (e *LogEntry) apply(fields []zapcore.Field) {
	for _, f := range fields {
		if f.Type != zapcore.StringType {
			continue
		}
		switch f.Key {
		case FieldRequestID:
			e.RequestID = f.String
		case FieldTicketID:
			e.TicketID = f.String
		case FieldCustomerID:
			e.CustomerID = f.String
		}
	}
}
