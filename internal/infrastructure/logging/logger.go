package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	cblog "github.com/charmbracelet/log"

	"github.com/wiredwork/orcheo/internal/ports"
)

// Options configures the charmbracelet/log adapter.
type Options struct {
	Writer       io.Writer
	Level        string
	TimeFormat   string
	ReportCaller bool
	Formatter    cblog.Formatter
	Layer        string
	Component    string
	Fields       map[string]interface{}
}

// Logger implements ports.Logger using charmbracelet/log.
type Logger struct {
	logger *cblog.Logger
	fields []interface{}
	layer  string
}

// New creates a Logger adapter with the supplied options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	level := cblog.InfoLevel
	if opts.Level != "" {
		parsed, err := cblog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	base := cblog.NewWithOptions(writer, cblog.Options{
		Level:           level,
		TimeFormat:      opts.TimeFormat,
		ReportTimestamp: true,
		ReportCaller:    opts.ReportCaller,
		Formatter:       opts.Formatter,
		Fields:          mapToFields(opts.Fields),
	})

	fields := make([]interface{}, 0, 6)
	if opts.Component != "" {
		fields = append(fields, "component", opts.Component)
	}
	layer := opts.Layer
	if layer == "" {
		layer = "infrastructure"
	}

	return &Logger{
		logger: base,
		fields: fields,
		layer:  layer,
	}, nil
}

// Debug emits a debug log entry.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.DebugLevel, msg, fields...)
}

// Info emits an info log entry.
func (l *Logger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.InfoLevel, msg, fields...)
}

// Warn emits a warning log entry.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.WarnLevel, msg, fields...)
}

// Error emits an error log entry.
func (l *Logger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.ErrorLevel, msg, fields...)
}

// With derives a new logger with persistent fields.
func (l *Logger) With(fields ...interface{}) ports.Logger {
	if l == nil {
		return &NoOpLogger{}
	}
	next := make([]interface{}, len(l.fields))
	copy(next, l.fields)
	next = append(next, fields...)
	return &Logger{
		logger: l.logger,
		fields: next,
		layer:  l.layer,
	}
}

func (l *Logger) log(ctx context.Context, level cblog.Level, msg string, fields ...interface{}) {
	if l == nil || l.logger == nil {
		return
	}
	set := newFieldSet()
	set.addPairs(l.fields)
	set.addPairs(fields)
	set.add("layer", l.layer)
	if id := ports.GetCorrelationID(ctx); id != "" {
		set.add("correlation_id", id)
	}
	payload := set.flatten()

	switch level {
	case cblog.DebugLevel:
		l.logger.Debug(msg, payload...)
	case cblog.WarnLevel:
		l.logger.Warn(msg, payload...)
	case cblog.ErrorLevel:
		l.logger.Error(msg, payload...)
	default:
		l.logger.Info(msg, payload...)
	}
}

// Elapsed returns a "duration_ms" key/value pair measuring the time since
// start, in the form log calls accept as trailing fields:
//
//	start := time.Now()
//	// ... do the timed work ...
//	logger.Info(ctx, "build finished", logging.Elapsed(start)...)
//
// This is the duration_ms field ports.Logger documents as a common field
// for timed operations; internal/builder and internal/sandbox are the two
// places in orcheo long-running enough to warrant it.
func Elapsed(start time.Time) []interface{} {
	return []interface{}{"duration_ms", time.Since(start).Milliseconds()}
}

func mapToFields(input map[string]interface{}) []interface{} {
	if len(input) == 0 {
		return nil
	}
	keys := make([]string, 0, len(input))
	for k := range input {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	res := make([]interface{}, 0, len(input)*2)
	for _, k := range keys {
		res = append(res, k, input[k])
	}
	return res
}

// fieldSet accumulates key/value log fields in first-write order, with later
// writes of an existing key overwriting its value in place rather than
// appending a duplicate. charmbracelet/log does not dedupe repeated keys on
// its own, and a child logger's With fields, a call site's fields, and the
// layer/correlation_id extras added by log() can all legitimately repeat a
// key (a child overriding "component", say).
type fieldSet struct {
	order []string
	store map[string]interface{}
}

func newFieldSet() *fieldSet {
	return &fieldSet{store: make(map[string]interface{})}
}

func (s *fieldSet) add(key string, value interface{}) {
	if key == "" {
		return
	}
	if value == nil {
		return
	}
	if str, ok := value.(string); ok && str == "" {
		return
	}
	if _, exists := s.store[key]; !exists {
		s.order = append(s.order, key)
	}
	s.store[key] = value
}

func (s *fieldSet) addPairs(pairs []interface{}) {
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		s.add(key, pairs[i+1])
	}
}

func (s *fieldSet) flatten() []interface{} {
	result := make([]interface{}, 0, len(s.order)*2)
	for _, key := range s.order {
		result = append(result, key, s.store[key])
	}
	return result
}

// compile-time assurance
var _ ports.Logger = (*Logger)(nil)
