package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/creator-roster/internal/roster"
)

const (
	FieldRecord   = "record"
	FieldStatus   = "status"
	FieldPlatform = "platform"
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, trimming whitespace
// and omitting entries with an empty key or value.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// RecordFields identifies a roster record in log entries.
func RecordFields(rec *roster.Record) []zap.Field {
	if rec == nil {
		return nil
	}
	return StringFields(
		StringField{Key: FieldRecord, Value: rec.Name},
		StringField{Key: FieldStatus, Value: string(rec.Status)},
		StringField{Key: FieldPlatform, Value: rec.Platform},
	)
}

// CommonFields describes the AI provider and model behind an assessment.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}
