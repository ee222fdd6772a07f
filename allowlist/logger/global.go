package logger

import (
	"log/slog"
	"time"
)

// LogQuery logs database operations
func LogQuery(query string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "db"),
		slog.Duration("took", duration),
		slog.String("query", query),
	}

	if err != nil {
		slog.Error("Query failed", append(attrs, slog.Any("error", err))...)
	} else {
		slog.Debug("Query executed", attrs...)
	}
}

func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}

// LogDecision records a lifecycle transition for an application.
func LogDecision(applicationID int64, status string, reviewerID string, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "audit"),
		slog.Int64("application_id", applicationID),
		slog.String("status", status),
		slog.String("reviewer_id", reviewerID),
	}
	slog.Info("Application decided", append(baseAttrs, attrs...)...)
}
