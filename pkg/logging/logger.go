// Package logging provides structured logging for the kanyon bird flight core.
// It wraps Go's standard slog package so every component logs the same way,
// with a per-session ID carried in the context.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnvVar names the environment variable that selects the log level.
const LevelEnvVar = "KANYON_LOG_LEVEL"

// Logger wraps slog.Logger with session-aware helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger writing JSON to stdout.
// The level is read from KANYON_LOG_LEVEL (DEBUG, INFO, WARN, ERROR; default INFO).
func NewLogger() *Logger {
	return NewLoggerWithWriter(os.Stdout, getLogLevelFromEnv())
}

// NewLoggerWithWriter creates a Logger writing JSON to w at the given level.
func NewLoggerWithWriter(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: sanitizeAttributes,
	})
	return &Logger{slog.New(handler)}
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() *Logger {
	return NewLoggerWithWriter(io.Discard, slog.LevelError+1)
}

// LogWithContext logs a message, attaching the session ID from ctx if present.
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if sessionID := GetSessionID(ctx); sessionID != "" {
		args = append(args, "session_id", sessionID)
	}
	l.Log(ctx, level, msg, args...)
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs an error message with context and proper error formatting.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

type sessionIDKey struct{}

// WithSessionID stores a session ID in the context, generating one if empty.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if sessionID == "" {
		sessionID = GenerateSessionID()
	}
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

// GetSessionID extracts the session ID from the context, or "" if absent.
func GetSessionID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateSessionID creates a new random 16 hex character session ID.
func GenerateSessionID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// ParseLevel maps a level name to an slog level. Unknown names map to INFO.
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getLogLevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnvVar))
}

// sanitizeAttributes masks attributes whose key looks like a credential.
func sanitizeAttributes(groups []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)

	sensitiveKeys := []string{
		"password", "passwd", "pwd",
		"token", "auth", "authorization",
		"secret", "private", "cookie",
	}

	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			return slog.Attr{
				Key:   a.Key,
				Value: slog.StringValue("[REDACTED]"),
			}
		}
	}

	return a
}

// WrapError wraps an error with additional context information.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
