// Package logger provides component-scoped structured logging for the
// moderation service. All output goes to stderr as slog text records with a
// "component" attribute, so per-subsystem lines stay greppable.
package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var level = &slog.LevelVar{}

var log atomic.Pointer[slog.Logger]

func init() {
	level.Set(slog.LevelInfo)
	log.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// SetLevel adjusts the minimum level. Accepts "debug", "info", "warn",
// "error"; anything else keeps info.
func SetLevel(name string) {
	switch strings.ToLower(name) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

func attrs(component string, fields map[string]interface{}) []any {
	out := make([]any, 0, 2+2*len(fields))
	out = append(out, "component", component)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}

// Info logs a message with no component context.
func Info(msg string) {
	log.Load().Info(msg)
}

// InfoCF logs at info level with a component and optional fields.
func InfoCF(component, msg string, fields map[string]interface{}) {
	log.Load().Info(msg, attrs(component, fields)...)
}

// WarnCF logs at warn level with a component and optional fields.
func WarnCF(component, msg string, fields map[string]interface{}) {
	log.Load().Warn(msg, attrs(component, fields)...)
}

// ErrorCF logs at error level with a component and optional fields.
func ErrorCF(component, msg string, fields map[string]interface{}) {
	log.Load().Error(msg, attrs(component, fields)...)
}

// DebugCF logs at debug level with a component and optional fields.
func DebugCF(component, msg string, fields map[string]interface{}) {
	log.Load().Debug(msg, attrs(component, fields)...)
}
