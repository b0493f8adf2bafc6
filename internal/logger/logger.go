package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New berilgan darajadagi text logger yaratish.
// Bo'sh yoki "off" daraja loglarni butunlay o'chiradi; w nil bo'lsa stderr ishlatiladi.
func New(level string, w io.Writer) *slog.Logger {
	lv, ok := ParseLevel(level)
	if !ok {
		return Discard()
	}
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv}))
}

// Discard hech narsa yozmaydigan logger
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel daraja nomini slog.Level ga o'girish; ok=false loglar o'chiq degani
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}

// Valid daraja nomi qabul qilinadimi ("" va "off" ham to'g'ri)
func Valid(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "off":
		return true
	}
	_, ok := ParseLevel(level)
	return ok
}
