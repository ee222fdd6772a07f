package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

const prefix = "[Allowlist]"

type LogType string

const (
	TypeCommand   LogType = "CMD"
	TypeComponent LogType = "CMP"
	TypeModal     LogType = "MDL"
	TypeDB        LogType = "DB"
	TypeSystem    LogType = "SYS"
	TypeAudit     LogType = "AUDIT"
	TypeError     LogType = "ERR"
)

// Attribute keys folded into the message line instead of printed as key=value.
var internalAttrs = map[string]struct{}{
	"type":           {},
	"name":           {},
	"user_name":      {},
	"status":         {},
	"took":           {},
	"error":          {},
	"error_location": {},
}

// Noisy disgo internals that drown out interaction logs at debug level.
var skippedMessages = []string{
	"locking buckets",
	"unlocking buckets",
	"gateway event",
	"cleaning up bucket",
	"cleaned up rate limit buckets",
	"binary message received",
	"received gateway message",
	"locking gateway rate limiter",
	"unlocking gateway rate limiter",
	"sending gateway command",
	"new request",
	"new response",
	"locking rest bucket",
	"unlocking rest bucket",
	"rate limit response headers",
	"sending heartbeat",
}

type CustomHandler struct {
	opts   *slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	color  bool
	attrs  []slog.Attr
	groups []string
}

// NewHandler writes one line per record to out. A nil out means stdout.
func NewHandler(level slog.Leveler, out io.Writer) *CustomHandler {
	color := false
	if out == nil {
		out = os.Stdout
		color = true
	}
	return &CustomHandler{
		opts:  &slog.HandlerOptions{Level: level},
		out:   out,
		mu:    &sync.Mutex{},
		color: color,
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(r.Message) {
		return nil
	}

	levelColor, levelText := levelStyle(r.Level)
	fields := collect(h.attrs, r)

	message := r.Message
	if r.Level >= slog.LevelError {
		location := fields.location
		if location == "" {
			location = sourceLocation(r.PC)
		}
		if location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
		if fields.err != "" {
			message = fmt.Sprintf("%s: %s", message, fields.err)
		}
	} else if fields.err != "" {
		message = fmt.Sprintf("%s: %s", message, fields.err)
	}

	if fields.name != "" && fields.user != "" {
		message = fmt.Sprintf("%s [%s by %s]", message, fields.name, fields.user)
	} else if fields.name != "" {
		message = fmt.Sprintf("%s [%s]", message, fields.name)
	}
	if fields.status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, fields.status)
	}
	if fields.took != "" {
		message = fmt.Sprintf("%s (took %s)", message, fields.took)
	}

	var b strings.Builder
	if h.color {
		fmt.Fprintf(&b, "%s%s [%s] [%s%s%s] [%s] %s%s%s\n",
			colorWhite, prefix, r.Time.Format("15:04:05"),
			levelColor, levelText, colorWhite,
			fields.logType, message, fields.extra, colorReset)
	} else {
		fmt.Fprintf(&b, "%s [%s] [%s] [%s] %s%s\n",
			prefix, r.Time.Format("15:04:05"),
			levelText, fields.logType, message, fields.extra)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

type recordFields struct {
	logType  LogType
	name     string
	user     string
	status   string
	took     string
	err      string
	location string
	extra    string
}

func collect(handlerAttrs []slog.Attr, r slog.Record) recordFields {
	f := recordFields{logType: TypeSystem}
	var extra strings.Builder

	visit := func(a slog.Attr) bool {
		switch a.Key {
		case "type":
			f.logType = parseType(a.Value.String())
		case "name":
			f.name = a.Value.String()
		case "user_name":
			f.user = a.Value.String()
		case "status":
			f.status = a.Value.String()
		case "took":
			if a.Value.Kind() == slog.KindDuration {
				f.took = a.Value.Duration().Round(time.Millisecond).String()
			} else {
				f.took = a.Value.String()
			}
		case "error":
			f.err = fmt.Sprintf("%v", a.Value.Any())
		case "error_location":
			f.location = a.Value.String()
		}
		if _, ok := internalAttrs[a.Key]; !ok {
			fmt.Fprintf(&extra, " %s=%v", a.Key, a.Value)
		}
		return true
	}

	for _, a := range handlerAttrs {
		visit(a)
	}
	r.Attrs(visit)
	f.extra = extra.String()
	return f
}

func parseType(v string) LogType {
	switch v {
	case "cmd":
		return TypeCommand
	case "component":
		return TypeComponent
	case "modal":
		return TypeModal
	case "db":
		return TypeDB
	case "audit":
		return TypeAudit
	case "error":
		return TypeError
	default:
		return TypeSystem
	}
}

func levelStyle(level slog.Level) (string, string) {
	switch {
	case level >= slog.LevelError:
		return colorRed, "ERROR"
	case level >= slog.LevelWarn:
		return colorYellow, "WARN"
	case level >= slog.LevelInfo:
		return colorGreen, "INFO"
	default:
		return colorPurple, "DEBUG"
	}
}

func shouldSkipLog(msg string) bool {
	lower := strings.ToLower(msg)
	for _, skip := range skippedMessages {
		if strings.Contains(lower, skip) {
			return true
		}
	}
	return false
}

func sourceLocation(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}
