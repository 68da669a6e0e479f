package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"EnvKit/internal/console"
	"EnvKit/internal/paths"
	"EnvKit/internal/version"

	"github.com/lmittmann/tint"
)

// Helper to resolve message from any type to string
func resolveMsg(msg any) string {
	switch v := msg.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, "\n")
	case []any:
		var parts []string
		for _, item := range v {
			parts = append(parts, resolveMsg(item))
		}
		return strings.Join(parts, "\n")
	default:
		return fmt.Sprint(v)
	}
}

// Internal helper to log with the current timestamp
func log(ctx context.Context, level slog.Level, msg any, args ...any) {
	logAt(ctx, time.Now(), level, msg, args...)
}

// Internal helper to log with a specific timestamp
func logAt(ctx context.Context, t time.Time, level slog.Level, msg any, args ...any) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, level) {
		return
	}

	msgStr := resolveMsg(msg)
	// If args are present and msgStr has format specifiers, format it.
	if len(args) > 0 && strings.Contains(msgStr, "%") {
		msgStr = fmt.Sprintf(msgStr, args...)
		args = nil // Reset args as they are now consumed
	}
	msgStr = console.Parse(msgStr)

	// Ensure the message resets colors at the end (for single line case)
	// For multi-line, we append to each line below.
	if !strings.Contains(msgStr, "\n") {
		r := slog.NewRecord(t, level, msgStr+console.CodeReset, 0)
		r.Add(args...)
		_ = h.Handle(ctx, r)
		return
	}

	lines := strings.Split(msgStr, "\n")
	for i, line := range lines {
		// Append reset to every line to prevent color bleed to next timestamp
		r := slog.NewRecord(t, level, line+console.CodeReset, 0)
		if i == 0 {
			r.Add(args...)
		}
		_ = h.Handle(ctx, r)
	}
}

// Custom log levels
const (
	LevelTrace  = slog.Level(-8)
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.Level(-2)
	LevelNotice = slog.LevelInfo
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
	LevelFatal  = slog.Level(12)
)

// LevelVar allows dynamic changing of the log level
var LevelVar = new(slog.LevelVar)
var FileLevelVar = new(slog.LevelVar)

// logFile is the currently open log file, closed by Cleanup.
var logFile *os.File

func init() {
	LevelVar.Set(LevelNotice)
	FileLevelVar.Set(LevelInfo) // Default file to Info (-v behavior)
}

// SetLevel changes the console log level.
func SetLevel(level slog.Level) {
	LevelVar.Set(level)
	// File level should be at least Info, or lower if Debug is requested
	if level < LevelInfo {
		FileLevelVar.Set(level)
	} else {
		FileLevelVar.Set(LevelInfo)
	}
}

// ParseLevel converts a config level name into a slog level.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "notice":
		return LevelNotice
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelNotice
}

// NewLogger builds the default fanout logger: a tint console handler on
// stderr plus a color-free file handler under the state directory.
func NewLogger() *slog.Logger {
	wStderr := os.Stderr

	// Check if output is a terminal (TTY)
	stat, _ := wStderr.Stat()
	isTTY := (stat.Mode() & os.ModeCharDevice) != 0

	// 1. Configure Console Handler (Colors if TTY)
	var (
		ansiReset  string
		ansiBlue   string
		ansiGreen  string
		ansiYellow string
		ansiRed    string
		ansiRedBg  string
	)

	if isTTY {
		ansiReset = console.CodeReset
		ansiBlue = console.CodeBlue
		ansiGreen = console.CodeGreen // Notice
		ansiYellow = console.CodeYellow
		ansiRed = console.CodeRed
		ansiRedBg = console.CodeRedBg + console.CodeWhite
	}

	replaceAttrConsole := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey {
			level := a.Value.Any().(slog.Level)
			switch level {
			case LevelTrace:
				a.Value = slog.StringValue(ansiBlue + "[TRACE ]" + ansiReset + "  ")
			case LevelDebug:
				a.Value = slog.StringValue(ansiBlue + "[DEBUG ]" + ansiReset + "  ")
			case LevelInfo:
				a.Value = slog.StringValue(ansiBlue + "[INFO  ]" + ansiReset + "  ")
			case LevelNotice:
				a.Value = slog.StringValue(ansiGreen + "[NOTICE]" + ansiReset + "  ")
			case LevelWarn:
				a.Value = slog.StringValue(ansiYellow + "[WARN  ]" + ansiReset + "  ")
			case LevelError:
				a.Value = slog.StringValue(ansiRed + "[ERROR ]" + ansiReset + "  ")
			case LevelFatal:
				a.Value = slog.StringValue(ansiRedBg + "[FATAL ]" + ansiReset + "  ")
			default:
				a.Value = slog.StringValue("[" + level.String() + "]")
			}
		}
		return a
	}

	consoleOpts := &tint.Options{
		Level:       LevelVar,
		TimeFormat:  "2006-01-02 15:04:05",
		NoColor:     !isTTY,
		ReplaceAttr: replaceAttrConsole,
	}
	consoleHandler := tint.NewHandler(wStderr, consoleOpts)

	handlers := []slog.Handler{consoleHandler}

	// 2. Configure File Handler (No Color)
	logFilePath := paths.GetLogFilePath()
	_ = os.MkdirAll(filepath.Dir(logFilePath), 0755)
	wFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
	}

	if wFile != nil {
		logFile = wFile

		replaceAttrFile := func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				level := a.Value.Any().(slog.Level)
				switch level {
				case LevelTrace:
					a.Value = slog.StringValue("[TRACE ]  ")
				case LevelDebug:
					a.Value = slog.StringValue("[DEBUG ]  ")
				case LevelInfo:
					a.Value = slog.StringValue("[INFO  ]  ")
				case LevelNotice:
					a.Value = slog.StringValue("[NOTICE]  ")
				case LevelWarn:
					a.Value = slog.StringValue("[WARN  ]  ")
				case LevelError:
					a.Value = slog.StringValue("[ERROR ]  ")
				case LevelFatal:
					a.Value = slog.StringValue("[FATAL ]  ")
				default:
					a.Value = slog.StringValue("[" + level.String() + "]")
				}
			}
			if a.Key == slog.MessageKey {
				// Messages pass through console.Parse before reaching handlers,
				// so rendered ANSI must be stripped again for the file.
				a.Value = slog.StringValue(console.Strip(a.Value.String()))
			}
			return a
		}

		fileOpts := &tint.Options{
			Level:       FileLevelVar,
			TimeFormat:  "2006-01-02 15:04:05",
			NoColor:     true, // Important
			ReplaceAttr: replaceAttrFile,
		}
		fileHandler := tint.NewHandler(wFile, fileOpts)
		handlers = append(handlers, fileHandler)
	}

	return slog.New(&FanoutHandler{handlers: handlers})
}

// Cleanup flushes and closes the log file, if one was opened.
func Cleanup() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// FanoutHandler broadcasts records to multiple handlers
type FanoutHandler struct {
	handlers []slog.Handler
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &FanoutHandler{handlers: newHandlers}
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &FanoutHandler{handlers: newHandlers}
}

// Global helpers for custom levels that don't satisfy standard slog methods
func Trace(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelTrace, msg, args...)
}

func Debug(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelInfo, msg, args...)
}

func Notice(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelNotice, msg, args...)
}

func Warn(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelError, msg, args...)
}

func getSystemInfo() []string {
	var info []string

	// App Info
	info = append(info, fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", version.ApplicationName, version.Version))
	info = append(info, "")

	// Process Info
	executable, _ := os.Executable()
	info = append(info, fmt.Sprintf("Currently running as: %s (PID %d)", executable, os.Getpid()))
	info = append(info, "")

	// System Info
	info = append(info, fmt.Sprintf("ARCH:             %s", runtime.GOARCH))
	info = append(info, fmt.Sprintf("OS:               %s", runtime.GOOS))

	base := filepath.Base(executable)
	dir := filepath.Dir(executable)
	info = append(info, fmt.Sprintf("SCRIPTPATH:       %s", dir))
	info = append(info, fmt.Sprintf("SCRIPTNAME:       %s", base))
	info = append(info, "")

	// User Info
	currentUser, err := user.Current()
	if err == nil {
		info = append(info, fmt.Sprintf("DETECTED_UID:     %s", currentUser.Uid))
		info = append(info, fmt.Sprintf("DETECTED_UNAME:   %s", currentUser.Username))
		info = append(info, fmt.Sprintf("DETECTED_GID:     %s", currentUser.Gid))
		info = append(info, fmt.Sprintf("DETECTED_HOMEDIR: %s", currentUser.HomeDir))
	} else {
		info = append(info, fmt.Sprintf("User Info Error: %v", err))
	}

	return info
}

// Fatal logs a message at FatalLevel with a stack trace and panics with
// FatalError so the main run loop can recover and clean up before exiting.
func Fatal(ctx context.Context, msg any, args ...any) {
	fatalWithStackSkip(ctx, 1, msg, args...)
}

// FatalWithStackSkip is Fatal with additional stack frames skipped, used by
// Recover so the trace starts at the panic site.
func FatalWithStackSkip(ctx context.Context, skip int, msg any, args ...any) {
	fatalWithStackSkip(ctx, skip+1, msg, args...)
}

func fatalWithStackSkip(ctx context.Context, skip int, msg any, args ...any) {
	// Capture time once for all lines
	now := time.Now()

	// 1. Gather Stack Frames
	pc := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pc)
	frames := runtime.CallersFrames(pc[:n])

	// 2. Prepare Log Components

	// A. System Info
	var infoLines []string
	for _, i := range getSystemInfo() {
		if i != "" {
			infoLines = append(infoLines, "  "+i)
		} else {
			infoLines = append(infoLines, "")
		}
	}

	// B. Stack Trace
	var allFrames []runtime.Frame
	for {
		frame, more := frames.Next()
		allFrames = append(allFrames, frame)
		if !more {
			break
		}
	}

	var traceLines []string
	maxIndex := len(allFrames) - 1
	width := len(fmt.Sprintf("%d", maxIndex))

	wd, _ := os.Getwd()

	// Iterate in reverse: Main (Last) -> Fatal (First)
	indent := ""
	for i := len(allFrames) - 1; i >= 0; i-- {
		frame := allFrames[i]

		// Try to make path relative to CWD
		if wd != "" {
			if rel, err := filepath.Rel(wd, frame.File); err == nil {
				if !strings.HasPrefix(rel, "..") && !strings.HasPrefix(rel, string(filepath.Separator)) {
					frame.File = "./" + filepath.ToSlash(rel)
				}
			}
		}

		suffix := ""
		arrowIndent := indent
		if i < len(allFrames)-1 {
			suffix = "└>"
			if len(indent) >= 2 {
				arrowIndent = indent[:len(indent)-2]
			}
		}

		fmtStr := fmt.Sprintf("%%s%%%dd{{|-|}}%%s %%s%%s%%s%%s:%%s%%d{{|-|}} (%%s%%s{{|-|}})", width)

		line := fmt.Sprintf(
			fmtStr,
			"{{_TraceFrameNumber_}}", i,
			":",
			arrowIndent,
			"{{_TraceFrameLines_}}"+suffix+"{{|-|}}",
			"{{_TraceSourceFile_}}", frame.File,
			"{{_TraceLineNumber_}}", frame.Line,
			"{{_TraceFunction_}}", filepath.Base(frame.Function),
		)

		traceLines = append(traceLines, "  "+line)

		indent += "  "
	}

	// 3. Assemble Final Output
	output := []any{
		"{{_TraceHeader_}}### BEGIN SYSTEM INFORMATION AND STACK TRACE ###",
		infoLines,
		"",
		traceLines,
		"{{_TraceFooter_}}### END SYSTEM INFORMATION AND STACK TRACE ###",
		"",
		msg,
		"",
		"{{_FatalFooter_}}Please let the dev know of this error.",
	}

	// 4. Log Everything
	logAt(ctx, now, LevelFatal, output, args...)

	panic(FatalError{})
}

// FatalNoTrace logs a message at FatalLevel without stack trace and exits
func FatalNoTrace(ctx context.Context, msg any, args ...any) {
	output := []any{
		msg,
		"",
		"{{_FatalFooter_}}Please let the dev know of this error.",
	}
	logAt(ctx, time.Now(), LevelFatal, output, args...)
	panic(FatalError{})
}

// FatalError is a special error used to panic from Fatal logger calls
// This allows the main run loop to recover and perform cleanup before exiting
type FatalError struct{}
