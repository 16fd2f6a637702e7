package snapio

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/fatih/color"
)

// LogLevel is the severity of a log line.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelSuccess
	LevelWarning
	LevelError
)

// levelStyle holds everything a format needs to decorate one level.
type levelStyle struct {
	tag    string
	circle string
	symbol string
	attrs  []color.Attribute
}

var levelStyles = map[LogLevel]levelStyle{
	LevelDebug:   {"DEBUG", "🟣", "●", []color.Attribute{color.FgMagenta}},
	LevelInfo:    {"INFO", "🔵", "◆", []color.Attribute{color.FgBlue}},
	LevelSuccess: {"SUCCESS", "🟢", "✓", []color.Attribute{color.FgGreen}},
	LevelWarning: {"WARN", "🟡", "▲", []color.Attribute{color.FgYellow}},
	LevelError:   {"ERROR", "🔴", "✗", []color.Attribute{color.FgRed, color.Bold}},
}

func (l LogLevel) String() string {
	if s, ok := levelStyles[l]; ok {
		return s.tag
	}
	return "UNKNOWN"
}

// LogFormat selects how a line is prefixed.
type LogFormat int

const (
	LogFormatCircles LogFormat = iota // 🔵 🟢 🟡 🔴 🟣
	LogFormatSymbols                  // ◆ ✓ ▲ ✗ ●
	LogFormatTagged                   // [INFO] [WARN] ...
	LogFormatPlain
	LogFormatCustom // see WithTemplate
)

// Logger writes leveled lines through an IOManager. Parser tracing goes to
// Debug, parse warnings to Warning.
type Logger struct {
	io           *IOManager
	format       LogFormat
	tmpl         *template.Template
	overrides    map[LogLevel]string
	minLevel     LogLevel
	withTime     bool
	timeFormat   string
	errorsStderr bool
	now          func() time.Time
}

// templateData is the value a custom template is executed against.
type templateData struct {
	Level   string
	Time    string
	Message string
	Prefix  string
}

// NewLogger returns a logger with circle prefixes that sends warnings and
// errors to stderr.
func NewLogger(io *IOManager) *Logger {
	return &Logger{
		io:           io,
		format:       LogFormatCircles,
		errorsStderr: true,
		timeFormat:   "15:04:05",
		now:          time.Now,
	}
}

// WithFormat switches the prefix style and drops any SetPrefix overrides.
func (l *Logger) WithFormat(format LogFormat) *Logger {
	l.format = format
	l.overrides = nil
	return l
}

// WithTemplate switches to LogFormatCustom. The template sees .Level, .Time,
// .Message and .Prefix. An unparsable template falls back to the message alone.
func (l *Logger) WithTemplate(text string) *Logger {
	l.format = LogFormatCustom
	l.tmpl = template.Must(template.New("log").Parse("{{.Message}}"))
	if t, err := template.New("log").Parse(text); err == nil {
		l.tmpl = t
	}
	return l
}

// SetPrefix overrides the prefix of one level until the next WithFormat.
func (l *Logger) SetPrefix(level LogLevel, prefix string) *Logger {
	if l.overrides == nil {
		l.overrides = make(map[LogLevel]string)
	}
	l.overrides[level] = prefix
	return l
}

// WithLevel drops messages below level.
func (l *Logger) WithLevel(level LogLevel) *Logger {
	l.minLevel = level
	return l
}

func (l *Logger) WithTimestamp(enabled bool) *Logger {
	l.withTime = enabled
	return l
}

// WithTimeFormat takes a time.Format layout.
func (l *Logger) WithTimeFormat(layout string) *Logger {
	l.timeFormat = layout
	return l
}

// ErrorsToStderr controls whether warnings and errors go to stderr.
func (l *Logger) ErrorsToStderr(enabled bool) *Logger {
	l.errorsStderr = enabled
	return l
}

// Log writes one line at level.
func (l *Logger) Log(level LogLevel, format string, args ...any) {
	if level < l.minLevel {
		return
	}
	line := l.render(level, fmt.Sprintf(format, args...))
	fmt.Fprintln(l.writer(level), line)
}

func (l *Logger) Debug(format string, args ...any)   { l.Log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)    { l.Log(LevelInfo, format, args...) }
func (l *Logger) Success(format string, args ...any) { l.Log(LevelSuccess, format, args...) }
func (l *Logger) Warning(format string, args ...any) { l.Log(LevelWarning, format, args...) }
func (l *Logger) Error(format string, args ...any)   { l.Log(LevelError, format, args...) }

func (l *Logger) prefix(level LogLevel) string {
	if p, ok := l.overrides[level]; ok {
		return p
	}
	s := levelStyles[level]
	switch l.format {
	case LogFormatCircles:
		return s.circle
	case LogFormatSymbols:
		return s.symbol
	case LogFormatTagged:
		return "[" + s.tag + "]"
	}
	return ""
}

func (l *Logger) render(level LogLevel, msg string) string {
	if l.format == LogFormatCustom && l.tmpl != nil {
		var b strings.Builder
		data := templateData{
			Level:   level.String(),
			Time:    l.now().Format(l.timeFormat),
			Message: msg,
			Prefix:  l.prefix(level),
		}
		if err := l.tmpl.Execute(&b, data); err != nil {
			return l.paint(level, msg)
		}
		return l.paint(level, b.String())
	}
	// blank lines stay blank
	if strings.TrimSpace(msg) == "" {
		return msg
	}

	parts := make([]string, 0, 3)
	if p := l.prefix(level); p != "" && l.format != LogFormatPlain {
		parts = append(parts, p)
	}
	if l.withTime {
		parts = append(parts, "["+l.now().Format(l.timeFormat)+"]")
	}
	parts = append(parts, msg)
	return l.paint(level, strings.Join(parts, " "))
}

func (l *Logger) paint(level LogLevel, text string) string {
	s, ok := levelStyles[level]
	if !ok || !l.io.SupportsColor() {
		return text
	}
	c := color.New(s.attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

func (l *Logger) writer(level LogLevel) io.Writer {
	if l.errorsStderr && level >= LevelWarning {
		return l.io.Err()
	}
	return l.io.Out()
}
