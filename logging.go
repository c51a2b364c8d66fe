package bongo

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Environment variables read by NewLogger and LogLevel.
const (
	envLogLevel = "BONGO_LOG_LEVEL"
	envJSONLog  = "BONGO_JSON_LOG"
)

// logPrefix marks every non-JSON log line.
const logPrefix = "[bongo] "

// NewLogger creates an hclog logger writing to output (standard error when
// nil). BONGO_JSON_LOG=1 switches to JSON lines; otherwise each line is
// prefixed with "[bongo] ".
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	jsonFormat := os.Getenv(envJSONLog) == "1"
	if !jsonFormat {
		output = NewPrefixWriter(logPrefix, output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// LogLevel returns BONGO_LOG_LEVEL, or "warn" when unset.
func LogLevel() string {
	if level := os.Getenv(envLogLevel); level != "" {
		return level
	}
	return "warn"
}

// PrefixWriter wraps an io.Writer and adds a prefix to each line.
type PrefixWriter struct {
	prefix []byte
	writer io.Writer
	buffer bytes.Buffer
}

// NewPrefixWriter creates a new PrefixWriter.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{prefix: []byte(prefix), writer: w}
}

// Write buffers p and writes every complete line with the prefix in front.
// An unterminated tail waits for the next Write.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	pw.buffer.Write(p)
	for {
		data := pw.buffer.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		if _, err := pw.writer.Write(pw.prefix); err != nil {
			return 0, err
		}
		if _, err := pw.writer.Write(data[:i+1]); err != nil {
			return 0, err
		}
		pw.buffer.Next(i + 1)
	}
	return len(p), nil
}
