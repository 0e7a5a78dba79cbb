package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

func GetLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	case "", "info":
		return logrus.InfoLevel, nil
	case "warn":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.DebugLevel, fmt.Errorf("invalid log level: %v", level)
	}
}

func GetFormatter(format string) (logrus.Formatter, error) {
	switch format {
	case "", "text":
		return &prettyFormatter{}, nil
	case "json-pretty":
		return &logrus.JSONFormatter{PrettyPrint: true}, nil
	case "json":
		return &logrus.JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("invalid log format: %v", format)
	}
}

// New builds a logger writing to w.
func New(level, format string, w io.Writer) (*logrus.Logger, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return nil, err
	}
	formatter, err := GetFormatter(format)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(formatter)
	return logger, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// prettyFormatter prints "[LEVEL] message" followed by one indented line per
// field, in key order.
type prettyFormatter struct{}

func (p *prettyFormatter) Format(e *logrus.Entry) ([]byte, error) {
	b := new(bytes.Buffer)
	fmt.Fprintf(b, "[%s] %s\n", strings.ToUpper(e.Level.String()), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var val string
		switch v := e.Data[k].(type) {
		case string:
			val = v
		case error:
			val = v.Error()
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			val = string(raw)
		}
		fmt.Fprintf(b, "  %s = %s\n", k, val)
	}
	return b.Bytes(), nil
}
