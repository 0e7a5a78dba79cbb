package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestGetLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    logrus.Level
		wantErr bool
	}{
		{"", logrus.InfoLevel, false},
		{"DEBUG", logrus.DebugLevel, false},
		{"warn", logrus.WarnLevel, false},
		{"trace", logrus.TraceLevel, false},
		{"loud", logrus.DebugLevel, true},
	}
	for _, tc := range tests {
		got, err := GetLevel(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("GetLevel(%q) = %v, %v", tc.in, got, err)
		}
	}
}

func TestPrettyFormatter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", "text", &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.WithFields(logrus.Fields{"line": 3, "code": "array_kind_mismatch"}).Warn("diagnostic")
	logger.Debug("hidden")

	want := "[WARNING] diagnostic\n  code = array_kind_mismatch\n  line = 3\n"
	if buf.String() != want {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", "json", &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.WithField("phase", "parse").Debug("done")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if entry["msg"] != "done" || entry["phase"] != "parse" || entry["level"] != "debug" {
		t.Fatalf("unexpected entry %#v", entry)
	}
}

func TestInvalidFormat(t *testing.T) {
	if _, err := New("info", "xml", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
