package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		" INFO ":  Info,
		"":        Info,
		"warning": Warn,
		"error":   Error,
		"verbose": Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%v, want %v", in, got, want)
		}
	}
}

func TestJSONLogger_FieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "virtual-pet", Output: &buf})

	l.Debug("hidden", nil)
	l.With(map[string]any{"component": "pets"}).Info("decay applied", map[string]any{"count": 3, " ": "skip"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (debug filtered), got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if entry["msg"] != "decay applied" || entry["app"] != "virtual-pet" || entry["component"] != "pets" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["count"] != float64(3) {
		t.Fatalf("expected count=3, got %v", entry["count"])
	}
	if _, ok := entry[" "]; ok {
		t.Fatalf("blank keys must be dropped")
	}
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Output: &buf})
	l.Warn("slow", map[string]any{"ms": 12})

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "msg=slow") || !strings.Contains(out, "ms=12") {
		t.Fatalf("unexpected text output: %q", out)
	}
}
