package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func newTestLogger(level Level, opts ...LoggerOption) (Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	all := append([]LoggerOption{
		WithLevel(level),
		WithFormatter(&TextFormatter{DisableTimestamp: true, DisableCaller: true}),
		WithOutput(NewWriterOutput(&buf)),
	}, opts...)
	return NewLogger(all...), &buf
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newTestLogger(WarnLevel)
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	out := buf.String()
	if strings.Contains(out, "DEBUG") || strings.Contains(out, "INFO") {
		t.Fatalf("low levels leaked: %q", out)
	}
	if !strings.Contains(out, "WARN w") || !strings.Contains(out, "ERROR e") {
		t.Fatalf("missing warn/error lines: %q", out)
	}
}

func TestFieldsAndFormatf(t *testing.T) {
	l, buf := newTestLogger(DebugLevel)
	l.Info("opened", Str("store", "default"), Int("blocks", 3))
	l.Infof("count=%d", 7)
	out := buf.String()
	if !strings.Contains(out, "store=default") || !strings.Contains(out, "blocks=3") {
		t.Fatalf("fields not rendered: %q", out)
	}
	if !strings.Contains(out, "count=7") {
		t.Fatalf("printf message missing: %q", out)
	}
}

func TestWithCarriesFields(t *testing.T) {
	l, buf := newTestLogger(InfoLevel)
	l2 := l.WithComponent("diag").With(Str("ns", "x"))
	l2.Info("hello")
	out := buf.String()
	if !strings.Contains(out, "component=diag") || !strings.Contains(out, "ns=x") {
		t.Fatalf("derived fields missing: %q", out)
	}
	// parent logger must not inherit the derived fields
	buf.Reset()
	l.Info("plain")
	if strings.Contains(buf.String(), "component=diag") {
		t.Fatalf("parent logger polluted: %q", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(
		WithLevel(InfoLevel),
		WithFormatter(&JSONFormatter{}),
		WithOutput(NewWriterOutput(&buf)),
	)
	l.Info("js", Str("k", "v"))
	var obj map[string]any
	if err := json.Unmarshal(buf.Bytes(), &obj); err != nil {
		t.Fatalf("invalid json output: %v (%q)", err, buf.String())
	}
	if obj["msg"] != "js" || obj["level"] != "INFO" || obj["k"] != "v" {
		t.Fatalf("unexpected json object: %v", obj)
	}
}

func TestRedaction(t *testing.T) {
	l, buf := newTestLogger(InfoLevel, WithRedaction("secret"))
	l.Info("login", Str("secret", "hunter2"), Str("user", "bob"))
	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Fatalf("secret leaked: %q", out)
	}
	if !strings.Contains(out, "[REDACTED]") || !strings.Contains(out, "user=bob") {
		t.Fatalf("redaction not applied cleanly: %q", out)
	}
}

func TestSampling(t *testing.T) {
	l, buf := newTestLogger(InfoLevel, WithSampling(1, 10))
	for i := 0; i < 11; i++ {
		l.Info("repeated")
	}
	n := strings.Count(buf.String(), "repeated")
	// first passes, then one of the next ten
	if n != 2 {
		t.Fatalf("want 2 sampled lines, got %d", n)
	}
}

func TestFatalUsesExitFunc(t *testing.T) {
	var code = -1
	var buf bytes.Buffer
	l := NewLogger(
		WithLevel(InfoLevel),
		WithFormatter(&TextFormatter{DisableTimestamp: true, DisableCaller: true}),
		WithOutput(NewWriterOutput(&buf)),
		WithExitFunc(func(c int) { code = c }),
	)
	l.Fatal("boom")
	if code != 1 {
		t.Fatalf("exit func not called with 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Fatalf("fatal message not written: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"debug": DebugLevel, "INFO": InfoLevel, "Warn": WarnLevel,
		"error": ErrorLevel, "fatal": FatalLevel,
	} {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q: got %v want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("bogus"); err == nil {
		t.Fatalf("expected error for bogus level")
	}
}
