package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	kit "recipescraper/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"DEBUG":    zerolog.DebugLevel,
		" info ":   zerolog.InfoLevel,
		"warn":     zerolog.WarnLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"":         zerolog.DebugLevel,
		"nonsense": zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := level(in); got != want {
			t.Fatalf("level(%q) = %v, want %v", in, got, want)
		}
	}
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var m map[string]any
	if err := json.Unmarshal(lines[len(lines)-1], &m); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	return m
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "info", Format: "json", Service: "recipescraper-api", Component: "fetch", Writer: &buf})

	l.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug must be filtered at info: %s", buf.String())
	}

	l.Info().Str("url", "https://pie.example").Msg("fetched")
	m := lastLine(t, &buf)
	if m["service"] != "recipescraper-api" || m["component"] != "fetch" || m["message"] != "fetched" {
		t.Fatalf("fields = %v", m)
	}
	if _, ok := m["time"]; !ok {
		t.Fatalf("timestamp missing: %v", m)
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "debug", Format: "console", Service: "svc-a", Writer: &buf})
	l.Info().Msg("console-msg")
	kit.MustContain(t, buf.String(), "console-msg")
	kit.MustContain(t, buf.String(), "svc-a")
}

func TestWithRequest(t *testing.T) {
	var buf bytes.Buffer
	base := New(Options{Level: "debug", Format: "json", Writer: &buf})
	ctx := into(context.Background(), &base)

	ctx = WithRequest(ctx, "req-123", "")
	ctx = WithRequest(ctx, "", "https://cook.example/pie")
	C(ctx).Info().Msg("scrape")

	m := lastLine(t, &buf)
	if m["request_id"] != "req-123" || m["target"] != "https://cook.example/pie" {
		t.Fatalf("fields = %v", m)
	}
}

func TestC_FallsBackToRoot(t *testing.T) {
	if C(context.Background()) != Get() {
		t.Fatalf("empty ctx should yield the root logger")
	}
	if Named("") != Get() {
		t.Fatalf("blank component should yield the root logger")
	}
	kit.MustNotPanic(t, func() { Named("cli").Debug().Msg("named") })
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "")
	t.Setenv("LOG_COMPONENT", "cli")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Component != "cli" {
		t.Fatalf("options = %+v", opt)
	}
	if opt.Service != "recipescraper" {
		t.Fatalf("default service = %q", opt.Service)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("caller/sample = %+v", opt)
	}
}
