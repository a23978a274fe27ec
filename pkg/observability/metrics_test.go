// Package observability tests
package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordModelCall(t *testing.T) {
	m := NewMetrics()
	m.RecordModelCall(2*time.Second, 1000, 200)
	m.RecordModelCall(time.Second, 500, 100)

	s := m.Snapshot()
	assert.Equal(t, 2, s.ModelCalls)
	assert.Equal(t, 3*time.Second, s.ModelTime)
	assert.Equal(t, 1500, s.PromptTokens)
	assert.Equal(t, 300, s.OutputTokens)
}

func TestMetricsCacheHits(t *testing.T) {
	m := NewMetrics()
	m.RecordCacheHit(true)
	m.RecordCacheHit(false)
	m.RecordCacheHit(false)

	s := m.Snapshot()
	assert.Equal(t, 1, s.CacheHits)
	assert.Equal(t, 2, s.CacheMisses)
}

func TestMetricsConcurrentAccess(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordModelCall(time.Millisecond, 1, 1)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, m.Snapshot().ModelCalls)
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOptions(Options{Level: "info", Format: "json", Output: &buf})

	log.Debug("hidden")
	log.With(String("run_id", "abc")).Warn("file truncated",
		String("file", "big.go"), Int("limit", 10), Err(errors.New("boom")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "file truncated", rec["msg"])
	assert.Equal(t, "abc", rec["run_id"])
	assert.Equal(t, "big.go", rec["file"])
	assert.Equal(t, "boom", rec["error"])
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOptions(Options{Level: "debug", Format: "console", Output: &buf})

	log.Info("yielding chunk", Int("chunk", 1), String("path", "a b.go"))

	out := buf.String()
	assert.Contains(t, out, "yielding chunk")
	assert.Contains(t, out, "chunk=")
	assert.Contains(t, out, `"a b.go"`)
}

func TestConsoleHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(&buf, slog.LevelInfo)

	sl := slog.New(h.WithAttrs([]slog.Attr{slog.Int("a", 1)}).WithGroup("g"))
	sl.Info("msg", "b", 2)
	out := buf.String()
	assert.Contains(t, out, " a=1")
	assert.NotContains(t, out, "g.a=")
	assert.Contains(t, out, " g.b=2")

	buf.Reset()
	sl = slog.New(h.WithGroup("g").WithAttrs([]slog.Attr{slog.Int("a", 1)}).WithGroup("h"))
	sl.Info("msg", slog.Group("s", "c", 3))
	out = buf.String()
	assert.Contains(t, out, " g.a=1")
	assert.Contains(t, out, " g.h.s.c=3")
	assert.NotContains(t, out, "g.h.a=")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", ParseLevel("debug").String())
	assert.Equal(t, "WARN", ParseLevel("WARNING").String())
	assert.Equal(t, "ERROR", ParseLevel("error").String())
	assert.Equal(t, "INFO", ParseLevel("bogus").String())
}

func TestNopLogger(t *testing.T) {
	log := OrNop(nil)
	log.Info("nothing")
	assert.NotNil(t, log.With(String("k", "v")))
}

func TestBytesField(t *testing.T) {
	assert.Equal(t, "1.5 kB", Bytes("size", 1500).Value)
	assert.Equal(t, "0 B", Bytes("size", -1).Value)
}
