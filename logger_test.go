package vpath

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs routes debug output into the returned buffer for the
// duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestDefaultLoggerIsSilent(t *testing.T) {
	ctx := context.Background()
	l := Logger()
	require.NotNil(t, l)
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		assert.False(t, l.Enabled(ctx, level), "level %v", level)
	}

	// Derived handlers stay silent.
	h := nopHandler{}
	assert.IsType(t, nopHandler{}, h.WithAttrs([]slog.Attr{slog.Int("contour", 1)}))
	assert.IsType(t, nopHandler{}, h.WithGroup("metrics"))
	assert.NoError(t, h.Handle(ctx, slog.Record{}))
}

func TestSetLoggerNil(t *testing.T) {
	buf := captureLogs(t)
	Logger().Info("before")
	assert.Contains(t, buf.String(), "before")

	SetLogger(nil)
	Logger().Error("after")
	assert.NotContains(t, buf.String(), "after")
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestOperationsLog(t *testing.T) {
	tests := []struct {
		name string
		run  func()
		want string
	}{
		{"measurement", func() {
			p := NewPath()
			p.MoveTo(0, 0)
			p.LineTo(10, 0)
			for range p.ComputeMetrics(false).All() {
			}
		}, "vpath: measured contour"},
		{"encoder growth", func() {
			p := NewPath()
			for i := range 200 {
				p.LineTo(float64(i), float64(i))
			}
			p.Encode()
		}, "vpath: command buffer grew"},
		{"combine", func() {
			Combine(Xor, rectPath(0, 0, 1, 1), rectPath(2, 2, 3, 3))
		}, "op=xor"},
		{"contour cache hit", func() {
			cc := NewContourCache(8)
			p := rectPath(0, 0, 4, 4)
			for range 2 {
				for range p.ComputeMetrics(false, WithContourCache(cc)).All() {
				}
			}
		}, "vpath: contour cache hit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			tt.run()
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			p := rectPath(0, 0, 1, 1)
			for range p.ComputeMetrics(true).All() {
			}
		})
		wg.Go(func() {
			SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
			SetLogger(nil)
		})
	}
	wg.Wait()
	assert.NotNil(t, Logger())
}

func BenchmarkDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("vpath: measured contour", "index", 0, "length", 1.0)
	}
}
