package telemetry

import (
	"context"
	"strings"
	"time"

	"go.goodgym.dev/launcher/internal/core/ports"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LogBridge implements sdktrace.SpanProcessor by logging every finished span at debug level.
type LogBridge struct {
	logger ports.Logger
}

var _ sdktrace.SpanProcessor = (*LogBridge)(nil)

// NewLogBridge returns a new LogBridge.
func NewLogBridge(logger ports.Logger) *LogBridge {
	return &LogBridge{logger: logger}
}

// OnStart is called when a span starts.
func (b *LogBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}

	var sb strings.Builder
	sb.WriteString(s.Name())
	sb.WriteString(" took ")
	sb.WriteString(s.EndTime().Sub(s.StartTime()).Round(time.Millisecond).String())

	for _, kv := range s.Attributes() {
		sb.WriteString(" ")
		sb.WriteString(string(kv.Key))
		sb.WriteString("=")
		sb.WriteString(kv.Value.Emit())
	}

	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "failed"
		}
		sb.WriteString(" error=")
		sb.WriteString(desc)
	}

	b.logger.Debug(sb.String())
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(_ context.Context) error {
	return nil
}
