// pkg/telemetry/telemetry.go
package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var tracer trace.Tracer

// Init configures OpenTelemetry; call this early in main().
// Tracing is opt-in: without the marker file a noop provider is installed.
func Init(service string) error {
	if !IsEnabled() {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		tracer = tp.Tracer(service)
		return nil
	}

	telemetryDir := filepath.Dir(telemetryFilePath())
	if err := os.MkdirAll(telemetryDir, xdg.DirPermStandard); err != nil {
		return cerr.Wrap(err, "failed to create telemetry directory")
	}

	// Spans append to a local JSONL file; nothing leaves the machine.
	file, err := os.OpenFile(telemetryFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, xdg.FilePermStandard)
	if err != nil {
		return cerr.Wrap(err, "failed to open telemetry file")
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(file),
		stdouttrace.WithoutTimestamps(),
	)
	if err != nil {
		file.Close()
		return cerr.Wrap(err, "failed to create file exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(
			sdkresource.NewWithAttributes(
				semconv.SchemaURL,
				attribute.String("service.name", service),
				attribute.String("host.name", hostname()),
			),
		),
	)

	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(service)
	return nil
}

// Start a telemetry span with optional attributes.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if tracer == nil {
		tp := noop.NewTracerProvider()
		tracer = tp.Tracer("sysdeploy")
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// TrackCommand records one span summarizing a finished command invocation.
func TrackCommand(ctx context.Context, name string, success bool, durationMs int64, tags map[string]string) {
	if !IsEnabled() {
		return
	}

	_, span := Start(ctx, name)
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
		attribute.Int64("duration_ms", durationMs),
		attribute.String("user_id", AnonTelemetryID()),
	}

	for k, v := range tags {
		if k == "args" && len(v) > 256 {
			v = v[:256] + "..."
		}
		attrs = append(attrs, attribute.String(k, v))
	}

	span.SetAttributes(attrs...)
}

// IsEnabled reports whether the operator has opted in to local tracing.
func IsEnabled() bool {
	_, err := os.Stat(xdg.XDGStatePath("sysdeploy", "telemetry_on"))
	return err == nil
}

// AnonTelemetryID returns a stable anonymous identifier for this installation.
func AnonTelemetryID() string {
	idPath := xdg.XDGStatePath("sysdeploy", "telemetry_id")
	if data, err := os.ReadFile(idPath); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}

	id := uuid.New().String()
	if err := xdg.EnsureDir(idPath); err == nil {
		_ = os.WriteFile(idPath, []byte(id+"\n"), xdg.FilePermOwnerReadWrite)
	}
	return id
}

func telemetryFilePath() string {
	return xdg.XDGStatePath("sysdeploy", "telemetry.jsonl")
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}
