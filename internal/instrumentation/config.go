package instrumentation

import (
	"fmt"
	"os"
	"strconv"
)

// Exporter types selectable via configuration.
const (
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// Status values for metric labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Google service names used as metric labels.
const (
	ServiceGmail    = "gmail"
	ServiceCalendar = "calendar"
	ServiceDrive    = "drive"
	ServiceDocs     = "docs"
	ServiceSheets   = "sheets"
	ServiceSlides   = "slides"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is the reported service name (default: workspace-mcp).
	ServiceName string

	// ServiceVersion is the build version.
	ServiceVersion string

	// Enabled determines whether instrumentation is active. Set
	// INSTRUMENTATION_ENABLED=false to run without metrics and tracing.
	Enabled bool

	// MetricsExporter is one of "prometheus", "otlp", "stdout".
	MetricsExporter string

	// TracingExporter is one of "otlp", "stdout", "none".
	TracingExporter string

	// OTLPEndpoint is the OTLP collector endpoint, host:port without a
	// protocol prefix.
	OTLPEndpoint string

	// OTLPInsecure disables TLS for OTLP export. Development only.
	OTLPInsecure bool

	// TraceSamplingRate is the trace sampling ratio in [0, 1].
	TraceSamplingRate float64

	// DetailedLabels enables high-cardinality labels such as the
	// anonymized account. Keep disabled in production.
	DetailedLabels bool

	// Audit configures audit logging of tool invocations.
	Audit AuditConfig
}

// AuditConfig holds configuration for audit logging.
type AuditConfig struct {
	// Enabled determines whether tool invocations are audit-logged.
	Enabled bool

	// IncludePII includes full account emails in audit records instead of
	// anonymized identifiers. Route such logs to secure storage.
	IncludePII bool
}

// DefaultConfig returns a Config populated from environment variables with
// sensible defaults.
func DefaultConfig() Config {
	return Config{
		ServiceName:       envOr("OTEL_SERVICE_NAME", "workspace-mcp"),
		ServiceVersion:    "unknown",
		Enabled:           envBoolOr("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:   envOr("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:   envOr("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:      envOr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:      envBoolOr("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate: envFloatOr("OTEL_TRACES_SAMPLER_ARG", 0.1),
		DetailedLabels:    envBoolOr("METRICS_DETAILED_LABELS", false),
		Audit: AuditConfig{
			Enabled:    envBoolOr("AUDIT_LOGGING_ENABLED", true),
			IncludePII: envBoolOr("AUDIT_LOGGING_INCLUDE_PII", false),
		},
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}

	switch c.MetricsExporter {
	case "", ExporterPrometheus, ExporterStdout:
	case ExporterOTLP:
		if c.OTLPEndpoint == "" {
			return fmt.Errorf("OTLP endpoint is required for the OTLP metrics exporter")
		}
	default:
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}

	switch c.TracingExporter {
	case "", ExporterNone, ExporterStdout:
	case ExporterOTLP:
		if c.OTLPEndpoint == "" {
			return fmt.Errorf("OTLP endpoint is required for the OTLP tracing exporter")
		}
	default:
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
