package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/teemow/workspace-mcp/internal/logging"
)

// ToolInvocation captures one MCP tool call for audit logging.
type ToolInvocation struct {
	Tool      string
	Account   string // resolved account email
	Service   string // google service the tool targets
	Operation string

	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	TraceID string
	SpanID  string
}

// NewToolInvocation starts an invocation record.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{Tool: tool, StartTime: time.Now()}
}

// WithAccount sets the account the tool acts for.
func (ti *ToolInvocation) WithAccount(account string) *ToolInvocation {
	ti.Account = account
	return ti
}

// WithService sets the Google service the tool targets.
func (ti *ToolInvocation) WithService(service string) *ToolInvocation {
	ti.Service = service
	return ti
}

// WithSpanContext attaches the active trace identifiers, if any.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		ti.TraceID = sc.TraceID().String()
		ti.SpanID = sc.SpanID().String()
	}
	return ti
}

// Complete finalizes the record.
func (ti *ToolInvocation) Complete(success bool, err error) {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
}

// Status returns the status label for the invocation.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// AuditLogger writes one structured record per tool invocation.
type AuditLogger struct {
	logger *slog.Logger
	config AuditConfig
}

// NewAuditLogger creates an audit logger. A nil slog logger falls back to
// slog.Default().
func NewAuditLogger(logger *slog.Logger, config AuditConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger, config: config}
}

// Log emits the audit record for a completed invocation.
func (a *AuditLogger) Log(ctx context.Context, ti *ToolInvocation) {
	if a == nil || !a.config.Enabled {
		return
	}

	account := logging.AnonymizeEmail(ti.Account)
	if a.config.IncludePII {
		account = ti.Account
	}

	attrs := []slog.Attr{
		slog.String(logging.KeyTool, ti.Tool),
		slog.String(logging.KeyAccount, account),
		slog.Duration(logging.KeyDuration, ti.Duration),
		slog.Bool("success", ti.Success),
	}
	if ti.Service != "" {
		attrs = append(attrs, slog.String(logging.KeyService, ti.Service))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String(logging.KeyError, ti.Error))
	}

	a.logger.LogAttrs(ctx, slog.LevelInfo, "tool invocation", attrs...)
}
