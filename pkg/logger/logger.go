package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	// Create logger
	logger := slog.New(handler)

	return &Logger{
		Logger: logger,
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Business logic logging methods

// LogReservationCreated logs when a pending reservation is created
func (l *Logger) LogReservationCreated(ctx context.Context, bookingID string, x, y int, tier string, amountCents int64) {
	l.Logger.InfoContext(ctx,
		"Reservation Created",
		slog.String("booking_id", bookingID),
		slog.Int("slot_x", x),
		slog.Int("slot_y", y),
		slog.String("tier", tier),
		slog.Int64("amount_cents", amountCents),
	)
}

// LogBookingActivated logs when a booking transitions to active
func (l *Logger) LogBookingActivated(ctx context.Context, bookingID, sessionRef string) {
	l.Logger.InfoContext(ctx,
		"Booking Activated",
		slog.String("booking_id", bookingID),
		slog.String("session_ref", sessionRef),
	)
}

// LogBookingCancelled logs when a booking is cancelled
func (l *Logger) LogBookingCancelled(ctx context.Context, bookingID, reason string) {
	l.Logger.InfoContext(ctx,
		"Booking Cancelled",
		slog.String("booking_id", bookingID),
		slog.String("reason", reason),
	)
}

// LogOfferSubmitted logs when a buyout offer is submitted
func (l *Logger) LogOfferSubmitted(ctx context.Context, offerID, bookingID string, amountCents int64) {
	l.Logger.InfoContext(ctx,
		"Buyout Offer Submitted",
		slog.String("offer_id", offerID),
		slog.String("booking_id", bookingID),
		slog.Int64("amount_cents", amountCents),
	)
}

// LogOfferResolved logs when a buyout offer reaches a terminal state
func (l *Logger) LogOfferResolved(ctx context.Context, offerID, decision string) {
	l.Logger.InfoContext(ctx,
		"Buyout Offer Resolved",
		slog.String("offer_id", offerID),
		slog.String("decision", decision),
	)
}

// LogSweepResult logs a completed sweep pass
func (l *Logger) LogSweepResult(ctx context.Context, sweep string, affected int64) {
	l.Logger.InfoContext(ctx,
		"Sweep Completed",
		slog.String("sweep", sweep),
		slog.Int64("rows_affected", affected),
	)
}

// LogOperatorOverride logs a privileged mutation on the operator channel
func (l *Logger) LogOperatorOverride(ctx context.Context, actor, action, targetID string) {
	l.Logger.WarnContext(ctx,
		"Operator Override",
		slog.String("actor", actor),
		slog.String("action", action),
		slog.String("target_id", targetID),
	)
}

// LogNotificationFailure logs a failed fire-and-forget notification
func (l *Logger) LogNotificationFailure(ctx context.Context, kind, recipient string, err error) {
	l.Logger.WarnContext(ctx,
		"Notification Failed",
		slog.String("kind", kind),
		slog.String("recipient", recipient),
		slog.String("error", err.Error()),
	)
}

// Helper methods for common patterns

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.InfoContext(ctx, msg, args...)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
