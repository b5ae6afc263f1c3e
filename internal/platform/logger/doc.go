// Package logger builds the process-wide JSON slog logger. Every line goes to
// stdout so the shipper's own logs stay separate from the access logs it
// forwards.
package logger
