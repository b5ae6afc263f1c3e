package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/elbship/internal/domain/elblog"
	"github.com/phrazzld/elbship/internal/task"
)

// LogFetcher retrieves the raw body of a storage object.
type LogFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// BatchForwarder delivers rendered lines to the sink as a single request.
type BatchForwarder interface {
	Forward(ctx context.Context, lines []string, contentType string) error
}

// LogShipper ships one access log object per Process call.
type LogShipper struct {
	fetcher   LogFetcher
	forwarder BatchForwarder
	format    elblog.Format
	logger    *slog.Logger
}

// NewLogShipper creates a LogShipper rendering records in format.
func NewLogShipper(
	fetcher LogFetcher,
	forwarder BatchForwarder,
	format elblog.Format,
	logger *slog.Logger,
) (*LogShipper, error) {
	if fetcher == nil || forwarder == nil {
		return nil, errors.New("fetcher and forwarder are required")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if _, err := elblog.ParseFormat(string(format)); err != nil {
		return nil, err
	}

	return &LogShipper{
		fetcher:   fetcher,
		forwarder: forwarder,
		format:    format,
		logger:    logger.With("component", "log_shipper"),
	}, nil
}

// Process fetches the object at url, renders every record and forwards the
// batch. An object without records is acknowledged without contacting the sink.
func (s *LogShipper) Process(ctx context.Context, url string) task.Result {
	s.logger.Debug("processing log object", "url", url)

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return task.Failure(task.StageFetch, err)
	}

	records, err := elblog.Parse(bytes.NewReader(body))
	if err != nil {
		return task.Failure(task.StageParse, err)
	}
	if len(records) == 0 {
		s.logger.Info("log object has no records", "url", url, "bytes", len(body))
		return task.Success(0)
	}

	lines, err := elblog.Render(records, s.format)
	if err != nil {
		return task.Failure(task.StageParse, err)
	}

	if err := s.forwarder.Forward(ctx, lines, s.format.ContentType()); err != nil {
		return task.Failure(task.StageForward, fmt.Errorf("%d records: %w", len(lines), err))
	}

	return task.Success(len(lines))
}

var _ task.Processor = (*LogShipper)(nil)
