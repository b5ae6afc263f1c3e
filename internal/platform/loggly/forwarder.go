package loggly

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/elbship/internal/config"
)

// DefaultTimeout bounds a single bulk POST when the configuration leaves it unset.
const DefaultTimeout = 5 * time.Second

// maxSnippet bounds the response body kept in a StatusError.
const maxSnippet = 512

var (
	// ErrForwardFailed wraps every failure to deliver a batch.
	ErrForwardFailed = errors.New("failed to forward records")

	// ErrInvalidConfig is returned by NewForwarder for unusable settings.
	ErrInvalidConfig = errors.New("invalid sink configuration")
)

// StatusError reports a non-success response from the sink.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sink responded %d: %s", e.StatusCode, e.Body)
}

// Forwarder posts batches of lines to one bulk URL.
type Forwarder struct {
	client  *http.Client
	url     string
	timeout time.Duration
	logger  *slog.Logger
}

// BulkURL returns the bulk endpoint for token and tag under endpoint, e.g.
// http://logs-01.loggly.com/bulk/TOKEN/elb/bulk/.
func BulkURL(endpoint, token, tag string) string {
	return fmt.Sprintf("%s/bulk/%s/%s/bulk/",
		strings.TrimRight(endpoint, "/"),
		url.PathEscape(token),
		url.PathEscape(tag))
}

// NewForwarder creates a Forwarder for the sink described by cfg.
func NewForwarder(cfg config.SinkConfig, logger *slog.Logger, client *http.Client) (*Forwarder, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.Endpoint == "" || cfg.Token == "" || cfg.Tag == "" {
		return nil, fmt.Errorf("%w: endpoint, token and tag are required", ErrInvalidConfig)
	}
	if client == nil {
		client = &http.Client{}
	}

	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Forwarder{
		client:  client,
		url:     BulkURL(cfg.Endpoint, cfg.Token, cfg.Tag),
		timeout: timeout,
		logger:  logger.With("component", "loggly_forwarder"),
	}, nil
}

// Forward sends lines as one newline-joined body declared as contentType.
// Any 2xx response is success; everything else is wrapped in ErrForwardFailed.
func (f *Forwarder) Forward(ctx context.Context, lines []string, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body := strings.Join(lines, "\n")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrForwardFailed, err)
	}
	req.Header.Set("Content-Type", contentType)

	f.logger.Info("sending records to sink", "records", len(lines), "bytes", len(body))

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrForwardFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxSnippet))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %w", ErrForwardFailed, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		})
	}
	return nil
}
