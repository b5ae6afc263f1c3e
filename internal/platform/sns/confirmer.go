package sns

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ErrConfirmFailed wraps a failed subscription confirmation.
var ErrConfirmFailed = errors.New("failed to confirm subscription")

// DefaultConfirmTimeout bounds the confirmation GET.
const DefaultConfirmTimeout = 10 * time.Second

// HTTPConfirmer confirms subscriptions by visiting their SubscribeURL.
type HTTPConfirmer struct {
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewHTTPConfirmer creates a confirmer. A nil client uses a default one.
func NewHTTPConfirmer(client *http.Client, logger *slog.Logger) *HTTPConfirmer {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPConfirmer{
		client:  client,
		timeout: DefaultConfirmTimeout,
		logger:  logger.With("component", "sns_confirmer"),
	}
}

// Confirm issues one GET to subscribeURL.
func (c *HTTPConfirmer) Confirm(ctx context.Context, subscribeURL string) error {
	if subscribeURL == "" {
		return fmt.Errorf("%w: empty SubscribeURL", ErrConfirmFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, subscribeURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfirmFailed, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfirmFailed, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrConfirmFailed, resp.StatusCode)
	}

	c.logger.Info("subscription confirmed", "status", resp.StatusCode)
	return nil
}
