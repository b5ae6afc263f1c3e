package s3

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

	"github.com/aws/aws-sdk-go/aws/credentials"
	v4 "github.com/aws/aws-sdk-go/aws/signer/v4"
	"go.chromium.org/luci/common/clock"

	"github.com/phrazzld/elbship/internal/config"
)

// DefaultTimeout bounds a whole fetch when the configuration leaves it unset.
const DefaultTimeout = 5 * time.Second

// serviceName is the SigV4 signing name of S3.
const serviceName = "s3"

// Fetcher retrieves object bodies with signed GET requests.
type Fetcher struct {
	client  *http.Client
	signer  *v4.Signer
	region  string
	timeout time.Duration
	logger  *slog.Logger
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a Fetcher signing with the static credentials in cfg.
func NewFetcher(cfg config.StorageConfig, logger *slog.Logger, opts ...Option) (*Fetcher, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("%w: access key id and secret access key are required", ErrInvalidConfig)
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: region is required", ErrInvalidConfig)
	}

	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	creds := credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	f := &Fetcher{
		client:  &http.Client{},
		signer:  v4.NewSigner(creds),
		region:  cfg.Region,
		timeout: timeout,
		logger:  logger.With("component", "s3_fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch downloads the object at objectURL. The request is signed at the time
// of the clock carried by ctx. Timeouts, transport errors and non-2xx
// statuses are all returned wrapped in ErrFetchFailed.
func (f *Fetcher) Fetch(ctx context.Context, objectURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, objectURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid url %q: %v", ErrFetchFailed, objectURL, err)
	}
	if _, err := f.signer.Sign(req, nil, serviceName, f.region, clock.Now(ctx)); err != nil {
		return nil, fmt.Errorf("%w: failed to sign request: %v", ErrFetchFailed, err)
	}

	started := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxSnippet))
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %v", ErrFetchFailed, err)
	}

	f.logger.Debug("fetched log object",
		"url", objectURL,
		"bytes", len(body),
		"duration", time.Since(started))
	return body, nil
}

// ObjectURL builds the virtual-hosted style URL of key in bucket. The key
// from an event notification is URL-encoded with '+' for spaces; it is
// decoded and re-escaped per path segment.
func ObjectURL(scheme, bucket, key string) string {
	if decoded, err := url.QueryUnescape(key); err == nil {
		key = decoded
	}

	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s://%s.s3.amazonaws.com/%s", scheme, bucket, strings.Join(segments, "/"))
}
