package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/elbship/internal/config"
	"github.com/phrazzld/elbship/internal/mocks"
	"github.com/phrazzld/elbship/internal/platform/sns"
	"github.com/phrazzld/elbship/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:             "127.0.0.1",
			Port:             5000,
			LogLevel:         "debug",
			NotificationPath: "/sns",
		},
		Storage: config.StorageConfig{
			AccessKeyID:     "AKIDEXAMPLE",
			SecretAccessKey: "secret",
			Region:          "us-east-1",
			Scheme:          "https",
			TimeoutSeconds:  5,
		},
		Sink: config.SinkConfig{
			Endpoint:       "http://logs-01.loggly.com",
			Token:          "token",
			Tag:            "elb",
			Format:         "hybrid",
			TimeoutSeconds: 5,
		},
		Task: config.TaskConfig{
			MaxTries:           15,
			BackoffBaseSeconds: 1,
			IdlePauseSeconds:   0,
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewApplication(t *testing.T) {
	t.Run("real clients", func(t *testing.T) {
		app, err := newApplication(testConfig(), discardLogger(), appDeps{})
		require.NoError(t, err)
		assert.NotNil(t, app.runner)
		assert.NotNil(t, app.notifications)
		assert.Equal(t, 0, app.queue.Len())
	})

	t.Run("unknown sink format", func(t *testing.T) {
		cfg := testConfig()
		cfg.Sink.Format = "xml"
		_, err := newApplication(cfg, discardLogger(), appDeps{})
		assert.Error(t, err)
	})

	t.Run("missing storage credentials", func(t *testing.T) {
		cfg := testConfig()
		cfg.Storage.AccessKeyID = ""
		_, err := newApplication(cfg, discardLogger(), appDeps{})
		assert.Error(t, err)
	})
}

// startApp serves app on a loopback port and returns its base URL and a
// function that shuts it down and returns serve's error.
func startApp(t *testing.T, app *application) (string, func() error) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.serve(ctx, ln)
	}()

	stop := func() error {
		cancel()
		select {
		case err := <-errCh:
			return err
		case <-time.After(5 * time.Second):
			return errors.New("serve did not return")
		}
	}
	return "http://" + ln.Addr().String(), stop
}

func postNotification(t *testing.T, baseURL string, objects ...testutils.S3Object) {
	t.Helper()
	body := testutils.SNSEnvelope(sns.TypeNotification, testutils.S3EventMessage(objects...), "")
	req, err := http.NewRequest(http.MethodPost, baseURL+"/sns", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set(sns.MessageTypeHeader, sns.TypeNotification)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func getHealth(t *testing.T, baseURL string) healthResponse {
	t.Helper()
	resp, err := http.Get(baseURL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	return health
}

func TestServe_ShipsNotifiedObjects(t *testing.T) {
	fetcher := &mocks.MockFetcher{
		Body: []byte(testutils.AccessLogBody(testutils.CurrentRecord, testutils.LegacyRecord)),
	}
	forwarded := make(chan mocks.ForwardCall, 2)
	forwarder := &mocks.MockForwarder{
		ForwardFn: func(ctx context.Context, lines []string, contentType string) error {
			forwarded <- mocks.ForwardCall{Lines: lines, ContentType: contentType}
			return nil
		},
	}
	app, err := newApplication(testConfig(), discardLogger(), appDeps{
		fetcher:   fetcher,
		forwarder: forwarder,
		confirmer: &mocks.MockConfirmer{},
	})
	require.NoError(t, err)

	baseURL, stop := startApp(t, app)
	postNotification(t, baseURL,
		testutils.S3Object{Bucket: "logs", Key: "a.log"},
		testutils.S3Object{Bucket: "logs", Key: "b.log"})

	for i := 0; i < 2; i++ {
		select {
		case call := <-forwarded:
			assert.Len(t, call.Lines, 2)
			assert.Equal(t, "text/plain", call.ContentType)
		case <-time.After(5 * time.Second):
			t.Fatal("records were not forwarded")
		}
	}
	assert.Equal(t, []string{
		"https://logs.s3.amazonaws.com/a.log",
		"https://logs.s3.amazonaws.com/b.log",
	}, fetcher.URLs())

	health := getHealth(t, baseURL)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 0, health.PendingTasks)

	require.NoError(t, stop())
}

func TestServe_CountsDroppedTasks(t *testing.T) {
	cfg := testConfig()
	cfg.Task.MaxTries = 0
	attempts := make(chan struct{}, 1)
	app, err := newApplication(cfg, discardLogger(), appDeps{
		fetcher: &mocks.MockFetcher{
			FetchFn: func(ctx context.Context, url string) ([]byte, error) {
				attempts <- struct{}{}
				return nil, errors.New("access denied")
			},
		},
		forwarder: &mocks.MockForwarder{},
		confirmer: &mocks.MockConfirmer{},
	})
	require.NoError(t, err)

	baseURL, stop := startApp(t, app)
	postNotification(t, baseURL, testutils.S3Object{Bucket: "logs", Key: "a.log"})

	select {
	case <-attempts:
	case <-time.After(5 * time.Second):
		t.Fatal("object was never fetched")
	}
	require.Eventually(t, func() bool {
		return app.dropped.Load() == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(1), getHealth(t, baseURL).DroppedTasks)

	require.NoError(t, stop())
}

func TestServe_ConfirmsSubscription(t *testing.T) {
	confirmer := &mocks.MockConfirmer{}
	app, err := newApplication(testConfig(), discardLogger(), appDeps{
		fetcher:   &mocks.MockFetcher{},
		forwarder: &mocks.MockForwarder{},
		confirmer: confirmer,
	})
	require.NoError(t, err)

	baseURL, stop := startApp(t, app)

	const subscribeURL = "https://sns.us-east-1.amazonaws.com/?Action=ConfirmSubscription"
	body := testutils.SNSEnvelope(sns.TypeSubscriptionConfirmation, "confirm", subscribeURL)
	req, err := http.NewRequest(http.MethodPost, baseURL+"/sns", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set(sns.MessageTypeHeader, sns.TypeSubscriptionConfirmation)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{subscribeURL}, confirmer.URLs())
	assert.Equal(t, 0, app.queue.Len())

	require.NoError(t, stop())
}
