package httpclient

import (
	"net/http"
	"strconv"
	"time"

	"bookai/backend/internal/logger"
	"bookai/backend/internal/metrics"

	"github.com/sirupsen/logrus"
)

// Config holds the shared outbound client settings
type Config struct {
	Timeout   time.Duration
	Transport http.RoundTripper
}

// loggingRoundTripper logs and times every outbound call and forwards the
// inbound request ID to the provider.
type loggingRoundTripper struct {
	inner http.RoundTripper
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	ctx := req.Context()

	if id := logger.IDFrom(ctx); id != "" {
		req = req.Clone(ctx)
		req.Header.Set("X-Request-Id", id)
	}

	resp, err := l.inner.RoundTrip(req)
	duration := time.Since(start)

	// query strings may carry user text or API keys, so only host and path are logged
	fields := logrus.Fields{
		"method":   req.Method,
		"host":     req.URL.Host,
		"path":     req.URL.Path,
		"duration": duration.String(),
	}
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(req.URL.Host, "error").Observe(duration.Seconds())
		logger.For(ctx).WithFields(fields).WithError(err).Warn("outbound request failed")
		return nil, err
	}

	metrics.UpstreamRequestDuration.WithLabelValues(req.URL.Host, strconv.Itoa(resp.StatusCode)).Observe(duration.Seconds())
	fields["status"] = resp.StatusCode
	logger.For(ctx).WithFields(fields).Debug("outbound request completed")
	return resp, nil
}

// New builds an http.Client with logging. A zero Timeout means 10 seconds.
func New(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &loggingRoundTripper{inner: transport},
	}
}
