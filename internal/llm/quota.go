package llm

import (
	"context"

	"bookai/backend/internal/logger"
	"bookai/backend/internal/metrics"
)

type quotaTrackingClient struct {
	Client
}

// WithQuotaTracking counts and logs rate limit and quota rejections of c
func WithQuotaTracking(c Client) Client {
	return &quotaTrackingClient{Client: c}
}

func (c *quotaTrackingClient) Complete(ctx context.Context, req Request) (string, error) {
	text, err := c.Client.Complete(ctx, req)
	if IsQuotaError(err) {
		metrics.LLMQuotaErrors.Inc()
		logger.For(ctx).WithField("provider", c.Name()).WithError(err).Warn("LLM quota exhausted")
	}
	return text, err
}
