package execcmd

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
)

// NewMetricsClient returns a new instance of a metrics Client.
func NewMetricsClient(c Client, requestCount metrics.Counter, requestLatency metrics.Histogram) Client {
	return &metricsClient{c, requestCount, requestLatency}
}

type metricsClient struct {
	Client         Client
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (c *metricsClient) RunCommand(ctx context.Context, dir string, env []string, name string, args ...string) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "RunCommand", begin)
	}(time.Now())

	return c.Client.RunCommand(ctx, dir, env, name, args...)
}
