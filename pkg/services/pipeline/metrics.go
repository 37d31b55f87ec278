package pipeline

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
)

// NewMetricsService returns a new instance of a metrics Service.
func NewMetricsService(s Service, requestCount metrics.Counter, requestLatency metrics.Histogram) Service {
	return &metricsService{s, requestCount, requestLatency}
}

type metricsService struct {
	Service        Service
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (s *metricsService) Run(ctx context.Context) (result Result) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "Run", begin)
	}(time.Now())

	return s.Service.Run(ctx)
}
