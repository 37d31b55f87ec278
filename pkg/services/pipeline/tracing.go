package pipeline

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
)

// NewTracingService returns a new instance of a tracing Service.
func NewTracingService(s Service) Service {
	return &tracingService{s, "pipeline"}
}

type tracingService struct {
	Service Service
	prefix  string
}

func (s *tracingService) Run(ctx context.Context) (result Result) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "Run"))
	defer func() { api.FinishSpan(span) }()

	return s.Service.Run(ctx)
}
