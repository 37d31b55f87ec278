package gitapi

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "gitapi"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) CloneRevision(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "CloneRevision"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.CloneRevision(ctx)
}
