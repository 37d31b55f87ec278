package webhookapi

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
	"github.com/deckhand-ci/deckhand-ci-runner/pkg/contracts"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "webhookapi"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) SendBuildReport(ctx context.Context, report contracts.BuildReport) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "SendBuildReport"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.SendBuildReport(ctx, report)
}
