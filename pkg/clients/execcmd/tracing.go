package execcmd

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "execcmd"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) RunCommand(ctx context.Context, dir string, env []string, name string, args ...string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "RunCommand"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.RunCommand(ctx, dir, env, name, args...)
}
