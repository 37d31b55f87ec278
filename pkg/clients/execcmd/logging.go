package execcmd

import (
	"context"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "execcmd"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) RunCommand(ctx context.Context, dir string, env []string, name string, args ...string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "RunCommand", err) }()

	return c.Client.RunCommand(ctx, dir, env, name, args...)
}
