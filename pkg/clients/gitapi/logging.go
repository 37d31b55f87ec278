package gitapi

import (
	"context"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "gitapi"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) CloneRevision(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "CloneRevision", err) }()

	return c.Client.CloneRevision(ctx)
}
