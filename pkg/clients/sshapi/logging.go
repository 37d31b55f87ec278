package sshapi

import (
	"context"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "sshapi"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) DeployApplication(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "DeployApplication", err) }()

	return c.Client.DeployApplication(ctx)
}
