package webhookapi

import (
	"context"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
	"github.com/deckhand-ci/deckhand-ci-runner/pkg/contracts"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "webhookapi"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) SendBuildReport(ctx context.Context, report contracts.BuildReport) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "SendBuildReport", err) }()

	return c.Client.SendBuildReport(ctx, report)
}
