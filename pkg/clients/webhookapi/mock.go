package webhookapi

import (
	"context"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/contracts"
)

type MockClient struct {
	SendBuildReportFunc func(ctx context.Context, report contracts.BuildReport) (err error)
}

func (c *MockClient) SendBuildReport(ctx context.Context, report contracts.BuildReport) (err error) {
	if c.SendBuildReportFunc == nil {
		return
	}
	return c.SendBuildReportFunc(ctx, report)
}
