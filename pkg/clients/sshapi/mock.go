package sshapi

import (
	"context"
)

type MockClient struct {
	DeployApplicationFunc func(ctx context.Context) (err error)
}

func (c *MockClient) DeployApplication(ctx context.Context) (err error) {
	if c.DeployApplicationFunc == nil {
		return
	}
	return c.DeployApplicationFunc(ctx)
}
