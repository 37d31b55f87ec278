package gitapi

import (
	"context"
)

type MockClient struct {
	CloneRevisionFunc func(ctx context.Context) (err error)
}

func (c *MockClient) CloneRevision(ctx context.Context) (err error) {
	if c.CloneRevisionFunc == nil {
		return
	}
	return c.CloneRevisionFunc(ctx)
}
