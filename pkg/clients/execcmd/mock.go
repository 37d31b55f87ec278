package execcmd

import (
	"context"
)

type MockClient struct {
	RunCommandFunc func(ctx context.Context, dir string, env []string, name string, args ...string) (err error)
}

func (c *MockClient) RunCommand(ctx context.Context, dir string, env []string, name string, args ...string) (err error) {
	if c.RunCommandFunc == nil {
		return
	}
	return c.RunCommandFunc(ctx, dir, env, name, args...)
}
