package execcmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
)

// Client is the interface for running the external tools the stages invoke;
// combined stdout/stderr is appended to the pipeline log file.
type Client interface {
	RunCommand(ctx context.Context, dir string, env []string, name string, args ...string) (err error)
}

// NewClient returns an execcmd.Client writing output to the configured log path
func NewClient(config *api.APIConfig) Client {
	return &client{
		config: config,
	}
}

type client struct {
	config *api.APIConfig
}

// RunCommand runs a single external command with the process environment
// extended by env, in working directory dir.
func (c *client) RunCommand(ctx context.Context, dir string, env []string, name string, args ...string) (err error) {

	log.Info().Str("dir", dir).Msgf("Running command %v %v...", name, strings.Join(args, " "))

	logFile, err := c.openLogFile()
	if err != nil {
		return errors.Wrapf(err, "Failed opening log file %v", c.config.Pipeline.LogPath)
	}
	defer logFile.Close()

	fmt.Fprintf(logFile, "\n> %v %v\n", name, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	err = cmd.Run()
	if err != nil {
		return errors.Wrapf(err, "Command %v failed", name)
	}

	return nil
}

func (c *client) openLogFile() (*os.File, error) {

	if err := os.MkdirAll(filepath.Dir(c.config.Pipeline.LogPath), 0755); err != nil {
		return nil, err
	}

	return os.OpenFile(c.config.Pipeline.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}
