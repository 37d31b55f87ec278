package gitapi

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	git "gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/plumbing"
	githttp "gopkg.in/src-d/go-git.v4/plumbing/transport/http"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
)

// Client is the interface for checking out the application source
type Client interface {
	CloneRevision(ctx context.Context) (err error)
}

// NewClient returns a gitapi.Client cloning into the configured workspace
func NewClient(config *api.APIConfig) Client {
	return &client{
		config: config,
	}
}

type client struct {
	config *api.APIConfig
}

// CloneRevision clones the configured branch into a fresh workspace directory
func (c *client) CloneRevision(ctx context.Context) (err error) {

	workspaceDir := c.config.Pipeline.WorkspaceDir

	log.Info().Msgf("Cloning %v branch %v into %v...", c.config.Repository.URL, c.config.Repository.Branch, workspaceDir)

	err = prepareWorkspace(workspaceDir)
	if err != nil {
		return errors.Wrapf(err, "Failed preparing workspace dir %v", workspaceDir)
	}

	options := &git.CloneOptions{
		URL:           c.config.Repository.URL,
		ReferenceName: plumbing.NewBranchReferenceName(c.config.Repository.Branch),
		SingleBranch:  true,
		Depth:         50,
	}
	if c.config.Repository.Username != "" {
		options.Auth = &githttp.BasicAuth{
			Username: c.config.Repository.Username,
			Password: c.config.Repository.Password,
		}
	}

	_, err = git.PlainCloneContext(ctx, workspaceDir, false, options)
	if err != nil {
		return errors.Wrapf(err, "Failed cloning %v", c.config.Repository.URL)
	}

	return nil
}

// prepareWorkspace recreates the workspace dir so every run checks out into a
// clean tree
func prepareWorkspace(dir string) (err error) {
	if err = os.RemoveAll(dir); err != nil {
		return
	}

	return os.MkdirAll(dir, 0755)
}
