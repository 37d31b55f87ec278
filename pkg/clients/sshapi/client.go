package sshapi

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	foundation "github.com/estafette/estafette-foundation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
)

// Client is the interface for deploying the freshly pushed image on the
// remote docker host
type Client interface {
	DeployApplication(ctx context.Context) (err error)
}

// NewClient returns an sshapi.Client for the configured deploy target
func NewClient(config *api.APIConfig) Client {
	return &client{
		config: config,
	}
}

type client struct {
	config *api.APIConfig
}

// DeployApplication runs the deploy script on the remote host in a single
// ssh session; the script itself fails fast on the first command error.
func (c *client) DeployApplication(ctx context.Context) (err error) {

	log.Info().Msgf("Deploying %v to %v...", c.config.Registry.ImageRef, c.config.Deploy.Address())

	conn, err := c.dial()
	if err != nil {
		return errors.Wrapf(err, "Failed connecting to %v", c.config.Deploy.Address())
	}
	defer conn.Close()

	session, err := conn.NewSession()
	if err != nil {
		return errors.Wrap(err, "Failed opening ssh session")
	}
	defer session.Close()

	logFile, err := c.openLogFile()
	if err != nil {
		return errors.Wrapf(err, "Failed opening log file %v", c.config.Pipeline.LogPath)
	}
	defer logFile.Close()

	script := deployScript(c.config.Deploy, c.config.Registry)
	fmt.Fprintf(logFile, "\n> ssh %v@%v deploy script\n", c.config.Deploy.User, c.config.Deploy.Host)
	session.Stdout = logFile
	session.Stderr = logFile

	err = session.Run(script)
	if err != nil {
		return errors.Wrap(err, "Deploy script failed on remote host")
	}

	return nil
}

func (c *client) dial() (conn *ssh.Client, err error) {

	keyBytes, err := os.ReadFile(c.config.Deploy.PrivateKeyPath)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed reading private key %v", c.config.Deploy.PrivateKeyPath)
	}

	signer, err := ssh.ParsePrivateKey(keyBytes)
	if err != nil {
		return nil, errors.Wrap(err, "Failed parsing private key")
	}

	clientConfig := &ssh.ClientConfig{
		User: c.config.Deploy.User,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		// the deploy target is provisioned together with the runner, its host key isn't pinned
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         time.Second * 15,
	}

	err = foundation.Retry(func() error {
		conn, err = ssh.Dial("tcp", c.config.Deploy.Address(), clientConfig)
		return err
	}, foundation.Attempts(3), foundation.DelayMillisecond(2000), foundation.Fixed())
	if err != nil {
		return nil, err
	}

	return conn, nil
}

func (c *client) openLogFile() (*os.File, error) {

	if err := os.MkdirAll(filepath.Dir(c.config.Pipeline.LogPath), 0755); err != nil {
		return nil, err
	}

	return os.OpenFile(c.config.Pipeline.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}
