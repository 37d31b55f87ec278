package api

import (
	"fmt"

	"github.com/pkg/errors"
)

// APIConfig represents the configuration for the entire pipeline runner; it
// is constructed once at startup and passed read-only to every stage.
type APIConfig struct {
	Pipeline   *PipelineConfig   `yaml:"pipeline,omitempty"`
	Repository *RepositoryConfig `yaml:"repository,omitempty"`
	Registry   *RegistryConfig   `yaml:"registry,omitempty"`
	Deploy     *DeployConfig     `yaml:"deploy,omitempty"`
	Webhook    *WebhookConfig    `yaml:"webhook,omitempty"`
}

func (c *APIConfig) SetDefaults() {
	if c.Pipeline == nil {
		c.Pipeline = &PipelineConfig{}
	}
	c.Pipeline.SetDefaults()

	if c.Repository == nil {
		c.Repository = &RepositoryConfig{}
	}
	c.Repository.SetDefaults()

	if c.Registry == nil {
		c.Registry = &RegistryConfig{}
	}

	if c.Deploy == nil {
		c.Deploy = &DeployConfig{}
	}
	c.Deploy.SetDefaults()

	if c.Webhook == nil {
		c.Webhook = &WebhookConfig{}
	}
	c.Webhook.SetDefaults()
}

func (c *APIConfig) Validate() (err error) {
	err = c.Pipeline.Validate()
	if err != nil {
		return
	}

	err = c.Repository.Validate()
	if err != nil {
		return
	}

	err = c.Registry.Validate()
	if err != nil {
		return
	}

	err = c.Deploy.Validate()
	if err != nil {
		return
	}

	err = c.Webhook.Validate()
	if err != nil {
		return
	}

	return nil
}

// PipelineConfig identifies the job and controls where it runs and logs
type PipelineConfig struct {
	JobName      string `yaml:"jobName" env:"JOB_NAME"`
	BuildNumber  string `yaml:"buildNumber" env:"BUILD_NUMBER"`
	WorkspaceDir string `yaml:"workspaceDir" env:"WORKSPACE_DIR"`
	LogPath      string `yaml:"logPath" env:"LOG_PATH"`
	PythonBinary string `yaml:"pythonBinary" env:"PYTHON_BINARY"`
}

func (c *PipelineConfig) SetDefaults() {
	if c.WorkspaceDir == "" {
		c.WorkspaceDir = "/var/lib/deckhand/workspace"
	}
	if c.LogPath == "" {
		c.LogPath = "/var/lib/deckhand/build.log"
	}
	if c.PythonBinary == "" {
		c.PythonBinary = "python3"
	}
}

func (c *PipelineConfig) Validate() (err error) {
	if c.JobName == "" {
		return errors.New("pipeline.jobName is required; set it in the config file or via DHCI_JOB_NAME")
	}
	if c.BuildNumber == "" {
		return errors.New("pipeline.buildNumber is required; set it in the config file or via DHCI_BUILD_NUMBER")
	}

	return nil
}

// RepositoryConfig points the checkout stage at the application source
type RepositoryConfig struct {
	URL      string `yaml:"url" env:"REPOSITORY_URL"`
	Branch   string `yaml:"branch" env:"REPOSITORY_BRANCH"`
	Username string `yaml:"username" env:"REPOSITORY_USERNAME"`
	Password string `yaml:"-" env:"REPOSITORY_PASSWORD"`
}

func (c *RepositoryConfig) SetDefaults() {
	if c.Branch == "" {
		c.Branch = "master"
	}
}

func (c *RepositoryConfig) Validate() (err error) {
	if c.URL == "" {
		return errors.New("repository.url is required")
	}

	return nil
}

// RegistryConfig configures the image build/push stage
type RegistryConfig struct {
	ImageRef string `yaml:"imageRef" env:"REGISTRY_IMAGE_REF"`
	Host     string `yaml:"host" env:"REGISTRY_HOST"`
	Username string `yaml:"username" env:"REGISTRY_USERNAME"`
	Password string `yaml:"-" env:"REGISTRY_PASSWORD"`
}

func (c *RegistryConfig) Validate() (err error) {
	if c.ImageRef == "" {
		return errors.New("registry.imageRef is required")
	}

	return nil
}

// DeployConfig configures the remote deployment over ssh
type DeployConfig struct {
	Host           string            `yaml:"host" env:"DEPLOY_HOST"`
	Port           int               `yaml:"port" env:"DEPLOY_PORT"`
	User           string            `yaml:"user" env:"DEPLOY_USER"`
	PrivateKeyPath string            `yaml:"privateKeyPath" env:"DEPLOY_PRIVATE_KEY_PATH"`
	AppDir         string            `yaml:"appDir" env:"DEPLOY_APP_DIR"`
	ContainerName  string            `yaml:"containerName" env:"DEPLOY_CONTAINER_NAME"`
	PortMapping    string            `yaml:"portMapping" env:"DEPLOY_PORT_MAPPING"`
	VolumeMapping  string            `yaml:"volumeMapping" env:"DEPLOY_VOLUME_MAPPING"`
	ContainerEnv   map[string]string `yaml:"containerEnv,omitempty"`
}

func (c *DeployConfig) SetDefaults() {
	if c.Port == 0 {
		c.Port = 22
	}
	if c.ContainerName == "" {
		c.ContainerName = "app"
	}
	if c.PortMapping == "" {
		c.PortMapping = "8000:8000"
	}
}

func (c *DeployConfig) Validate() (err error) {
	if c.Host == "" {
		return errors.New("deploy.host is required")
	}
	if c.User == "" {
		return errors.New("deploy.user is required")
	}
	if c.PrivateKeyPath == "" {
		return errors.New("deploy.privateKeyPath is required")
	}
	if c.AppDir == "" {
		return errors.New("deploy.appDir is required")
	}

	return nil
}

// Address returns the host:port the ssh client dials
func (c *DeployConfig) Address() string {
	return fmt.Sprintf("%v:%v", c.Host, c.Port)
}

// WebhookConfig configures the build-outcome notification
type WebhookConfig struct {
	URL            string `yaml:"url" env:"WEBHOOK_URL"`
	BearerToken    string `yaml:"-" env:"WEBHOOK_BEARER_TOKEN"`
	TimeoutSeconds int    `yaml:"timeoutSeconds" env:"WEBHOOK_TIMEOUT_SECONDS"`
	TailLines      int    `yaml:"tailLines" env:"WEBHOOK_TAIL_LINES"`
}

func (c *WebhookConfig) SetDefaults() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 10
	}
	if c.TailLines == 0 {
		c.TailLines = 50
	}
}

func (c *WebhookConfig) Validate() (err error) {
	if c.URL == "" {
		return errors.New("webhook.url is required")
	}

	return nil
}
