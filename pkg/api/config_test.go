package api

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadConfigFromFile(t *testing.T) {

	t.Run("ReturnsConfigWithoutErrors", func(t *testing.T) {

		configReader := NewConfigReader()

		// act
		_, err := configReader.ReadConfigFromFile(filepath.Join("testdata", "config.yaml"))

		assert.Nil(t, err)
	})

	t.Run("ReturnsPipelineConfig", func(t *testing.T) {

		configReader := NewConfigReader()

		// act
		config, err := configReader.ReadConfigFromFile(filepath.Join("testdata", "config.yaml"))

		assert.Nil(t, err)
		assert.Equal(t, "ecommerce-website", config.Pipeline.JobName)
		assert.Equal(t, "42", config.Pipeline.BuildNumber)
		assert.Equal(t, "python3", config.Pipeline.PythonBinary)
	})

	t.Run("ReturnsDeployConfigWithDefaultPort", func(t *testing.T) {

		configReader := NewConfigReader()

		// act
		config, err := configReader.ReadConfigFromFile(filepath.Join("testdata", "config.yaml"))

		assert.Nil(t, err)
		assert.Equal(t, 22, config.Deploy.Port)
		assert.Equal(t, "apps.deckhand-ci.io:22", config.Deploy.Address())
		assert.Equal(t, "ecommerce-website", config.Deploy.ContainerName)
	})

	t.Run("OverridesSecretsFromEnvironment", func(t *testing.T) {

		t.Setenv("DHCI_WEBHOOK_BEARER_TOKEN", "s3cr3t-t0k3n")
		t.Setenv("DHCI_REGISTRY_PASSWORD", "registry-pass")

		configReader := NewConfigReader()

		// act
		config, err := configReader.ReadConfigFromFile(filepath.Join("testdata", "config.yaml"))

		assert.Nil(t, err)
		assert.Equal(t, "s3cr3t-t0k3n", config.Webhook.BearerToken)
		assert.Equal(t, "registry-pass", config.Registry.Password)
	})

	t.Run("OverridesBuildNumberFromEnvironment", func(t *testing.T) {

		t.Setenv("DHCI_BUILD_NUMBER", "87")

		configReader := NewConfigReader()

		// act
		config, err := configReader.ReadConfigFromFile(filepath.Join("testdata", "config.yaml"))

		assert.Nil(t, err)
		assert.Equal(t, "87", config.Pipeline.BuildNumber)
	})

	t.Run("ReturnsErrorForNonExistingFile", func(t *testing.T) {

		configReader := NewConfigReader()

		// act
		_, err := configReader.ReadConfigFromFile(filepath.Join("testdata", "does-not-exist.yaml"))

		assert.NotNil(t, err)
	})
}

func TestValidate(t *testing.T) {

	t.Run("ReturnsErrorWhenJobNameIsMissing", func(t *testing.T) {

		config := validConfig()
		config.Pipeline.JobName = ""

		// act
		err := config.Validate()

		assert.NotNil(t, err)
	})

	t.Run("ReturnsErrorWhenWebhookURLIsMissing", func(t *testing.T) {

		config := validConfig()
		config.Webhook.URL = ""

		// act
		err := config.Validate()

		assert.NotNil(t, err)
	})

	t.Run("ReturnsErrorWhenDeployPrivateKeyPathIsMissing", func(t *testing.T) {

		config := validConfig()
		config.Deploy.PrivateKeyPath = ""

		// act
		err := config.Validate()

		assert.NotNil(t, err)
	})

	t.Run("ReturnsNoErrorForValidConfig", func(t *testing.T) {

		config := validConfig()

		// act
		err := config.Validate()

		assert.Nil(t, err)
	})
}

func validConfig() *APIConfig {
	config := &APIConfig{
		Pipeline: &PipelineConfig{
			JobName:     "ecommerce-website",
			BuildNumber: "42",
		},
		Repository: &RepositoryConfig{
			URL: "https://git.deckhand-ci.io/shop/ecommerce-website.git",
		},
		Registry: &RegistryConfig{
			ImageRef: "registry.deckhand-ci.io/shop/ecommerce-website:latest",
		},
		Deploy: &DeployConfig{
			Host:           "apps.deckhand-ci.io",
			User:           "deploy",
			PrivateKeyPath: "/secrets/deploy_id_rsa",
			AppDir:         "/opt/ecommerce-website",
		},
		Webhook: &WebhookConfig{
			URL: "https://hooks.deckhand-ci.io/builds",
		},
	}
	config.SetDefaults()

	return config
}
