package api

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-envconfig"
	yaml "gopkg.in/yaml.v2"
)

// ConfigReader reads the runner config from file
type ConfigReader interface {
	ReadConfigFromFile(configPath string) (*APIConfig, error)
}

type configReaderImpl struct {
}

// NewConfigReader returns a new api.ConfigReader
func NewConfigReader() ConfigReader {
	return &configReaderImpl{}
}

// ReadConfigFromFile is used to read configuration from the file set via flag or envvar
func (h *configReaderImpl) ReadConfigFromFile(configPath string) (config *APIConfig, err error) {

	log.Info().Msgf("Reading %v file...", configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return config, err
	}

	// unmarshal into structs
	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, err
	}
	if config == nil {
		config = &APIConfig{}
	}

	// fill in all the defaults for empty values, so the envvar overrides have structs to land in
	config.SetDefaults()

	// override values from envvars
	lookuper := envconfig.PrefixLookuper("DHCI_", envconfig.OsLookuper())
	if err = envconfig.ProcessWith(context.Background(), config, lookuper); err != nil {
		return
	}

	// validate the config
	err = config.Validate()
	if err != nil {
		return
	}

	log.Info().Msgf("Finished reading %v file successfully", configPath)

	return
}
