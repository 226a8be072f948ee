package usecase

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rockethook/pkg/domain"
	"github.com/m-mizutani/rockethook/pkg/domain/interfaces"
	"github.com/m-mizutani/rockethook/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

const configTemplate = `# rockethook configuration
#
# Create an incoming webhook in Rocket.Chat (Administration > Integrations)
# and copy the server URL and token from its webhook URL:
#   https://rocketchat.example.com/hooks/<token>
#
# Values may reference environment variables as $VAR or ${VAR}.

server_url: https://rocketchat.example.com
token: ${ROCKETHOOK_TOKEN}

# Avatar shown next to posted messages (optional)
# icon_url: https://example.com/icon.png

# Limit for a single post, Go duration format (optional, no limit by default)
# timeout: 10s
`

type configService struct {
	configDir string
}

// NewConfigService creates a ConfigService using ~/.config/rockethook
func NewConfigService() interfaces.ConfigService {
	homeDir, _ := os.UserHomeDir()
	return &configService{
		configDir: filepath.Join(homeDir, ".config", "rockethook"),
	}
}

func (c *configService) GetDefaultPath() string {
	return filepath.Join(c.configDir, "config.yml")
}

// Load reads the config file at path and expands environment variables in it
func (c *configService) Load(path string) (*model.Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is given by the user
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var config model.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(domain.ErrConfiguration, "failed to parse config file",
			goerr.V("path", path),
			goerr.V("error", err.Error()),
		)
	}

	config.ServerURL = expandEnvVars(config.ServerURL)
	config.Token = expandEnvVars(config.Token)
	config.IconURL = expandEnvVars(config.IconURL)

	if _, err := config.GetTimeout(); err != nil {
		return nil, goerr.Wrap(domain.ErrConfiguration, "invalid timeout",
			goerr.V("path", path),
			goerr.V("timeout", config.Timeout),
		)
	}

	return &config, nil
}

// LoadDefault loads the default config file. A missing file gives an empty config.
func (c *configService) LoadDefault() (*model.Config, error) {
	path := c.GetDefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &model.Config{}, nil
	}
	return c.Load(path)
}

func (c *configService) GenerateTemplate() string {
	return configTemplate
}

// SaveTemplate writes the config template to path. An existing file is kept
// unless force is set.
func (c *configService) SaveTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return goerr.Wrap(domain.ErrConfiguration, "config file already exists, use --force to overwrite",
				goerr.V("path", path),
			)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return goerr.Wrap(err, "failed to create config directory", goerr.V("path", path))
	}

	if err := os.WriteFile(path, []byte(c.GenerateTemplate()), 0600); err != nil {
		return goerr.Wrap(err, "failed to write config template", goerr.V("path", path))
	}

	return nil
}

// expandEnvVars expands environment variables in the string
func expandEnvVars(s string) string {
	// Support both ${VAR} and $VAR formats
	return os.ExpandEnv(s)
}
