package cli

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rockethook/pkg/domain"
	"github.com/m-mizutani/rockethook/pkg/domain/model"
	"github.com/m-mizutani/rockethook/pkg/usecase"
	"github.com/urfave/cli/v3"
)

type Config struct {
	ServerURL  string
	Token      string
	IconURL    string
	Timeout    time.Duration
	ConfigPath string
}

func NewConfig() *Config {
	return &Config{}
}

// Merge fills fields not given on the command line from the config file
func (c *Config) Merge(file *model.Config) error {
	if file == nil {
		return nil
	}

	if c.ServerURL == "" {
		c.ServerURL = file.ServerURL
	}
	if c.Token == "" {
		c.Token = file.Token
	}
	if c.IconURL == "" {
		c.IconURL = file.IconURL
	}
	if c.Timeout == 0 {
		timeout, err := file.GetTimeout()
		if err != nil {
			return goerr.Wrap(domain.ErrConfiguration, "invalid timeout in config file",
				goerr.V("timeout", file.Timeout),
			)
		}
		c.Timeout = timeout
	}

	return nil
}

func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return goerr.Wrap(domain.ErrConfiguration, "server URL is required (--url or ROCKETHOOK_URL)")
	}
	if c.Token == "" {
		return goerr.Wrap(domain.ErrConfiguration, "token is required (--token or ROCKETHOOK_TOKEN)")
	}
	return nil
}

func (c *Config) ToWebhookOptions() []usecase.WebhookOption {
	var opts []usecase.WebhookOption
	if c.Timeout > 0 {
		opts = append(opts, usecase.WithTimeout(c.Timeout))
	}
	return opts
}

func DefinePostFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "url",
			Aliases: []string{"u"},
			Usage:   "Rocket.Chat server URL, e.g. https://rocketchat.example.com",
			Sources: cli.EnvVars("ROCKETHOOK_URL"),
		},
		&cli.StringFlag{
			Name:    "token",
			Aliases: []string{"t"},
			Usage:   "Webhook token (the part after /hooks/)",
			Sources: cli.EnvVars("ROCKETHOOK_TOKEN"),
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to config file (default: ~/.config/rockethook/config.yml)",
		},
		&cli.StringFlag{
			Name:  "icon-url",
			Usage: "Avatar URL for the message",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Limit for the request (default: no limit)",
		},
		&cli.StringFlag{
			Name:  "title",
			Usage: "Attachment title",
		},
		&cli.StringFlag{
			Name:  "title-link",
			Usage: "Attachment title link",
		},
		&cli.StringFlag{
			Name:  "attachment-text",
			Usage: "Attachment text",
		},
		&cli.StringFlag{
			Name:  "image-url",
			Usage: "Attachment image URL",
		},
		&cli.StringFlag{
			Name:  "color",
			Usage: "Attachment color, e.g. #ff0000",
		},
		&cli.StringSliceFlag{
			Name:    "field",
			Aliases: []string{"f"},
			Usage:   "Extra attachment field as key=value (repeatable)",
		},
	}
}
