package cli

import (
	"github.com/urfave/cli/v3"
)

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:    "rockethook",
		Usage:   "Post messages to Rocket.Chat via incoming webhooks",
		Version: "1.0.0",
		Description: `rockethook posts a message to a Rocket.Chat incoming webhook (integration).

Server URL and token are taken from flags, ROCKETHOOK_URL / ROCKETHOOK_TOKEN,
or the config file (~/.config/rockethook/config.yml).`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Value: false,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose logging",
				Value: false,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			NewPostCommand(),
			NewConfigCommand(),
		},
	}
}
