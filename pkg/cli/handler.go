package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rockethook/pkg/domain"
	"github.com/m-mizutani/rockethook/pkg/domain/interfaces"
	"github.com/m-mizutani/rockethook/pkg/domain/model"
	"github.com/m-mizutani/rockethook/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// NewPostCommand creates the post command
func NewPostCommand() *cli.Command {
	return &cli.Command{
		Name:      "post",
		Usage:     "Post a message",
		ArgsUsage: "[text...]",
		Description: `Posts the arguments as message text. Without arguments, each line
read from stdin becomes a line of the message.`,
		Flags:  DefinePostFlags(),
		Action: RunPost,
	}
}

func RunPost(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.From(ctx)

	config := &Config{
		ServerURL:  cmd.String("url"),
		Token:      cmd.String("token"),
		IconURL:    cmd.String("icon-url"),
		Timeout:    cmd.Duration("timeout"),
		ConfigPath: cmd.String("config"),
	}

	fileConfig, err := loadConfigFile(config.ConfigPath)
	if err != nil {
		return err
	}
	if err := config.Merge(fileConfig); err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	msg, err := buildMessage(cmd, config)
	if err != nil {
		return err
	}

	var poster interfaces.Poster = usecase.NewWebhook(config.ServerURL, config.Token, config.ToWebhookOptions()...)

	logger.Info("posting message",
		slog.Int("text_length", len(msg.Text)),
		slog.Int("attachments", len(msg.Attachments)),
	)

	if err := poster.Post(ctx, msg); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintln(cmd.Root().Writer, "✅ Message posted")
	return nil
}

func loadConfigFile(path string) (*model.Config, error) {
	service := usecase.NewConfigService()
	if path == "" {
		return service.LoadDefault()
	}
	return service.Load(path)
}

func buildMessage(cmd *cli.Command, config *Config) (*model.Message, error) {
	var opts []model.MessageOption
	if config.IconURL != "" {
		opts = append(opts, model.WithIconURL(config.IconURL))
	}
	msg := model.NewMessage("", opts...)

	if cmd.Args().Len() > 0 {
		msg.AppendText(strings.Join(cmd.Args().Slice(), " "))
	} else if err := appendLines(msg, cmd.Root().Reader); err != nil {
		return nil, err
	}

	attachment, err := buildAttachment(cmd)
	if err != nil {
		return nil, err
	}
	if len(attachment) > 0 {
		msg.AddAttachment(attachment)
	}

	if msg.Text == "" && len(msg.Attachments) == 0 {
		return nil, goerr.Wrap(domain.ErrInvalidMessage, "message has neither text nor attachment")
	}

	return msg, nil
}

func appendLines(msg *model.Message, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		msg.AppendText(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return goerr.Wrap(err, "failed to read message from stdin")
	}
	return nil
}

func buildAttachment(cmd *cli.Command) (model.Attachment, error) {
	attachment := model.Attachment{}

	flagFields := map[string]string{
		"title":           model.AttachmentTitle,
		"title-link":      model.AttachmentTitleLink,
		"attachment-text": model.AttachmentText,
		"image-url":       model.AttachmentImageURL,
		"color":           model.AttachmentColor,
	}
	for flagName, key := range flagFields {
		if v := cmd.String(flagName); v != "" {
			attachment[key] = v
		}
	}

	for _, field := range cmd.StringSlice("field") {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			return nil, goerr.Wrap(domain.ErrInvalidMessage, "attachment field must be key=value",
				goerr.V("field", field),
			)
		}
		attachment[key] = value
	}

	return attachment, nil
}
