package interfaces

import (
	"context"

	"github.com/m-mizutani/rockethook/pkg/domain/model"
)

// Poster posts messages to a chat webhook
type Poster interface {
	Post(ctx context.Context, msg *model.Message) error
	QuickPost(ctx context.Context, text string) error
}
