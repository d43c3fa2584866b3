package model

import "context"

type ChatsCommandsService interface {
	Disable(ctx context.Context, chatID, command string) error
	Enable(ctx context.Context, chatID, command string) error
	GetAllDisabled(ctx context.Context) (map[string][]string, error)
}
