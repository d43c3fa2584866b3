package bot

import (
	"context"
	"errors"
	"sync"

	"github.com/Brawl345/raven/model"
	"github.com/Brawl345/raven/plugin"
	"golang.org/x/exp/slices"
)

var ErrCommandProtected = errors.New("command cannot be disabled")

// ManagerService keeps the per-chat disabled command lists in memory and
// persists every change through the chats_commands table.
type ManagerService struct {
	chatsCommandsService model.ChatsCommandsService
	registry             *Registry

	mu                      sync.RWMutex
	protected               []string
	disabledCommandsForChat map[string][]string
}

func NewManagerService(
	ctx context.Context,
	chatsCommandsService model.ChatsCommandsService,
	registry *Registry,
) (*ManagerService, error) {
	disabledCommandsForChat, err := chatsCommandsService.GetAllDisabled(ctx)
	if err != nil {
		return nil, err
	}

	return &ManagerService{
		chatsCommandsService:    chatsCommandsService,
		registry:                registry,
		disabledCommandsForChat: disabledCommandsForChat,
	}, nil
}

// Protect marks commands that can never be disabled, usually the manager's own.
func (service *ManagerService) Protect(names ...string) {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.protected = append(service.protected, names...)
}

func (service *ManagerService) IsCommandDisabledForChat(chatID, name string) bool {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return slices.Contains(service.disabledCommandsForChat[chatID], name)
}

// DisableCommandForChat resolves name to its command and disables it for the chat.
func (service *ManagerService) DisableCommandForChat(ctx context.Context, chatID, name string) (*plugin.Command, error) {
	cmd, err := service.registry.Resolve(name)
	if err != nil {
		return nil, model.ErrNotFound
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	if slices.Contains(service.protected, cmd.Name()) {
		return cmd, ErrCommandProtected
	}
	if slices.Contains(service.disabledCommandsForChat[chatID], cmd.Name()) {
		return cmd, model.ErrAlreadyExists
	}

	if err := service.chatsCommandsService.Disable(ctx, chatID, cmd.Name()); err != nil {
		return cmd, err
	}
	service.disabledCommandsForChat[chatID] = append(service.disabledCommandsForChat[chatID], cmd.Name())
	return cmd, nil
}

func (service *ManagerService) EnableCommandForChat(ctx context.Context, chatID, name string) (*plugin.Command, error) {
	cmd, err := service.registry.Resolve(name)
	if err != nil {
		return nil, model.ErrNotFound
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	index := slices.Index(service.disabledCommandsForChat[chatID], cmd.Name())
	if index == -1 {
		return cmd, model.ErrAlreadyExists
	}

	if err := service.chatsCommandsService.Enable(ctx, chatID, cmd.Name()); err != nil {
		return cmd, err
	}
	service.disabledCommandsForChat[chatID] = slices.Delete(service.disabledCommandsForChat[chatID], index, index+1)
	return cmd, nil
}
