// Package telegram connects the dispatcher to the Telegram Bot API through gotgbot.
package telegram

import (
	"context"
	"strings"

	"github.com/Brawl345/raven/bot"
	"github.com/Brawl345/raven/logger"
	"github.com/Brawl345/raven/model"
	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/utils/tgUtils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

var log = logger.New("telegram")

// Processor is a gotgbot ext.Processor feeding new messages to the dispatcher.
type Processor struct {
	dispatcher *bot.Dispatcher
	settings   model.SettingsService
	prefix     string
}

func NewProcessor(dispatcher *bot.Dispatcher, settings model.SettingsService, prefix string) *Processor {
	return &Processor{
		dispatcher: dispatcher,
		settings:   settings,
		prefix:     prefix,
	}
}

func (p *Processor) ProcessUpdate(_ *ext.Dispatcher, b *gotgbot.Bot, ctx *ext.Context) error {
	// Edits, channel posts and callbacks are not dispatched.
	if ctx.Message == nil || ctx.Message.From == nil {
		return nil
	}
	msg := ctx.Message

	ev := NewEvent(msg, b.Username)
	outcome := p.process(context.Background(), NewConn(b), ev, func(ev *plugin.Event) {
		p.resolveRoles(b, msg, ev)
	})
	if outcome != bot.Rejected {
		log.Debug().
			Str("chat_id", ev.ChatID).
			Str("user_id", ev.SenderID).
			Stringer("outcome", outcome).
			Msg("Dispatched command")
	}
	return nil
}

// process runs the watchers and then the command dispatcher. A message a
// watcher deleted is not dispatched.
func (p *Processor) process(ctx context.Context, conn plugin.Conn, ev *plugin.Event, resolveRoles func(*plugin.Event)) bot.Outcome {
	if p.needsRoles(ctx, ev) {
		resolveRoles(ev)
	}

	if p.dispatcher.Observe(ctx, conn, ev) {
		log.Debug().
			Str("chat_id", ev.ChatID).
			Str("user_id", ev.SenderID).
			Msg("Message removed by a watcher, not dispatching")
		return bot.Rejected
	}
	return p.dispatcher.Dispatch(ctx, conn, ev)
}

// needsRoles reports whether anything downstream can look at the role flags,
// which cost two API calls to resolve. Commands and antilink only care about
// prefixed or linked messages; antispam judges every message of a chat that
// enabled it.
func (p *Processor) needsRoles(ctx context.Context, ev *plugin.Event) bool {
	if !ev.IsGroup() {
		return false
	}
	if strings.HasPrefix(strings.TrimSpace(ev.Text), p.prefix) || len(ev.Links) > 0 {
		return true
	}

	chat, err := p.settings.GetOrCreate(ctx, ev.ChatID)
	if err != nil {
		log.Err(err).
			Str("chat_id", ev.ChatID).
			Msg("Failed to load chat settings for role lookup")
		return false
	}
	return chat.Antispam
}

func (p *Processor) resolveRoles(b *gotgbot.Bot, msg *gotgbot.Message, ev *plugin.Event) {
	member, err := b.GetChatMember(msg.Chat.Id, msg.From.Id, nil)
	if err != nil {
		log.Err(err).
			Int64("chat_id", msg.Chat.Id).
			Int64("user_id", msg.From.Id).
			Msg("Failed to get chat member")
	} else {
		ev.IsAdmin = tgUtils.IsAdminStatus(member.GetStatus())
	}

	self, err := b.GetChatMember(msg.Chat.Id, b.Id, nil)
	if err != nil {
		log.Err(err).
			Int64("chat_id", msg.Chat.Id).
			Msg("Failed to get own chat member status")
		return
	}
	ev.IsBotAdmin = tgUtils.IsAdminStatus(self.GetStatus())
}
