package telegram

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/utils/tgUtils"
	"github.com/PaulSonOfLars/gotgbot/v2"
)

// Conn sends replies through the Bot API. Texts are HTML.
type Conn struct {
	bot *gotgbot.Bot
}

func NewConn(b *gotgbot.Bot) *Conn {
	return &Conn{bot: b}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid telegram id %q: %w", s, err)
	}
	return id, nil
}

func (c *Conn) Reply(ctx context.Context, ev *plugin.Event, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	chatID, err := parseID(ev.ChatID)
	if err != nil {
		return err
	}
	messageID, err := parseID(ev.MessageID)
	if err != nil {
		return err
	}
	_, err = c.bot.SendMessage(chatID, text, tgUtils.ReplyTo(messageID))
	return err
}

func (c *Conn) Send(ctx context.Context, chatID string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := parseID(chatID)
	if err != nil {
		return err
	}
	_, err = c.bot.SendMessage(id, text, tgUtils.DefaultSendOptions())
	return err
}

func (c *Conn) SendMedia(ctx context.Context, chatID string, media plugin.Media, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := parseID(chatID)
	if err != nil {
		return err
	}
	if r := []rune(caption); len(r) > tgUtils.MaxCaptionLength {
		caption = string(r[:tgUtils.MaxCaptionLength])
	}

	switch media.Kind {
	case plugin.MediaPhoto:
		_, err = c.bot.SendPhoto(id, gotgbot.InputFileByID(media.FileID), &gotgbot.SendPhotoOpts{
			Caption:   caption,
			ParseMode: gotgbot.ParseModeHTML,
		})
	case plugin.MediaVideo:
		_, err = c.bot.SendVideo(id, gotgbot.InputFileByID(media.FileID), &gotgbot.SendVideoOpts{
			Caption:   caption,
			ParseMode: gotgbot.ParseModeHTML,
		})
	default:
		return fmt.Errorf("unsupported media kind %q", media.Kind)
	}
	return err
}

func (c *Conn) Delete(ctx context.Context, ev *plugin.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	chatID, err := parseID(ev.ChatID)
	if err != nil {
		return err
	}
	messageID, err := parseID(ev.MessageID)
	if err != nil {
		return err
	}
	_, err = c.bot.DeleteMessage(chatID, messageID, nil)
	if tgUtils.IsTelegramError(err, tgUtils.ErrMessageNotFound) {
		return nil
	}
	return err
}
