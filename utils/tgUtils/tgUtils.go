package tgUtils

import (
	"errors"

	"github.com/PaulSonOfLars/gotgbot/v2"
)

func DefaultSendOptions() *gotgbot.SendMessageOpts {
	return &gotgbot.SendMessageOpts{
		LinkPreviewOptions: &gotgbot.LinkPreviewOptions{
			IsDisabled: true,
		},
		ParseMode: gotgbot.ParseModeHTML,
	}
}

// ReplyTo returns the default options replying to messageID.
func ReplyTo(messageID int64) *gotgbot.SendMessageOpts {
	opts := DefaultSendOptions()
	opts.ReplyParameters = &gotgbot.ReplyParameters{
		MessageId:                messageID,
		AllowSendingWithoutReply: true,
	}
	return opts
}

func AnyEntities(message *gotgbot.Message) []gotgbot.ParsedMessageEntity {
	if message.Entities == nil {
		return message.ParseCaptionEntities()
	}
	return message.ParseEntities()
}

func AnyText(message *gotgbot.Message) string {
	text := message.Text
	if message.Text == "" {
		text = message.Caption
	}
	return text
}

// Links returns every URL in the message, including text links.
func Links(message *gotgbot.Message) []string {
	var links []string
	for _, entity := range AnyEntities(message) {
		switch EntityType(entity.Type) {
		case EntityTypeURL:
			links = append(links, entity.Text)
		case EntityTextLink:
			links = append(links, entity.Url)
		}
	}
	return links
}

func FromGroup(message *gotgbot.Message) bool {
	return message.Chat.Type == gotgbot.ChatTypeGroup || message.Chat.Type == gotgbot.ChatTypeSupergroup
}

func IsAdminStatus(status string) bool {
	return status == ChatMemberStatusCreator || status == ChatMemberStatusAdministrator
}

func GetBestResolution(photo []gotgbot.PhotoSize) *gotgbot.PhotoSize {
	if photo == nil {
		return nil
	}
	var filesize int64
	var bestResolution *gotgbot.PhotoSize
	for _, photoSize := range photo {
		photoSize := photoSize
		if bestResolution == nil || photoSize.FileSize > filesize {
			filesize = photoSize.FileSize
			bestResolution = &photoSize
		}
	}

	return bestResolution
}

// IsTelegramError reports whether err is a Telegram API error with the given description.
func IsTelegramError(err error, description string) bool {
	var telegramErr *gotgbot.TelegramError
	return errors.As(err, &telegramErr) && telegramErr.Description == description
}
