package telegram

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/utils/tgUtils"
	"github.com/PaulSonOfLars/gotgbot/v2"
)

// NewEvent translates a Telegram message. Role flags are left unset; the
// processor resolves them only when needed.
func NewEvent(msg *gotgbot.Message, botUsername string) *plugin.Event {
	ev := &plugin.Event{
		MessageID: strconv.FormatInt(msg.MessageId, 10),
		ChatID:    strconv.FormatInt(msg.Chat.Id, 10),
		ChatType:  plugin.ChatPrivate,
		ChatTitle: msg.Chat.Title,
		Text:      stripBotMention(tgUtils.AnyText(msg), botUsername),
		Time:      time.Unix(msg.Date, 0),
		Links:     tgUtils.Links(msg),
	}

	if tgUtils.FromGroup(msg) {
		ev.ChatType = plugin.ChatGroup
	}

	if msg.From != nil {
		ev.SenderID = strconv.FormatInt(msg.From.Id, 10)
		ev.SenderName = fullName(msg.From)
		ev.IsPremium = msg.From.IsPremium
	}

	if msg.HasMediaSpoiler {
		if photo := tgUtils.GetBestResolution(msg.Photo); photo != nil {
			ev.ViewOnce = &plugin.Media{Kind: plugin.MediaPhoto, FileID: photo.FileId, Caption: msg.Caption}
		} else if msg.Video != nil {
			ev.ViewOnce = &plugin.Media{Kind: plugin.MediaVideo, FileID: msg.Video.FileId, Caption: msg.Caption}
		}
	}

	for _, user := range msg.NewChatMembers {
		if user.IsBot {
			continue
		}
		ev.Joined = append(ev.Joined, plugin.Member{
			ID:   strconv.FormatInt(user.Id, 10),
			Name: fullName(&user),
		})
	}

	return ev
}

func fullName(user *gotgbot.User) string {
	if user.LastName == "" {
		return user.FirstName
	}
	return user.FirstName + " " + user.LastName
}

// stripBotMention turns "/ping@raven_bot args" into "/ping args".
func stripBotMention(text, botUsername string) string {
	if botUsername == "" {
		return text
	}
	end := strings.IndexFunc(text, unicode.IsSpace)
	if end == -1 {
		end = len(text)
	}
	token := text[:end]
	at := strings.LastIndex(token, "@")
	if at == -1 || !strings.EqualFold(token[at+1:], botUsername) {
		return text
	}
	return token[:at] + text[end:]
}
