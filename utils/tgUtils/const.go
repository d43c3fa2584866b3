package tgUtils

// EntityType is one of https://core.telegram.org/bots/api#messageentity
type EntityType string

const (
	MaxCaptionLength = 1024

	ChatMemberStatusCreator       = "creator"
	ChatMemberStatusAdministrator = "administrator"

	EntityTextLink EntityType = "text_link"
	EntityTypeURL  EntityType = "url"

	ErrMessageNotFound = "Bad Request: message to delete not found"
)
