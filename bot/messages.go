package bot

import "github.com/Brawl345/raven/model"

var denialMessages = map[model.Language]map[DenyReason]string{
	model.LanguageFrench: {
		DenyOwner:       "👑 Cette commande est réservée au propriétaire du bot.",
		DenyAdmin:       "❌ Seuls les administrateurs peuvent utiliser cette commande !",
		DenyGroupOnly:   "❌ Cette commande ne fonctionne que dans les groupes !",
		DenyPrivateOnly: "❌ Cette commande ne fonctionne qu'en discussion privée !",
		DenyPremium:     "💎 Cette commande est réservée aux membres premium.",
	},
	model.LanguageEnglish: {
		DenyOwner:       "👑 This command is reserved for the bot owner.",
		DenyAdmin:       "❌ Only group admins can use this command!",
		DenyGroupOnly:   "❌ This command only works in groups!",
		DenyPrivateOnly: "❌ This command only works in private chats!",
		DenyPremium:     "💎 This command is reserved for premium members.",
	},
}

var failureMessages = map[model.Language]string{
	model.LanguageFrench:  "❌ Une erreur est survenue.",
	model.LanguageEnglish: "❌ An error occurred.",
}

func denialMessage(lang model.Language, reason DenyReason) string {
	msgs, ok := denialMessages[lang]
	if !ok {
		msgs = denialMessages[model.DefaultLanguage]
	}
	return msgs[reason]
}

func failureMessage(lang model.Language) string {
	msg, ok := failureMessages[lang]
	if !ok {
		return failureMessages[model.DefaultLanguage]
	}
	return msg
}
