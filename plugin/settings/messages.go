package settings

import "github.com/Brawl345/raven/model"

type texts struct {
	title           string
	features        string
	language        string
	usage           string
	enabled         string
	disabled        string
	missingValue    string
	invalidToggle   string
	invalidLanguage string
	unknownSetting  string
	toggledOn       string
	toggledOff      string
	languageChanged string
}

var messages = map[model.Language]texts{
	model.LanguageFrench: {
		title:           "🔧 <b>PARAMÈTRES DU GROUPE</b>",
		features:        "📝 <b>Fonctionnalités :</b>",
		language:        "🌐 <b>Langue :</b>",
		usage:           "<b>Utilisation :</b>",
		enabled:         "✅ Activé",
		disabled:        "❌ Désactivé",
		missingValue:    "❌ Veuillez spécifier une valeur (on/off ou fr/en pour la langue)",
		invalidToggle:   "❌ Valeur invalide. Utilisez : %s",
		invalidLanguage: "❌ Langue non supportée. Utilisez : %s",
		unknownSetting:  "❌ Paramètre inconnu : <code>%s</code>",
		toggledOn:       "✅ <b>%s</b> activé avec succès !",
		toggledOff:      "✅ <b>%s</b> désactivé avec succès !",
		languageChanged: "✅ Langue changée en Français !",
	},
	model.LanguageEnglish: {
		title:           "🔧 <b>GROUP SETTINGS</b>",
		features:        "📝 <b>Features:</b>",
		language:        "🌐 <b>Language:</b>",
		usage:           "<b>Usage:</b>",
		enabled:         "✅ Enabled",
		disabled:        "❌ Disabled",
		missingValue:    "❌ Please specify a value (on/off, or fr/en for the language)",
		invalidToggle:   "❌ Invalid value. Use: %s",
		invalidLanguage: "❌ Unsupported language. Use: %s",
		unknownSetting:  "❌ Unknown setting: <code>%s</code>",
		toggledOn:       "✅ <b>%s</b> enabled successfully!",
		toggledOff:      "✅ <b>%s</b> disabled successfully!",
		languageChanged: "✅ Language changed to English!",
	},
}

func textsFor(lang model.Language) texts {
	if t, ok := messages[lang]; ok {
		return t
	}
	return messages[model.DefaultLanguage]
}
