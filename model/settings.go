package model

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

type Language string

const (
	LanguageFrench  Language = "fr"
	LanguageEnglish Language = "en"

	DefaultLanguage = LanguageFrench
)

const (
	SettingWelcome      = "welcome"
	SettingAntilink     = "antilink"
	SettingAntiViewOnce = "antiviewonce"
	SettingAntispam     = "antispam"
	SettingLanguage     = "language"
)

var (
	Toggles        = []string{SettingWelcome, SettingAntilink, SettingAntiViewOnce, SettingAntispam}
	Languages      = []Language{LanguageFrench, LanguageEnglish}
	acceptedToggle = []string{"on", "off"}

	settingAliases = map[string]string{
		"lang": SettingLanguage,
	}
	toggleValues = map[string]bool{
		"on":      true,
		"off":     false,
		"enable":  true,
		"disable": false,
	}
)

type (
	Settings struct {
		ChatID       string   `db:"chat_id"`
		Welcome      bool     `db:"welcome"`
		Antilink     bool     `db:"antilink"`
		AntiViewOnce bool     `db:"antiviewonce"`
		Antispam     bool     `db:"antispam"`
		Language     Language `db:"language"`
	}

	// SettingsPatch is a validated set of field changes. Nil fields are left alone.
	SettingsPatch struct {
		Welcome      *bool
		Antilink     *bool
		AntiViewOnce *bool
		Antispam     *bool
		Language     *Language
	}

	SettingsService interface {
		// GetOrCreate returns the chat's document, creating the default one on first access.
		GetOrCreate(ctx context.Context, chatID string) (Settings, error)
		// Update validates raw user input, merges it and returns the new document.
		// Invalid input yields *InvalidSettingError and leaves the document unchanged.
		Update(ctx context.Context, chatID string, patch map[string]string) (Settings, error)
	}

	InvalidSettingError struct {
		Key      string
		Value    string
		Accepted []string
	}
)

func DefaultSettings(chatID string) Settings {
	return Settings{
		ChatID:   chatID,
		Language: DefaultLanguage,
	}
}

func (e *InvalidSettingError) Error() string {
	if e.Accepted == nil {
		return fmt.Sprintf("unknown setting %q", e.Key)
	}
	return fmt.Sprintf("invalid value %q for setting %q, accepted: %s", e.Value, e.Key, strings.Join(e.Accepted, ", "))
}

// UnknownKey reports whether the setting name itself was rejected.
func (e *InvalidSettingError) UnknownKey() bool {
	return e.Accepted == nil
}

func ParseLanguage(s string) (Language, bool) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	for _, l := range Languages {
		if l == lang {
			return lang, true
		}
	}
	return "", false
}

// ParsePatch validates raw key/value input. Keys and values are case-insensitive.
// Keys are checked in sorted order so the reported error is deterministic.
func ParsePatch(raw map[string]string) (SettingsPatch, error) {
	var patch SettingsPatch

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, rawKey := range keys {
		rawValue := raw[rawKey]
		key := NormalizeSettingKey(rawKey)
		value := strings.ToLower(strings.TrimSpace(rawValue))

		if key == SettingLanguage {
			lang, ok := ParseLanguage(value)
			if !ok {
				return SettingsPatch{}, &InvalidSettingError{Key: key, Value: rawValue, Accepted: languageNames()}
			}
			patch.Language = &lang
			continue
		}

		field := patch.toggle(key)
		if field == nil {
			return SettingsPatch{}, &InvalidSettingError{Key: rawKey, Value: rawValue}
		}
		b, ok := toggleValues[value]
		if !ok {
			return SettingsPatch{}, &InvalidSettingError{Key: key, Value: rawValue, Accepted: acceptedToggle}
		}
		*field = &b
	}

	return patch, nil
}

func NormalizeSettingKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if alias, ok := settingAliases[key]; ok {
		return alias
	}
	return key
}

func (p *SettingsPatch) toggle(key string) **bool {
	switch key {
	case SettingWelcome:
		return &p.Welcome
	case SettingAntilink:
		return &p.Antilink
	case SettingAntiViewOnce:
		return &p.AntiViewOnce
	case SettingAntispam:
		return &p.Antispam
	}
	return nil
}

func (p SettingsPatch) IsEmpty() bool {
	return p.Welcome == nil && p.Antilink == nil && p.AntiViewOnce == nil && p.Antispam == nil && p.Language == nil
}

// Columns returns the changed columns and their values in a stable order.
func (p SettingsPatch) Columns() ([]string, []any) {
	var (
		cols []string
		vals []any
	)
	add := func(col string, v *bool) {
		if v != nil {
			cols = append(cols, col)
			vals = append(vals, *v)
		}
	}
	add(SettingWelcome, p.Welcome)
	add(SettingAntilink, p.Antilink)
	add(SettingAntiViewOnce, p.AntiViewOnce)
	add(SettingAntispam, p.Antispam)
	if p.Language != nil {
		cols = append(cols, SettingLanguage)
		vals = append(vals, string(*p.Language))
	}
	return cols, vals
}

// Apply merges the patch into s.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Welcome != nil {
		s.Welcome = *p.Welcome
	}
	if p.Antilink != nil {
		s.Antilink = *p.Antilink
	}
	if p.AntiViewOnce != nil {
		s.AntiViewOnce = *p.AntiViewOnce
	}
	if p.Antispam != nil {
		s.Antispam = *p.Antispam
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	return s
}

// Toggle returns the value of a boolean setting by name.
func (s Settings) Toggle(key string) (bool, bool) {
	switch NormalizeSettingKey(key) {
	case SettingWelcome:
		return s.Welcome, true
	case SettingAntilink:
		return s.Antilink, true
	case SettingAntiViewOnce:
		return s.AntiViewOnce, true
	case SettingAntispam:
		return s.Antispam, true
	}
	return false, false
}

func languageNames() []string {
	names := make([]string, len(Languages))
	for i, l := range Languages {
		names[i] = string(l)
	}
	return names
}
