// Package i18n translates the labels and messages shown by the CLI.
package i18n

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/event"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

// Translator resolves translation keys for one language at a time.
// Unknown keys fall back to the key itself.
type Translator struct {
	bundle    *goi18n.Bundle
	localizer *goi18n.Localizer
	matcher   language.Matcher
	tags      []language.Tag
	lang      string
}

// New loads every embedded locale and selects lang, or the closest
// available language when lang is not shipped.
func New(lang string) *Translator {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	tags := bundle.LanguageTags()
	t := &Translator{
		bundle:  bundle,
		matcher: language.NewMatcher(tags),
		tags:    tags,
	}
	t.SetLanguage(lang)
	return t
}

// SetLanguage switches the active language. Tags such as "fr-CA" match
// the shipped "fr"; anything unmatched falls back to English.
func (t *Translator) SetLanguage(lang string) {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	tag, _, _ := t.matcher.Match(language.Make(lang))
	base, _ := tag.Base()
	t.lang = base.String()
	t.localizer = goi18n.NewLocalizer(t.bundle, t.lang)
}

// Language is the ISO 639-1 code of the active language.
func (t *Translator) Language() string { return t.lang }

// Languages lists the loaded languages.
func (t *Translator) Languages() []string {
	out := make([]string, 0, len(t.tags))
	for _, tag := range t.tags {
		out = append(out, tag.String())
	}
	return out
}

// Msg translates a key with no template data.
func (t *Translator) Msg(key string) string {
	return t.localize(&goi18n.LocalizeConfig{MessageID: key})
}

// Format translates a key, filling its template from data.
func (t *Translator) Format(key string, data map[string]any) string {
	return t.localize(&goi18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

// Plural translates a key with plural forms. Count is added to data.
func (t *Translator) Plural(key string, count int, data map[string]any) string {
	td := map[string]any{"Count": count}
	for k, v := range data {
		td[k] = v
	}
	return t.localize(&goi18n.LocalizeConfig{MessageID: key, PluralCount: count, TemplateData: td})
}

func (t *Translator) localize(cfg *goi18n.LocalizeConfig) string {
	msg, err := t.localizer.Localize(cfg)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, cfg.MessageID,
			config.LogKeyError, err,
		)
		return cfg.MessageID
	}
	return msg
}

// Category is the localized category label with its icon.
func (t *Translator) Category(c event.Category) string {
	return c.Icon() + " " + t.Msg(c.TranslationKey())
}

// Priority is the localized priority label with its icon.
func (t *Translator) Priority(p event.Priority) string {
	return p.Icon() + " " + t.Msg(p.TranslationKey())
}

// BirthdaySummary is the event title used for imported birthdays.
func (t *Translator) BirthdaySummary(name string, age int, yearKnown bool) string {
	if yearKnown && age > 0 {
		return t.Format(config.TKeyBirthdayAge, map[string]any{"Name": name, "Age": age})
	}
	return t.Format(config.TKeyBirthday, map[string]any{"Name": name})
}
