package i18n_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/event"
	"github.com/tartampluch/go-calendar/internal/i18n"
)

// TestI18nIntegrity ensures every translation key defined in config.go
// exists in every locale file, and reports keys nothing uses.
func TestI18nIntegrity(t *testing.T) {
	defined := make(map[string]bool, len(config.TranslationKeys))
	for _, k := range config.TranslationKeys {
		defined[k] = true
	}
	for _, c := range event.Categories {
		assert.True(t, defined[c.TranslationKey()], "category %s has no key in the list", c.Name())
	}
	for _, p := range event.Priorities {
		assert.True(t, defined[p.TranslationKey()], "priority %s has no key in the list", p.Name())
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
			require.NoError(t, err)

			var jsonMap map[string]any
			require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

			for key := range defined {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.%s.json", key, lang)
			}
			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				if !defined[jsonKey] {
					t.Logf("Warning: Key '%s' exists in JSON but is not defined in config.go", jsonKey)
				}
			}
		})
	}
}

func TestTranslator_Languages(t *testing.T) {
	tr := i18n.New("")

	assert.Equal(t, config.DefaultLanguage, tr.Language())
	assert.ElementsMatch(t, config.SupportedLanguages, tr.Languages())
}

func TestTranslator_SetLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fr", "fr"},
		{"fr-CA", "fr"},
		{"en-GB", "en"},
		{"de", "en"},
		{"not a tag", "en"},
	}
	tr := i18n.New("en")
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tr.SetLanguage(tt.in)
			assert.Equal(t, tt.want, tr.Language())
		})
	}
}

func TestTranslator_Messages(t *testing.T) {
	en := i18n.New("en")
	fr := i18n.New("fr")

	assert.Equal(t, "💼 Work", en.Category(event.CategoryWork))
	assert.Equal(t, "💼 Travail", fr.Category(event.CategoryWork))
	assert.Equal(t, "🔴 Urgente", fr.Priority(event.PriorityUrgent))

	assert.Equal(t, "1 event", en.Plural(config.TKeyEventCount, 1, nil))
	assert.Equal(t, "3 events", en.Plural(config.TKeyEventCount, 3, nil))
	assert.Equal(t, "3 événements", fr.Plural(config.TKeyEventCount, 3, nil))
	assert.Equal(t, "Exported 2 events to /tmp/cal.ics.",
		en.Plural(config.TKeyExported, 2, map[string]any{"Path": "/tmp/cal.ics"}))

	assert.Equal(t, "Event added: Gym", en.Format(config.TKeyEventAdded, map[string]any{"Title": "Gym"}))
	assert.Equal(t, "No conflicts found.", en.Msg(config.TKeyNoConflicts))
}

func TestTranslator_MissingKey(t *testing.T) {
	tr := i18n.New("fr")
	assert.Equal(t, "no_such_key", tr.Msg("no_such_key"))
}

func TestTranslator_BirthdaySummary(t *testing.T) {
	en := i18n.New("en")

	assert.Equal(t, "🎂 Ada turns 36", en.BirthdaySummary("Ada", 36, true))
	assert.Equal(t, "🎂 Ada's birthday", en.BirthdaySummary("Ada", 0, false))
	assert.Equal(t, "🎂 Ada's birthday", en.BirthdaySummary("Ada", 0, true), "birth year itself has no age")
}
