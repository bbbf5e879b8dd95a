package event

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-calendar/internal/config"
)

// Category classifies an event. The zero value is not a valid category.
type Category uint8

const (
	CategoryWork Category = iota + 1
	CategoryPersonal
	CategoryHealth
	CategoryEducation
	CategorySocial
	CategoryTravel
	CategoryFinance
	CategoryOther
)

// Categories lists every category in declaration order.
var Categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryHealth,
	CategoryEducation,
	CategorySocial,
	CategoryTravel,
	CategoryFinance,
	CategoryOther,
}

func (c Category) Valid() bool {
	return c >= CategoryWork && c <= CategoryOther
}

// Name is the persisted enum name.
func (c Category) Name() string {
	switch c {
	case CategoryWork:
		return "WORK"
	case CategoryPersonal:
		return "PERSONAL"
	case CategoryHealth:
		return "HEALTH"
	case CategoryEducation:
		return "EDUCATION"
	case CategorySocial:
		return "SOCIAL"
	case CategoryTravel:
		return "TRAVEL"
	case CategoryFinance:
		return "FINANCE"
	case CategoryOther:
		return "OTHER"
	}
	return ""
}

func (c Category) DisplayName() string {
	switch c {
	case CategoryWork:
		return "Work"
	case CategoryPersonal:
		return "Personal"
	case CategoryHealth:
		return "Health"
	case CategoryEducation:
		return "Education"
	case CategorySocial:
		return "Social"
	case CategoryTravel:
		return "Travel"
	case CategoryFinance:
		return "Finance"
	case CategoryOther:
		return "Other"
	}
	return ""
}

func (c Category) Icon() string {
	switch c {
	case CategoryWork:
		return "💼"
	case CategoryPersonal:
		return "👤"
	case CategoryHealth:
		return "🏥"
	case CategoryEducation:
		return "📚"
	case CategorySocial:
		return "🎉"
	case CategoryTravel:
		return "✈️"
	case CategoryFinance:
		return "💰"
	case CategoryOther:
		return "📌"
	}
	return ""
}

// TranslationKey is the i18n message id of the category label.
func (c Category) TranslationKey() string {
	switch c {
	case CategoryWork:
		return config.TKeyCatWork
	case CategoryPersonal:
		return config.TKeyCatPersonal
	case CategoryHealth:
		return config.TKeyCatHealth
	case CategoryEducation:
		return config.TKeyCatEducation
	case CategorySocial:
		return config.TKeyCatSocial
	case CategoryTravel:
		return config.TKeyCatTravel
	case CategoryFinance:
		return config.TKeyCatFinance
	case CategoryOther:
		return config.TKeyCatOther
	}
	return ""
}

func (c Category) String() string {
	return c.Icon() + " " + c.DisplayName()
}

// ParseCategory resolves an enum name or display name, ignoring case.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, c.Name()) || strings.EqualFold(s, c.DisplayName()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%s: %q", config.ErrUnknownCategory, s)
}

// CategoryFromDisplayName is the lenient lookup: unknown names map to Other.
func CategoryFromDisplayName(name string) Category {
	for _, c := range Categories {
		if strings.EqualFold(c.DisplayName(), name) {
			return c
		}
	}
	return CategoryOther
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.Name()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Priority is an ordinal importance level. The zero value is not a valid priority.
type Priority uint8

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityUrgent
}

// Level is the ordinal used for ordering: Low=1 ... Urgent=4.
func (p Priority) Level() int {
	return int(p)
}

func (p Priority) Name() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityHigh:
		return "HIGH"
	case PriorityUrgent:
		return "URGENT"
	}
	return ""
}

func (p Priority) DisplayName() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	}
	return ""
}

func (p Priority) Icon() string {
	switch p {
	case PriorityLow:
		return "🟢"
	case PriorityMedium:
		return "🟡"
	case PriorityHigh:
		return "🟠"
	case PriorityUrgent:
		return "🔴"
	}
	return ""
}

func (p Priority) TranslationKey() string {
	switch p {
	case PriorityLow:
		return config.TKeyPrioLow
	case PriorityMedium:
		return config.TKeyPrioMedium
	case PriorityHigh:
		return config.TKeyPrioHigh
	case PriorityUrgent:
		return config.TKeyPrioUrgent
	}
	return ""
}

func (p Priority) String() string {
	return p.Icon() + " " + p.DisplayName()
}

// ParsePriority resolves an enum name or display name, ignoring case.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	for _, p := range Priorities {
		if strings.EqualFold(s, p.Name()) || strings.EqualFold(s, p.DisplayName()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%s: %q", config.ErrUnknownPriority, s)
}

// PriorityFromDisplayName is the lenient lookup: unknown names map to Medium.
func PriorityFromDisplayName(name string) Priority {
	for _, p := range Priorities {
		if strings.EqualFold(p.DisplayName(), name) {
			return p
		}
	}
	return PriorityMedium
}

func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.Name()), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	parsed, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
