package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/event"
)

// record holds the nine persisted fields of one event as unescaped strings.
type record map[string]string

func encodeRecord(e event.Event) record {
	return record{
		config.FieldID:              e.ID(),
		config.FieldDate:            e.Date().String(),
		config.FieldTime:            e.Time().String(),
		config.FieldDurationMinutes: strconv.FormatInt(e.DurationMinutes(), 10),
		config.FieldTitle:           e.Title(),
		config.FieldDescription:     e.Description(),
		config.FieldCategory:        e.Category().Name(),
		config.FieldPriority:        e.Priority().Name(),
		config.FieldCreatedAt:       e.CreatedAt().Format(config.DateTimeFormatISO),
	}
}

// decodeRecord rebuilds an event. Any missing field or unparsable value is
// an error; the builder enforces the remaining invariants.
func decodeRecord(r record) (event.Event, error) {
	for _, name := range config.RecordFields {
		if _, ok := r[name]; !ok {
			return event.Event{}, fmt.Errorf("%s: %s", config.ErrRecordMissing, name)
		}
	}

	date, err := event.ParseDate(r[config.FieldDate])
	if err != nil {
		return event.Event{}, err
	}
	tod, err := event.ParseTimeOfDay(r[config.FieldTime])
	if err != nil {
		return event.Event{}, err
	}
	minutes, err := strconv.Atoi(r[config.FieldDurationMinutes])
	if err != nil {
		return event.Event{}, fmt.Errorf("%s: %w", config.ErrRecordDuration, err)
	}
	category, err := event.ParseCategory(r[config.FieldCategory])
	if err != nil {
		return event.Event{}, err
	}
	priority, err := event.ParsePriority(r[config.FieldPriority])
	if err != nil {
		return event.Event{}, err
	}
	createdAt, err := time.Parse(config.DateTimeFormatISO, r[config.FieldCreatedAt])
	if err != nil {
		return event.Event{}, err
	}

	return event.NewBuilder().
		ID(r[config.FieldID]).
		Date(date).
		Time(tod).
		DurationMinutes(minutes).
		Title(r[config.FieldTitle]).
		Description(r[config.FieldDescription]).
		Category(category).
		Priority(priority).
		CreatedAt(createdAt).
		Build()
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// escape makes s safe to write between double quotes on a single line.
func escape(s string) string {
	return escaper.Replace(s)
}

// formatLine writes a record as space separated key="value" pairs.
func formatLine(r record) string {
	var sb strings.Builder
	for i, name := range config.RecordFields {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(name)
		sb.WriteString(`="`)
		sb.WriteString(escape(r[name]))
		sb.WriteByte('"')
	}
	return sb.String()
}

// parseLine is the inverse of formatLine. It rejects unknown and repeated
// field names, bad escapes and unterminated values.
func parseLine(line string) (record, error) {
	r := make(record, len(config.RecordFields))
	i := 0
	for {
		for i < len(line) && line[i] == ' ' {
			i++
		}
		if i == len(line) {
			return r, nil
		}

		start := i
		for i < len(line) && line[i] != '=' && line[i] != ' ' {
			i++
		}
		if i+1 >= len(line) || line[i] != '=' || line[i+1] != '"' {
			return nil, fmt.Errorf("%s: expected key=\"value\" at column %d", config.ErrRecordSyntax, start+1)
		}
		key := line[start:i]
		i += 2

		value, next, err := readQuoted(line, i)
		if err != nil {
			return nil, err
		}
		i = next
		if i < len(line) && line[i] != ' ' {
			return nil, fmt.Errorf("%s: unexpected %q after %s", config.ErrRecordSyntax, line[i], key)
		}

		switch {
		case !isRecordField(key):
			return nil, fmt.Errorf("%s: %s", config.ErrRecordField, key)
		case hasKey(r, key):
			return nil, fmt.Errorf("%s: %s", config.ErrRecordDup, key)
		}
		r[key] = value
	}
}

// readQuoted reads from just after an opening quote up to the closing one
// and returns the unescaped value and the index after the closing quote.
func readQuoted(line string, i int) (string, int, error) {
	var sb strings.Builder
	for i < len(line) {
		c := line[i]
		switch c {
		case '"':
			return sb.String(), i + 1, nil
		case '\\':
			if i+1 >= len(line) {
				return "", 0, fmt.Errorf("%s: dangling escape", config.ErrRecordSyntax)
			}
			switch line[i+1] {
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			default:
				return "", 0, fmt.Errorf("%s: unknown escape \\%c", config.ErrRecordSyntax, line[i+1])
			}
			i += 2
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return "", 0, fmt.Errorf("%s: unterminated value", config.ErrRecordSyntax)
}

func isRecordField(name string) bool {
	for _, f := range config.RecordFields {
		if f == name {
			return true
		}
	}
	return false
}

func hasKey(r record, key string) bool {
	_, ok := r[key]
	return ok
}
