package format

import (
	"io"
	"strings"

	"github.com/dhamidi/diary/diary"
)

// TextEncoder writes the canonical diary text: one blank line between
// days, meal labels in lower case for known kinds, entries indented by two
// spaces with units glued to the amount and overrides sorted by key.
type TextEncoder struct {
	w   io.Writer
	doc *diary.Document
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(doc *diary.Document) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if e.doc == nil {
		return nil, nil
	}
	for i, day := range e.doc.Days.All() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(day.Date.String())
		sb.WriteByte('\n')
		for _, meal := range day.Meals.All() {
			sb.WriteString(meal.Label.String())
			sb.WriteByte('\n')
			for _, entry := range meal.Entries.All() {
				sb.WriteString("  ")
				sb.WriteString(Entry(entry))
				sb.WriteByte('\n')
			}
		}
	}
	return []byte(sb.String()), nil
}

// Entry renders a single food entry line without indentation.
func Entry(entry diary.FoodEntry) string {
	var sb strings.Builder
	sb.WriteString(entry.Name)
	sb.WriteByte(' ')
	sb.WriteString(entry.Quantity.String())
	for _, k := range entry.Overrides.Keys() {
		sb.WriteByte(' ')
		sb.WriteString(string(k))
		sb.WriteByte('=')
		sb.WriteString(diary.FormatDecimal(entry.Overrides[k]))
	}
	return sb.String()
}
