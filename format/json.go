package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/diary/diary"
)

type JSONEncoder struct {
	w   io.Writer
	doc *diary.Document
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(doc *diary.Document) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := BuildDocument(e.doc)
	return json.MarshalIndent(data, "", "  ")
}

// Decimals are strings so that no precision is lost to JSON numbers.

type JSONDocument struct {
	Days []JSONDay `json:"days"`
}

type JSONDay struct {
	Date  string     `json:"date"`
	Meals []JSONMeal `json:"meals"`
}

type JSONMeal struct {
	Label   string      `json:"label"`
	Kind    string      `json:"kind"`
	Entries []JSONEntry `json:"entries"`
}

type JSONEntry struct {
	Name      string            `json:"name"`
	Quantity  JSONQuantity      `json:"quantity"`
	Overrides map[string]string `json:"overrides,omitempty"`
}

type JSONQuantity struct {
	Amount string `json:"amount"`
	Unit   string `json:"unit,omitempty"`
}

func BuildDocument(doc *diary.Document) JSONDocument {
	data := JSONDocument{Days: []JSONDay{}}
	if doc == nil {
		return data
	}
	for _, day := range doc.Days.All() {
		jd := JSONDay{Date: day.Date.String()}
		for _, meal := range day.Meals.All() {
			jm := JSONMeal{Label: meal.Label.String(), Kind: meal.Label.Kind.String()}
			for _, entry := range meal.Entries.All() {
				jm.Entries = append(jm.Entries, buildEntry(entry))
			}
			jd.Meals = append(jd.Meals, jm)
		}
		data.Days = append(data.Days, jd)
	}
	return data
}

func buildEntry(entry diary.FoodEntry) JSONEntry {
	je := JSONEntry{
		Name: entry.Name,
		Quantity: JSONQuantity{
			Amount: diary.FormatDecimal(entry.Quantity.Amount),
			Unit:   string(entry.Quantity.Unit),
		},
	}
	if len(entry.Overrides) > 0 {
		je.Overrides = make(map[string]string, len(entry.Overrides))
		for k, v := range entry.Overrides {
			je.Overrides[string(k)] = diary.FormatDecimal(v)
		}
	}
	return je
}
