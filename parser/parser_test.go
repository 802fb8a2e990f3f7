package parser

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dhamidi/diary/diary"
)

const sampleDiary = `2024-03-01
breakfast
  oatmeal 80g protein=13
  banana 1
Lunch:
  chicken breast 150 g
  rice 1.5 cup kcal=300

Second Breakfast
  cookie 2 pcs
2024-03-02
dinner
  soup 1 serving
`

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entry(name, amount string, unit diary.Unit, overrides diary.Overrides) diary.FoodEntry {
	return diary.FoodEntry{
		Name:      name,
		Quantity:  diary.Quantity{Amount: dec(amount), Unit: unit},
		Overrides: overrides,
	}
}

func sampleDocument() *diary.Document {
	return &diary.Document{Days: diary.NewNonEmpty(
		diary.Day{
			Date: diary.MustDate(2024, 3, 1),
			Meals: diary.NewNonEmpty(
				diary.Meal{
					Label: diary.Label(diary.Breakfast),
					Entries: diary.NewNonEmpty(
						entry("oatmeal", "80", diary.Gram, diary.Overrides{diary.Protein: dec("13")}),
						entry("banana", "1", diary.NoUnit, nil),
					),
				},
				diary.Meal{
					Label: diary.Label(diary.Lunch),
					Entries: diary.NewNonEmpty(
						entry("chicken breast", "150", diary.Gram, nil),
						entry("rice", "1.5", diary.Cup, diary.Overrides{diary.Calories: dec("300")}),
					),
				},
				diary.Meal{
					Label:   diary.OtherLabel("Second Breakfast"),
					Entries: diary.NewNonEmpty(entry("cookie", "2", diary.Piece, nil)),
				},
			),
		},
		diary.Day{
			Date: diary.MustDate(2024, 3, 2),
			Meals: diary.NewNonEmpty(diary.Meal{
				Label:   diary.Label(diary.Dinner),
				Entries: diary.NewNonEmpty(entry("soup", "1", diary.Serving, nil)),
			}),
		},
	)}
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(sampleDiary))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if want := sampleDocument(); !doc.Equal(want) {
		t.Errorf("document mismatch:\ngot  %+v\nwant %+v", doc, want)
	}
}

func TestParseDocumentLineEndings(t *testing.T) {
	crlf := strings.ReplaceAll(sampleDiary, "\n", "\r\n")
	doc, err := ParseString(crlf)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if !doc.Equal(sampleDocument()) {
		t.Error("CRLF diary parsed differently")
	}

	noFinalNewline := strings.TrimSuffix(sampleDiary, "\n")
	doc, err = ParseString("\n\n" + noFinalNewline)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if !doc.Equal(sampleDocument()) {
		t.Error("diary without final newline parsed differently")
	}
}

func TestDuplicateDatesStaySeparate(t *testing.T) {
	doc, err := ParseString("2024-01-01\nlunch\nsoup 1\n2024-01-01\ndinner\nrice 1\n")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Days.Len() != 2 {
		t.Errorf("days = %d, want 2", doc.Days.Len())
	}
	if dates := doc.Dates(); len(dates) != 1 {
		t.Errorf("distinct dates = %v", dates)
	}
}

func TestParseEntry(t *testing.T) {
	tests := []struct {
		input string
		want  diary.FoodEntry
	}{
		{"eggs 2", entry("eggs", "2", diary.NoUnit, nil)},
		{"chicken breast 150 g", entry("chicken breast", "150", diary.Gram, nil)},
		{"2 eggs 3", entry("2 eggs", "3", diary.NoUnit, nil)},
		{"7-up 330ml", entry("7-up", "330", diary.Millilitre, nil)},
		{"müsli 60g carbs=40.5 fat=3", entry("müsli", "60", diary.Gram,
			diary.Overrides{diary.Carbohydrate: dec("40.5"), diary.Fat: dec("3")})},
		{"tea 1 cup kcal=2", entry("tea", "1", diary.Cup, diary.Overrides{diary.Calories: dec("2")})},
		{"salad 1 protein=-2", entry("salad", "1", diary.NoUnit, diary.Overrides{diary.Protein: dec("-2")})},
		{"  bread   2 slices  \n", entry("bread", "2", diary.Slice, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEntry(tt.input)
			if err != nil {
				t.Fatalf("ParseEntry(%q): %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseEntryErrors(t *testing.T) {
	tests := []struct {
		input    string
		kind     ErrorKind
		expected string
		detail   string
		column   int
	}{
		{"eggs", KindLexical, "numeric quantity", `no quantity after "eggs"`, 5},
		{"eggs .", KindLexical, "numeric quantity", `no quantity after "eggs ."`, 7},
		{"eggs -1", KindSemantic, "non-negative quantity", "-1 is negative", 6},
		{"eggs 2 protein", KindLexical, "key=value override", `found "protein"`, 8},
		{"eggs 2 caffeine=3", KindLexical, "macro kind", `unknown override key "caffeine"`, 8},
		{"eggs 2 protein=", KindLexical, "numeric override value", "", 16},
		{"eggs 2 protein=1.5.3", KindLexical, "whitespace or end of line after override value", "", 19},
		{"eggs 2 protein=20 protein=25", KindSemantic, "unique override key", `duplicate override key "protein"`, 19},
		{"eggs 2 prot=20 protein=25", KindSemantic, "unique override key", `duplicate override key "protein"`, 16},
		{"eggs 2xyz", KindLexical, "unit", `unknown unit "xyz"`, 7},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseEntry(tt.input)
			if err == nil {
				t.Fatalf("ParseEntry(%q) succeeded", tt.input)
			}
			perr := err.(*Error)
			if perr.Kind != tt.kind {
				t.Errorf("kind = %s, want %s (%v)", perr.Kind, tt.kind, perr)
			}
			if perr.Expected != tt.expected {
				t.Errorf("expected = %q, want %q", perr.Expected, tt.expected)
			}
			if perr.Detail != tt.detail {
				t.Errorf("detail = %q, want %q", perr.Detail, tt.detail)
			}
			if perr.Position.Column != tt.column {
				t.Errorf("column = %d, want %d", perr.Position.Column, tt.column)
			}
			if !perr.In("food entry") {
				t.Errorf("context = %v, want food entry", perr.Context)
			}
		})
	}
}

func TestDocumentErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     ErrorKind
		expected string
		detail   string
		line     int
		column   int
		context  []string
	}{
		{
			name:     "empty",
			input:    "",
			kind:     KindStructural,
			expected: "date header",
			detail:   "diary is empty",
			line:     1, column: 1,
			context: []string{"document"},
		},
		{
			name:     "blank",
			input:    "  \n\n",
			kind:     KindStructural,
			expected: "date header",
			detail:   "diary is empty",
			line:     3, column: 1,
			context: []string{"document"},
		},
		{
			name:     "no date header",
			input:    "breakfast\neggs 2\n",
			kind:     KindStructural,
			expected: "date header",
			detail:   "diary must start with a date header",
			line:     1, column: 1,
			context: []string{"document"},
		},
		{
			name:     "day without meals",
			input:    "2024-01-01\n2024-01-02\nlunch\nsoup 1\n",
			kind:     KindStructural,
			expected: "meal",
			detail:   "day 2024-01-01 has no meals",
			line:     2, column: 1,
			context: []string{"day", "document"},
		},
		{
			name:     "day without meals at end",
			input:    "2024-01-01\nlunch\nsoup 1\n2024-01-02\n",
			kind:     KindStructural,
			expected: "meal",
			detail:   "day 2024-01-02 has no meals",
			line:     5, column: 1,
			context: []string{"day", "document"},
		},
		{
			name:     "meal at end of input",
			input:    "2024-01-01\nbreakfast\n",
			kind:     KindStructural,
			expected: "food entry",
			detail:   `meal "breakfast" has no food entries`,
			line:     3, column: 1,
			context: []string{"meal", "day", "document"},
		},
		{
			name:     "meal followed by meal",
			input:    "2024-01-01\nbreakfast\nlunch\nsoup 1\n",
			kind:     KindStructural,
			expected: "food entry",
			detail:   `meal "breakfast" has no food entries`,
			line:     3, column: 1,
			context: []string{"meal", "day", "document"},
		},
		{
			name:     "invalid first date",
			input:    "2023-02-29\nlunch\nsoup 1\n",
			kind:     KindSemantic,
			expected: "calendar-valid date",
			detail:   "2023-02-29: February 2023 has 28 days",
			line:     1, column: 1,
			context: []string{"date", "day", "document"},
		},
		{
			name:     "invalid later date",
			input:    "2024-01-01\nlunch\nsoup 1\n2023-02-29\ndinner\nrice 1\n",
			kind:     KindSemantic,
			expected: "calendar-valid date",
			detail:   "2023-02-29: February 2023 has 28 days",
			line:     4, column: 1,
			context: []string{"date", "day", "document"},
		},
		{
			name:     "duplicate override",
			input:    "2024-01-01\nbreakfast\n  eggs 2 protein=20 protein=25\n",
			kind:     KindSemantic,
			expected: "unique override key",
			detail:   `duplicate override key "protein"`,
			line:     3, column: 21,
			context: []string{"food entry", "meal", "day", "document"},
		},
		{
			name:     "bad entry after good ones",
			input:    "2024-01-01\nlunch\nsoup 1\nbread 2 slices jam\n",
			kind:     KindLexical,
			expected: "key=value override",
			detail:   `found "jam"`,
			line:     4, column: 16,
			context: []string{"override", "food entry", "meal", "day", "document"},
		},
		{
			name:     "negative quantity",
			input:    "2024-01-01\nlunch\nsoup -1\n",
			kind:     KindSemantic,
			expected: "non-negative quantity",
			detail:   "-1 is negative",
			line:     3, column: 6,
			context: []string{"quantity", "food entry", "meal", "day", "document"},
		},
		{
			name:     "unknown override key with wide runes",
			input:    "2024-01-01\nlunch\nmüsli 2 xyz=1\n",
			kind:     KindLexical,
			expected: "macro kind",
			detail:   `unknown override key "xyz"`,
			line:     3, column: 9,
			context: []string{"override", "food entry", "meal", "day", "document"},
		},
		{
			name:     "invalid utf-8",
			input:    "2024-01-01\n\xff\n",
			kind:     KindLexical,
			expected: "valid UTF-8 text",
			line:     2, column: 1,
			context: []string{"document"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatalf("ParseString(%q) succeeded", tt.input)
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if perr.Kind != tt.kind {
				t.Errorf("kind = %s, want %s (%v)", perr.Kind, tt.kind, perr)
			}
			if perr.Expected != tt.expected {
				t.Errorf("expected = %q, want %q", perr.Expected, tt.expected)
			}
			if perr.Detail != tt.detail {
				t.Errorf("detail = %q, want %q", perr.Detail, tt.detail)
			}
			if perr.Position.Line != tt.line || perr.Position.Column != tt.column {
				t.Errorf("position = %d:%d, want %d:%d", perr.Position.Line, perr.Position.Column, tt.line, tt.column)
			}
			if strings.Join(perr.Context, " < ") != strings.Join(tt.context, " < ") {
				t.Errorf("context = %v, want %v", perr.Context, tt.context)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	_, err := ParseString("2024-01-01\n2024-01-02\n", WithFile("food.diary"))
	want := "food.diary:2:1: structural error: expected meal: day 2024-01-01 has no meals (in day < document)"
	if err == nil || err.Error() != want {
		t.Errorf("error = %v\nwant    %s", err, want)
	}
	if perr := err.(*Error); perr.Position.File != "food.diary" || perr.Position.Offset != 11 {
		t.Errorf("position = %+v", perr.Position)
	}
}

// A line of letters after entries reads as a new meal; when that meal turns
// out empty, the error also says why the line is not a food entry.
func TestEmptyMealNotesMissingQuantity(t *testing.T) {
	input := "2024-01-01\nbreakfast\n  toast 1 slice\ncoffee\nlunch\n  soup 1\n"
	_, err := ParseString(input, WithFile("food.diary"))
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error = %v, want *Error", err)
	}
	if perr.Position.Line != 5 || perr.Detail != `meal "coffee" has no food entries` {
		t.Errorf("error = %v", perr)
	}
	note := perr.Note
	if note == nil {
		t.Fatal("no note on empty free-form meal")
	}
	if note.Kind != KindLexical || note.Expected != "numeric quantity" || note.Detail != `no quantity after "coffee"` {
		t.Errorf("note = %v", note)
	}
	if note.Position.Line != 4 || note.Position.Column != 7 {
		t.Errorf("note position = %s, want 4:7", note.Position)
	}
	want := `food.diary:5:1: structural error: expected food entry: meal "coffee" has no food entries (in meal < day < document); ` +
		`note: food.diary:4:7: lexical error: expected numeric quantity: no quantity after "coffee" (in food entry)`
	if err.Error() != want {
		t.Errorf("message = %s\nwant      %s", err, want)
	}

	// known meal labels are never food entries
	_, err = ParseString("2024-01-01\nbreakfast\nlunch\n  soup 1\n")
	if err.(*Error).Note != nil {
		t.Errorf("note on known meal label: %v", err)
	}
}

func TestWithVocabulary(t *testing.T) {
	vocab := diary.DefaultVocabulary()
	if err := vocab.AddMealAlias("frühstück", diary.Breakfast); err != nil {
		t.Fatal(err)
	}
	if err := vocab.AddUnit("glass", diary.DimensionVolume, "glasses"); err != nil {
		t.Fatal(err)
	}
	if err := vocab.AddMacro("caffeine", "koffein"); err != nil {
		t.Fatal(err)
	}

	text := "2024-01-01\nFrühstück\nmilk 2 glasses koffein=0\n"
	doc, err := ParseString(text, WithVocabulary(vocab))
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	want := &diary.Document{Days: diary.NewNonEmpty(diary.Day{
		Date: diary.MustDate(2024, 1, 1),
		Meals: diary.NewNonEmpty(diary.Meal{
			Label: diary.Label(diary.Breakfast),
			Entries: diary.NewNonEmpty(entry("milk", "2", "glass",
				diary.Overrides{"caffeine": dec("0")})),
		}),
	})}
	if !doc.Equal(want) {
		t.Errorf("got %+v", doc)
	}

	// the default vocabulary is untouched
	if _, err := ParseString(text); err == nil {
		t.Error("default vocabulary accepted koffein")
	}
}

func TestConcurrentParses(t *testing.T) {
	p := New()
	want := sampleDocument()
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, err := p.Document(sampleDiary)
			if err != nil {
				errs <- err
				return
			}
			if !doc.Equal(want) {
				errs <- errors.New("document mismatch")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
