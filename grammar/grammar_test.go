package grammar

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/diary/parser"
)

func TestLoad(t *testing.T) {
	g, err := Load()
	if err != nil {
		for _, e := range Errors(err) {
			t.Error(e)
		}
		t.FailNow()
	}
	names := Productions(g)
	for _, want := range []string{"Document", "Day", "Meal", "FoodEntry", "Quantity", "Override", "date", "number"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("production %s missing from %v", want, names)
		}
	}
}

func TestCheckReportsEveryError(t *testing.T) {
	src := "Document = Day missing .\nDay = \"x\" .\nunused = \"y\" .\n"
	_, err := Check("bad.ebnf", strings.NewReader(src), "Document")
	if err == nil {
		t.Fatal("Check accepted an inconsistent grammar")
	}
	if errs := Errors(err); len(errs) < 2 {
		t.Errorf("errors = %v, want at least two", errs)
	}

	if _, err := Check("syntax.ebnf", strings.NewReader("Document = ."), ""); err != nil {
		t.Errorf("syntax-only check failed: %v", err)
	}
}

func TestMatchProductions(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		production string
		input      string
		want       bool
	}{
		{"date", "2024-03-01", true},
		{"date", "2024.3.1", true},
		{"date", "2024-03/01", false},
		{"date", "24-03-01", false},
		{"number", "80", true},
		{"number", ".5", true},
		{"number", "-1.25", true},
		{"number", "5.", false},
		{"number", ".", false},
		{"Quantity", "80g", true},
		{"Quantity", "80 g", true},
		{"Quantity", "1.5", true},
		{"Override", "protein=13", true},
		{"Override", "protein=", false},
		{"FoodEntry", "  chicken breast 150 g kcal=300\n", true},
		{"FoodEntry", "2 eggs 3\n", true},
		{"FoodEntry", "eggs\n", false},
		{"FoodEntry", "食パン 2\n", true},
		{"FoodEntry", "fish@home; $ 2\n", true},
		{"FoodEntry", "tea +lemon .x 1\n", true},
		{"FoodEntry", "tea +1 lemon 1\n", false},
		{"FoodEntry", "tea .5 lemon 1\n", false},
		{"word", "x\ty", false},
		{"MealHeader", "Second Breakfast:\n", true},
		{"MealHeader", "lunch 1\n", false},
		{"DateHeader", "2024-03-01  \n\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.production+"/"+tt.input, func(t *testing.T) {
			if got := Match(g, tt.production, tt.input); got != tt.want {
				t.Errorf("Match(%s, %q) = %v, want %v", tt.production, tt.input, got, tt.want)
			}
		})
	}
}

func TestMatchAgreesWithParser(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	files, err := filepath.Glob(filepath.Join("..", "format", "testdata", "*.diary"))
	if err != nil {
		t.Fatal(err)
	}
	inputs := map[string]string{
		"day without meals": "2024-01-01\n2024-01-02\nlunch\nsoup 1\n",
		"meal without food": "2024-01-01\nbreakfast\n",
		"missing quantity":  "2024-01-01\nlunch\nsoup\n",
		"no date":           "lunch\nsoup 1\n",
		"empty":             "",
		"two days":          "2024-01-01\nlunch\nsoup 1\n\n2024-01-02\ndinner\n  rice 1 cup\n",
		"wide name runes":   "2024-01-01\nlunch\n  食パン 2\n  fish@home; 1\n  tea +lemon 1 cup\n",
	}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatal(err)
		}
		inputs[filepath.Base(f)] = string(data)
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, perr := parser.ParseString(input)
			matched := Match(g, Start, input)
			if matched != (perr == nil) {
				t.Errorf("grammar match = %v, parser error = %v", matched, perr)
			}
		})
	}
}
