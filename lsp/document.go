package lsp

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/diary/diary"
	"github.com/dhamidi/diary/format"
	"github.com/dhamidi/diary/parser"
)

const diagnosticSource = "diary"

// Diagnostics parses text and reports its error, if any. The range runs
// from the failing column to the end of that line.
func Diagnostics(text, file string, vocab *diary.Vocabulary) []protocol.Diagnostic {
	diags := []protocol.Diagnostic{}
	_, err := parser.New(parser.WithFile(file), parser.WithVocabulary(vocab)).Document(text)
	var perr *parser.Error
	if !errors.As(err, &perr) {
		return diags
	}

	line := lineAt(text, perr.Position.Line)
	start := utf16Offset(line, perr.Position.Column)
	end := utf16Len(line)
	if end < start {
		end = start
	}
	severity := protocol.DiagnosticSeverityError
	source := diagnosticSource
	return append(diags, protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: protocol.UInteger(perr.Position.Line - 1), Character: start},
			End:   protocol.Position{Line: protocol.UInteger(perr.Position.Line - 1), Character: end},
		},
		Severity: &severity,
		Source:   &source,
		Message:  message(perr),
	})
}

func message(perr *parser.Error) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s error: expected %s", perr.Kind, perr.Expected)
	if perr.Detail != "" {
		fmt.Fprintf(&sb, ": %s", perr.Detail)
	}
	if len(perr.Context) > 0 {
		fmt.Fprintf(&sb, " (in %s)", strings.Join(perr.Context, " < "))
	}
	if note := perr.Note; note != nil {
		fmt.Fprintf(&sb, "\nnote: line %d: expected %s", note.Position.Line, note.Expected)
		if note.Detail != "" {
			fmt.Fprintf(&sb, ": %s", note.Detail)
		}
	}
	return sb.String()
}

// Format returns the edit that rewrites text into canonical form. Text that
// does not parse gets no edits.
func Format(text, file string, vocab *diary.Vocabulary) []protocol.TextEdit {
	doc, err := parser.New(parser.WithFile(file), parser.WithVocabulary(vocab)).Document(text)
	if err != nil {
		return nil
	}
	var buf bytes.Buffer
	if err := format.NewTextEncoder(&buf).Encode(doc); err != nil {
		return nil
	}
	if buf.String() == text {
		return []protocol.TextEdit{}
	}
	lines := strings.Split(text, "\n")
	last := len(lines) - 1
	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: protocol.UInteger(last), Character: utf16Len(lines[last])},
		},
		NewText: buf.String(),
	}}
}

// Completions offers meal labels while a line has no quantity yet, and
// units and override keys after one.
func Completions(text string, pos protocol.Position, vocab *diary.Vocabulary) []protocol.CompletionItem {
	line := lineAt(text, int(pos.Line)+1)
	prefix := utf16Prefix(line, int(pos.Character))
	words := strings.Fields(prefix)

	hasQuantity := false
	for i, w := range words {
		if i > 0 && startsNumber(w) {
			hasQuantity = true
		}
	}

	var items []protocol.CompletionItem
	if !hasQuantity {
		kind := protocol.CompletionItemKindKeyword
		for _, k := range []diary.MealKind{diary.Breakfast, diary.Lunch, diary.Dinner, diary.Snack} {
			detail := "meal"
			items = append(items, protocol.CompletionItem{Label: k.String(), Kind: &kind, Detail: &detail})
		}
		return items
	}

	unitKind := protocol.CompletionItemKindUnit
	for _, e := range vocab.UnitTokens() {
		if e.Token != string(e.Value) {
			continue
		}
		dim, _ := vocab.Dimension(e.Value)
		detail := dim.String()
		items = append(items, protocol.CompletionItem{Label: e.Token, Kind: &unitKind, Detail: &detail})
	}
	macroKind := protocol.CompletionItemKindProperty
	for _, e := range vocab.MacroTokens() {
		if e.Token != string(e.Value) {
			continue
		}
		detail := "override"
		insert := e.Token + "="
		items = append(items, protocol.CompletionItem{Label: insert, Kind: &macroKind, Detail: &detail, InsertText: &insert})
	}
	return items
}

func startsNumber(w string) bool {
	w = strings.TrimLeft(w, "+-")
	if strings.HasPrefix(w, ".") {
		w = w[1:]
	}
	return w != "" && w[0] >= '0' && w[0] <= '9'
}

func lineAt(text string, n int) string {
	lines := strings.Split(text, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[n-1], "\r")
}

// utf16Offset converts a 1-based rune column into a 0-based UTF-16 offset.
func utf16Offset(line string, column int) protocol.UInteger {
	var n protocol.UInteger
	i := 1
	for _, r := range line {
		if i >= column {
			break
		}
		n += protocol.UInteger(utf16.RuneLen(r))
		i++
	}
	return n
}

func utf16Len(line string) protocol.UInteger {
	return utf16Offset(line, len(line)+1)
}

// utf16Prefix returns the part of line before a UTF-16 offset.
func utf16Prefix(line string, offset int) string {
	n := 0
	for i, r := range line {
		if n >= offset {
			return line[:i]
		}
		n += utf16.RuneLen(r)
	}
	return line
}
