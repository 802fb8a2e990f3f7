package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dhamidi/diary/diary"
)

func newVocabCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "List the meal labels, units and override keys in use",
		Long: `List every token the parser recognises, grouped by what it names.

The list includes the entries added by the configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeVocabulary(os.Stdout, opts.vocab)
		},
	}
}

func writeVocabulary(w io.Writer, v *diary.Vocabulary) error {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6"))
	token := r.NewStyle().Width(14)

	var sb strings.Builder
	sb.WriteString(heading.Render("Meals") + "\n")
	for _, e := range v.MealTokens() {
		fmt.Fprintf(&sb, "  %s%s\n", token.Render(e.Token), e.Value)
	}
	sb.WriteString("\n" + heading.Render("Units") + "\n")
	for _, e := range v.UnitTokens() {
		dim, _ := v.Dimension(e.Value)
		fmt.Fprintf(&sb, "  %s%s (%s)\n", token.Render(e.Token), e.Value, dim)
	}
	sb.WriteString("\n" + heading.Render("Overrides") + "\n")
	for _, e := range v.MacroTokens() {
		fmt.Fprintf(&sb, "  %s%s\n", token.Render(e.Token), e.Value)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
