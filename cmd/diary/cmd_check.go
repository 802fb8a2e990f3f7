package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dhamidi/diary/diary"
	"github.com/dhamidi/diary/format"
	"github.com/dhamidi/diary/watch"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var watchFiles bool

	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Report errors in diaries",
		Long: `Check one or more diary files and report the first error in each.

Without a file, the diary is read from stdin. With --watch the files are
checked again every time they change, until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watchFiles {
				if len(args) == 0 || slices.Contains(args, "-") {
					return fmt.Errorf("--watch requires file arguments, not standard input")
				}
				return watchCheck(cmd.Context(), args, opts.vocab)
			}
			results, err := parseAll(args, opts.vocab)
			if err != nil {
				return err
			}
			if err := report(os.Stdout, os.Stderr, results); err != nil {
				return err
			}
			if failed := countFailures(results); failed > 0 {
				return failureError(failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&watchFiles, "watch", false, "check again whenever a file changes")

	return cmd
}

func report(out, errOut io.Writer, results []parsed) error {
	for _, r := range results {
		if r.err != nil {
			if err := format.WriteDiagnostic(errOut, r.err, r.source); err != nil {
				return fmt.Errorf("write diagnostic: %w", err)
			}
			continue
		}
		if _, err := fmt.Fprintf(out, "%s: ok (%s)\n", r.name, summary(r.doc)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

func summary(doc *diary.Document) string {
	days, meals, entries := doc.Days.Len(), 0, 0
	for _, day := range doc.Days.All() {
		meals += day.Meals.Len()
		for _, meal := range day.Meals.All() {
			entries += meal.Entries.Len()
		}
	}
	return fmt.Sprintf("%s, %s, %s",
		plural(days, "day"), plural(meals, "meal"), plural(entries, "entry"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	if noun == "entry" {
		return fmt.Sprintf("%d entries", n)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func watchCheck(ctx context.Context, files []string, vocab *diary.Vocabulary) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := parseAll(files, vocab)
	if err != nil {
		return err
	}
	if err := report(os.Stdout, os.Stderr, results); err != nil {
		return err
	}

	w, err := watch.New(files...)
	if err != nil {
		return err
	}
	w.OnChange = func(path string) {
		if err := report(os.Stdout, os.Stderr, []parsed{parseOne(path, vocab)}); err != nil {
			log.Errorf("%s: %s", path, err)
		}
	}
	w.OnRemove = func(path string) {
		fmt.Fprintf(os.Stderr, "%s: removed\n", path)
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	<-w.Done()
	return nil
}
