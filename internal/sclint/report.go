package sclint

import (
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/rs/zerolog"

	"github.com/jsscope/core/extract"
	"github.com/jsscope/core/lint"
)

func newLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// extractKind is fixed to Script: the bundled demo snippet has no import
// syntax, so script-vs-module semantics make no observable difference to
// it, and this CLI has no flag that would plausibly pick Module instead.
func extractKind() extract.FileKind { return extract.Script }

func printReport(stdio mainer.Stdio, r lint.Report) {
	printRecords(stdio, "no-undef", r.NoUndef, func(x lint.NoUndef) string {
		return fmt.Sprintf("%s at %d:%d", x.Name, x.Span.Start, x.Span.End)
	})
	printRecords(stdio, "no-unused-vars", r.NoUnusedVars, func(x lint.NoUnusedVars) string {
		return fmt.Sprintf("%s declared at %d:%d", x.Name, x.DeclaredSpan.Start, x.DeclaredSpan.End)
	})
	printRecords(stdio, "no-use-before-def", r.UseBeforeDef, func(x lint.UseBeforeDef) string {
		return fmt.Sprintf("%s used at %d:%d before declaration at %d:%d",
			x.Name, x.UsedSpan.Start, x.UsedSpan.End, x.DeclaredSpan.Start, x.DeclaredSpan.End)
	})
	printRecords(stdio, "no-typeof-undef", r.TypeofUndef, func(x lint.TypeofUndef) string {
		return fmt.Sprintf("typeof at %d:%d (operand %d:%d) is always \"undefined\"",
			x.WholeSpan.Start, x.WholeSpan.End, x.OperandSpan.Start, x.OperandSpan.End)
	})
	printRecords(stdio, "no-unused-labels", r.UnusedLabel, func(x lint.UnusedLabel) string {
		return fmt.Sprintf("%s at %d:%d", x.Name, x.Span.Start, x.Span.End)
	})
	printRecords(stdio, "no-shadow", r.ShadowedVariable, func(x lint.ShadowedVariable) string {
		return fmt.Sprintf("%s at %d:%d shadows outer declaration at %d:%d",
			x.Name, x.InnerSpan.Start, x.InnerSpan.End, x.OuterSpan.Start, x.OuterSpan.End)
	})
}

func printRecords[T any](stdio mainer.Stdio, rule string, rows []T, format func(T) string) {
	for _, row := range rows {
		fmt.Fprintf(stdio.Stdout, "%s: %s\n", rule, format(row))
	}
}
