package main

import (
	"iter"

	"github.com/spf13/cobra"

	"github.com/bjaus/posprintf"
	"github.com/bjaus/posprintf/internal/report"
)

func newExplainCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "explain FORMAT",
		Short: "List the directives of a format string",
		Example: `  posprintf explain 'HP %03d/%03d %s'
  posprintf explain -o markdown '%5l|%08X'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = string(report.Table)
			}
			f, err := a.output(output)
			if err != nil {
				return err
			}
			var parseErr error
			if err := report.WriteIter(cmd.OutOrStdout(), f, directiveRows(args[0], &parseErr)); err != nil {
				return err
			}
			return parseErr
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format (table|markdown|csv|json|jsonl|yaml|plain)")
	return cmd
}

// directiveRows adapts posprintf.Directives to report rows. Iteration ends
// at the first parse error, which is stored in *errp.
func directiveRows(format string, errp *error) iter.Seq[report.DirectiveRow] {
	return func(yield func(report.DirectiveRow) bool) {
		index, arg := 0, 0
		for d, err := range posprintf.Directives(format) {
			if err != nil {
				*errp = err
				return
			}
			argPos := -1
			if d.Verb.ConsumesArg() {
				argPos = arg
				arg++
			}
			if !yield(report.NewDirectiveRow(index, argPos, d)) {
				return
			}
			index++
		}
	}
}
