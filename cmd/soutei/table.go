package main

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/wbrown/janus-soutei/soutei"
)

// answerTable renders the answers of one query as a markdown table.
// Column headers come from the query's argument terms, so variables
// show up under their source names.
func answerTable(goal soutei.Goal, answers []soutei.Literal) string {
	if len(answers) == 0 {
		return "_No answers_"
	}
	if len(goal.Lit.Args) == 0 {
		return fmt.Sprintf("_proved (%d)_", len(answers))
	}

	headers := make([]string, len(goal.Lit.Args))
	for i, arg := range goal.Lit.Args {
		headers[i] = arg.String()
	}

	tableString := &strings.Builder{}

	alignment := make([]tw.Align, len(headers))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(tableString,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header(headers)

	for _, ans := range answers {
		row := make([]string, len(ans.Args))
		for j, arg := range ans.Args {
			row[j] = formatTerm(arg)
		}
		table.Append(row)
	}

	table.Render()
	return tableString.String()
}

// formatTerm renders a term for display. Unbound variables in an answer
// are shown as-is.
func formatTerm(t soutei.Term) string {
	if c, ok := t.(soutei.Const); ok {
		return soutei.FormatValue(c.Value)
	}
	return fmt.Sprintf("%s", t)
}
