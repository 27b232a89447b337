package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/ubuntu733/opendial/assignment"
	"github.com/ubuntu733/opendial/values"
)

// inferredRow pairs a raw token with the value inferred from it
type inferredRow struct {
	Input string
	Value values.Value
}

// tableFormatter renders values as markdown tables
type tableFormatter struct {
	kinds map[values.Kind]*color.Color
}

func newTableFormatter(useColor bool) *tableFormatter {
	kinds := map[values.Kind]*color.Color{
		values.KindNone:    color.New(color.FgHiBlack),
		values.KindBoolean: color.New(color.FgYellow),
		values.KindNumber:  color.New(color.FgCyan),
		values.KindArray:   color.New(color.FgBlue),
		values.KindSet:     color.New(color.FgMagenta),
		values.KindString:  color.New(color.FgGreen),
	}
	if !useColor {
		for _, c := range kinds {
			c.DisableColor()
		}
	}
	return &tableFormatter{kinds: kinds}
}

// FormatInferred renders one row per token: input, kind, canonical value and hash
func (f *tableFormatter) FormatInferred(rows []inferredRow) string {
	if len(rows) == 0 {
		return "_No input_\n"
	}

	table := make([][]string, len(rows))
	for i, row := range rows {
		table[i] = []string{
			row.Input,
			f.kind(row.Value.Kind()),
			row.Value.String(),
			fmt.Sprintf("%016x", row.Value.Hash()),
		}
	}
	return f.formatTable([]string{"input", "kind", "value", "hash"}, table)
}

// FormatAssignment renders one row per variable, sorted by name
func (f *tableFormatter) FormatAssignment(name string, a assignment.Assignment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", name)

	if a.Len() == 0 {
		b.WriteString("_No variables_\n")
		return b.String()
	}

	table := make([][]string, 0, a.Len())
	for _, variable := range a.Vars() {
		v := a.Value(variable)
		table = append(table, []string{variable, f.kind(v.Kind()), v.String()})
	}
	b.WriteString(f.formatTable([]string{"variable", "kind", "value"}, table))
	return b.String()
}

func (f *tableFormatter) kind(k values.Kind) string {
	if c, ok := f.kinds[k]; ok {
		return c.Sprint(k.String())
	}
	return k.String()
}

func (f *tableFormatter) formatTable(headers []string, rows [][]string) string {
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
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = escapeCell(cell)
		}
		table.Append(cells)
	}
	table.Render()

	tableString.WriteString(fmt.Sprintf("\n_%d rows_\n", len(rows)))
	return tableString.String()
}

// escapeCell keeps a literal '|' from ending the markdown cell
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
