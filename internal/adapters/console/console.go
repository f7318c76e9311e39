// Package console prints the end-of-run summary table.
package console

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	service "github.com/okian/vgsales/internal/app"
)

// Headers is the summary table header.
func Headers() []string {
	return []string{"Region", "Pairs", "Slope", "Intercept", "R Value", "T Stat", "Verdict"}
}

// PrintSummary writes a table with one row per attempted region followed by
// the artifact locations.
func PrintSummary(w io.Writer, sum service.Summary) {
	fmt.Fprintln(w, color.CyanString("Regression summary (%d rows, run %s)", sum.Rows, sum.RunID))

	table := tablewriter.NewWriter(w)
	table.SetHeader(Headers())
	table.SetAutoWrapText(false)
	for _, o := range sum.Regions {
		table.Append(Row(o))
	}
	table.Render()

	fmt.Fprintf(w, "Results: %s\n", sum.Results)
	if sum.Workbook != "" {
		fmt.Fprintf(w, "Workbook: %s\n", sum.Workbook)
	}
	if failed := len(sum.Failed()); failed > 0 {
		fmt.Fprintln(w, color.RedString("%d region(s) failed", failed))
	}
}

// Row renders one region as table cells.
func Row(o service.RegionOutcome) []string {
	res := o.Result
	if o.Err != nil {
		return []string{
			o.Region.Label(),
			strconv.Itoa(res.N),
			"-", "-", "-", "-",
			color.RedString("%s", o.Err),
		}
	}
	verdict := color.YellowString("%s", res.Verdict)
	if res.Verdict.Significant() {
		verdict = color.GreenString("%s", res.Verdict)
	}
	return []string{
		o.Region.Label(),
		strconv.Itoa(res.N),
		strconv.FormatFloat(res.Slope, 'g', 6, 64),
		strconv.FormatFloat(res.Intercept, 'g', 6, 64),
		strconv.FormatFloat(res.R, 'g', 6, 64),
		strconv.FormatFloat(res.TScore, 'g', 6, 64),
		verdict,
	}
}
