package topreport

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format selects the output of Render.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

const (
	titleFormat = "%8s %6s %6s %8s %6s %s\n"
	rowFormat   = "%8.2f %6.2f %6.2f %8.2f %6.2f %s\n"
)

// FormatTypeLine renders the profile type line.
func FormatTypeLine(h Header) string {
	return typePrefix + h.ProfileType
}

// FormatParallelismLine renders the Duration line with two decimals.
func FormatParallelismLine(p Parallelism) string {
	return fmt.Sprintf("%s%.2fs, Total samples = %.2fs (%.2f%%)",
		durationPrefix, p.Duration, p.TotalSamplesTime, p.TotalSamplesPercentage)
}

// FormatTotalNodesLine renders the node accounting line with two decimals,
// using unit as the suffix of both times.
func FormatTotalNodesLine(n TotalNodes, unit string) string {
	return fmt.Sprintf("%s%.2f%s, %.2f%% of %.2f%s total",
		totalNodesPrefix, n.CollectedTime, unit, n.CollectedPercentage, n.TotalTime, unit)
}

// Rewrite renders the header summary and the retained rows as a fixed-width
// table. The file name and timestamp lines are not carried over, and the
// Duration line only appears for cpu reports.
//
// The columns are narrower than pprof's own -top layout, so a report rewritten
// with no rows dropped is still shorter than its pprof input.
func Rewrite(r Report) string {
	var b strings.Builder
	b.WriteString(FormatTypeLine(r.Header))
	b.WriteByte('\n')
	if r.Header.ProfileType == ProfileTypeCPU {
		b.WriteString(FormatParallelismLine(r.Header.Parallelism))
		b.WriteByte('\n')
	}
	b.WriteString(FormatTotalNodesLine(r.Header.TotalNodes, r.Header.ValueUnit))
	b.WriteByte('\n')

	fmt.Fprintf(&b, titleFormat, "flat", "flat%", "sum%", "cum", "cum%", "function")
	for _, f := range r.Functions {
		fmt.Fprintf(&b, rowFormat, f.Flat, f.FlatPercentage, f.SumPercentage, f.Cum, f.CumPercentage, f.FunctionName)
	}
	return b.String()
}

// Render renders r in the requested format. An empty format means text.
func Render(r Report, format Format) (string, error) {
	switch format {
	case FormatText, "":
		return Rewrite(r), nil
	case FormatMarkdown:
		return "```text\n" + Rewrite(r) + "```\n", nil
	case FormatJSON:
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling report to JSON: %w", err)
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
