package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	tableWidth = 50
	countWidth = 7
)

// Render writes a titled fixed-width table of rows:
//
//	   Category   Term                 Count
//	──────────────────────────────────────────────────
//	      Title   senior               000,042
func Render(w io.Writer, title string, rows []TermCount) error {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(title, tableWidth))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%11s   %-20s %s\n", "Category", "Term", "Count")
	b.WriteString(strings.Repeat("─", tableWidth))
	b.WriteString("\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%11s   %-20s %s\n", row.Category, row.Term, formatCount(row.Count))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

// formatCount groups thousands with commas and zero-pads to countWidth. The
// padding is grouped too, so 5 renders as 000,005.
func formatCount(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	out := groupThousands(digits)
	for len(out) < countWidth {
		digits = "0" + digits
		out = groupThousands(digits)
	}
	if neg {
		return "-" + out
	}
	return out
}

func groupThousands(digits string) string {
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
