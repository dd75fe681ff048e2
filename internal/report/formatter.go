package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/minhobin/mtt/internal/contracts"
)

const (
	passGlyph = "✅"
	failGlyph = "❌"
)

// Format renders a checklist result as the user-facing MTT report.
// Pure function, no I/O; presentation layers deliver the text as-is.
//
//	[MTT 체크리스트 - 삼성전자 (2026-08-28)]
//	1. 주가 > 150/200일선 ✅
//	...
//	8. 상대강도 RS ≥ 70 ✅ (현재 RS: 91)
//	▶ ALL PASS 💯 🎉
//	⚠ 2026-08-28 데이터 기준
func Format(name, date string, result contracts.ChecklistResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[MTT 체크리스트 - %s (%s)]\n", name, date)

	for i, item := range result.Items {
		glyph := failGlyph
		if item.Passed {
			glyph = passGlyph
		}

		fmt.Fprintf(&b, "%d. %s %s", i+1, item.Description, glyph)

		// RS 수치는 마지막(상대강도) 항목에만 덧붙인다
		if i == len(result.Items)-1 {
			fmt.Fprintf(&b, " (현재 RS: %s)", formatRank(result.Rank))
		}
		b.WriteString("\n")
	}

	if result.AllPassed() {
		b.WriteString("▶ ALL PASS 💯 🎉\n")
	} else {
		fmt.Fprintf(&b, "▶ %d/%d PASS\n", result.PassedCount(), len(result.Items))
	}

	fmt.Fprintf(&b, "⚠ %s 데이터 기준", date)

	return b.String()
}

// formatRank renders the RS value as an integer; an unparsable
// upstream cell (NaN) renders as a placeholder instead of a number
func formatRank(rank float64) string {
	if math.IsNaN(rank) {
		return "N/A"
	}
	return fmt.Sprintf("%d", int(rank))
}
