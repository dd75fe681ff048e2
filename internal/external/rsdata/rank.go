package rsdata

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/minhobin/mtt/internal/contracts"
)

// rankMarker identifies the relative-strength column in the embedded
// table. The upstream posts reorder and rename columns between
// publications; only this marker is stable.
const rankMarker = "상대강도"

var (
	codeCellPattern = regexp.MustCompile(`\[(\d{6})\]`)
	leadingDigitsRe = regexp.MustCompile(`^(\d+)`)
)

// FetchRankRecord fetches the RS markdown for a date and extracts one
// stock's relative-strength record.
// ⭐ SSOT: RS 순위 테이블 파싱은 여기서만
func (c *Client) FetchRankRecord(ctx context.Context, date, code string) (contracts.RankRecord, error) {
	body, err := c.fetchText(ctx, c.RankDocURL(date))
	if err != nil {
		return contracts.RankRecord{}, fmt.Errorf("fetch rank doc for %s: %w", date, err)
	}

	records, err := ParseRankTable(body)
	if err != nil {
		return contracts.RankRecord{}, fmt.Errorf("parse rank doc for %s: %w", date, err)
	}

	want := NormalizeCode(code)
	for _, rec := range records {
		if rec.Code == want {
			c.logger.WithFields(map[string]interface{}{
				"code": want,
				"date": date,
				"rank": rec.Score,
			}).Debug("Found RS record")
			return rec, nil
		}
	}

	return contracts.RankRecord{}, contracts.NewError(contracts.FailRankNotPresent, want+" @ "+date)
}

// ParseRankTable extracts all rank records from a markdown document
// containing one embedded pipe-delimited table.
//
// The table start is the first line that both begins with the pipe
// delimiter and contains the rank marker; that line is the header, the
// next is the separator row. Columns are located by header content,
// never by position. Rows whose first cell carries no bracketed 6-digit
// code are dropped (footer/malformed rows).
func ParseRankTable(doc string) ([]contracts.RankRecord, error) {
	lines := strings.Split(doc, "\n")

	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "|") && strings.Contains(line, rankMarker) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("no table with %q column found", rankMarker)
	}

	var table []string
	for _, line := range lines[start:] {
		if strings.HasPrefix(line, "|") {
			table = append(table, line)
		}
	}
	if len(table) < 3 {
		// header + separator only
		return nil, nil
	}

	header := splitRow(table[0])
	rankIdx := -1
	for i, col := range header {
		if strings.Contains(col, rankMarker) {
			rankIdx = i
			break
		}
	}
	if rankIdx < 0 {
		return nil, fmt.Errorf("no %q column in header: %v", rankMarker, header)
	}

	// table[1] is the |---|---| separator row
	var records []contracts.RankRecord
	for _, line := range table[2:] {
		cells := splitRow(line)
		if len(cells) == 0 || len(cells) <= rankIdx {
			continue
		}

		m := codeCellPattern.FindStringSubmatch(cells[0])
		if m == nil {
			continue
		}

		records = append(records, contracts.RankRecord{
			Code:  NormalizeCode(m[1]),
			Score: parseRankScore(cells[rankIdx]),
		})
	}

	return records, nil
}

// splitRow splits a pipe table row into trimmed cells
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// parseRankScore takes the leading digit run of a cell ("91 (+2)" ->
// 91) and parses it as a float. Unparsable cells yield NaN, which
// fails the rank>=70 check downstream without erroring.
func parseRankScore(cell string) float64 {
	m := leadingDigitsRe.FindStringSubmatch(cell)
	if m == nil {
		return math.NaN()
	}

	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return math.NaN()
	}
	return score
}
