package rsdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/minhobin/mtt/internal/contracts"
)

// FetchStockList fetches the KRX reference table (krx-list.csv).
// 프로세스 시작 시 1회 로드 후 불변으로 공유된다.
func (c *Client) FetchStockList(ctx context.Context) ([]contracts.Stock, error) {
	body, err := c.fetchText(ctx, c.cfg.StockListURL)
	if err != nil {
		return nil, fmt.Errorf("fetch stock list: %w", err)
	}

	stocks, err := parseStockList(body)
	if err != nil {
		return nil, fmt.Errorf("parse stock list: %w", err)
	}

	c.logger.WithField("count", len(stocks)).Info("Loaded KRX stock list")
	return stocks, nil
}

// parseStockList parses the reference CSV. Columns are located by
// header name; the upstream file carries more columns than we use.
func parseStockList(body string) ([]contracts.Stock, error) {
	reader := csv.NewReader(strings.NewReader(body))
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("stock list has no data rows")
	}

	codeIdx, nameIdx := -1, -1
	for i, col := range records[0] {
		switch strings.TrimSpace(col) {
		case "Code":
			codeIdx = i
		case "Name":
			nameIdx = i
		}
	}
	if codeIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("stock list missing Code/Name columns: %v", records[0])
	}

	stocks := make([]contracts.Stock, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) <= codeIdx || len(row) <= nameIdx {
			continue
		}

		code := NormalizeCode(strings.TrimSpace(row[codeIdx]))
		name := strings.TrimSpace(row[nameIdx])
		if code == "" || name == "" {
			continue
		}

		stocks = append(stocks, contracts.Stock{Code: code, Name: name})
	}

	return stocks, nil
}

// NormalizeCode zero-pads an all-digit code to the canonical 6-digit
// width. CSV 경유 코드는 선행 0이 떨어져 들어올 수 있다.
func NormalizeCode(code string) string {
	if code == "" || len(code) >= 6 {
		return code
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return code
		}
	}
	return strings.Repeat("0", 6-len(code)) + code
}
