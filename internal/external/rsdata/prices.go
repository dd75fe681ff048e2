package rsdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/minhobin/mtt/internal/contracts"
)

// FetchPrices fetches a stock's daily price history CSV as published
// for a date. The series is ordered oldest to newest as upstream
// publishes it; no transformation beyond typed parsing.
// ⭐ SSOT: 가격 CSV 호출/파싱은 여기서만
func (c *Client) FetchPrices(ctx context.Context, date, code, name string) ([]contracts.PricePoint, error) {
	body, err := c.fetchText(ctx, c.PriceDocURL(date, code, name))
	if err != nil {
		return nil, fmt.Errorf("fetch prices for %s-%s at %s: %w", code, name, date, err)
	}

	prices, err := parsePriceCSV(body)
	if err != nil {
		return nil, fmt.Errorf("parse prices for %s at %s: %w", code, date, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"code":  code,
		"date":  date,
		"count": len(prices),
	}).Debug("Fetched price history")
	return prices, nil
}

// parsePriceCSV parses the upstream price history. Columns are located
// by header name; Date and Close are required, the rest optional.
func parsePriceCSV(body string) ([]contracts.PricePoint, error) {
	reader := csv.NewReader(strings.NewReader(body))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("price CSV has no data rows")
	}

	cols := map[string]int{}
	for i, col := range records[0] {
		cols[strings.TrimSpace(col)] = i
	}

	dateIdx, ok := cols["Date"]
	if !ok {
		return nil, fmt.Errorf("price CSV missing Date column: %v", records[0])
	}
	closeIdx, ok := cols["Close"]
	if !ok {
		return nil, fmt.Errorf("price CSV missing Close column: %v", records[0])
	}

	prices := make([]contracts.PricePoint, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) <= dateIdx || len(row) <= closeIdx {
			continue
		}

		tradeDate, err := time.Parse("2006-01-02", strings.TrimSpace(row[dateIdx]))
		if err != nil {
			continue
		}

		closePrice, err := strconv.ParseFloat(strings.TrimSpace(row[closeIdx]), 64)
		if err != nil {
			continue
		}

		point := contracts.PricePoint{
			Date:  tradeDate,
			Close: closePrice,
		}
		point.Open = optionalFloat(row, cols, "Open")
		point.High = optionalFloat(row, cols, "High")
		point.Low = optionalFloat(row, cols, "Low")
		point.Volume = optionalInt(row, cols, "Volume")

		prices = append(prices, point)
	}

	return prices, nil
}

func optionalFloat(row []string, cols map[string]int, name string) float64 {
	idx, ok := cols[name]
	if !ok || len(row) <= idx {
		return 0
	}
	v, _ := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	return v
}

func optionalInt(row []string, cols map[string]int, name string) int64 {
	idx, ok := cols[name]
	if !ok || len(row) <= idx {
		return 0
	}
	v, _ := strconv.ParseInt(strings.TrimSpace(row[idx]), 10, 64)
	return v
}
