package contracts

import "time"

// Stock identifies a single KRX security
// ⭐ SSOT: 종목 식별자 타입은 여기서만 정의
type Stock struct {
	Code string `json:"code"` // 6자리 종목코드 (예: "005930")
	Name string `json:"name"` // 종목명 (예: "삼성전자")
}

// PricePoint is one day of a stock's price history, oldest-first in a series
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// RankRecord is one stock's relative-strength entry from a daily RS table
type RankRecord struct {
	Code  string  `json:"code"`
	Score float64 `json:"score"` // 상대강도 (0~100)
}

// ChecklistItem is a single trend-template condition with its outcome
type ChecklistItem struct {
	Description string `json:"description"`
	Passed      bool   `json:"passed"`
}

// ChecklistResult is the full 8-point trend-template evaluation.
// Items preserve the fixed evaluation order; the report numbering
// depends on it.
type ChecklistResult struct {
	Items []ChecklistItem `json:"items"`
	Date  time.Time       `json:"date"` // 기준일 (마지막 가격 데이터의 날짜)
	Rank  float64         `json:"rank"`
}

// PassedCount returns how many conditions passed
func (r *ChecklistResult) PassedCount() int {
	count := 0
	for _, item := range r.Items {
		if item.Passed {
			count++
		}
	}
	return count
}

// AllPassed reports whether every condition passed
func (r *ChecklistResult) AllPassed() bool {
	return len(r.Items) > 0 && r.PassedCount() == len(r.Items)
}

// AnalysisReport is the complete result of one analysis query
type AnalysisReport struct {
	Stock     Stock           `json:"stock"`
	DataDate  string          `json:"data_date"` // 데이터 기준일 (YYYY-MM-DD)
	Rank      float64         `json:"rank"`
	Checklist ChecklistResult `json:"checklist"`
}

// ListEntry is one stock from the daily trend-template all-pass list
type ListEntry struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Rank  float64 `json:"rank"`
	IsNew bool    `json:"is_new"` // 전 거래일 리스트에 없던 신규 진입 종목
}

// ListSnapshot is the daily all-pass list for one published date
type ListSnapshot struct {
	Date      string      `json:"date"` // YYYY-MM-DD
	PrevDate  string      `json:"prev_date,omitempty"`
	Entries   []ListEntry `json:"entries"`
	FetchedAt time.Time   `json:"fetched_at"`
}
