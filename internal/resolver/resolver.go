package resolver

import (
	"regexp"
	"sort"
	"strings"

	"github.com/minhobin/mtt/internal/contracts"
)

// standalone 6-digit token
var codeTokenPattern = regexp.MustCompile(`\b\d{6}\b`)

// Resolver maps free-text user input to a canonical stock. It owns an
// immutable copy of the KRX reference table, loaded once at startup,
// and is safe for unsynchronized concurrent reads.
// ⭐ SSOT: 종목 식별은 이 리졸버에서만
type Resolver struct {
	byCode map[string]contracts.Stock
	// byNameLen holds all stocks sorted by descending name length so
	// substring matching prefers the longest name ("삼성전자우" wins
	// over "삼성전자" for input "삼성전자우 매수").
	byNameLen []contracts.Stock
}

// New creates a resolver over the reference table
func New(stocks []contracts.Stock) *Resolver {
	byCode := make(map[string]contracts.Stock, len(stocks))
	byNameLen := make([]contracts.Stock, len(stocks))
	copy(byNameLen, stocks)

	for _, s := range stocks {
		byCode[s.Code] = s
	}

	sort.SliceStable(byNameLen, func(i, j int) bool {
		return len([]rune(byNameLen[i].Name)) > len([]rune(byNameLen[j].Name))
	})

	return &Resolver{
		byCode:    byCode,
		byNameLen: byNameLen,
	}
}

// Resolve maps input text to a stock. A standalone 6-digit code token
// wins over any name match; otherwise the longest reference name
// occurring as a substring of the input wins. Not finding a stock is a
// normal outcome, not an error.
func (r *Resolver) Resolve(input string) (contracts.Stock, bool) {
	// 1. 종목코드가 입력됐을 때
	if code := codeTokenPattern.FindString(input); code != "" {
		if stock, ok := r.byCode[code]; ok {
			return stock, true
		}
	}

	// 2. 종목명이 입력됐을 때 (이름 길이 긴 순서로 매칭)
	for _, stock := range r.byNameLen {
		if strings.Contains(input, stock.Name) {
			return stock, true
		}
	}

	return contracts.Stock{}, false
}

// Suggest returns up to limit stocks whose name or code contains the
// query, for the auto-suggest endpoint. Longest names first keeps the
// ordering stable with Resolve's tie-break.
func (r *Resolver) Suggest(query string, limit int) []contracts.Stock {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	var matches []contracts.Stock
	for _, stock := range r.byNameLen {
		if strings.Contains(stock.Name, query) || strings.Contains(stock.Code, query) {
			matches = append(matches, stock)
			if len(matches) >= limit {
				break
			}
		}
	}
	return matches
}

// Size returns the number of stocks in the reference table
func (r *Resolver) Size() int {
	return len(r.byCode)
}
