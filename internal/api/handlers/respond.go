package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/minhobin/mtt/internal/contracts"
)

// user-facing messages per failure kind; the core only carries kinds
var kindMessages = map[contracts.FailureKind]string{
	contracts.FailStockNotFound:       "입력에서 종목을 찾을 수 없습니다.",
	contracts.FailAllDatesExhausted:   "최근 조회 기간 내에 RS와 가격 데이터가 모두 있는 날짜가 없습니다.",
	contracts.FailResourceNotFound:    "해당 날짜의 데이터 문서를 찾을 수 없습니다.",
	contracts.FailRankNotPresent:      "RS 테이블에 해당 종목이 없습니다.",
	contracts.FailInsufficientHistory: "이동평균 계산에 필요한 가격 이력이 부족합니다.",
}

var kindStatusCodes = map[contracts.FailureKind]int{
	contracts.FailStockNotFound:       http.StatusNotFound,
	contracts.FailAllDatesExhausted:   http.StatusServiceUnavailable,
	contracts.FailResourceNotFound:    http.StatusBadGateway,
	contracts.FailRankNotPresent:      http.StatusNotFound,
	contracts.FailInsufficientHistory: http.StatusUnprocessableEntity,
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondFailure translates a typed analysis failure into an HTTP
// response; untyped errors become a generic 500
func respondFailure(w http.ResponseWriter, err error) {
	kind, ok := contracts.KindOf(err)
	if !ok {
		respondError(w, http.StatusInternalServerError, "분석 중 오류가 발생했습니다.")
		return
	}

	respondJSON(w, kindStatusCodes[kind], map[string]string{
		"error": kindMessages[kind],
		"kind":  string(kind),
	})
}
