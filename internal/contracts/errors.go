package contracts

import "errors"

// FailureKind classifies analysis failures for callers.
// Presentation layers translate kinds to user-facing messages; the
// core only ever attaches a short context string.
type FailureKind string

const (
	// FailStockNotFound: 입력에서 종목을 찾을 수 없음
	FailStockNotFound FailureKind = "stock_not_found"

	// FailAllDatesExhausted: 조회 기간 내에 RS와 가격 데이터가 모두 있는 날짜가 없음
	FailAllDatesExhausted FailureKind = "all_dates_exhausted"

	// FailResourceNotFound: 특정 날짜의 원격 문서가 없음
	FailResourceNotFound FailureKind = "resource_not_found"

	// FailRankNotPresent: RS 테이블에 해당 종목이 없음
	FailRankNotPresent FailureKind = "rank_not_present"

	// FailInsufficientHistory: 이동평균 계산에 필요한 가격 이력이 부족함
	FailInsufficientHistory FailureKind = "insufficient_history"
)

// Error is a typed analysis failure: a kind plus a short context
// string (the failing date, identifier or URL).
type Error struct {
	Kind    FailureKind
	Context string
}

// NewError creates a typed failure
func NewError(kind FailureKind, context string) *Error {
	return &Error{Kind: kind, Context: context}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Context == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Context
}

// Is matches errors by kind, so errors.Is(err, ErrRankNotPresent)
// works regardless of context
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Kind sentinels for errors.Is checks
var (
	ErrStockNotFound       = &Error{Kind: FailStockNotFound}
	ErrAllDatesExhausted   = &Error{Kind: FailAllDatesExhausted}
	ErrResourceNotFound    = &Error{Kind: FailResourceNotFound}
	ErrRankNotPresent      = &Error{Kind: FailRankNotPresent}
	ErrInsufficientHistory = &Error{Kind: FailInsufficientHistory}
)

// KindOf extracts the failure kind from an error chain
func KindOf(err error) (FailureKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
