// Package fundamentals computes financial ratios from the static annual
// report datasets. Every computation is deterministic: the same files on
// disk produce the same numbers.
package fundamentals

import (
	"strings"

	"github.com/stockcouncil/StockCouncilGo/internal/findata"
)

type Service struct {
	loader *findata.Loader
}

func NewService(loader *findata.Loader) *Service {
	return &Service{loader: loader}
}

func upper(symbol string) string {
	return strings.ToUpper(symbol)
}

// normalizeYears clamps yearRange to at least one year.
func normalizeYears(yearRange int) int {
	if yearRange < 1 {
		return 1
	}
	return yearRange
}
