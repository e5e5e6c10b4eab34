// Package marketdata analyzes the intraday time series: latest price,
// short-term technical indicators, trend summaries and a sentiment score.
// All analysis is deterministic over the dataset files.
package marketdata

import (
	"math"
	"strings"

	"github.com/stockcouncil/StockCouncilGo/internal/findata"
)

type Service struct {
	loader *findata.Loader
	quotes *findata.QuoteService
}

// NewService builds the market data service. quotes may be nil when live
// cross-checks are disabled.
func NewService(loader *findata.Loader, quotes *findata.QuoteService) *Service {
	return &Service{loader: loader, quotes: quotes}
}

func upper(symbol string) string {
	return strings.ToUpper(symbol)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	// Sample standard deviation.
	return math.Sqrt(sum / float64(len(values)-1))
}
