package findata

import (
	"errors"
	"fmt"

	"github.com/piquette/finance-go/quote"
)

// ErrOnlineDisabled is returned when live quotes are requested but the
// service was built with online data turned off.
var ErrOnlineDisabled = errors.New("online data disabled")

// QuoteService fetches live quotes from Yahoo Finance. It supplements the
// static datasets with a current-price cross-check and is never used as an
// input to ratio math.
type QuoteService struct {
	enabled bool
}

func NewQuoteService(enabled bool) *QuoteService {
	return &QuoteService{enabled: enabled}
}

func (s *QuoteService) Enabled() bool {
	return s != nil && s.enabled
}

// LatestPrice returns the regular-market price for symbol.
func (s *QuoteService) LatestPrice(symbol string) (float64, error) {
	if !s.Enabled() {
		return 0, ErrOnlineDisabled
	}
	q, err := quote.Get(symbol)
	if err != nil {
		return 0, fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}
	if q == nil {
		return 0, fmt.Errorf("no quote returned for %s", symbol)
	}
	return q.RegularMarketPrice, nil
}
