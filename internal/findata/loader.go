package findata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dataset file names as exported by the Alpha Vantage query endpoints.
const (
	FileOverview        = "OVERVIEW.json"
	FileIncomeStatement = "INCOME_STATEMENT.json"
	FileBalanceSheet    = "BALANCE_SHEET.json"
	FileEarnings        = "EARNINGS.json"
	FileIntraday        = "TIME_SERIES_INTRADAY.json"
)

// Loader reads static dataset files per call. Nothing is cached between
// calls so tool results always reflect the files on disk.
type Loader struct {
	dataDir string
}

func NewLoader(dataDir string) *Loader {
	return &Loader{dataDir: dataDir}
}

// resolve looks for the file under a per-symbol subdirectory first, then
// falls back to the data dir root for single-company layouts.
func (l *Loader) resolve(symbol, file string) (string, error) {
	candidates := []string{
		filepath.Join(l.dataDir, strings.ToUpper(symbol), file),
		filepath.Join(l.dataDir, file),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("data file %s not found for %s under %s", file, strings.ToUpper(symbol), l.dataDir)
}

func (l *Loader) read(symbol, file string, out any) error {
	path, err := l.resolve(symbol, file)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return nil
}

func (l *Loader) Overview(symbol string) (*Overview, error) {
	var ov Overview
	if err := l.read(symbol, FileOverview, &ov); err != nil {
		return nil, err
	}
	return &ov, nil
}

func (l *Loader) IncomeStatement(symbol string) (*IncomeStatement, error) {
	var is IncomeStatement
	if err := l.read(symbol, FileIncomeStatement, &is); err != nil {
		return nil, err
	}
	return &is, nil
}

func (l *Loader) BalanceSheet(symbol string) (*BalanceSheet, error) {
	var bs BalanceSheet
	if err := l.read(symbol, FileBalanceSheet, &bs); err != nil {
		return nil, err
	}
	return &bs, nil
}

func (l *Loader) Earnings(symbol string) (*Earnings, error) {
	var e Earnings
	if err := l.read(symbol, FileEarnings, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (l *Loader) Intraday(symbol string) (*IntradaySeries, error) {
	var ts IntradaySeries
	if err := l.read(symbol, FileIntraday, &ts); err != nil {
		return nil, err
	}
	if len(ts.Series) == 0 {
		return nil, fmt.Errorf("no time series data in %s for %s", FileIntraday, strings.ToUpper(symbol))
	}
	return &ts, nil
}
