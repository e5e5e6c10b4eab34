package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

var tickerRe = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// PromptForTicker asks for the stock ticker symbol.
func PromptForTicker() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Enter the stock ticker symbol (e.g., AAPL, MSFT, IBM):",
		Help:    "The symbol must match a dataset under the data directory",
	}

	err := survey.AskOne(prompt, &ticker, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(strings.ToUpper(val.(string)))
		if len(str) == 0 {
			return fmt.Errorf("ticker symbol cannot be empty")
		}
		if len(str) > 10 {
			return fmt.Errorf("ticker symbol too long (max 10 characters)")
		}
		if !tickerRe.MatchString(str) {
			return fmt.Errorf("invalid ticker format (use letters, numbers, dots, and hyphens only)")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(strings.ToUpper(ticker)), nil
}

// PromptForQuery asks what to put to the council.
func PromptForQuery(symbol string) (string, error) {
	var query string
	prompt := &survey.Input{
		Message: "Question for the council:",
		Default: fmt.Sprintf("Should I buy, hold or avoid %s right now?", symbol),
	}
	if err := survey.AskOne(prompt, &query); err != nil {
		return "", err
	}
	return strings.TrimSpace(query), nil
}

// PromptForRounds asks how many discussion rounds to run.
func PromptForRounds(defaultRounds int) (int, error) {
	if defaultRounds < 1 {
		defaultRounds = 1
	}
	var answer string
	prompt := &survey.Input{
		Message: "Number of discussion rounds:",
		Default: strconv.Itoa(defaultRounds),
	}

	err := survey.AskOne(prompt, &answer, survey.WithValidator(func(val interface{}) error {
		n, err := strconv.Atoi(strings.TrimSpace(val.(string)))
		if err != nil {
			return fmt.Errorf("rounds must be a number")
		}
		if n < 1 || n > 5 {
			return fmt.Errorf("rounds must be between 1 and 5")
		}
		return nil
	}))
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(strings.TrimSpace(answer))
}

// PromptForAnotherRun asks whether to analyze another symbol.
func PromptForAnotherRun() (bool, error) {
	again := false
	prompt := &survey.Confirm{
		Message: "Analyze another symbol?",
		Default: false,
	}
	if err := survey.AskOne(prompt, &again); err != nil {
		return false, err
	}
	return again, nil
}
