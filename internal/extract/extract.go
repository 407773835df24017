// Package extract provides pure pattern-matching helpers that pull financial
// fields out of free text. Every function is total: it never fails, it only
// reports that nothing was found. Default filling is the caller's job.
package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	amountPattern = regexp.MustCompile(`\$?(\d+(?:\.\d{2})?)`)
	datePattern   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// categories is the closed vocabulary matched case-insensitively as
// substrings of the message.
var categories = []string{
	"food",
	"groceries",
	"transport",
	"entertainment",
	"utilities",
	"rent",
	"insurance",
	"healthcare",
}

var billNames = []struct {
	keyword string
	name    string
}{
	{"rent", "Rent"},
	{"electricity", "Electricity"},
	{"water", "Water"},
	{"internet", "Internet"},
}

var goalNames = []struct {
	keyword string
	name    string
}{
	{"vacation", "Vacation Fund"},
	{"emergency", "Emergency Fund"},
	{"car", "Car Fund"},
	{"house", "House Fund"},
}

// Amount returns the first currency-like token (optional leading $, optional
// two-decimal fraction) as an exact decimal.
func Amount(message string) (decimal.Decimal, bool) {
	m := amountPattern.FindStringSubmatch(message)
	if m == nil {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// Category returns the first vocabulary entry found in the message.
func Category(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, c := range categories {
		if strings.Contains(lower, c) {
			return c, true
		}
	}
	return "", false
}

// Description locates the first token containing "$", "spent" or "bought"
// and returns the following tokens, at most four, joined by spaces.
func Description(message string) (string, bool) {
	words := strings.Fields(message)
	for i, w := range words {
		if !strings.Contains(w, "$") && !strings.Contains(w, "spent") && !strings.Contains(w, "bought") {
			continue
		}
		if i >= len(words)-1 {
			return "", false
		}
		end := i + 5
		if end > len(words) {
			end = len(words)
		}
		return strings.Join(words[i+1:end], " "), true
	}
	return "", false
}

// BillName maps known bill keywords to display names, defaulting to "Bill".
func BillName(message string) string {
	lower := strings.ToLower(message)
	for _, b := range billNames {
		if strings.Contains(lower, b.keyword) {
			return b.name
		}
	}
	return "Bill"
}

// GoalName maps known goal keywords to display names, defaulting to
// "Savings Goal".
func GoalName(message string) string {
	lower := strings.ToLower(message)
	for _, g := range goalNames {
		if strings.Contains(lower, g.keyword) {
			return g.name
		}
	}
	return "Savings Goal"
}

// Date returns the first YYYY-MM-DD substring of the message.
func Date(message string) (string, bool) {
	m := datePattern.FindString(message)
	if m == "" {
		return "", false
	}
	return m, true
}
