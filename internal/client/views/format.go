package views

import (
	"strconv"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// FormatMoney renders a whole amount with its currency symbol. Rupees use
// lakh/crore grouping (₹12,00,000); other currencies group by thousands.
func FormatMoney(amount int64, currency string) string {
	currency = strings.ToUpper(currency)
	if currency == "" {
		currency = models.DefaultCurrency
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	var digits string
	if currency == "INR" {
		digits = groupIndian(strconv.FormatInt(amount, 10))
	} else {
		digits = message.NewPrinter(language.English).Sprintf("%d", amount)
	}

	if sym, ok := currencySymbols[currency]; ok {
		return sign + sym + digits
	}
	return sign + currency + " " + digits
}

// groupIndian groups the last three digits, then every two.
func groupIndian(s string) string {
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// FormatSalary renders "₹5,00,000 - ₹12,00,000".
func FormatSalary(s models.Salary) string {
	return FormatMoney(s.Min, s.Currency) + " - " + FormatMoney(s.Max, s.Currency)
}

// FormatEmploymentType turns "full-time" into "Full Time".
func FormatEmploymentType(t models.EmploymentType) string {
	// a Caser keeps state, so one per call
	return cases.Title(language.English).String(strings.ReplaceAll(string(t), "-", " "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return strconv.Itoa(n) + " " + one
	}
	return strconv.Itoa(n) + " " + many
}
