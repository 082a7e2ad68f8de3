// Package export turns transaction records into the CSV report format.
package export

import (
	"strconv"
	"strings"

	"github.com/moneypal/moneypal/internal/model"
)

// Headers is the fixed seven-column header row of every export.
var Headers = []string{
	"Date",
	"Title",
	"Type",
	"Amount",
	"Category",
	"Description",
	"Created At",
}

// FilterByDateRange returns the transactions whose date falls within
// [start, end] inclusive. Dates are zero-padded YYYY-MM-DD so lexical
// comparison is chronological.
func FilterByDateRange(all []model.Transaction, start, end string) []model.Transaction {
	filtered := []model.Transaction{}
	for _, t := range all {
		if t.Date >= start && t.Date <= end {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// ToCSV renders transactions as CSV: header row, one row per transaction,
// a blank line, then a summary block. Title and description are wrapped in
// double quotes with no further escaping; embedded quotes or commas inside
// those fields are a documented limitation of the format. Output is
// deterministic for a fixed input.
func ToCSV(transactions []model.Transaction, custom []model.Category) string {
	var b strings.Builder
	b.WriteString(strings.Join(Headers, ","))

	for _, t := range transactions {
		sign := "-"
		if t.Type == model.TypeIncome {
			sign = "+"
		}

		categoryName := ""
		if t.Category != "" {
			if c := model.CategoryByID(t.Category, t.Type, custom); c != nil {
				categoryName = c.Name
			}
		}

		description := ""
		if t.Description != "" {
			description = `"` + t.Description + `"`
		}

		row := []string{
			t.Date,
			`"` + t.Title + `"`,
			string(t.Type) + " (" + sign + ")",
			formatAmount(t.Amount),
			categoryName,
			description,
			t.CreatedAt,
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(row, ","))
	}

	s := model.Summarize(transactions)
	summary := [][]string{
		{},
		{"Summary"},
		{"Total Transactions", strconv.Itoa(len(transactions))},
		{"Total Income", formatAmount(s.TotalIncome)},
		{"Total Expenses", formatAmount(s.TotalExpenses)},
		{"Net Balance", formatAmount(s.NetBalance)},
	}
	for _, row := range summary {
		b.WriteString("\n")
		b.WriteString(strings.Join(row, ","))
	}

	return b.String()
}

// formatAmount renders an amount the shortest way that round-trips, so
// whole numbers carry no decimal point.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
