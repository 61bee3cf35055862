package payroll

import "github.com/shopspring/decimal"

// Statutory hourly minimum wage in won, by year of application.
var statutoryMinimumWages = []struct {
	year int
	wage int64
}{
	{year: 2024, wage: 9860},
	{year: 2025, wage: 10030},
	{year: 2026, wage: 10320},
}

// StatutoryMinimumWage returns the minimum for year. Years outside the table
// use its nearest end.
func StatutoryMinimumWage(year int) int64 {
	wage := statutoryMinimumWages[0].wage
	for _, w := range statutoryMinimumWages {
		if w.year > year {
			break
		}
		wage = w.wage
	}
	return wage
}

// DefaultHourlyWage is the wage pre-filled for a new calculation.
func DefaultHourlyWage(year int) decimal.Decimal {
	return decimal.NewFromInt(StatutoryMinimumWage(year))
}
