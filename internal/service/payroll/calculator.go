package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

const (
	// Weekly holiday allowance (주휴수당) rule.
	allowanceEligibleMinutes  = 15 * minutesPerHour
	fullTimeWeekMinutes       = 40 * minutesPerHour
	fullTimeAllowanceMinutes  = 8 * minutesPerHour
	maxWeeklyAllowanceMinutes = 480
)

var decimalMinutesPerHour = decimal.NewFromInt(minutesPerHour)

// LastDayOfMonth is day 0 of the following month.
func LastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeeklyHolidayAllowanceMinutes returns the allowance earned by a week of
// actual work. Below 15 hours nothing is earned; above that the allowance is
// proportional to 8 hours per 40 worked and capped at 8 hours.
func WeeklyHolidayAllowanceMinutes(actualMinutes int) int {
	if actualMinutes < allowanceEligibleMinutes {
		return 0
	}
	allowance := actualMinutes * fullTimeAllowanceMinutes / fullTimeWeekMinutes
	if allowance > maxWeeklyAllowanceMinutes {
		allowance = maxWeeklyAllowanceMinutes
	}
	return allowance
}

// CalculateMonthlyPayroll folds the shifts of one month into weekly
// summaries. Weeks close on Saturday or on the last day of the month. Shifts
// whose day falls outside 1..LastDayOfMonth are never visited.
//
// A wage under the statutory minimum for year rejects the whole calculation
// with a *payroll.MinimumWageError.
func CalculateMonthlyPayroll(shifts []payroll.Shift, hourlyWage decimal.Decimal, year int, month time.Month) (payroll.MonthlyPayroll, error) {
	if month < time.January || month > time.December {
		return payroll.MonthlyPayroll{}, fmt.Errorf("%w: month %d", payroll.ErrInvalidPeriod, month)
	}

	minimum := StatutoryMinimumWage(year)
	if hourlyWage.LessThan(decimal.NewFromInt(minimum)) {
		return payroll.MonthlyPayroll{}, &payroll.MinimumWageError{
			Year:        year,
			HourlyWage:  hourlyWage,
			MinimumWage: minimum,
		}
	}

	byDay := make(map[int][]payroll.Shift)
	for _, s := range shifts {
		d := LenientAtoi(s.Day)
		byDay[d] = append(byDay[d], s)
	}

	lastDay := LastDayOfMonth(year, month)
	summaries := make([]payroll.WeeklyPayrollSummary, 0, 6)
	week := weekAccumulator{start: 1}

	for day := 1; day <= lastDay; day++ {
		for _, s := range byDay[day] {
			week.add(s)
		}

		if time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday() == time.Saturday || day == lastDay {
			summaries = append(summaries, week.close(len(summaries)+1, year, month, day, hourlyWage))
			week = weekAccumulator{start: day + 1}
		}
	}

	var grandTotal int64
	for _, w := range summaries {
		grandTotal += w.TotalWeeklyPay
	}

	return payroll.MonthlyPayroll{
		Summaries:     summaries,
		GrandTotalPay: grandTotal,
	}, nil
}

type weekAccumulator struct {
	start         int
	actualMinutes int
	unpaidBreak   int
}

func (w *weekAccumulator) add(s payroll.Shift) {
	w.actualMinutes += ShiftDurationMinutes(s)
	if s.BreakMinutes > 0 && !s.IsPaidBreak {
		w.unpaidBreak += s.BreakMinutes
	}
}

// close rounds base pay, allowance pay and the weekly total each from the
// exact amounts, so the total is not the sum of the two rounded parts.
func (w *weekAccumulator) close(number, year int, month time.Month, endDay int, hourlyWage decimal.Decimal) payroll.WeeklyPayrollSummary {
	allowanceMinutes := WeeklyHolidayAllowanceMinutes(w.actualMinutes)

	basePay := minutesToPay(w.actualMinutes, hourlyWage)
	allowancePay := minutesToPay(allowanceMinutes, hourlyWage)

	return payroll.WeeklyPayrollSummary{
		WeekNumber:                    number,
		StartDate:                     isoDate(year, month, w.start),
		EndDate:                       isoDate(year, month, endDay),
		ActualWorkingMinutes:          w.actualMinutes,
		UnpaidBreakMinutes:            w.unpaidBreak,
		WeeklyHolidayAllowanceMinutes: allowanceMinutes,
		PaidWorkingMinutes:            w.actualMinutes + allowanceMinutes,
		BasePay:                       basePay.Round(0).IntPart(),
		WeeklyHolidayAllowance:        allowancePay.Round(0).IntPart(),
		TotalWeeklyPay:                basePay.Add(allowancePay).Round(0).IntPart(),
	}
}

func minutesToPay(minutes int, hourlyWage decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Mul(hourlyWage).Div(decimalMinutesPerHour)
}

func isoDate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}
