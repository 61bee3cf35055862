package payroll

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Withholding for business income paid to hourly workers: 3% income tax plus
// 0.3% local tax, truncated to the won.
const (
	withholdingRateNumerator   = 33
	withholdingRateDenominator = 1000
)

// FilterShiftsForMonth drops shifts whose day does not exist in the month.
func FilterShiftsForMonth(shifts []payroll.Shift, year int, month time.Month) []payroll.Shift {
	lastDay := LastDayOfMonth(year, month)
	out := make([]payroll.Shift, 0, len(shifts))
	for _, s := range shifts {
		d := LenientAtoi(s.Day)
		if d < 1 || d > lastDay {
			continue
		}
		out = append(out, s)
	}
	return out
}

// DuplicateDayWarnings lists every worker/day with more than one shift.
// Split shifts are legal, so these are only warnings.
func DuplicateDayWarnings(shifts []payroll.Shift) []string {
	type key struct {
		name string
		day  int
	}
	groups := make(map[key][]payroll.Shift)
	for _, s := range shifts {
		k := key{name: s.Name, day: LenientAtoi(s.Day)}
		groups[k] = append(groups[k], s)
	}

	keys := make([]key, 0, len(groups))
	for k, g := range groups {
		if len(g) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].name != keys[j].name {
			return keys[i].name < keys[j].name
		}
		return keys[i].day < keys[j].day
	})

	warnings := make([]string, 0, len(keys))
	for _, k := range keys {
		ranges := make([]string, 0, len(groups[k]))
		for _, s := range groups[k] {
			ranges = append(ranges, "["+shiftRange(s, "~")+"]")
		}
		warnings = append(warnings, fmt.Sprintf("%s: %d일 %s", k.name, k.day, strings.Join(ranges, ", ")))
	}
	return warnings
}

// SumMonthlyTotals adds up every weekly figure.
func SumMonthlyTotals(summaries []payroll.WeeklyPayrollSummary) payroll.MonthlyTotals {
	var t payroll.MonthlyTotals
	for _, w := range summaries {
		t.ActualWorkingMinutes += w.ActualWorkingMinutes
		t.UnpaidBreakMinutes += w.UnpaidBreakMinutes
		t.WeeklyHolidayAllowanceMinutes += w.WeeklyHolidayAllowanceMinutes
		t.PaidWorkingMinutes += w.PaidWorkingMinutes
		t.BasePay += w.BasePay
		t.WeeklyHolidayAllowance += w.WeeklyHolidayAllowance
		t.GrossPay += w.TotalWeeklyPay
	}
	return t
}

// WithholdingTax is 3.3% of gross pay, truncated.
func WithholdingTax(grossPay int64) int64 {
	if grossPay <= 0 {
		return 0
	}
	return grossPay * withholdingRateNumerator / withholdingRateDenominator
}

// BuildPayslip derives the pay statement from a computed month.
func BuildPayslip(shopName, employeeName string, hourlyWage decimal.Decimal, result payroll.MonthlyPayroll) payroll.Payslip {
	totals := SumMonthlyTotals(result.Summaries)
	tax := WithholdingTax(totals.GrossPay)

	slip := payroll.Payslip{
		ShopName:       shopName,
		EmployeeName:   employeeName,
		HourlyWage:     hourlyWage,
		Totals:         totals,
		WithholdingTax: tax,
		NetPay:         totals.GrossPay - tax,
	}
	if n := len(result.Summaries); n > 0 {
		slip.PeriodStart = result.Summaries[0].StartDate
		slip.PeriodEnd = result.Summaries[n-1].EndDate
	}
	return slip
}

// BuildAttendanceCalendar lays the month out in Sunday..Saturday rows. Rows
// break on the same days weeks close in CalculateMonthlyPayroll.
func BuildAttendanceCalendar(shifts []payroll.Shift, year int, month time.Month) payroll.AttendanceCalendar {
	byDay := make(map[int][]payroll.Shift)
	for _, s := range shifts {
		d := LenientAtoi(s.Day)
		byDay[d] = append(byDay[d], s)
	}

	cal := payroll.AttendanceCalendar{Year: year, Month: int(month)}
	lastDay := LastDayOfMonth(year, month)
	var row [7]payroll.CalendarCell

	for day := 1; day <= lastDay; day++ {
		weekday := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()

		dayShifts := byDay[day]
		sort.SliceStable(dayShifts, func(i, j int) bool {
			return MinuteOfDay(dayShifts[i].StartHour, dayShifts[i].StartMinute) <
				MinuteOfDay(dayShifts[j].StartHour, dayShifts[j].StartMinute)
		})
		cell := payroll.CalendarCell{Day: day, Shifts: make([]string, 0, len(dayShifts))}
		for _, s := range dayShifts {
			cell.Shifts = append(cell.Shifts, shiftRange(s, " ~ "))
		}
		row[weekday] = cell

		if weekday == time.Saturday || day == lastDay {
			cal.Weeks = append(cal.Weeks, row)
			row = [7]payroll.CalendarCell{}
		}
	}
	return cal
}

// FormatMinutesToHM renders minutes as "7시간 30분", or "8시간" on the hour.
func FormatMinutesToHM(totalMinutes int) string {
	h := totalMinutes / minutesPerHour
	m := totalMinutes % minutesPerHour
	if m > 0 {
		return fmt.Sprintf("%d시간 %d분", h, m)
	}
	return fmt.Sprintf("%d시간", h)
}

func shiftRange(s payroll.Shift, sep string) string {
	return s.StartHour + ":" + s.StartMinute + sep + s.EndHour + ":" + s.EndMinute
}
