package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterShiftsForMonth(t *testing.T) {
	shifts := []payroll.Shift{
		shift("01", "09", "00", "18", "00", 60),
		shift("28", "09", "00", "18", "00", 60),
		shift("29", "09", "00", "18", "00", 60),
		shift("00", "09", "00", "18", "00", 60),
		shift("", "09", "00", "18", "00", 60),
	}

	feb2025 := FilterShiftsForMonth(shifts, 2025, time.February)
	require.Len(t, feb2025, 2)
	assert.Equal(t, "28", feb2025[1].Day)

	feb2024 := FilterShiftsForMonth(shifts, 2024, time.February)
	assert.Len(t, feb2024, 3, "leap day survives in 2024")
}

func TestDuplicateDayWarnings(t *testing.T) {
	shifts := []payroll.Shift{
		shift("05", "13", "00", "18", "00", 0),
		shift("05", "09", "00", "12", "00", 0),
		shift("06", "09", "00", "18", "00", 60),
	}
	other := shift("05", "09", "00", "18", "00", 60)
	other.Name = "민지"
	shifts = append(shifts, other)

	warnings := DuplicateDayWarnings(shifts)
	require.Len(t, warnings, 1)
	assert.Equal(t, "엔니: 5일 [13:00~18:00], [09:00~12:00]", warnings[0])

	assert.Empty(t, DuplicateDayWarnings(shifts[2:]))
}

func TestSumMonthlyTotalsAndPayslip(t *testing.T) {
	result, err := CalculateMonthlyPayroll(fullWeekJune2025(), wage2025, 2025, time.June)
	require.NoError(t, err)

	totals := SumMonthlyTotals(result.Summaries)
	assert.Equal(t, 2400, totals.ActualWorkingMinutes)
	assert.Equal(t, 300, totals.UnpaidBreakMinutes)
	assert.Equal(t, 480, totals.WeeklyHolidayAllowanceMinutes)
	assert.Equal(t, 2880, totals.PaidWorkingMinutes)
	assert.Equal(t, int64(401200), totals.BasePay)
	assert.Equal(t, int64(80240), totals.WeeklyHolidayAllowance)
	assert.Equal(t, result.GrandTotalPay, totals.GrossPay)

	slip := BuildPayslip("나의 가게", "엔니", wage2025, result)
	assert.Equal(t, "나의 가게", slip.ShopName)
	assert.Equal(t, "엔니", slip.EmployeeName)
	assert.Equal(t, "2025-06-01", slip.PeriodStart)
	assert.Equal(t, "2025-06-30", slip.PeriodEnd)
	assert.Equal(t, int64(15887), slip.WithholdingTax)
	assert.Equal(t, int64(465553), slip.NetPay)

	// presentational only: engine totals are unchanged
	assert.Equal(t, int64(481440), result.GrandTotalPay)
}

func TestWithholdingTax(t *testing.T) {
	assert.Equal(t, int64(0), WithholdingTax(0))
	assert.Equal(t, int64(0), WithholdingTax(-100))
	assert.Equal(t, int64(3300), WithholdingTax(100000))
	assert.Equal(t, int64(15887), WithholdingTax(481440))
}

func TestBuildAttendanceCalendar(t *testing.T) {
	shifts := []payroll.Shift{
		shift("02", "13", "00", "18", "00", 0),
		shift("02", "09", "00", "12", "00", 0),
		shift("30", "22", "00", "02", "00", 0),
	}

	cal := BuildAttendanceCalendar(shifts, 2025, time.June)
	assert.Equal(t, 2025, cal.Year)
	assert.Equal(t, 6, cal.Month)
	require.Len(t, cal.Weeks, 5)

	first := cal.Weeks[0]
	assert.Equal(t, 1, first[time.Sunday].Day)
	assert.Equal(t, 7, first[time.Saturday].Day)
	assert.Equal(t, []string{"09:00 ~ 12:00", "13:00 ~ 18:00"}, first[time.Monday].Shifts)

	last := cal.Weeks[4]
	assert.Equal(t, 29, last[time.Sunday].Day)
	assert.Equal(t, 30, last[time.Monday].Day)
	assert.Equal(t, []string{"22:00 ~ 02:00"}, last[time.Monday].Shifts)
	assert.Zero(t, last[time.Tuesday].Day, "cells after the last day are blank")

	// input order is preserved
	assert.Equal(t, "13", shifts[0].StartHour)
}

func TestBuildAttendanceCalendar_LeadingBlanks(t *testing.T) {
	// 1 March 2025 is a Saturday
	cal := BuildAttendanceCalendar(nil, 2025, time.March)
	require.Len(t, cal.Weeks, 6)
	assert.Zero(t, cal.Weeks[0][time.Friday].Day)
	assert.Equal(t, 1, cal.Weeks[0][time.Saturday].Day)
}

func TestFormatMinutesToHM(t *testing.T) {
	assert.Equal(t, "7시간 30분", FormatMinutesToHM(450))
	assert.Equal(t, "8시간", FormatMinutesToHM(480))
	assert.Equal(t, "0시간", FormatMinutesToHM(0))
	assert.Equal(t, "0시간 5분", FormatMinutesToHM(5))
}
