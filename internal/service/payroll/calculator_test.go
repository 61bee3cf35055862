package payroll

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wage2025 = decimal.NewFromInt(10030)

// fullWeekJune2025 is Monday 2 to Friday 6 June 2025, 09:00-18:00 with a one hour break.
func fullWeekJune2025() []payroll.Shift {
	var shifts []payroll.Shift
	for day := 2; day <= 6; day++ {
		shifts = append(shifts, shift(fmt.Sprintf("%02d", day), "09", "00", "18", "00", 60))
	}
	return shifts
}

func TestLastDayOfMonth(t *testing.T) {
	assert.Equal(t, 31, LastDayOfMonth(2025, time.January))
	assert.Equal(t, 28, LastDayOfMonth(2025, time.February))
	assert.Equal(t, 29, LastDayOfMonth(2024, time.February))
	assert.Equal(t, 30, LastDayOfMonth(2025, time.June))
	assert.Equal(t, 31, LastDayOfMonth(2025, time.December))
}

func TestWeeklyHolidayAllowanceMinutes(t *testing.T) {
	tests := []struct {
		actual int
		want   int
	}{
		{0, 0},
		{899, 0},
		{900, 180},
		{1200, 240},
		{2399, 479},
		{2400, 480},
		{3000, 480},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeeklyHolidayAllowanceMinutes(tt.actual), "actual=%d", tt.actual)
	}
}

func TestCalculateMonthlyPayroll_FullTimeWeek(t *testing.T) {
	result, err := CalculateMonthlyPayroll(fullWeekJune2025(), wage2025, 2025, time.June)
	require.NoError(t, err)
	require.NotEmpty(t, result.Summaries)

	week := result.Summaries[0]
	assert.Equal(t, 1, week.WeekNumber)
	assert.Equal(t, "2025-06-01", week.StartDate)
	assert.Equal(t, "2025-06-07", week.EndDate)
	assert.Equal(t, 2400, week.ActualWorkingMinutes)
	assert.Equal(t, 300, week.UnpaidBreakMinutes)
	assert.Equal(t, 480, week.WeeklyHolidayAllowanceMinutes)
	assert.Equal(t, 2880, week.PaidWorkingMinutes)
	assert.Equal(t, int64(401200), week.BasePay)
	assert.Equal(t, int64(80240), week.WeeklyHolidayAllowance)
	assert.Equal(t, int64(481440), week.TotalWeeklyPay)

	assert.Equal(t, int64(481440), result.GrandTotalPay)
}

func TestCalculateMonthlyPayroll_IndependentRounding(t *testing.T) {
	// 908 minutes: base 151787.33, allowance (181 min) 30257.17, exact total 182044.5
	shifts := []payroll.Shift{shift("02", "00", "00", "15", "08", 0)}

	result, err := CalculateMonthlyPayroll(shifts, wage2025, 2025, time.June)
	require.NoError(t, err)

	week := result.Summaries[0]
	assert.Equal(t, 908, week.ActualWorkingMinutes)
	assert.Equal(t, 181, week.WeeklyHolidayAllowanceMinutes)
	assert.Equal(t, int64(151787), week.BasePay)
	assert.Equal(t, int64(30257), week.WeeklyHolidayAllowance)
	assert.Equal(t, int64(182045), week.TotalWeeklyPay)
}

func TestCalculateMonthlyPayroll_EligibilityCliff(t *testing.T) {
	under := []payroll.Shift{shift("02", "09", "00", "23", "59", 0)}
	result, err := CalculateMonthlyPayroll(under, wage2025, 2025, time.June)
	require.NoError(t, err)
	assert.Equal(t, 899, result.Summaries[0].ActualWorkingMinutes)
	assert.Equal(t, 0, result.Summaries[0].WeeklyHolidayAllowanceMinutes)
	assert.Equal(t, int64(0), result.Summaries[0].WeeklyHolidayAllowance)

	exact := []payroll.Shift{shift("02", "09", "00", "00", "00", 0)}
	result, err = CalculateMonthlyPayroll(exact, wage2025, 2025, time.June)
	require.NoError(t, err)
	assert.Equal(t, 900, result.Summaries[0].ActualWorkingMinutes)
	assert.Equal(t, 180, result.Summaries[0].WeeklyHolidayAllowanceMinutes)
}

func TestCalculateMonthlyPayroll_AllowanceCap(t *testing.T) {
	// five 10-hour days
	var shifts []payroll.Shift
	for day := 2; day <= 6; day++ {
		shifts = append(shifts, shift(fmt.Sprintf("%02d", day), "08", "00", "18", "00", 0))
	}

	result, err := CalculateMonthlyPayroll(shifts, wage2025, 2025, time.June)
	require.NoError(t, err)
	assert.Equal(t, 3000, result.Summaries[0].ActualWorkingMinutes)
	assert.Equal(t, 480, result.Summaries[0].WeeklyHolidayAllowanceMinutes)
}

func TestCalculateMonthlyPayroll_MinimumWageGate(t *testing.T) {
	t.Run("below 2025 minimum", func(t *testing.T) {
		result, err := CalculateMonthlyPayroll(fullWeekJune2025(), decimal.NewFromInt(9000), 2025, time.June)
		require.Error(t, err)
		assert.Empty(t, result.Summaries)
		assert.Zero(t, result.GrandTotalPay)

		var mwErr *payroll.MinimumWageError
		require.True(t, errors.As(err, &mwErr))
		assert.Equal(t, int64(10030), mwErr.MinimumWage)
		assert.ErrorIs(t, err, payroll.ErrBelowMinimumWage)
		assert.Equal(t, "최저시급(10030원)보다 낮은 금액으로 계산할 수 없습니다.", err.Error())
	})

	t.Run("2025 wage is below 2026 minimum", func(t *testing.T) {
		_, err := CalculateMonthlyPayroll(nil, wage2025, 2026, time.January)
		assert.ErrorIs(t, err, payroll.ErrBelowMinimumWage)
	})

	t.Run("exact minimum passes", func(t *testing.T) {
		_, err := CalculateMonthlyPayroll(nil, decimal.NewFromInt(10320), 2026, time.January)
		assert.NoError(t, err)
	})
}

func TestCalculateMonthlyPayroll_InvalidMonth(t *testing.T) {
	_, err := CalculateMonthlyPayroll(nil, wage2025, 2025, time.Month(13))
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestCalculateMonthlyPayroll_Idempotent(t *testing.T) {
	shifts := append(fullWeekJune2025(), shift("14", "22", "00", "03", "30", 0))

	first, err := CalculateMonthlyPayroll(shifts, wage2025, 2025, time.June)
	require.NoError(t, err)
	second, err := CalculateMonthlyPayroll(shifts, wage2025, 2025, time.June)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateMonthlyPayroll_WeekPartition(t *testing.T) {
	for year := 2024; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			result, err := CalculateMonthlyPayroll(nil, decimal.NewFromInt(20000), year, month)
			require.NoError(t, err)

			next := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
			for i, w := range result.Summaries {
				assert.Equal(t, i+1, w.WeekNumber)
				assert.Equal(t, next.Format("2006-01-02"), w.StartDate, "%d-%02d week %d", year, month, i+1)

				end, err := time.Parse("2006-01-02", w.EndDate)
				require.NoError(t, err)
				assert.False(t, end.Before(next))
				if i < len(result.Summaries)-1 {
					assert.Equal(t, time.Saturday, end.Weekday())
				}
				next = end.AddDate(0, 0, 1)
			}
			assert.Equal(t, month%12+1, next.Month(), "%d-%02d must be covered to its last day", year, month)
			assert.Equal(t, 1, next.Day())
		}
	}
}

func TestCalculateMonthlyPayroll_SaturdayFirstDay(t *testing.T) {
	// 1 March 2025 is a Saturday
	shifts := []payroll.Shift{
		shift("01", "09", "00", "18", "00", 60),
		shift("31", "09", "00", "13", "00", 0),
	}

	result, err := CalculateMonthlyPayroll(shifts, wage2025, 2025, time.March)
	require.NoError(t, err)
	require.Len(t, result.Summaries, 6)

	first := result.Summaries[0]
	assert.Equal(t, "2025-03-01", first.StartDate)
	assert.Equal(t, "2025-03-01", first.EndDate)
	assert.Equal(t, 480, first.ActualWorkingMinutes)
	assert.Equal(t, int64(80240), first.TotalWeeklyPay)

	last := result.Summaries[5]
	assert.Equal(t, "2025-03-30", last.StartDate)
	assert.Equal(t, "2025-03-31", last.EndDate)
	assert.Equal(t, 240, last.ActualWorkingMinutes)
	assert.Equal(t, int64(40120), last.TotalWeeklyPay)

	assert.Equal(t, int64(120360), result.GrandTotalPay)
}

func TestCalculateMonthlyPayroll_FourWeekFebruary(t *testing.T) {
	// February 2026 runs Sunday 1 to Saturday 28
	result, err := CalculateMonthlyPayroll(nil, decimal.NewFromInt(10320), 2026, time.February)
	require.NoError(t, err)
	require.Len(t, result.Summaries, 4)
	assert.Equal(t, "2026-02-22", result.Summaries[3].StartDate)
	assert.Equal(t, "2026-02-28", result.Summaries[3].EndDate)
}

func TestCalculateMonthlyPayroll_DaysOutsideMonthAreNeverVisited(t *testing.T) {
	shifts := []payroll.Shift{
		shift("31", "09", "00", "18", "00", 60), // June has 30 days
		shift("", "09", "00", "18", "00", 60),
		shift("abc", "09", "00", "18", "00", 60),
	}

	result, err := CalculateMonthlyPayroll(shifts, wage2025, 2025, time.June)
	require.NoError(t, err)
	assert.Zero(t, result.GrandTotalPay)
	for _, w := range result.Summaries {
		assert.Zero(t, w.ActualWorkingMinutes)
	}
}

func TestCalculateMonthlyPayroll_PaidBreakReporting(t *testing.T) {
	paid := shift("02", "09", "00", "18", "00", 60)
	paid.IsPaidBreak = true
	unpaid := shift("03", "09", "00", "18", "00", 60)

	result, err := CalculateMonthlyPayroll([]payroll.Shift{paid, unpaid}, wage2025, 2025, time.June)
	require.NoError(t, err)

	week := result.Summaries[0]
	assert.Equal(t, 60, week.UnpaidBreakMinutes)
	assert.Equal(t, 960, week.ActualWorkingMinutes)
}

func TestCalculateMonthlyPayroll_OvernightStaysOnStartDay(t *testing.T) {
	// Saturday 7 June 22:00 to Sunday 02:00 belongs to week 1
	shifts := []payroll.Shift{shift("07", "22", "00", "02", "00", 0)}

	result, err := CalculateMonthlyPayroll(shifts, wage2025, 2025, time.June)
	require.NoError(t, err)
	assert.Equal(t, 240, result.Summaries[0].ActualWorkingMinutes)
	assert.Zero(t, result.Summaries[1].ActualWorkingMinutes)
}

func TestStatutoryMinimumWage(t *testing.T) {
	assert.Equal(t, int64(9860), StatutoryMinimumWage(2020))
	assert.Equal(t, int64(9860), StatutoryMinimumWage(2024))
	assert.Equal(t, int64(10030), StatutoryMinimumWage(2025))
	assert.Equal(t, int64(10320), StatutoryMinimumWage(2026))
	assert.Equal(t, int64(10320), StatutoryMinimumWage(2030))
	assert.True(t, DefaultHourlyWage(2025).Equal(wage2025))
}
