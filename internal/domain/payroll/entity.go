package payroll

import "github.com/shopspring/decimal"

// Shift is one continuous on-duty interval of a worker on a day of the target month.
// Time fields are kept as entered (free-form strings) and parsed leniently.
type Shift struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Day          string `json:"day"` // "01".."31"
	StartHour    string `json:"start_hour"`
	StartMinute  string `json:"start_minute"`
	EndHour      string `json:"end_hour"`
	EndMinute    string `json:"end_minute"`
	BreakMinutes int    `json:"break_minutes"`

	// IsBreakManual pins BreakMinutes against break policy recomputation.
	IsBreakManual bool `json:"is_break_manual"`

	// IsPaidBreak only excludes the break from the unpaid-break total.
	// The break is still subtracted from the paid duration.
	IsPaidBreak bool `json:"is_paid_break"`
}

// BreakPolicy deducts DeductionMinutes from every shift whose raw duration
// reaches ThresholdMinutes. A non-positive threshold disables the policy.
type BreakPolicy struct {
	ThresholdMinutes int `json:"threshold_minutes"`
	DeductionMinutes int `json:"deduction_minutes"`
}

// WeeklyPayrollSummary is one closed week. Weeks never span two months.
type WeeklyPayrollSummary struct {
	WeekNumber                    int    `json:"week_number"`
	StartDate                     string `json:"start_date"`
	EndDate                       string `json:"end_date"`
	ActualWorkingMinutes          int    `json:"actual_working_minutes"`
	UnpaidBreakMinutes            int    `json:"unpaid_break_minutes"`
	WeeklyHolidayAllowanceMinutes int    `json:"weekly_holiday_allowance_minutes"`
	PaidWorkingMinutes            int    `json:"paid_working_minutes"`
	BasePay                       int64  `json:"base_pay"`
	WeeklyHolidayAllowance        int64  `json:"weekly_holiday_allowance"`
	TotalWeeklyPay                int64  `json:"total_weekly_pay"`
}

// MonthlyPayroll is the engine output for one month.
type MonthlyPayroll struct {
	Summaries     []WeeklyPayrollSummary `json:"summaries"`
	GrandTotalPay int64                  `json:"grand_total_pay"`
}

// MonthlyTotals sums every weekly figure of a month.
type MonthlyTotals struct {
	ActualWorkingMinutes          int   `json:"actual_working_minutes"`
	UnpaidBreakMinutes            int   `json:"unpaid_break_minutes"`
	WeeklyHolidayAllowanceMinutes int   `json:"weekly_holiday_allowance_minutes"`
	PaidWorkingMinutes            int   `json:"paid_working_minutes"`
	BasePay                       int64 `json:"base_pay"`
	WeeklyHolidayAllowance        int64 `json:"weekly_holiday_allowance"`
	GrossPay                      int64 `json:"gross_pay"`
}

// Payslip is the presentational pay statement. Tax figures never feed back
// into MonthlyPayroll.
type Payslip struct {
	ShopName       string          `json:"shop_name"`
	EmployeeName   string          `json:"employee_name"`
	PeriodStart    string          `json:"period_start"`
	PeriodEnd      string          `json:"period_end"`
	HourlyWage     decimal.Decimal `json:"hourly_wage"`
	Totals         MonthlyTotals   `json:"totals"`
	WithholdingTax int64           `json:"withholding_tax"`
	NetPay         int64           `json:"net_pay"`
}

// CalendarCell is one day of the attendance confirmation sheet.
// Day is zero for padding cells outside the month.
type CalendarCell struct {
	Day    int      `json:"day"`
	Shifts []string `json:"shifts"`
}

// AttendanceCalendar holds Sunday..Saturday rows of the target month.
type AttendanceCalendar struct {
	Year  int               `json:"year"`
	Month int               `json:"month"`
	Weeks [][7]CalendarCell `json:"weeks"`
}
