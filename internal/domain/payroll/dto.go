package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CALCULATION DTOs ==========

type CalculatePayrollRequest struct {
	Year        int             `json:"year"`
	Month       int             `json:"month"` // 1..12
	HourlyWage  decimal.Decimal `json:"hourly_wage"`
	BreakPolicy *BreakPolicy    `json:"break_policy,omitempty"` // nil = keep break_minutes as sent
	Shifts      []Shift         `json:"shifts"`
}

func (r *CalculatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validatePeriod(r.Year, r.Month)...)
	if !r.HourlyWage.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "hourly_wage", Message: "must be greater than zero"})
	}
	if r.BreakPolicy != nil {
		errs = append(errs, r.BreakPolicy.validate("break_policy")...)
	}
	if len(r.Shifts) == 0 {
		errs = append(errs, validator.ValidationError{Field: "shifts", Message: "at least one shift is required"})
	}
	errs = append(errs, validateShifts(r.Shifts)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CalculatePayrollResponse struct {
	Year          int                    `json:"year"`
	Month         int                    `json:"month"`
	HourlyWage    decimal.Decimal        `json:"hourly_wage"`
	Summaries     []WeeklyPayrollSummary `json:"summaries"`
	GrandTotalPay int64                  `json:"grand_total_pay"`
	Totals        MonthlyTotals          `json:"totals"`
	Warnings      []string               `json:"warnings,omitempty"`
}

// ========== BREAK POLICY DTOs ==========

type ApplyBreakPolicyRequest struct {
	BreakPolicy BreakPolicy `json:"break_policy"`
	Shifts      []Shift     `json:"shifts"`
}

func (r *ApplyBreakPolicyRequest) Validate() error {
	errs := r.BreakPolicy.validate("break_policy")
	errs = append(errs, validateShifts(r.Shifts)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApplyBreakPolicyResponse struct {
	BreakPolicy BreakPolicy `json:"break_policy"`
	Shifts      []Shift     `json:"shifts"`
}

func (p BreakPolicy) validate(field string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if p.DeductionMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: field + ".deduction_minutes", Message: "must be non-negative"})
	}
	if p.ThresholdMinutes > 24*60 {
		errs = append(errs, validator.ValidationError{Field: field + ".threshold_minutes", Message: "must not exceed 1440"})
	}
	return errs
}

// ShiftEdit carries the fields a user changed on one attendance row.
type ShiftEdit struct {
	Name         *string `json:"name,omitempty"`
	Day          *string `json:"day,omitempty"`
	StartHour    *string `json:"start_hour,omitempty"`
	StartMinute  *string `json:"start_minute,omitempty"`
	EndHour      *string `json:"end_hour,omitempty"`
	EndMinute    *string `json:"end_minute,omitempty"`
	BreakMinutes *int    `json:"break_minutes,omitempty"`
	IsPaidBreak  *bool   `json:"is_paid_break,omitempty"`
}

type EditShiftRequest struct {
	BreakPolicy BreakPolicy `json:"break_policy"`
	Shift       Shift       `json:"shift"`
	Edit        ShiftEdit   `json:"edit"`
}

func (r *EditShiftRequest) Validate() error {
	errs := r.BreakPolicy.validate("break_policy")
	if r.Edit.BreakMinutes != nil && *r.Edit.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "edit.break_minutes", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== PAYSLIP DTOs ==========

type PayslipRequest struct {
	CalculatePayrollRequest
	EmployeeName string `json:"employee_name,omitempty"` // defaults to the first shift's name
}

type PayslipResponse struct {
	Payroll  CalculatePayrollResponse `json:"payroll"`
	Payslip  Payslip                  `json:"payslip"`
	Calendar AttendanceCalendar       `json:"calendar"`
}

// ========== MINIMUM WAGE DTOs ==========

type MinimumWageResponse struct {
	Year        int   `json:"year"`
	MinimumWage int64 `json:"minimum_wage"`
}

func validatePeriod(year, month int) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !validator.InRange(month, 1, 12) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.InRange(year, 2000, 2100) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	return errs
}

func validateShifts(shifts []Shift) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for i, s := range shifts {
		if s.BreakMinutes < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("shifts[%d].break_minutes", i),
				Message: "must be non-negative",
			})
		}
	}
	return errs
}
