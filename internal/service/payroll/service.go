package payroll

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/pkg/jwt"
)

type PayrollServiceImpl struct {
	userRepository  user.UserRepository
	defaultShopName string
}

// NewPayrollService builds the payroll service. userRepository may be nil,
// in which case payslips always carry defaultShopName.
func NewPayrollService(userRepository user.UserRepository, defaultShopName string) payroll.PayrollService {
	return &PayrollServiceImpl{
		userRepository:  userRepository,
		defaultShopName: defaultShopName,
	}
}

// Calculate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculatePayrollRequest) (payroll.CalculatePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CalculatePayrollResponse{}, err
	}

	month := time.Month(req.Month)
	shifts := FilterShiftsForMonth(req.Shifts, req.Year, month)
	if dropped := len(req.Shifts) - len(shifts); dropped > 0 {
		slog.Warn("dropped shifts outside the target month", "year", req.Year, "month", req.Month, "count", dropped)
	}
	if req.BreakPolicy != nil {
		shifts = ApplyBreakPolicy(shifts, *req.BreakPolicy)
	}

	warnings := DuplicateDayWarnings(shifts)
	for _, w := range warnings {
		slog.Warn("multiple shifts on one day", "detail", w)
	}

	result, err := CalculateMonthlyPayroll(shifts, req.HourlyWage, req.Year, month)
	if err != nil {
		return payroll.CalculatePayrollResponse{}, err
	}

	return payroll.CalculatePayrollResponse{
		Year:          req.Year,
		Month:         req.Month,
		HourlyWage:    req.HourlyWage,
		Summaries:     result.Summaries,
		GrandTotalPay: result.GrandTotalPay,
		Totals:        SumMonthlyTotals(result.Summaries),
		Warnings:      warnings,
	}, nil
}

// ApplyBreakPolicy implements payroll.PayrollService.
func (s *PayrollServiceImpl) ApplyBreakPolicy(ctx context.Context, req payroll.ApplyBreakPolicyRequest) (payroll.ApplyBreakPolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ApplyBreakPolicyResponse{}, err
	}
	return payroll.ApplyBreakPolicyResponse{
		BreakPolicy: req.BreakPolicy,
		Shifts:      ApplyBreakPolicy(req.Shifts, req.BreakPolicy),
	}, nil
}

// EditShift implements payroll.PayrollService.
func (s *PayrollServiceImpl) EditShift(ctx context.Context, req payroll.EditShiftRequest) (payroll.Shift, error) {
	if err := req.Validate(); err != nil {
		return payroll.Shift{}, err
	}
	return EditShift(req.Shift, req.Edit, req.BreakPolicy), nil
}

// GeneratePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayslip(ctx context.Context, req payroll.PayslipRequest) (payroll.PayslipResponse, error) {
	calc, err := s.Calculate(ctx, req.CalculatePayrollRequest)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	month := time.Month(req.Month)
	shifts := FilterShiftsForMonth(req.Shifts, req.Year, month)

	employeeName := req.EmployeeName
	if employeeName == "" && len(shifts) > 0 {
		employeeName = shifts[0].Name
	}

	result := payroll.MonthlyPayroll{Summaries: calc.Summaries, GrandTotalPay: calc.GrandTotalPay}
	return payroll.PayslipResponse{
		Payroll:  calc,
		Payslip:  BuildPayslip(s.shopName(ctx), employeeName, req.HourlyWage, result),
		Calendar: BuildAttendanceCalendar(shifts, req.Year, month),
	}, nil
}

// GetMinimumWage implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetMinimumWage(ctx context.Context, year int) (payroll.MinimumWageResponse, error) {
	if year < 2000 || year > 2100 {
		return payroll.MinimumWageResponse{}, payroll.ErrInvalidPeriod
	}
	return payroll.MinimumWageResponse{Year: year, MinimumWage: StatutoryMinimumWage(year)}, nil
}

// shopName resolves the caller's shop name, falling back to the default when
// there is no authenticated user or no stored name.
func (s *PayrollServiceImpl) shopName(ctx context.Context) string {
	if s.userRepository == nil {
		return s.defaultShopName
	}
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return s.defaultShopName
	}

	found, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			slog.Error("failed to load shop name", "user_id", userID, "error", err)
		}
		return s.defaultShopName
	}
	return found.ShopNameOr(s.defaultShopName)
}
