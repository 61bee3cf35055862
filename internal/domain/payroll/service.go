package payroll

import "context"

type PayrollService interface {
	Calculate(ctx context.Context, req CalculatePayrollRequest) (CalculatePayrollResponse, error)
	ApplyBreakPolicy(ctx context.Context, req ApplyBreakPolicyRequest) (ApplyBreakPolicyResponse, error)
	EditShift(ctx context.Context, req EditShiftRequest) (Shift, error)
	GeneratePayslip(ctx context.Context, req PayslipRequest) (PayslipResponse, error)
	GetMinimumWage(ctx context.Context, year int) (MinimumWageResponse, error)
}
