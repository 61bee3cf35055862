package payroll

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrBelowMinimumWage = errors.New("hourly wage is below the statutory minimum")
	ErrInvalidPeriod    = errors.New("invalid payroll period")
)

// MinimumWageError rejects a whole calculation. No partial result accompanies it.
type MinimumWageError struct {
	Year        int
	HourlyWage  decimal.Decimal
	MinimumWage int64
}

func (e *MinimumWageError) Error() string {
	return fmt.Sprintf("최저시급(%d원)보다 낮은 금액으로 계산할 수 없습니다.", e.MinimumWage)
}

func (e *MinimumWageError) Unwrap() error {
	return ErrBelowMinimumWage
}
