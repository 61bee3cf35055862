package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		RequestTooLarge(w, "Request body exceeds "+strconv.FormatInt(maxBytesErr.Limit, 10)+" bytes")
		return
	}

	// Payroll domain errors
	var minimumWageErr *payroll.MinimumWageError
	if errors.As(err, &minimumWageErr) {
		PolicyViolation(w, minimumWageErr.Error(), map[string]string{
			"year":         strconv.Itoa(minimumWageErr.Year),
			"hourly_wage":  minimumWageErr.HourlyWage.String(),
			"minimum_wage": strconv.FormatInt(minimumWageErr.MinimumWage, 10),
		})
		return
	}

	switch {
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, jwt.ErrMissingUserClaim):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Attendance extraction errors
	case errors.Is(err, attendance.ErrExtractionDisabled):
		ServiceUnavailable(w, "Attendance extraction is not configured")
	case errors.Is(err, attendance.ErrExtractionUnavailable):
		ServiceUnavailable(w, "현재 서버 사용량이 많습니다. 잠시 후 다시 시도해 주세요.")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
