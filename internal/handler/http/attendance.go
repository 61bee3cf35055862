package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/handler/http/response"
)

// Ten base64 card photos fit comfortably below this.
const maxAnalyzeBodyBytes = 20 << 20

const truncatedHeader = "X-AI-Response-Truncated"

type AttendanceHandler interface {
	Analyze(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Analyze implements AttendanceHandler.
func (h *attendanceHandlerImpl) Analyze(w http.ResponseWriter, r *http.Request) {
	var req attendance.AnalyzeRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxAnalyzeBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.HandleError(w, err)
			return
		}
		slog.Error("Analyze decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Analyze(r.Context(), req)
	if err != nil {
		slog.Error("Analyze attendance error", "error", err)
		response.HandleError(w, err)
		return
	}

	if result.Truncated {
		w.Header().Set(truncatedHeader, "true")
	}
	response.Success(w, result)
}
