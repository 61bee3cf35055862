package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/pkg/ocr"
	payrollsvc "github.com/cmlabs-hris/timecard-payroll-go/internal/service/payroll"
	"github.com/google/uuid"
)

// Cards are photographed as two halves of the month, so images go to the
// model two at a time.
const imagesPerRequest = 2

// nameCorrections fixes names the model reliably misreads.
var nameCorrections = map[string]string{
	"언니": "엔니",
}

// Extractor is the vision model boundary.
type Extractor interface {
	Enabled() bool
	Extract(ctx context.Context, prompt string, images []ocr.Image) (ocr.Result, error)
}

type AttendanceServiceImpl struct {
	extractor     Extractor
	defaultPolicy payroll.BreakPolicy
}

func NewAttendanceService(extractor Extractor, defaultPolicy payroll.BreakPolicy) attendance.AttendanceService {
	return &AttendanceServiceImpl{extractor: extractor, defaultPolicy: defaultPolicy}
}

// Analyze implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Analyze(ctx context.Context, req attendance.AnalyzeRequest) (attendance.AnalyzeResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AnalyzeResponse{}, err
	}
	if s.extractor == nil || !s.extractor.Enabled() {
		return attendance.AnalyzeResponse{}, attendance.ErrExtractionDisabled
	}

	policy := s.defaultPolicy
	if req.BreakPolicy != nil {
		policy = *req.BreakPolicy
	}

	images := make([]ocr.Image, 0, len(req.Images))
	for _, img := range req.Images {
		data, err := img.Decode()
		if err != nil {
			return attendance.AnalyzeResponse{}, fmt.Errorf("decode image: %w", err)
		}
		images = append(images, ocr.Image{MimeType: img.MimeType, Data: data})
	}

	resp := attendance.AnalyzeResponse{Shifts: []payroll.Shift{}}
	prompt := extractionPrompt(req.Year, req.Month)

	for start := 0; start < len(images); start += imagesPerRequest {
		end := start + imagesPerRequest
		if end > len(images) {
			end = len(images)
		}

		result, err := s.extractor.Extract(ctx, prompt, images[start:end])
		if err != nil {
			if errors.Is(err, ocr.ErrOverloaded) {
				return attendance.AnalyzeResponse{}, fmt.Errorf("%w: %v", attendance.ErrExtractionUnavailable, err)
			}
			return attendance.AnalyzeResponse{}, fmt.Errorf("extract attendance: %w", err)
		}

		rows, repaired := parseExtraction(result.Text)
		if result.Truncated || repaired {
			slog.Warn("attendance extraction output was truncated",
				"images", fmt.Sprintf("%d-%d", start+1, end),
				"rows_recovered", len(rows),
			)
			resp.Truncated = true
		}

		for _, row := range rows {
			resp.Shifts = append(resp.Shifts, normalizeShift(row, policy))
		}
	}

	return resp, nil
}

// normalizeShift turns a model row into an editable shift with a fresh id and
// the break resolved from policy.
func normalizeShift(row extractedShift, policy payroll.BreakPolicy) payroll.Shift {
	name := strings.TrimSpace(string(row.Name))
	if fixed, ok := nameCorrections[name]; ok {
		name = fixed
	}

	s := payroll.Shift{
		ID:          uuid.NewString(),
		Name:        name,
		Day:         pad2(string(row.Day)),
		StartHour:   pad2(string(row.StartHour)),
		StartMinute: pad2(string(row.StartMinute)),
		EndHour:     pad2(string(row.EndHour)),
		EndMinute:   pad2(string(row.EndMinute)),
	}
	s.BreakMinutes = payrollsvc.ResolveBreakMinutes(s.StartHour, s.StartMinute, s.EndHour, s.EndMinute, policy)
	return s
}

// pad2 left-pads single digit values; anything else is returned trimmed.
func pad2(v string) string {
	v = strings.TrimSpace(v)
	if len(v) == 1 && v[0] >= '0' && v[0] <= '9' {
		return "0" + v
	}
	return v
}

func extractionPrompt(year, month int) string {
	period := fmt.Sprintf("%d월", month)
	if year > 0 {
		period = fmt.Sprintf("%d년 %d월", year, month)
	}
	return fmt.Sprintf(`명령: 이미지 속 사원 1명의 %s 전체 출퇴근 기록을 추출하여 압축된 JSON 배열로만 반환하라.
1. 성명란의 글자를 정확히 읽을 것. '엔니'를 '언니'로 오인하지 마라.
2. 두 장의 이미지는 각각 상반기(1~15일)와 하반기(16~31일) 기록이다. 하나의 배열로 합쳐라.
3. 도장 옆에 볼펜으로 수정된 시각이 있으면 그 시각을 우선한다.
4. 줄바꿈, 공백, 코드 블록 없이 한 줄로 출력하라.
형식: [{"name":"이름","day":"DD","sh":"HH","sm":"mm","eh":"HH","em":"mm"}]`, period)
}
