package attendance

import "context"

type AttendanceService interface {
	// Analyze extracts shifts from photographed attendance cards.
	Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error)
}
