package attendance

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/pkg/validator"
)

const MaxImages = 10

var allowedMimeTypes = []string{"image/jpeg", "image/png", "image/webp", "image/heic"}

type CardImage struct {
	MimeType    string `json:"mime_type"`
	ImageBase64 string `json:"image_base64"`
}

// Decode returns the raw image bytes. A data URL prefix is accepted.
func (c CardImage) Decode() ([]byte, error) {
	data := c.ImageBase64
	if i := strings.Index(data, ";base64,"); strings.HasPrefix(data, "data:") && i >= 0 {
		data = data[i+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(data)
}

type AnalyzeRequest struct {
	Year        int                  `json:"year"`
	Month       int                  `json:"month"`
	BreakPolicy *payroll.BreakPolicy `json:"break_policy,omitempty"` // nil = configured default
	Images      []CardImage          `json:"images"`
}

func (r *AnalyzeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.InRange(r.Month, 1, 12) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if len(r.Images) == 0 {
		errs = append(errs, validator.ValidationError{Field: "images", Message: "at least one image is required"})
	}
	if len(r.Images) > MaxImages {
		errs = append(errs, validator.ValidationError{Field: "images", Message: fmt.Sprintf("must not exceed %d images", MaxImages)})
	}
	for i, img := range r.Images {
		if !validator.IsInSlice(img.MimeType, allowedMimeTypes) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("images[%d].mime_type", i),
				Message: "must be one of " + strings.Join(allowedMimeTypes, ", "),
			})
		}
		if _, err := img.Decode(); err != nil || validator.IsEmpty(img.ImageBase64) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("images[%d].image_base64", i),
				Message: "must be non-empty base64",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AnalyzeResponse struct {
	Shifts    []payroll.Shift `json:"shifts"`
	Truncated bool            `json:"truncated"`
}
