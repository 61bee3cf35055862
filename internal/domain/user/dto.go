package user

import (
	"unicode/utf8"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/pkg/validator"
)

type ShopNameResponse struct {
	ShopName string `json:"shop_name"`
}

type UpdateShopNameRequest struct {
	ShopName string `json:"shop_name"`
}

func (r *UpdateShopNameRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShopName) {
		errs = append(errs, validator.ValidationError{
			Field:   "shop_name",
			Message: "shop_name is required",
		})
	} else if utf8.RuneCountInString(r.ShopName) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "shop_name",
			Message: "shop_name must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
