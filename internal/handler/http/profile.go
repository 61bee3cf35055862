package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/handler/http/response"
)

type ProfileHandler interface {
	GetShopName(w http.ResponseWriter, r *http.Request)
	UpdateShopName(w http.ResponseWriter, r *http.Request)
}

type profileHandlerImpl struct {
	profileService user.ProfileService
}

func NewProfileHandler(profileService user.ProfileService) ProfileHandler {
	return &profileHandlerImpl{profileService: profileService}
}

func (h *profileHandlerImpl) GetShopName(w http.ResponseWriter, r *http.Request) {
	result, err := h.profileService.GetShopName(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *profileHandlerImpl) UpdateShopName(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateShopNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.profileService.UpdateShopName(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shop name updated successfully", result)
}
