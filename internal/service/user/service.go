package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/pkg/jwt"
)

type ProfileServiceImpl struct {
	user.UserRepository
	defaultShopName string
}

func NewProfileService(userRepository user.UserRepository, defaultShopName string) user.ProfileService {
	return &ProfileServiceImpl{UserRepository: userRepository, defaultShopName: defaultShopName}
}

// GetShopName implements user.ProfileService.
func (s *ProfileServiceImpl) GetShopName(ctx context.Context) (user.ShopNameResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return user.ShopNameResponse{}, err
	}

	found, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.ShopNameResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user.ShopNameResponse{ShopName: found.ShopNameOr(s.defaultShopName)}, nil
}

// UpdateShopName implements user.ProfileService.
func (s *ProfileServiceImpl) UpdateShopName(ctx context.Context, req user.UpdateShopNameRequest) (user.ShopNameResponse, error) {
	if err := req.Validate(); err != nil {
		return user.ShopNameResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return user.ShopNameResponse{}, err
	}

	shopName := strings.TrimSpace(req.ShopName)
	if err := s.UserRepository.UpdateShopName(ctx, userID, shopName); err != nil {
		return user.ShopNameResponse{}, fmt.Errorf("failed to update shop name: %w", err)
	}
	return user.ShopNameResponse{ShopName: shopName}, nil
}
