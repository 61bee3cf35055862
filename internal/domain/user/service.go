package user

import "context"

// ProfileService manages the per-user shop profile.
type ProfileService interface {
	GetShopName(ctx context.Context) (ShopNameResponse, error)
	UpdateShopName(ctx context.Context, req UpdateShopNameRequest) (ShopNameResponse, error)
}
