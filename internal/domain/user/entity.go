package user

import "time"

// User is a shop owner account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	ShopName     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ShopNameOr returns the stored shop name, or fallback when none is set.
func (u *User) ShopNameOr(fallback string) string {
	if u.ShopName == nil || *u.ShopName == "" {
		return fallback
	}
	return *u.ShopName
}
