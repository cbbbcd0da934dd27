package domain

import "time"

// Role роль аккаунта
type Role string

const (
	RoleUser   Role = "user" // покупатель
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// IsValid returns true for known roles
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleVendor || r == RoleAdmin
}

// Profile аккаунт пользователя маркетплейса
type Profile struct {
	ID        int64
	Email     string
	Name      string
	Phone     *string
	Address   *string
	Role      Role
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
