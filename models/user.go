package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleProvider Role = "PROVIDER"
	RoleClient   Role = "CLIENT"
)

// ValidRole reports whether r is one of the three known roles.
// The role set is closed; there is no role table to extend at runtime.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleProvider || r == RoleClient
}

type User struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	Email           string           `json:"email" gorm:"unique;not null"`
	Password        string           `json:"password,omitempty"`
	Role            Role             `json:"role" gorm:"type:varchar(20);not null;default:'CLIENT'"`
	FirstName       string           `json:"first_name"`
	LastName        string           `json:"last_name"`
	Phone           string           `json:"phone"`
	ProviderProfile *ProviderProfile `json:"provider_profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleClient
	}
	if !ValidRole(u.Role) {
		return fmt.Errorf("unknown role %q", u.Role)
	}
	return nil
}

// IsProvider reports whether the user may own services and availability.
func (u *User) IsProvider() bool {
	return u.Role == RoleProvider
}

// ProviderProfile holds provider-only data. Exactly one per provider user.
type ProviderProfile struct {
	gorm.Model
	UserID          uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	BusinessName    string `json:"business_name"`
	Bio             string `json:"bio"`
	Address         string `json:"address"`
	ProfileImageURL string `json:"profile_image_url"`
	Specialization  string `json:"specialization"` // e.g. "Cardiology", "Neurology"
	IsVerified      bool   `json:"is_verified" gorm:"default:false"`
}
