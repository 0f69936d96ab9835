package model

import "time"

// User roles
const (
	RoleOwner  = "Owner"
	RoleAdmin  = "Admin"
	RoleMember = "Member"
	RoleViewer = "Viewer"
)

// User is an account that can authenticate against the API.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"type:varchar(50);uniqueIndex;not null"`
	Email          string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	HashedPassword string    `json:"-" gorm:"type:varchar(255);not null"`
	FullName       *string   `json:"full_name" gorm:"type:varchar(255)"`
	Role           string    `json:"role" gorm:"type:varchar(20);not null;default:'Member'"`
	OrganizationID *uint     `json:"organization_id" gorm:"index"`
	IsActive       bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime;<-:create"`

	Organization *Organization `json:"-" gorm:"foreignKey:OrganizationID"`
}

// IsAdmin reports whether the user may perform administrative operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleOwner || u.Role == RoleAdmin
}

// UserCreate is the client-settable part of a User.
type UserCreate struct {
	Username       string  `json:"username" validate:"required,min=3,max=50"`
	Email          string  `json:"email" validate:"required,email,max=255"`
	Password       string  `json:"password" validate:"required,min=8,max=72"`
	FullName       *string `json:"full_name" validate:"omitempty,max=255"`
	Role           string  `json:"role" validate:"omitempty,oneof=Owner Admin Member Viewer"`
	OrganizationID *uint   `json:"organization_id"`
}

// UserUpdate carries the fields a partial update may change.
type UserUpdate struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
	Role     *string `json:"role" validate:"omitempty,oneof=Owner Admin Member Viewer"`
	IsActive *bool   `json:"is_active"`
}

// Changes returns the columns present in the update.
func (u UserUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "email", u.Email)
	setIf(changes, "full_name", u.FullName)
	setIf(changes, "role", u.Role)
	setIf(changes, "is_active", u.IsActive)
	return changes
}
