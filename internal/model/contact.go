package model

import "time"

// Contact is a person at a Company.
type Contact struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	FullName             string    `json:"full_name" gorm:"not null"`
	Email                *string   `json:"email"`
	Phone                *string   `json:"phone"`
	Role                 *string   `json:"role"`
	CompanyID            *uint     `json:"company_id" gorm:"index"`
	RelationshipStrength *string   `json:"relationship_strength" gorm:"type:varchar(10)"`
	CreatedAt            time.Time `json:"created_at" gorm:"autoCreateTime;<-:create"`

	Company *Company `json:"-" gorm:"foreignKey:CompanyID"`
}

// ContactCreate is the client-settable part of a Contact.
type ContactCreate struct {
	FullName             string  `json:"full_name" validate:"required"`
	Email                *string `json:"email" validate:"omitempty,email"`
	Phone                *string `json:"phone"`
	Role                 *string `json:"role"`
	CompanyID            *uint   `json:"company_id"`
	RelationshipStrength *string `json:"relationship_strength" validate:"omitempty,oneof=Strong Medium Weak"`
}

// ContactUpdate carries the fields a partial update may change.
type ContactUpdate struct {
	FullName             *string `json:"full_name" validate:"omitempty,min=1"`
	Email                *string `json:"email" validate:"omitempty,email"`
	Phone                *string `json:"phone"`
	Role                 *string `json:"role"`
	CompanyID            *uint   `json:"company_id"`
	RelationshipStrength *string `json:"relationship_strength" validate:"omitempty,oneof=Strong Medium Weak"`
}

// Changes returns the columns present in the update.
func (u ContactUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "full_name", u.FullName)
	setIf(changes, "email", u.Email)
	setIf(changes, "phone", u.Phone)
	setIf(changes, "role", u.Role)
	setIf(changes, "company_id", u.CompanyID)
	setIf(changes, "relationship_strength", u.RelationshipStrength)
	return changes
}
