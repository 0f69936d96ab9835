package model

import "time"

// Organization is the unit of tenant isolation (an SCP, a search fund, a partner firm).
type Organization struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Type      string    `json:"type" gorm:"type:varchar(50);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;<-:create"`
}

// OrganizationCreate is the client-settable part of an Organization.
type OrganizationCreate struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
	Type string `json:"type" validate:"required,max=50"`
}

// OrganizationUpdate carries the fields a partial update may change.
type OrganizationUpdate struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=100"`
	Type *string `json:"type" validate:"omitempty,max=50"`
}

// Changes returns the columns present in the update.
func (u OrganizationUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "name", u.Name)
	setIf(changes, "type", u.Type)
	return changes
}
