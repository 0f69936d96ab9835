package model

import "time"

// Company is a target or counterparty; companies are shared across organizations.
type Company struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(200);uniqueIndex;not null"`
	Website      *string   `json:"website"`
	Location     *string   `json:"location"`
	Sector       *string   `json:"sector"`
	SizeEstimate *string   `json:"size_estimate"`
	OwnerType    *string   `json:"owner_type"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime;<-:create"`
}

// CompanyCreate is the client-settable part of a Company.
type CompanyCreate struct {
	Name         string  `json:"name" validate:"required,min=2,max=200"`
	Website      *string `json:"website"`
	Location     *string `json:"location"`
	Sector       *string `json:"sector"`
	SizeEstimate *string `json:"size_estimate"`
	OwnerType    *string `json:"owner_type"`
}

// CompanyUpdate carries the fields a partial update may change.
type CompanyUpdate struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=200"`
	Website      *string `json:"website"`
	Location     *string `json:"location"`
	Sector       *string `json:"sector"`
	SizeEstimate *string `json:"size_estimate"`
	OwnerType    *string `json:"owner_type"`
}

// Changes returns the columns present in the update.
func (u CompanyUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "name", u.Name)
	setIf(changes, "website", u.Website)
	setIf(changes, "location", u.Location)
	setIf(changes, "sector", u.Sector)
	setIf(changes, "size_estimate", u.SizeEstimate)
	setIf(changes, "owner_type", u.OwnerType)
	return changes
}
