package model

import "time"

// Document is a data-room file reference attached to a Deal.
type Document struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Path        string    `json:"path" gorm:"not null"`
	Version     int       `json:"version" gorm:"not null;default:1;check:chk_documents_version,version >= 1"`
	DealID      uint      `json:"deal_id" gorm:"index;not null;<-:create"`
	Permissions *string   `json:"permissions"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime;<-:create"`

	Deal *Deal `json:"-" gorm:"foreignKey:DealID"`
}

// DocumentCreate is the client-settable part of a Document. The deal comes from the route.
type DocumentCreate struct {
	Name        string  `json:"name" validate:"required"`
	Path        string  `json:"path" validate:"required"`
	Version     *int    `json:"version" validate:"omitempty,min=1"`
	Permissions *string `json:"permissions"`
}

// DocumentUpdate carries the fields a partial update may change.
type DocumentUpdate struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Path        *string `json:"path" validate:"omitempty,min=1"`
	Version     *int    `json:"version" validate:"omitempty,min=1"`
	Permissions *string `json:"permissions"`
}

// Changes returns the columns present in the update.
func (u DocumentUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "name", u.Name)
	setIf(changes, "path", u.Path)
	setIf(changes, "version", u.Version)
	setIf(changes, "permissions", u.Permissions)
	return changes
}
