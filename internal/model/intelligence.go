package model

import "time"

// Intelligence is a free-form note, optionally tied to a Deal.
type Intelligence struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	DealID         *uint     `json:"deal_id" gorm:"index"`
	OrganizationID *uint     `json:"organization_id" gorm:"index;<-:create"`
	Source         string    `json:"source" gorm:"not null"`
	Content        string    `json:"content" gorm:"type:text;not null"`
	IngestedAt     time.Time `json:"ingested_at" gorm:"autoCreateTime;<-:create"`

	Deal         *Deal         `json:"-" gorm:"foreignKey:DealID"`
	Organization *Organization `json:"-" gorm:"foreignKey:OrganizationID"`
}

// TableName keeps the singular table name.
func (Intelligence) TableName() string {
	return "intelligence"
}

// IntelligenceCreate is the client-settable part of an Intelligence note.
type IntelligenceCreate struct {
	DealID  *uint  `json:"deal_id"`
	Source  string `json:"source" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// IntelligenceUpdate carries the fields a partial update may change.
type IntelligenceUpdate struct {
	DealID  *uint   `json:"deal_id"`
	Source  *string `json:"source" validate:"omitempty,min=1"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

// Changes returns the columns present in the update.
func (u IntelligenceUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "deal_id", u.DealID)
	setIf(changes, "source", u.Source)
	setIf(changes, "content", u.Content)
	return changes
}
