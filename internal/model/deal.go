package model

import "time"

// Deal defaults
const (
	DefaultDealStage  = "Origination"
	DefaultDealStatus = "Pending"
)

// Deal is an opportunity moving through the pipeline. OrganizationID is taken
// from the creator at insert time and never changes.
type Deal struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	CompanyName    string    `json:"company_name" gorm:"not null"`
	Description    string    `json:"description" gorm:"type:text;not null"`
	Stage          string    `json:"stage" gorm:"type:varchar(50);not null;default:'Origination'"`
	Type           *string   `json:"type" gorm:"type:varchar(50)"`
	Status         string    `json:"status" gorm:"type:varchar(50);not null;default:'Pending'"`
	MandateID      *uint     `json:"mandate_id" gorm:"index"`
	CompanyID      *uint     `json:"company_id" gorm:"index"`
	OwnerID        *uint     `json:"owner_id" gorm:"index"`
	OrganizationID *uint     `json:"organization_id" gorm:"index;<-:create"`
	QualityScore   *int      `json:"quality_score" gorm:"check:chk_deals_quality_score,quality_score >= 0 AND quality_score <= 100"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime;<-:create"`

	Mandate      *Mandate      `json:"-" gorm:"foreignKey:MandateID"`
	Company      *Company      `json:"-" gorm:"foreignKey:CompanyID"`
	Owner        *User         `json:"-" gorm:"foreignKey:OwnerID"`
	Organization *Organization `json:"-" gorm:"foreignKey:OrganizationID"`
}

// DealCreate is the client-settable part of a Deal.
type DealCreate struct {
	CompanyName  string  `json:"company_name" validate:"required"`
	Description  string  `json:"description" validate:"required"`
	Stage        string  `json:"stage" validate:"omitempty,max=50"`
	Type         *string `json:"type" validate:"omitempty,max=50"`
	MandateID    *uint   `json:"mandate_id"`
	CompanyID    *uint   `json:"company_id"`
	QualityScore *int    `json:"quality_score" validate:"omitempty,min=0,max=100"`
}

// DealUpdate carries the fields a partial update may change.
type DealUpdate struct {
	CompanyName  *string `json:"company_name" validate:"omitempty,min=1"`
	Description  *string `json:"description" validate:"omitempty,min=1"`
	Stage        *string `json:"stage" validate:"omitempty,min=1,max=50"`
	Type         *string `json:"type" validate:"omitempty,max=50"`
	Status       *string `json:"status" validate:"omitempty,min=1,max=50"`
	QualityScore *int    `json:"quality_score" validate:"omitempty,min=0,max=100"`
}

// Changes returns the columns present in the update.
func (u DealUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "company_name", u.CompanyName)
	setIf(changes, "description", u.Description)
	setIf(changes, "stage", u.Stage)
	setIf(changes, "type", u.Type)
	setIf(changes, "status", u.Status)
	setIf(changes, "quality_score", u.QualityScore)
	return changes
}
