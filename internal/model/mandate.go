package model

import "time"

// Mandate types
const (
	MandateBuySide  = "buy-side"
	MandateSellSide = "sell-side"
	MandateTrading  = "trading"
)

// Mandate is a documented engagement authorization scoping allowed deal activity.
type Mandate struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Type            string    `json:"type" gorm:"type:varchar(20);not null"`
	Scope           *string   `json:"scope"`
	Timeline        *string   `json:"timeline"`
	FeeModel        *string   `json:"fee_model"`
	Exclusivity     *string   `json:"exclusivity"`
	ConfidenceScore string    `json:"confidence_score" gorm:"type:varchar(1);not null"`
	ProofDocuments  *string   `json:"proof_documents"`
	OrganizationID  *uint     `json:"organization_id" gorm:"index"`
	CompanyID       *uint     `json:"company_id" gorm:"index"`
	CreatedByID     *uint     `json:"created_by_id" gorm:"index"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime;<-:create"`

	Organization *Organization `json:"-" gorm:"foreignKey:OrganizationID"`
	Company      *Company      `json:"-" gorm:"foreignKey:CompanyID"`
	CreatedBy    *User         `json:"-" gorm:"foreignKey:CreatedByID"`
}

// MandateCreate is the client-settable part of a Mandate.
type MandateCreate struct {
	Type            string  `json:"type" validate:"required,oneof=buy-side sell-side trading"`
	Scope           *string `json:"scope"`
	Timeline        *string `json:"timeline"`
	FeeModel        *string `json:"fee_model"`
	Exclusivity     *string `json:"exclusivity"`
	ConfidenceScore string  `json:"confidence_score" validate:"required,oneof=A B C"`
	ProofDocuments  *string `json:"proof_documents"`
	CompanyID       *uint   `json:"company_id"`
}

// MandateUpdate carries the fields a partial update may change.
type MandateUpdate struct {
	Type            *string `json:"type" validate:"omitempty,oneof=buy-side sell-side trading"`
	Scope           *string `json:"scope"`
	Timeline        *string `json:"timeline"`
	FeeModel        *string `json:"fee_model"`
	Exclusivity     *string `json:"exclusivity"`
	ConfidenceScore *string `json:"confidence_score" validate:"omitempty,oneof=A B C"`
	ProofDocuments  *string `json:"proof_documents"`
	CompanyID       *uint   `json:"company_id"`
}

// Changes returns the columns present in the update.
func (u MandateUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "type", u.Type)
	setIf(changes, "scope", u.Scope)
	setIf(changes, "timeline", u.Timeline)
	setIf(changes, "fee_model", u.FeeModel)
	setIf(changes, "exclusivity", u.Exclusivity)
	setIf(changes, "confidence_score", u.ConfidenceScore)
	setIf(changes, "proof_documents", u.ProofDocuments)
	setIf(changes, "company_id", u.CompanyID)
	return changes
}
