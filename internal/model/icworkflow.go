package model

import "time"

// ICWorkflow is an investment committee approval record for a Deal.
type ICWorkflow struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	DealID    uint      `json:"deal_id" gorm:"index;not null;<-:create"`
	Approver  string    `json:"approver" gorm:"not null"`
	Notes     *string   `json:"notes" gorm:"type:text"`
	Approved  bool      `json:"approved" gorm:"not null;default:false"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Deal *Deal `json:"-" gorm:"foreignKey:DealID"`
}

// TableName keeps the table name readable.
func (ICWorkflow) TableName() string {
	return "ic_workflows"
}

// ICWorkflowCreate is the client-settable part of an ICWorkflow.
type ICWorkflowCreate struct {
	DealID   uint    `json:"deal_id" validate:"required"`
	Approver string  `json:"approver" validate:"required"`
	Notes    *string `json:"notes"`
	Approved bool    `json:"approved"`
}

// ICWorkflowUpdate carries the fields a partial update may change.
type ICWorkflowUpdate struct {
	Approver *string `json:"approver" validate:"omitempty,min=1"`
	Notes    *string `json:"notes"`
	Approved *bool   `json:"approved"`
}

// Changes returns the columns present in the update.
func (u ICWorkflowUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "approver", u.Approver)
	setIf(changes, "notes", u.Notes)
	setIf(changes, "approved", u.Approved)
	return changes
}
