package model

import "time"

// Task statuses
const (
	TaskPending    = "Pending"
	TaskInProgress = "In Progress"
	TaskCompleted  = "Completed"
)

// Task is a unit of work attached to a Deal.
type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Description string     `json:"description" gorm:"type:text;not null"`
	OwnerID     *uint      `json:"owner_id" gorm:"index"`
	DealID      uint       `json:"deal_id" gorm:"index;not null;<-:create"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status" gorm:"type:varchar(20);not null;default:'Pending'"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime;<-:create"`

	Owner *User `json:"-" gorm:"foreignKey:OwnerID"`
	Deal  *Deal `json:"-" gorm:"foreignKey:DealID"`
}

// TaskCreate is the client-settable part of a Task. The deal comes from the route.
type TaskCreate struct {
	Description string     `json:"description" validate:"required"`
	OwnerID     *uint      `json:"owner_id"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed"`
}

// TaskUpdate carries the fields a partial update may change.
type TaskUpdate struct {
	Description *string    `json:"description" validate:"omitempty,min=1"`
	OwnerID     *uint      `json:"owner_id"`
	DueDate     *time.Time `json:"due_date"`
	Status      *string    `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed"`
}

// Changes returns the columns present in the update.
func (u TaskUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "description", u.Description)
	setIf(changes, "owner_id", u.OwnerID)
	setIf(changes, "due_date", u.DueDate)
	setIf(changes, "status", u.Status)
	return changes
}
