package store

import (
	"context"

	"github.com/suteetoe/kazi/internal/model"
	"github.com/suteetoe/kazi/prometheus"
	"gorm.io/gorm"
)

// Tasks are visible through their deal.

// CreateTask adds a task to a deal of the actor's organization.
func (s *Store) CreateTask(ctx context.Context, actor *model.User, dealID uint, in model.TaskCreate) (*model.Task, error) {
	status := in.Status
	if status == "" {
		status = model.TaskPending
	}
	task := model.Task{
		Description: in.Description,
		OwnerID:     in.OwnerID,
		DealID:      dealID,
		DueDate:     in.DueDate,
		Status:      status,
	}
	err := s.tx(ctx, "insert", func(tx *gorm.DB) error {
		if _, err := scopedDeal(tx, actor, dealID); err != nil {
			return err
		}
		if err := checkMember(tx, actor, in.OwnerID); err != nil {
			return err
		}
		return translate(tx.Create(&task).Error, "task")
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks returns the tasks of one deal.
func (s *Store) ListTasks(ctx context.Context, actor *model.User, dealID uint) ([]model.Task, error) {
	defer prometheus.TrackDBOperation("query")()

	db := s.conn(ctx)
	if _, err := scopedDeal(db, actor, dealID); err != nil {
		return nil, err
	}
	tasks := []model.Task{}
	if err := db.Where("deal_id = ?", dealID).Order("id").Find(&tasks).Error; err != nil {
		return nil, translate(err, "task")
	}
	return tasks, nil
}

// GetTask returns one task.
func (s *Store) GetTask(ctx context.Context, actor *model.User, id uint) (*model.Task, error) {
	defer prometheus.TrackDBOperation("query")()

	var task model.Task
	if err := scopedTask(s.conn(ctx), actor, id, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update.
func (s *Store) UpdateTask(ctx context.Context, actor *model.User, id uint, in model.TaskUpdate) (*model.Task, error) {
	var task model.Task
	err := s.tx(ctx, "update", func(tx *gorm.DB) error {
		if err := scopedTask(tx, actor, id, &task); err != nil {
			return err
		}
		if err := checkMember(tx, actor, in.OwnerID); err != nil {
			return err
		}
		return translate(applyChanges(tx, &task, id, in.Changes()), "task")
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(ctx context.Context, actor *model.User, id uint) error {
	return s.tx(ctx, "delete", func(tx *gorm.DB) error {
		var task model.Task
		if err := scopedTask(tx, actor, id, &task); err != nil {
			return err
		}
		return translate(tx.Delete(&task).Error, "task")
	})
}

func scopedTask(tx *gorm.DB, actor *model.User, id uint, task *model.Task) error {
	err := tx.Where("deal_id IN (?)", scopedDealIDs(tx, actor)).First(task, id).Error
	return translate(err, "task")
}
