package store

import (
	"context"

	"github.com/suteetoe/kazi/internal/model"
	"github.com/suteetoe/kazi/prometheus"
	"gorm.io/gorm"
)

// CreateICWorkflow records a committee decision on a deal of the actor's organization.
func (s *Store) CreateICWorkflow(ctx context.Context, actor *model.User, in model.ICWorkflowCreate) (*model.ICWorkflow, error) {
	workflow := model.ICWorkflow{
		DealID:   in.DealID,
		Approver: in.Approver,
		Notes:    in.Notes,
		Approved: in.Approved,
	}
	err := s.tx(ctx, "insert", func(tx *gorm.DB) error {
		if _, err := scopedDeal(tx, actor, in.DealID); err != nil {
			return err
		}
		return translate(tx.Create(&workflow).Error, "ic workflow")
	})
	if err != nil {
		return nil, err
	}
	return &workflow, nil
}

// ListICWorkflows returns committee records of the organization's deals,
// narrowed to one deal when dealID is set.
func (s *Store) ListICWorkflows(ctx context.Context, actor *model.User, dealID *uint) ([]model.ICWorkflow, error) {
	defer prometheus.TrackDBOperation("query")()

	db := s.conn(ctx)
	query := db.Where("deal_id IN (?)", scopedDealIDs(db, actor))
	if dealID != nil {
		query = query.Where("deal_id = ?", *dealID)
	}
	workflows := []model.ICWorkflow{}
	if err := query.Order("id").Find(&workflows).Error; err != nil {
		return nil, translate(err, "ic workflow")
	}
	return workflows, nil
}

// GetICWorkflow returns one committee record.
func (s *Store) GetICWorkflow(ctx context.Context, actor *model.User, id uint) (*model.ICWorkflow, error) {
	defer prometheus.TrackDBOperation("query")()

	var workflow model.ICWorkflow
	if err := scopedICWorkflow(s.conn(ctx), actor, id, &workflow); err != nil {
		return nil, err
	}
	return &workflow, nil
}

// UpdateICWorkflow applies a partial update.
func (s *Store) UpdateICWorkflow(ctx context.Context, actor *model.User, id uint, in model.ICWorkflowUpdate) (*model.ICWorkflow, error) {
	var workflow model.ICWorkflow
	err := s.tx(ctx, "update", func(tx *gorm.DB) error {
		if err := scopedICWorkflow(tx, actor, id, &workflow); err != nil {
			return err
		}
		return translate(applyChanges(tx, &workflow, id, in.Changes()), "ic workflow")
	})
	if err != nil {
		return nil, err
	}
	return &workflow, nil
}

// DeleteICWorkflow removes a committee record.
func (s *Store) DeleteICWorkflow(ctx context.Context, actor *model.User, id uint) error {
	return s.tx(ctx, "delete", func(tx *gorm.DB) error {
		var workflow model.ICWorkflow
		if err := scopedICWorkflow(tx, actor, id, &workflow); err != nil {
			return err
		}
		return translate(tx.Delete(&workflow).Error, "ic workflow")
	})
}

func scopedICWorkflow(tx *gorm.DB, actor *model.User, id uint, workflow *model.ICWorkflow) error {
	err := tx.Where("deal_id IN (?)", scopedDealIDs(tx, actor)).First(workflow, id).Error
	return translate(err, "ic workflow")
}
