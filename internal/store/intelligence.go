package store

import (
	"context"

	"github.com/suteetoe/kazi/internal/model"
	"github.com/suteetoe/kazi/internal/tenancy"
	"github.com/suteetoe/kazi/prometheus"
	"gorm.io/gorm"
)

// CreateIntelligence stores a note for the actor's organization. A referenced
// deal must belong to the same organization.
func (s *Store) CreateIntelligence(ctx context.Context, actor *model.User, in model.IntelligenceCreate) (*model.Intelligence, error) {
	note := model.Intelligence{
		DealID:         in.DealID,
		OrganizationID: actor.OrganizationID,
		Source:         in.Source,
		Content:        in.Content,
	}
	err := s.tx(ctx, "insert", func(tx *gorm.DB) error {
		if in.DealID != nil {
			if _, err := scopedDeal(tx, actor, *in.DealID); err != nil {
				return err
			}
		}
		return translate(tx.Create(&note).Error, "intelligence")
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListIntelligence returns the organization's notes, narrowed to one deal when dealID is set.
func (s *Store) ListIntelligence(ctx context.Context, actor *model.User, dealID *uint) ([]model.Intelligence, error) {
	defer prometheus.TrackDBOperation("query")()

	query := s.conn(ctx).Scopes(tenancy.Scope(actor))
	if dealID != nil {
		query = query.Where("deal_id = ?", *dealID)
	}
	notes := []model.Intelligence{}
	if err := query.Order("id").Find(&notes).Error; err != nil {
		return nil, translate(err, "intelligence")
	}
	return notes, nil
}

// GetIntelligence returns one note.
func (s *Store) GetIntelligence(ctx context.Context, actor *model.User, id uint) (*model.Intelligence, error) {
	defer prometheus.TrackDBOperation("query")()

	var note model.Intelligence
	if err := s.conn(ctx).Scopes(tenancy.Scope(actor)).First(&note, id).Error; err != nil {
		return nil, translate(err, "intelligence")
	}
	return &note, nil
}

// UpdateIntelligence applies a partial update.
func (s *Store) UpdateIntelligence(ctx context.Context, actor *model.User, id uint, in model.IntelligenceUpdate) (*model.Intelligence, error) {
	var note model.Intelligence
	err := s.tx(ctx, "update", func(tx *gorm.DB) error {
		if err := tx.Scopes(tenancy.Scope(actor)).First(&note, id).Error; err != nil {
			return translate(err, "intelligence")
		}
		if in.DealID != nil {
			if _, err := scopedDeal(tx, actor, *in.DealID); err != nil {
				return err
			}
		}
		return translate(applyChanges(tx, &note, id, in.Changes()), "intelligence")
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// DeleteIntelligence removes a note.
func (s *Store) DeleteIntelligence(ctx context.Context, actor *model.User, id uint) error {
	return s.tx(ctx, "delete", func(tx *gorm.DB) error {
		var note model.Intelligence
		if err := tx.Scopes(tenancy.Scope(actor)).First(&note, id).Error; err != nil {
			return translate(err, "intelligence")
		}
		return translate(tx.Delete(&note).Error, "intelligence")
	})
}
