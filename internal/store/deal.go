package store

import (
	"context"

	"github.com/suteetoe/kazi/internal/model"
	"github.com/suteetoe/kazi/internal/tenancy"
	"github.com/suteetoe/kazi/prometheus"
	"gorm.io/gorm"
)

// CreateDeal opens a deal in the actor's organization, owned by the actor.
func (s *Store) CreateDeal(ctx context.Context, actor *model.User, in model.DealCreate) (*model.Deal, error) {
	stage := in.Stage
	if stage == "" {
		stage = model.DefaultDealStage
	}
	deal := model.Deal{
		CompanyName:    in.CompanyName,
		Description:    in.Description,
		Stage:          stage,
		Type:           in.Type,
		Status:         model.DefaultDealStatus,
		MandateID:      in.MandateID,
		CompanyID:      in.CompanyID,
		QualityScore:   in.QualityScore,
		OwnerID:        &actor.ID,
		OrganizationID: actor.OrganizationID,
	}
	err := s.tx(ctx, "insert", func(tx *gorm.DB) error {
		if err := checkMandate(tx, actor, in.MandateID); err != nil {
			return err
		}
		if err := checkCompany(tx, in.CompanyID); err != nil {
			return err
		}
		return translate(tx.Create(&deal).Error, "deal")
	})
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

// ListDeals returns the organization's deals.
func (s *Store) ListDeals(ctx context.Context, actor *model.User) ([]model.Deal, error) {
	defer prometheus.TrackDBOperation("query")()

	deals := []model.Deal{}
	if err := s.conn(ctx).Scopes(tenancy.Scope(actor)).Order("id").Find(&deals).Error; err != nil {
		return nil, translate(err, "deal")
	}
	return deals, nil
}

// GetDeal returns one deal of the organization.
func (s *Store) GetDeal(ctx context.Context, actor *model.User, id uint) (*model.Deal, error) {
	defer prometheus.TrackDBOperation("query")()
	return scopedDeal(s.conn(ctx), actor, id)
}

// UpdateDeal applies a partial update.
func (s *Store) UpdateDeal(ctx context.Context, actor *model.User, id uint, in model.DealUpdate) (*model.Deal, error) {
	var deal *model.Deal
	err := s.tx(ctx, "update", func(tx *gorm.DB) error {
		var err error
		if deal, err = scopedDeal(tx, actor, id); err != nil {
			return err
		}
		return translate(applyChanges(tx, deal, id, in.Changes()), "deal")
	})
	if err != nil {
		return nil, err
	}
	return deal, nil
}

// DeleteDeal removes a deal with its tasks, documents and committee records.
// Intelligence notes on the deal are kept and detached.
func (s *Store) DeleteDeal(ctx context.Context, actor *model.User, id uint) error {
	return s.tx(ctx, "delete", func(tx *gorm.DB) error {
		deal, err := scopedDeal(tx, actor, id)
		if err != nil {
			return err
		}
		for _, child := range []interface{}{&model.Task{}, &model.Document{}, &model.ICWorkflow{}} {
			if err := tx.Where("deal_id = ?", id).Delete(child).Error; err != nil {
				return translate(err, "deal")
			}
		}
		if err := tx.Model(&model.Intelligence{}).Where("deal_id = ?", id).Update("deal_id", nil).Error; err != nil {
			return translate(err, "deal")
		}
		return translate(tx.Delete(deal).Error, "deal")
	})
}

// DealMemoInputs loads a deal with its mandate and company, as far as they exist.
func (s *Store) DealMemoInputs(ctx context.Context, actor *model.User, id uint) (*model.Deal, *model.Mandate, *model.Company, error) {
	defer prometheus.TrackDBOperation("query")()

	db := s.conn(ctx)
	deal, err := scopedDeal(db, actor, id)
	if err != nil {
		return nil, nil, nil, err
	}

	var mandate *model.Mandate
	if deal.MandateID != nil {
		var m model.Mandate
		err := db.Scopes(tenancy.Scope(actor)).Where("id = ?", *deal.MandateID).Limit(1).Find(&m).Error
		if err != nil {
			return nil, nil, nil, translate(err, "mandate")
		}
		if m.ID != 0 {
			mandate = &m
		}
	}

	var company *model.Company
	if deal.CompanyID != nil {
		var c model.Company
		if err := db.Where("id = ?", *deal.CompanyID).Limit(1).Find(&c).Error; err != nil {
			return nil, nil, nil, translate(err, "company")
		}
		if c.ID != 0 {
			company = &c
		}
	}

	return deal, mandate, company, nil
}
