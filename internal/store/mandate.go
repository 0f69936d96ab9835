package store

import (
	"context"

	"github.com/suteetoe/kazi/internal/model"
	"github.com/suteetoe/kazi/internal/tenancy"
	"github.com/suteetoe/kazi/prometheus"
	"gorm.io/gorm"
)

// CreateMandate adds a mandate to the actor's organization.
func (s *Store) CreateMandate(ctx context.Context, actor *model.User, in model.MandateCreate) (*model.Mandate, error) {
	mandate := model.Mandate{
		Type:            in.Type,
		Scope:           in.Scope,
		Timeline:        in.Timeline,
		FeeModel:        in.FeeModel,
		Exclusivity:     in.Exclusivity,
		ConfidenceScore: in.ConfidenceScore,
		ProofDocuments:  in.ProofDocuments,
		CompanyID:       in.CompanyID,
		OrganizationID:  actor.OrganizationID,
		CreatedByID:     &actor.ID,
	}
	err := s.tx(ctx, "insert", func(tx *gorm.DB) error {
		if err := checkCompany(tx, in.CompanyID); err != nil {
			return err
		}
		return translate(tx.Create(&mandate).Error, "mandate")
	})
	if err != nil {
		return nil, err
	}
	return &mandate, nil
}

// ListMandates returns the organization's mandates.
func (s *Store) ListMandates(ctx context.Context, actor *model.User) ([]model.Mandate, error) {
	defer prometheus.TrackDBOperation("query")()

	mandates := []model.Mandate{}
	if err := s.conn(ctx).Scopes(tenancy.Scope(actor)).Order("id").Find(&mandates).Error; err != nil {
		return nil, translate(err, "mandate")
	}
	return mandates, nil
}

// GetMandate returns one mandate of the organization.
func (s *Store) GetMandate(ctx context.Context, actor *model.User, id uint) (*model.Mandate, error) {
	defer prometheus.TrackDBOperation("query")()

	var mandate model.Mandate
	if err := s.conn(ctx).Scopes(tenancy.Scope(actor)).First(&mandate, id).Error; err != nil {
		return nil, translate(err, "mandate")
	}
	return &mandate, nil
}

// UpdateMandate applies a partial update.
func (s *Store) UpdateMandate(ctx context.Context, actor *model.User, id uint, in model.MandateUpdate) (*model.Mandate, error) {
	var mandate model.Mandate
	err := s.tx(ctx, "update", func(tx *gorm.DB) error {
		if err := tx.Scopes(tenancy.Scope(actor)).First(&mandate, id).Error; err != nil {
			return translate(err, "mandate")
		}
		if err := checkCompany(tx, in.CompanyID); err != nil {
			return err
		}
		return translate(applyChanges(tx, &mandate, id, in.Changes()), "mandate")
	})
	if err != nil {
		return nil, err
	}
	return &mandate, nil
}

// DeleteMandate removes a mandate no deal references.
func (s *Store) DeleteMandate(ctx context.Context, actor *model.User, id uint) error {
	return s.tx(ctx, "delete", func(tx *gorm.DB) error {
		var mandate model.Mandate
		if err := tx.Scopes(tenancy.Scope(actor)).First(&mandate, id).Error; err != nil {
			return translate(err, "mandate")
		}
		err := refuseIfReferenced(tx, "mandate",
			reference{&model.Deal{}, "mandate_id", id, "deals"},
		)
		if err != nil {
			return err
		}
		return translate(tx.Delete(&mandate).Error, "mandate")
	})
}
