package store

import (
	"context"

	"github.com/suteetoe/kazi/internal/apperror"
	"github.com/suteetoe/kazi/internal/model"
	"github.com/suteetoe/kazi/internal/tenancy"
	"github.com/suteetoe/kazi/prometheus"
	"gorm.io/gorm"
)

// CreateOrganization registers a new tenant. Admin only.
func (s *Store) CreateOrganization(ctx context.Context, actor *model.User, in model.OrganizationCreate) (*model.Organization, error) {
	if _, err := tenancy.AuthorizeAdmin(actor); err != nil {
		return nil, err
	}

	org := model.Organization{Name: in.Name, Type: in.Type}
	err := s.tx(ctx, "insert", func(tx *gorm.DB) error {
		taken, err := exists(tx, &model.Organization{}, "name = ?", in.Name)
		if err != nil {
			return translate(err, "organization")
		}
		if taken {
			return apperror.Conflict("organization name already registered")
		}
		return translate(tx.Create(&org).Error, "organization")
	})
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// ListOrganizations returns every organization.
func (s *Store) ListOrganizations(ctx context.Context, actor *model.User) ([]model.Organization, error) {
	defer prometheus.TrackDBOperation("query")()

	orgs := []model.Organization{}
	if err := s.conn(ctx).Order("id").Find(&orgs).Error; err != nil {
		return nil, translate(err, "organization")
	}
	return orgs, nil
}

// GetOrganization returns one organization.
func (s *Store) GetOrganization(ctx context.Context, actor *model.User, id uint) (*model.Organization, error) {
	defer prometheus.TrackDBOperation("query")()

	var org model.Organization
	if err := s.conn(ctx).First(&org, id).Error; err != nil {
		return nil, translate(err, "organization")
	}
	return &org, nil
}

// UpdateOrganization applies a partial update. An admin bound to an
// organization can only change their own.
func (s *Store) UpdateOrganization(ctx context.Context, actor *model.User, id uint, in model.OrganizationUpdate) (*model.Organization, error) {
	if err := authorizeOrgAdmin(actor, id); err != nil {
		return nil, err
	}

	var org model.Organization
	err := s.tx(ctx, "update", func(tx *gorm.DB) error {
		if err := tx.First(&org, id).Error; err != nil {
			return translate(err, "organization")
		}
		if in.Name != nil && *in.Name != org.Name {
			taken, err := exists(tx, &model.Organization{}, "name = ? AND id <> ?", *in.Name, id)
			if err != nil {
				return translate(err, "organization")
			}
			if taken {
				return apperror.Conflict("organization name already registered")
			}
		}
		return translate(applyChanges(tx, &org, id, in.Changes()), "organization")
	})
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// DeleteOrganization removes an organization nothing references.
func (s *Store) DeleteOrganization(ctx context.Context, actor *model.User, id uint) error {
	if err := authorizeOrgAdmin(actor, id); err != nil {
		return err
	}

	return s.tx(ctx, "delete", func(tx *gorm.DB) error {
		var org model.Organization
		if err := tx.First(&org, id).Error; err != nil {
			return translate(err, "organization")
		}
		err := refuseIfReferenced(tx, "organization",
			reference{&model.User{}, "organization_id", id, "users"},
			reference{&model.Mandate{}, "organization_id", id, "mandates"},
			reference{&model.Deal{}, "organization_id", id, "deals"},
			reference{&model.Intelligence{}, "organization_id", id, "intelligence"},
		)
		if err != nil {
			return err
		}
		return translate(tx.Delete(&org).Error, "organization")
	})
}

func authorizeOrgAdmin(actor *model.User, id uint) error {
	if _, err := tenancy.AuthorizeAdmin(actor); err != nil {
		return err
	}
	if actor.OrganizationID != nil && *actor.OrganizationID != id {
		return apperror.NotFound("organization")
	}
	return nil
}
