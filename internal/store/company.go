package store

import (
	"context"

	"github.com/suteetoe/kazi/internal/apperror"
	"github.com/suteetoe/kazi/internal/model"
	"github.com/suteetoe/kazi/prometheus"
	"gorm.io/gorm"
)

// Companies are shared reference data visible to every authenticated user.

// CreateCompany adds a company with a unique name.
func (s *Store) CreateCompany(ctx context.Context, actor *model.User, in model.CompanyCreate) (*model.Company, error) {
	company := model.Company{
		Name:         in.Name,
		Website:      in.Website,
		Location:     in.Location,
		Sector:       in.Sector,
		SizeEstimate: in.SizeEstimate,
		OwnerType:    in.OwnerType,
	}
	err := s.tx(ctx, "insert", func(tx *gorm.DB) error {
		taken, err := exists(tx, &model.Company{}, "name = ?", in.Name)
		if err != nil {
			return translate(err, "company")
		}
		if taken {
			return apperror.Conflict("company name already registered")
		}
		return translate(tx.Create(&company).Error, "company")
	})
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// ListCompanies returns every company.
func (s *Store) ListCompanies(ctx context.Context, actor *model.User) ([]model.Company, error) {
	defer prometheus.TrackDBOperation("query")()

	companies := []model.Company{}
	if err := s.conn(ctx).Order("id").Find(&companies).Error; err != nil {
		return nil, translate(err, "company")
	}
	return companies, nil
}

// GetCompany returns one company.
func (s *Store) GetCompany(ctx context.Context, actor *model.User, id uint) (*model.Company, error) {
	defer prometheus.TrackDBOperation("query")()

	var company model.Company
	if err := s.conn(ctx).First(&company, id).Error; err != nil {
		return nil, translate(err, "company")
	}
	return &company, nil
}

// UpdateCompany applies a partial update.
func (s *Store) UpdateCompany(ctx context.Context, actor *model.User, id uint, in model.CompanyUpdate) (*model.Company, error) {
	var company model.Company
	err := s.tx(ctx, "update", func(tx *gorm.DB) error {
		if err := tx.First(&company, id).Error; err != nil {
			return translate(err, "company")
		}
		if in.Name != nil && *in.Name != company.Name {
			taken, err := exists(tx, &model.Company{}, "name = ? AND id <> ?", *in.Name, id)
			if err != nil {
				return translate(err, "company")
			}
			if taken {
				return apperror.Conflict("company name already registered")
			}
		}
		return translate(applyChanges(tx, &company, id, in.Changes()), "company")
	})
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// DeleteCompany removes a company no contact, mandate or deal references.
func (s *Store) DeleteCompany(ctx context.Context, actor *model.User, id uint) error {
	return s.tx(ctx, "delete", func(tx *gorm.DB) error {
		var company model.Company
		if err := tx.First(&company, id).Error; err != nil {
			return translate(err, "company")
		}
		err := refuseIfReferenced(tx, "company",
			reference{&model.Contact{}, "company_id", id, "contacts"},
			reference{&model.Mandate{}, "company_id", id, "mandates"},
			reference{&model.Deal{}, "company_id", id, "deals"},
		)
		if err != nil {
			return err
		}
		return translate(tx.Delete(&company).Error, "company")
	})
}
