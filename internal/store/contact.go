package store

import (
	"context"

	"github.com/suteetoe/kazi/internal/model"
	"github.com/suteetoe/kazi/prometheus"
	"gorm.io/gorm"
)

// CreateContact adds a contact, optionally at a company.
func (s *Store) CreateContact(ctx context.Context, actor *model.User, in model.ContactCreate) (*model.Contact, error) {
	contact := model.Contact{
		FullName:             in.FullName,
		Email:                in.Email,
		Phone:                in.Phone,
		Role:                 in.Role,
		CompanyID:            in.CompanyID,
		RelationshipStrength: in.RelationshipStrength,
	}
	err := s.tx(ctx, "insert", func(tx *gorm.DB) error {
		if err := checkCompany(tx, in.CompanyID); err != nil {
			return err
		}
		return translate(tx.Create(&contact).Error, "contact")
	})
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// ListContacts returns contacts, filtered to one company when companyID is set.
func (s *Store) ListContacts(ctx context.Context, actor *model.User, companyID *uint) ([]model.Contact, error) {
	defer prometheus.TrackDBOperation("query")()

	query := s.conn(ctx).Order("id")
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}
	contacts := []model.Contact{}
	if err := query.Find(&contacts).Error; err != nil {
		return nil, translate(err, "contact")
	}
	return contacts, nil
}

// GetContact returns one contact.
func (s *Store) GetContact(ctx context.Context, actor *model.User, id uint) (*model.Contact, error) {
	defer prometheus.TrackDBOperation("query")()

	var contact model.Contact
	if err := s.conn(ctx).First(&contact, id).Error; err != nil {
		return nil, translate(err, "contact")
	}
	return &contact, nil
}

// UpdateContact applies a partial update.
func (s *Store) UpdateContact(ctx context.Context, actor *model.User, id uint, in model.ContactUpdate) (*model.Contact, error) {
	var contact model.Contact
	err := s.tx(ctx, "update", func(tx *gorm.DB) error {
		if err := tx.First(&contact, id).Error; err != nil {
			return translate(err, "contact")
		}
		if err := checkCompany(tx, in.CompanyID); err != nil {
			return err
		}
		return translate(applyChanges(tx, &contact, id, in.Changes()), "contact")
	})
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// DeleteContact removes a contact.
func (s *Store) DeleteContact(ctx context.Context, actor *model.User, id uint) error {
	return s.tx(ctx, "delete", func(tx *gorm.DB) error {
		var contact model.Contact
		if err := tx.First(&contact, id).Error; err != nil {
			return translate(err, "contact")
		}
		return translate(tx.Delete(&contact).Error, "contact")
	})
}
