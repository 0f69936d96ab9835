package store

import (
	"context"

	"github.com/suteetoe/kazi/internal/model"
	"github.com/suteetoe/kazi/prometheus"
	"gorm.io/gorm"
)

// CreateDocument attaches a document to a deal of the actor's organization.
func (s *Store) CreateDocument(ctx context.Context, actor *model.User, dealID uint, in model.DocumentCreate) (*model.Document, error) {
	version := 1
	if in.Version != nil {
		version = *in.Version
	}
	doc := model.Document{
		Name:        in.Name,
		Path:        in.Path,
		Version:     version,
		DealID:      dealID,
		Permissions: in.Permissions,
	}
	err := s.tx(ctx, "insert", func(tx *gorm.DB) error {
		if _, err := scopedDeal(tx, actor, dealID); err != nil {
			return err
		}
		return translate(tx.Create(&doc).Error, "document")
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocuments returns the documents of one deal.
func (s *Store) ListDocuments(ctx context.Context, actor *model.User, dealID uint) ([]model.Document, error) {
	defer prometheus.TrackDBOperation("query")()

	db := s.conn(ctx)
	if _, err := scopedDeal(db, actor, dealID); err != nil {
		return nil, err
	}
	docs := []model.Document{}
	if err := db.Where("deal_id = ?", dealID).Order("id").Find(&docs).Error; err != nil {
		return nil, translate(err, "document")
	}
	return docs, nil
}

// GetDocument returns one document.
func (s *Store) GetDocument(ctx context.Context, actor *model.User, id uint) (*model.Document, error) {
	defer prometheus.TrackDBOperation("query")()

	var doc model.Document
	if err := scopedDocument(s.conn(ctx), actor, id, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateDocument applies a partial update.
func (s *Store) UpdateDocument(ctx context.Context, actor *model.User, id uint, in model.DocumentUpdate) (*model.Document, error) {
	var doc model.Document
	err := s.tx(ctx, "update", func(tx *gorm.DB) error {
		if err := scopedDocument(tx, actor, id, &doc); err != nil {
			return err
		}
		return translate(applyChanges(tx, &doc, id, in.Changes()), "document")
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes a document.
func (s *Store) DeleteDocument(ctx context.Context, actor *model.User, id uint) error {
	return s.tx(ctx, "delete", func(tx *gorm.DB) error {
		var doc model.Document
		if err := scopedDocument(tx, actor, id, &doc); err != nil {
			return err
		}
		return translate(tx.Delete(&doc).Error, "document")
	})
}

func scopedDocument(tx *gorm.DB, actor *model.User, id uint, doc *model.Document) error {
	err := tx.Where("deal_id IN (?)", scopedDealIDs(tx, actor)).First(doc, id).Error
	return translate(err, "document")
}
