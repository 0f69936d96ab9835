// Package store implements create/list/get/update/delete for every entity,
// scoped to the acting user's organization.
package store

import (
	"context"
	"errors"

	"github.com/suteetoe/kazi/internal/apperror"
	"github.com/suteetoe/kazi/internal/model"
	"github.com/suteetoe/kazi/internal/tenancy"
	"github.com/suteetoe/kazi/prometheus"
	"gorm.io/gorm"
)

// Store is the data access layer. It holds the shared connection pool; each
// call takes a connection for its own duration.
type Store struct {
	db *gorm.DB
}

// New creates a Store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// tx runs fn in a transaction that is rolled back on any error or panic.
func (s *Store) tx(ctx context.Context, operation string, fn func(tx *gorm.DB) error) error {
	defer prometheus.TrackDBOperation(operation)()
	return s.conn(ctx).Transaction(fn)
}

// translate maps a gorm error onto the error taxonomy.
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Conflict(entity + " already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperror.Conflict(entity + " is still referenced")
	}
	return apperror.Internal("failed to access "+entity, err)
}

// exists reports whether a row of model matching query exists.
func exists(tx *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := tx.Model(model).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyChanges writes the present fields of a partial update and reloads dest.
func applyChanges(tx *gorm.DB, dest interface{}, id uint, changes map[string]interface{}) error {
	if len(changes) > 0 {
		if err := tx.Model(dest).Updates(changes).Error; err != nil {
			return err
		}
	}
	return tx.First(dest, id).Error
}

// scopedDeal loads a deal visible to actor.
func scopedDeal(tx *gorm.DB, actor *model.User, id uint) (*model.Deal, error) {
	var deal model.Deal
	if err := tx.Scopes(tenancy.Scope(actor)).First(&deal, id).Error; err != nil {
		return nil, translate(err, "deal")
	}
	return &deal, nil
}

// scopedDealIDs is a subquery of the ids of deals visible to actor.
func scopedDealIDs(tx *gorm.DB, actor *model.User) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true}).Model(&model.Deal{}).Select("id").Scopes(tenancy.Scope(actor))
}

// checkCompany validates an optional company reference.
func checkCompany(tx *gorm.DB, companyID *uint) error {
	if companyID == nil {
		return nil
	}
	ok, err := exists(tx, &model.Company{}, "id = ?", *companyID)
	if err != nil {
		return translate(err, "company")
	}
	if !ok {
		return apperror.Invalid("company_id references an unknown company", nil)
	}
	return nil
}

// checkMandate validates an optional mandate reference within actor's organization.
func checkMandate(tx *gorm.DB, actor *model.User, mandateID *uint) error {
	if mandateID == nil {
		return nil
	}
	var count int64
	err := tx.Model(&model.Mandate{}).Scopes(tenancy.Scope(actor)).Where("id = ?", *mandateID).Count(&count).Error
	if err != nil {
		return translate(err, "mandate")
	}
	if count == 0 {
		return apperror.Invalid("mandate_id references an unknown mandate", nil)
	}
	return nil
}

// checkMember validates an optional user reference within actor's organization.
func checkMember(tx *gorm.DB, actor *model.User, userID *uint) error {
	if userID == nil {
		return nil
	}
	var count int64
	err := tx.Model(&model.User{}).Scopes(tenancy.Scope(actor)).Where("id = ?", *userID).Count(&count).Error
	if err != nil {
		return translate(err, "user")
	}
	if count == 0 {
		return apperror.Invalid("owner_id references an unknown user", nil)
	}
	return nil
}

// refuseIfReferenced fails with Conflict when any of the checks finds a row.
func refuseIfReferenced(tx *gorm.DB, entity string, checks ...reference) error {
	for _, ref := range checks {
		found, err := exists(tx, ref.model, ref.column+" = ?", ref.id)
		if err != nil {
			return translate(err, entity)
		}
		if found {
			return apperror.Conflict(entity + " is still referenced by " + ref.label)
		}
	}
	return nil
}

type reference struct {
	model  interface{}
	column string
	id     uint
	label  string
}
