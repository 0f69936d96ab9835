// Package tenancy resolves bearer tokens to users and confines every query to
// the caller's organization.
package tenancy

import (
	"context"

	"github.com/suteetoe/kazi/internal/apperror"
	"github.com/suteetoe/kazi/internal/model"
	"gorm.io/gorm"
)

// TokenValidator returns the subject of a valid token.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// UserFinder loads a user by username. It returns an apperror with code
// ENotFound when no such user exists.
type UserFinder interface {
	UserByUsername(ctx context.Context, username string) (*model.User, error)
}

// Guard authenticates callers.
type Guard struct {
	tokens TokenValidator
	users  UserFinder
}

// NewGuard creates a Guard.
func NewGuard(tokens TokenValidator, users UserFinder) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// Authenticate resolves a bearer token to an active user.
func (g *Guard) Authenticate(ctx context.Context, token string) (*model.User, error) {
	subject, err := g.tokens.Validate(token)
	if err != nil {
		return nil, apperror.Unauthenticated("could not validate credentials")
	}

	user, err := g.users.UserByUsername(ctx, subject)
	if err != nil {
		if apperror.Is(err, apperror.ENotFound) {
			return nil, apperror.Unauthenticated("could not validate credentials")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperror.Forbidden("user account is inactive")
	}
	return user, nil
}

// AuthorizeAdmin fails unless the user is an Owner or Admin.
func AuthorizeAdmin(user *model.User) (*model.User, error) {
	if user == nil {
		return nil, apperror.Unauthenticated("authentication required")
	}
	if !user.IsAdmin() {
		return nil, apperror.Forbidden("insufficient permissions")
	}
	return user, nil
}

// Scope restricts a query to rows whose organization_id matches the user's.
// A user without an organization only sees rows without one.
func Scope(user *model.User) func(*gorm.DB) *gorm.DB {
	return ScopeColumn(user, "organization_id")
}

// ScopeColumn is Scope for a qualified column, for joined queries.
func ScopeColumn(user *model.User, column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if user == nil {
			// No caller, no rows.
			return db.Where("1 = 0")
		}
		if user.OrganizationID == nil {
			return db.Where(column + " IS NULL")
		}
		return db.Where(column+" = ?", *user.OrganizationID)
	}
}

// SameOrganization reports whether orgID belongs to the user's tenant.
func SameOrganization(user *model.User, orgID *uint) bool {
	if user == nil {
		return false
	}
	if user.OrganizationID == nil || orgID == nil {
		return user.OrganizationID == nil && orgID == nil
	}
	return *user.OrganizationID == *orgID
}
