package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/suteetoe/kazi/internal/apperror"
	"github.com/suteetoe/kazi/internal/model"
	"github.com/suteetoe/kazi/internal/tenancy"
	"github.com/suteetoe/kazi/pkg/password"
	"github.com/suteetoe/kazi/prometheus"
	"gorm.io/gorm"
)

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// unknownUserHash is compared against when the username does not exist, so a
// miss costs the same as a wrong password.
func unknownUserHash() string {
	dummyHashOnce.Do(func() {
		dummyHash, _ = password.Hash("kazi-unknown-user")
	})
	return dummyHash
}

// UserByUsername loads a user by username regardless of tenant.
func (s *Store) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")()

	var user model.User
	if err := s.conn(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

// VerifyCredentials checks a username/password pair. Unknown users and wrong
// passwords are indistinguishable; inactive accounts are Forbidden.
func (s *Store) VerifyCredentials(ctx context.Context, username, plain string) (*model.User, error) {
	user, err := s.UserByUsername(ctx, username)
	if err != nil {
		if !apperror.Is(err, apperror.ENotFound) {
			return nil, err
		}
		password.Verify(plain, unknownUserHash())
		return nil, apperror.Unauthenticated("incorrect username or password")
	}
	if !password.Verify(plain, user.HashedPassword) {
		return nil, apperror.Unauthenticated("incorrect username or password")
	}
	if !user.IsActive {
		return nil, apperror.Forbidden("user account is inactive")
	}
	return user, nil
}

// CreateUser adds an account. Admin only; a bound admin creates users in their
// own organization, and only an Owner may grant the Owner role.
func (s *Store) CreateUser(ctx context.Context, actor *model.User, in model.UserCreate) (*model.User, error) {
	if _, err := tenancy.AuthorizeAdmin(actor); err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = model.RoleMember
	}
	if role == model.RoleOwner && actor.Role != model.RoleOwner {
		return nil, apperror.Forbidden("only an owner can grant the owner role")
	}

	orgID := in.OrganizationID
	if orgID == nil {
		orgID = actor.OrganizationID
	} else if actor.OrganizationID != nil && !tenancy.SameOrganization(actor, orgID) {
		return nil, apperror.Forbidden("cannot create users in another organization")
	}

	return s.insertUser(ctx, in, role, orgID)
}

// CreateOwner bootstraps an Owner account, creating its organization by name
// if one is given and does not exist yet. Used by the create-admin command.
func (s *Store) CreateOwner(ctx context.Context, in model.UserCreate, orgName string) (*model.User, error) {
	user, err := newUser(in, model.RoleOwner, nil)
	if err != nil {
		return nil, err
	}
	err = s.tx(ctx, "insert", func(tx *gorm.DB) error {
		if orgName = strings.TrimSpace(orgName); orgName != "" {
			org := model.Organization{Name: orgName, Type: "Platform"}
			if err := tx.Where("name = ?", orgName).FirstOrCreate(&org).Error; err != nil {
				return translate(err, "organization")
			}
			user.OrganizationID = &org.ID
		}
		return createUser(tx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) insertUser(ctx context.Context, in model.UserCreate, role string, orgID *uint) (*model.User, error) {
	user, err := newUser(in, role, orgID)
	if err != nil {
		return nil, err
	}
	if err := s.tx(ctx, "insert", func(tx *gorm.DB) error { return createUser(tx, user) }); err != nil {
		return nil, err
	}
	return user, nil
}

// newUser hashes the password and builds an active account.
func newUser(in model.UserCreate, role string, orgID *uint) (*model.User, error) {
	hashed, err := password.Hash(in.Password)
	if errors.Is(err, password.ErrTooLong) {
		return nil, apperror.Invalid("password must be at most 72 bytes", nil)
	}
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}
	return &model.User{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: hashed,
		FullName:       in.FullName,
		Role:           role,
		OrganizationID: orgID,
		IsActive:       true,
	}, nil
}

// createUser inserts user after checking its organization and uniqueness.
func createUser(tx *gorm.DB, user *model.User) error {
	if user.OrganizationID != nil {
		found, err := exists(tx, &model.Organization{}, "id = ?", *user.OrganizationID)
		if err != nil {
			return translate(err, "organization")
		}
		if !found {
			return apperror.Invalid("organization_id references an unknown organization", nil)
		}
	}
	if taken, err := exists(tx, &model.User{}, "username = ?", user.Username); err != nil {
		return translate(err, "user")
	} else if taken {
		return apperror.Conflict("username already registered")
	}
	if taken, err := exists(tx, &model.User{}, "email = ?", user.Email); err != nil {
		return translate(err, "user")
	} else if taken {
		return apperror.Conflict("email already registered")
	}
	return translate(tx.Create(user).Error, "user")
}

// userScope confines user queries to the admin's organization. An admin
// without an organization manages the whole platform.
func userScope(actor *model.User) func(*gorm.DB) *gorm.DB {
	if actor != nil && actor.OrganizationID == nil {
		return func(db *gorm.DB) *gorm.DB { return db }
	}
	return tenancy.Scope(actor)
}

// ListUsers returns the users the admin manages.
func (s *Store) ListUsers(ctx context.Context, actor *model.User) ([]model.User, error) {
	if _, err := tenancy.AuthorizeAdmin(actor); err != nil {
		return nil, err
	}
	defer prometheus.TrackDBOperation("query")()

	users := []model.User{}
	if err := s.conn(ctx).Scopes(userScope(actor)).Order("id").Find(&users).Error; err != nil {
		return nil, translate(err, "user")
	}
	return users, nil
}

// GetUser returns one managed user.
func (s *Store) GetUser(ctx context.Context, actor *model.User, id uint) (*model.User, error) {
	if _, err := tenancy.AuthorizeAdmin(actor); err != nil {
		return nil, err
	}
	defer prometheus.TrackDBOperation("query")()

	var user model.User
	if err := s.conn(ctx).Scopes(userScope(actor)).First(&user, id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

// UpdateUser applies a partial update to a managed user.
func (s *Store) UpdateUser(ctx context.Context, actor *model.User, id uint, in model.UserUpdate) (*model.User, error) {
	if _, err := tenancy.AuthorizeAdmin(actor); err != nil {
		return nil, err
	}
	if in.Role != nil && *in.Role == model.RoleOwner && actor.Role != model.RoleOwner {
		return nil, apperror.Forbidden("only an owner can grant the owner role")
	}

	var user model.User
	err := s.tx(ctx, "update", func(tx *gorm.DB) error {
		if err := tx.Scopes(userScope(actor)).First(&user, id).Error; err != nil {
			return translate(err, "user")
		}
		if err := guardOwner(actor, &user); err != nil {
			return err
		}
		if in.Email != nil && *in.Email != user.Email {
			taken, err := exists(tx, &model.User{}, "email = ? AND id <> ?", *in.Email, id)
			if err != nil {
				return translate(err, "user")
			}
			if taken {
				return apperror.Conflict("email already registered")
			}
		}
		return translate(applyChanges(tx, &user, id, in.Changes()), "user")
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a managed user that owns no deals, mandates or tasks.
func (s *Store) DeleteUser(ctx context.Context, actor *model.User, id uint) error {
	if _, err := tenancy.AuthorizeAdmin(actor); err != nil {
		return err
	}
	if actor.ID == id {
		return apperror.Forbidden("cannot delete your own account")
	}

	return s.tx(ctx, "delete", func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Scopes(userScope(actor)).First(&user, id).Error; err != nil {
			return translate(err, "user")
		}
		if err := guardOwner(actor, &user); err != nil {
			return err
		}
		err := refuseIfReferenced(tx, "user",
			reference{&model.Deal{}, "owner_id", id, "deals"},
			reference{&model.Mandate{}, "created_by_id", id, "mandates"},
			reference{&model.Task{}, "owner_id", id, "tasks"},
		)
		if err != nil {
			return err
		}
		return translate(tx.Delete(&user).Error, "user")
	})
}

// guardOwner keeps non-Owners from changing or removing an Owner account.
func guardOwner(actor, target *model.User) error {
	if target.Role == model.RoleOwner && actor.Role != model.RoleOwner {
		return apperror.Forbidden("only an owner can modify an owner")
	}
	return nil
}
