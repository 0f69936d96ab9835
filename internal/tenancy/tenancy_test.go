package tenancy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suteetoe/kazi/internal/apperror"
	"github.com/suteetoe/kazi/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeTokens map[string]string

func (f fakeTokens) Validate(token string) (string, error) {
	if subject, ok := f[token]; ok {
		return subject, nil
	}
	return "", errors.New("invalid")
}

type fakeUsers map[string]*model.User

func (f fakeUsers) UserByUsername(_ context.Context, username string) (*model.User, error) {
	if user, ok := f[username]; ok {
		return user, nil
	}
	return nil, apperror.NotFound("user")
}

func uintPtr(v uint) *uint { return &v }

func TestAuthenticate(t *testing.T) {
	guard := NewGuard(
		fakeTokens{"good": "alice", "idle": "idle", "ghost": "ghost"},
		fakeUsers{
			"alice": {ID: 1, Username: "alice", IsActive: true},
			"idle":  {ID: 2, Username: "idle", IsActive: false},
		},
	)

	tests := []struct {
		name  string
		token string
		code  string
	}{
		{name: "valid", token: "good"},
		{name: "invalid token", token: "bad", code: apperror.EUnauthenticated},
		{name: "unknown subject", token: "ghost", code: apperror.EUnauthenticated},
		{name: "inactive user", token: "idle", code: apperror.EForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := guard.Authenticate(context.Background(), tt.token)
			if tt.code == "" {
				require.NoError(t, err)
				assert.Equal(t, "alice", user.Username)
				return
			}
			assert.Nil(t, user)
			assert.Equal(t, tt.code, apperror.CodeOf(err))
		})
	}
}

func TestAuthenticate_StorageFailurePropagates(t *testing.T) {
	boom := apperror.Internal("failed to access user", errors.New("connection reset"))
	guard := NewGuard(fakeTokens{"good": "alice"}, failingUsers{err: boom})

	_, err := guard.Authenticate(context.Background(), "good")
	assert.Equal(t, apperror.EInternal, apperror.CodeOf(err))
}

type failingUsers struct{ err error }

func (f failingUsers) UserByUsername(context.Context, string) (*model.User, error) {
	return nil, f.err
}

func TestAuthorizeAdmin(t *testing.T) {
	for _, role := range []string{model.RoleOwner, model.RoleAdmin} {
		_, err := AuthorizeAdmin(&model.User{Role: role})
		assert.NoError(t, err, role)
	}
	for _, role := range []string{model.RoleMember, model.RoleViewer} {
		_, err := AuthorizeAdmin(&model.User{Role: role})
		assert.Equal(t, apperror.EForbidden, apperror.CodeOf(err), role)
	}

	_, err := AuthorizeAdmin(nil)
	assert.Equal(t, apperror.EUnauthenticated, apperror.CodeOf(err))
}

func TestSameOrganization(t *testing.T) {
	assert.True(t, SameOrganization(&model.User{OrganizationID: uintPtr(1)}, uintPtr(1)))
	assert.False(t, SameOrganization(&model.User{OrganizationID: uintPtr(1)}, uintPtr(2)))
	assert.False(t, SameOrganization(&model.User{OrganizationID: uintPtr(1)}, nil))
	assert.True(t, SameOrganization(&model.User{}, nil))
	assert.False(t, SameOrganization(nil, nil))
}

func TestScope_SQL(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{DryRun: true})
	require.NoError(t, err)

	sql := func(user *model.User) string {
		stmt := db.Scopes(Scope(user)).Find(&[]model.Deal{}).Statement
		return stmt.SQL.String()
	}

	assert.Contains(t, sql(&model.User{OrganizationID: uintPtr(7)}), "organization_id = ?")
	assert.Contains(t, sql(&model.User{}), "organization_id IS NULL")
	assert.Contains(t, sql(nil), "1 = 0")
}
