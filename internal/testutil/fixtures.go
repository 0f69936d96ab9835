package testutil

import (
	"sync"
	"testing"

	"github.com/suteetoe/kazi/internal/model"
	"github.com/suteetoe/kazi/pkg/password"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every fixture user.
const DefaultPassword = "password123"

var (
	hashOnce    sync.Once
	defaultHash string
)

func fixtureHash(t *testing.T) string {
	hashOnce.Do(func() {
		h, err := password.Hash(DefaultPassword)
		if err != nil {
			t.Fatalf("failed to hash fixture password: %v", err)
		}
		defaultHash = h
	})
	return defaultHash
}

// Fixtures provides helper methods for creating test data directly in the database.
type Fixtures struct {
	db *gorm.DB
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *gorm.DB) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *gorm.DB {
	return f.db
}

func (f *Fixtures) create(value interface{}) {
	f.t.Helper()
	if err := f.db.Create(value).Error; err != nil {
		f.t.Fatalf("failed to create fixture %T: %v", value, err)
	}
}

// CreateOrganization creates an organization with the given name.
func (f *Fixtures) CreateOrganization(name string) *model.Organization {
	f.t.Helper()
	org := &model.Organization{Name: name, Type: "SCP"}
	f.create(org)
	return org
}

// CreateUser creates an active user with DefaultPassword. orgID may be nil.
func (f *Fixtures) CreateUser(username, role string, orgID *uint) *model.User {
	f.t.Helper()
	user := &model.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: fixtureHash(f.t),
		Role:           role,
		OrganizationID: orgID,
		IsActive:       true,
	}
	f.create(user)
	return user
}

// Deactivate marks a user inactive.
func (f *Fixtures) Deactivate(user *model.User) {
	f.t.Helper()
	if err := f.db.Model(user).Update("is_active", false).Error; err != nil {
		f.t.Fatalf("failed to deactivate user: %v", err)
	}
	user.IsActive = false
}

// CreateCompany creates a company with an optional sector.
func (f *Fixtures) CreateCompany(name string, sector *string) *model.Company {
	f.t.Helper()
	company := &model.Company{Name: name, Sector: sector}
	f.create(company)
	return company
}

// CreateMandate creates a buy-side mandate owned by the user's organization.
func (f *Fixtures) CreateMandate(owner *model.User, scope *string) *model.Mandate {
	f.t.Helper()
	mandate := &model.Mandate{
		Type:            model.MandateBuySide,
		Scope:           scope,
		ConfidenceScore: "A",
		OrganizationID:  owner.OrganizationID,
		CreatedByID:     &owner.ID,
	}
	f.create(mandate)
	return mandate
}

// CreateDeal creates a deal owned by the user in the user's organization.
func (f *Fixtures) CreateDeal(owner *model.User, companyName string) *model.Deal {
	f.t.Helper()
	deal := &model.Deal{
		CompanyName:    companyName,
		Description:    companyName + " description",
		Stage:          model.DefaultDealStage,
		Status:         model.DefaultDealStatus,
		OwnerID:        &owner.ID,
		OrganizationID: owner.OrganizationID,
	}
	f.create(deal)
	return deal
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
