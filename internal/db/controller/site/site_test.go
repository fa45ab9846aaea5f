package site

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vipulnarang95/django-cms/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Site{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		domain        string
		siteName      string
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			domain:        "example.com",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty domain",
			dbParam:       db,
			domain:        "",
			expectedError: ErrSiteDomainEmpty,
		},
		{
			name:     "successful create",
			dbParam:  db,
			domain:   "example.com",
			siteName: "Example",
		},
		{
			name:          "duplicate domain",
			dbParam:       db,
			domain:        "example.com",
			expectedError: ErrSiteAlreadyExists,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			site, err := Create(tc.dbParam, tc.domain, tc.siteName)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, site)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.domain, site.Domain)
				assert.Equal(t, tc.siteName, site.Name)
			}
		})
	}
}

func TestGetAll(t *testing.T) {
	db := setupTestDB(t)

	_, err := Create(db, "zulu.example.com", "Zulu")
	require.NoError(t, err)
	_, err = Create(db, "alpha.example.com", "Alpha")
	require.NoError(t, err)

	sites, err := GetAll(db)
	require.NoError(t, err)
	require.Len(t, sites, 2)

	// ordered by domain
	assert.Equal(t, "alpha.example.com", sites[0].Domain)
	assert.Equal(t, "zulu.example.com", sites[1].Domain)
}

func TestGetAndGetByDomain(t *testing.T) {
	db := setupTestDB(t)

	created, err := Create(db, "example.com", "Example")
	require.NoError(t, err)

	site, err := Get(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "example.com", site.Domain)

	site, err = GetByDomain(db, "example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, site.ID)

	_, err = Get(db, 999)
	require.ErrorIs(t, err, ErrSiteNotFound)

	_, err = GetByDomain(db, "missing.org")
	require.ErrorIs(t, err, ErrSiteNotFound)

	_, err = GetByDomain(db, "")
	require.ErrorIs(t, err, ErrSiteDomainEmpty)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)

	created, err := Create(db, "example.com", "Example")
	require.NoError(t, err)

	updated, err := Update(db, created.ID, "example.org", "Example Org")
	require.NoError(t, err)
	assert.Equal(t, "example.org", updated.Domain)
	assert.Equal(t, "Example Org", updated.Name)

	_, err = Update(db, 999, "x.org", "X")
	require.ErrorIs(t, err, ErrSiteNotFound)

	_, err = Update(db, created.ID, "", "X")
	require.ErrorIs(t, err, ErrSiteDomainEmpty)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	require.ErrorIs(t, Delete(db, 1), ErrSiteNotFound)

	created, err := Create(db, "example.com", "Example")
	require.NoError(t, err)

	require.NoError(t, Delete(db, created.ID))

	_, err = Get(db, created.ID)
	require.ErrorIs(t, err, ErrSiteNotFound)
}
