package staticplaceholder

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

	// Migrate the schema
	err = db.AutoMigrate(&models.Site{}, &models.StaticPlaceholder{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedSites inserts test sites and returns them with assigned IDs.
func seedSites(t *testing.T, db *gorm.DB, sites []models.Site) []models.Site {
	t.Helper()

	for i := range sites {
		err := db.Create(&sites[i]).Error
		require.NoError(t, err, "failed to seed test site")
	}

	return sites
}

// seedPlaceholders inserts test placeholders.
func seedPlaceholders(t *testing.T, db *gorm.DB, placeholders []models.StaticPlaceholder) {
	t.Helper()

	for i := range placeholders {
		err := db.Create(&placeholders[i]).Error
		require.NoError(t, err, "failed to seed test placeholder")
	}
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func TestList_Search(t *testing.T) {
	db := setupTestDB(t)
	sites := seedSites(t, db, []models.Site{{Domain: "example.com", Name: "Example"}})

	seedPlaceholders(t, db, []models.StaticPlaceholder{
		{Name: "Footer", Code: "footer", SiteID: uint64Ptr(sites[0].ID)},
		{Name: "Header", Code: "header"},
		{Name: "Sidebar links", Code: "sidebar-links", CreationMethod: models.CreationByTemplate},
	})

	testCases := []struct {
		name          string
		params        ListParams
		expectedCodes []string
	}{
		{
			name:          "no search returns all",
			params:        ListParams{},
			expectedCodes: []string{"footer", "header", "sidebar-links"},
		},
		{
			name:          "substring of name",
			params:        ListParams{Search: "oot"},
			expectedCodes: []string{"footer"},
		},
		{
			name:          "substring of code",
			params:        ListParams{Search: "sidebar"},
			expectedCodes: []string{"sidebar-links"},
		},
		{
			name:          "site domain is not searchable",
			params:        ListParams{Search: "example.com"},
			expectedCodes: []string{},
		},
		{
			name:          "creation method is not searchable",
			params:        ListParams{Search: "template"},
			expectedCodes: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := List(db, tc.params)
			require.NoError(t, err)

			codes := make([]string, 0, len(result.Items))
			for i := range result.Items {
				codes = append(codes, result.Items[i].Code)
			}

			assert.ElementsMatch(t, tc.expectedCodes, codes)
		})
	}
}

func TestList_Facets(t *testing.T) {
	db := setupTestDB(t)
	sites := seedSites(t, db, []models.Site{
		{Domain: "example.com", Name: "Example"},
		{Domain: "other.org", Name: "Other"},
	})

	seedPlaceholders(t, db, []models.StaticPlaceholder{
		{Code: "footer", SiteID: uint64Ptr(sites[0].ID)},
		{Code: "header", SiteID: uint64Ptr(sites[1].ID), CreationMethod: models.CreationByTemplate},
		{Code: "banner"},
	})

	t.Run("filter by creation method", func(t *testing.T) {
		result, err := List(db, ListParams{CreationMethod: string(models.CreationByTemplate)})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "header", result.Items[0].Code)
	})

	t.Run("filter by site", func(t *testing.T) {
		result, err := List(db, ListParams{SiteID: sites[0].ID})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "footer", result.Items[0].Code)
	})

	t.Run("facet and search combine", func(t *testing.T) {
		result, err := List(db, ListParams{Search: "head", SiteID: sites[0].ID})
		require.NoError(t, err)
		assert.Empty(t, result.Items)
	})
}

func TestList_Pagination(t *testing.T) {
	db := setupTestDB(t)

	placeholders := make([]models.StaticPlaceholder, 0, 7)
	for _, code := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		placeholders = append(placeholders, models.StaticPlaceholder{Code: code})
	}
	seedPlaceholders(t, db, placeholders)

	result, err := List(db, ListParams{Page: 2, PageSize: 3, SortField: "code"})
	require.NoError(t, err)

	assert.Equal(t, int64(7), result.TotalItems)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 2, result.Page)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "d", result.Items[0].Code)

	// page beyond the end is clamped to the last page
	result, err = List(db, ListParams{Page: 99, PageSize: 3, SortField: "code"})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Page)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "g", result.Items[0].Code)
}

func TestList_Sorting(t *testing.T) {
	db := setupTestDB(t)

	seedPlaceholders(t, db, []models.StaticPlaceholder{
		{Code: "beta"}, {Code: "alpha"}, {Code: "gamma"},
	})

	result, err := List(db, ListParams{SortField: "code", SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "gamma", result.Items[0].Code)

	// unknown sort field falls back to code ascending
	result, err = List(db, ListParams{SortField: "site"})
	require.NoError(t, err)
	assert.Equal(t, "alpha", result.Items[0].Code)
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	placeholder, err := Create(db, "Footer", "footer", nil)
	require.NoError(t, err)
	assert.Equal(t, models.CreationByCode, placeholder.CreationMethod)

	// duplicate code in the same site scope
	_, err = Create(db, "Footer again", "footer", nil)
	require.ErrorIs(t, err, ErrCodeTaken)

	// same code scoped to a site is fine
	sites := seedSites(t, db, []models.Site{{Domain: "example.com", Name: "Example"}})
	_, err = Create(db, "Site footer", "footer", uint64Ptr(sites[0].ID))
	require.NoError(t, err)

	// blank code gets generated
	placeholder, err = Create(db, "Unnamed", "", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, placeholder.Code)
}

func TestUpdate_IgnoresCreationMethod(t *testing.T) {
	db := setupTestDB(t)

	seedPlaceholders(t, db, []models.StaticPlaceholder{
		{Name: "Header", Code: "header", CreationMethod: models.CreationByTemplate},
	})

	var seeded models.StaticPlaceholder
	require.NoError(t, db.Where("code = ?", "header").First(&seeded).Error)

	updated, err := Update(db, seeded.ID, "New header", "header", nil)
	require.NoError(t, err)

	assert.Equal(t, "New header", updated.Name)
	// the stored creation method is unchanged by the edit path
	assert.Equal(t, models.CreationByTemplate, updated.CreationMethod)
}

func TestUpdate_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := Update(db, 42, "x", "x", nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetOrCreateByCode(t *testing.T) {
	db := setupTestDB(t)

	created, err := GetOrCreateByCode(db, "footer", nil)
	require.NoError(t, err)
	assert.Equal(t, models.CreationByTemplate, created.CreationMethod)

	again, err := GetOrCreateByCode(db, "footer", nil)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	require.ErrorIs(t, Delete(db, 1), ErrNotFound)

	seedPlaceholders(t, db, []models.StaticPlaceholder{{Code: "footer"}})

	var seeded models.StaticPlaceholder
	require.NoError(t, db.Where("code = ?", "footer").First(&seeded).Error)

	require.NoError(t, Delete(db, seeded.ID))
	_, err := Get(db, seeded.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNilDB(t *testing.T) {
	_, err := List(nil, ListParams{})
	require.ErrorIs(t, err, ErrDBNil)

	_, err = Get(nil, 1)
	require.ErrorIs(t, err, ErrDBNil)

	_, err = Create(nil, "", "", nil)
	require.ErrorIs(t, err, ErrDBNil)

	require.ErrorIs(t, Delete(nil, 1), ErrDBNil)
}
