// Package site provides CRUD operations for managing sites.
package site

import (
	"errors"

	"gorm.io/gorm"

	"github.com/vipulnarang95/django-cms/internal/db/models"
)

const (
	domainQueryPattern = "domain = ?"
)

var (
	// ErrSiteNotFound is returned when a site is not found.
	ErrSiteNotFound = errors.New("site not found")
	// ErrSiteDomainEmpty is returned when attempting to create/update a site with an empty domain.
	ErrSiteDomainEmpty = errors.New("site domain cannot be empty")
	// ErrSiteAlreadyExists is returned when attempting to create a site whose domain is taken.
	ErrSiteAlreadyExists = errors.New("site already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a site by its ID.
func Get(db *gorm.DB, id uint64) (*models.Site, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var site models.Site

	result := db.First(&site, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSiteNotFound
		}

		return nil, result.Error
	}

	return &site, nil
}

// GetByDomain retrieves a site by its domain.
func GetByDomain(db *gorm.DB, domain string) (*models.Site, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if domain == "" {
		return nil, ErrSiteDomainEmpty
	}

	var site models.Site

	result := db.Where(domainQueryPattern, domain).First(&site)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSiteNotFound
		}

		return nil, result.Error
	}

	return &site, nil
}

// GetAll retrieves all sites ordered by domain. Used to build the site
// filter facet and the site choices of the placeholder form.
func GetAll(db *gorm.DB) ([]models.Site, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var sites []models.Site

	result := db.Order("domain").Find(&sites)
	if result.Error != nil {
		return nil, result.Error
	}

	return sites, nil
}

// Create creates a new site.
func Create(db *gorm.DB, domain, name string) (*models.Site, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if domain == "" {
		return nil, ErrSiteDomainEmpty
	}

	// Check if site already exists
	var existing models.Site

	result := db.Where(domainQueryPattern, domain).First(&existing)
	if result.Error == nil {
		return nil, ErrSiteAlreadyExists
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	site := &models.Site{
		Domain: domain,
		Name:   name,
	}

	if err := db.Create(site).Error; err != nil {
		return nil, err
	}

	return site, nil
}

// Update updates an existing site by ID.
func Update(db *gorm.DB, id uint64, domain, name string) (*models.Site, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if domain == "" {
		return nil, ErrSiteDomainEmpty
	}

	site, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	site.Domain = domain
	site.Name = name

	if err := db.Save(site).Error; err != nil {
		return nil, err
	}

	return site, nil
}

// Delete deletes a site by ID.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Site{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSiteNotFound
	}

	return nil
}
