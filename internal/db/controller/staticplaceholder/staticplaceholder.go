// Package staticplaceholder provides CRUD and list-view queries for static placeholders.
package staticplaceholder

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/vipulnarang95/django-cms/internal/db/models"
	"github.com/vipulnarang95/django-cms/internal/uniuri"
)

const (
	// DefaultPageSize is the default number of rows per list page.
	DefaultPageSize = 25
	// MaxPageSize caps the rows per list page.
	MaxPageSize = 100

	// generatedCodeLen is the length of an auto-generated placeholder code.
	generatedCodeLen = 12
)

var (
	// ErrNotFound is returned when a placeholder is not found.
	ErrNotFound = errors.New("static placeholder not found")
	// ErrCodeTaken is returned when a placeholder with the same code already
	// exists for the same site.
	ErrCodeTaken = errors.New("static placeholder code already in use for this site")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// ListParams holds search, filter, sort and pagination parameters for the
// list view. Search applies a substring match over the searchable text
// fields (name, code) only; CreationMethod and SiteID are exact facet
// filters.
type ListParams struct {
	Search         string
	CreationMethod string
	SiteID         uint64
	Page           int
	PageSize       int
	SortField      string
	SortOrder      string
}

// ListResult holds one page of the placeholder list plus pagination totals.
type ListResult struct {
	Items      []models.StaticPlaceholder
	Page       int
	PageSize   int
	TotalItems int64
	TotalPages int
}

// sortColumns maps the permitted sort fields to their SQL columns.
// Anything else falls back to sorting by code.
var sortColumns = map[string]string{
	"name":            "name",
	"code":            "code",
	"creation_method": "creation_method",
	"id":              "id",
}

// List returns one page of placeholders matching the given parameters.
func List(db *gorm.DB, params ListParams) (*ListResult, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if params.Page < 1 {
		params.Page = 1
	}

	if params.PageSize < 1 || params.PageSize > MaxPageSize {
		params.PageSize = DefaultPageSize
	}

	tx := db.Model(&models.StaticPlaceholder{})

	// keyword search is limited to the searchable text fields
	if params.Search != "" {
		like := "%" + params.Search + "%"
		tx = tx.Where("name LIKE ? OR code LIKE ?", like, like)
	}

	// exact facet filters
	if params.CreationMethod != "" {
		tx = tx.Where("creation_method = ?", params.CreationMethod)
	}

	if params.SiteID != 0 {
		tx = tx.Where("site_id = ?", params.SiteID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(params.PageSize) - 1) / int64(params.PageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	if params.Page > totalPages {
		params.Page = totalPages
	}

	column, ok := sortColumns[params.SortField]
	if !ok {
		column = "code"
	}

	order := column
	if strings.EqualFold(params.SortOrder, "desc") {
		order += " DESC"
	}

	var items []models.StaticPlaceholder

	offset := (params.Page - 1) * params.PageSize
	if err := tx.Preload("Site").Order(order).Limit(params.PageSize).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}

	return &ListResult{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// Get retrieves a placeholder by its ID.
func Get(db *gorm.DB, id uint64) (*models.StaticPlaceholder, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var placeholder models.StaticPlaceholder

	result := db.Preload("Site").First(&placeholder, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, result.Error
	}

	return &placeholder, nil
}

// Create creates a new placeholder. The creation method is never taken from
// the caller: records created through this path are stamped "code". An empty
// code is auto-generated.
func Create(db *gorm.DB, name, code string, siteID *uint64) (*models.StaticPlaceholder, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if code == "" {
		code = strings.ToLower(uniuri.NewLen(generatedCodeLen))
	}

	if taken, err := codeTaken(db, code, siteID, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrCodeTaken
	}

	placeholder := &models.StaticPlaceholder{
		Name:           name,
		Code:           code,
		SiteID:         siteID,
		CreationMethod: models.CreationByCode,
	}

	if err := db.Create(placeholder).Error; err != nil {
		return nil, err
	}

	return placeholder, nil
}

// Update updates the editable fields of an existing placeholder. The column
// list is fixed to name, code and site_id; creation_method is not reachable
// from this path and keeps its stored value.
func Update(db *gorm.DB, id uint64, name, code string, siteID *uint64) (*models.StaticPlaceholder, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	placeholder, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	if code == "" {
		code = placeholder.Code
	}

	if taken, err := codeTaken(db, code, siteID, id); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrCodeTaken
	}

	updates := map[string]any{
		"name":    name,
		"code":    code,
		"site_id": siteID,
	}

	if err := db.Model(placeholder).Select("name", "code", "site_id").Updates(updates).Error; err != nil {
		return nil, err
	}

	return Get(db, id)
}

// GetOrCreateByCode returns the placeholder with the given code and site
// scope, creating it with creation method "template" when missing. This is
// the path used when a template references a placeholder code that does not
// exist yet.
func GetOrCreateByCode(db *gorm.DB, code string, siteID *uint64) (*models.StaticPlaceholder, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tx := db.Where("code = ?", code)
	if siteID == nil {
		tx = tx.Where("site_id IS NULL")
	} else {
		tx = tx.Where("site_id = ?", *siteID)
	}

	var placeholder models.StaticPlaceholder

	result := tx.First(&placeholder)
	if result.Error == nil {
		return &placeholder, nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	placeholder = models.StaticPlaceholder{
		Name:           code,
		Code:           code,
		SiteID:         siteID,
		CreationMethod: models.CreationByTemplate,
	}

	if err := db.Create(&placeholder).Error; err != nil {
		return nil, err
	}

	return &placeholder, nil
}

// Delete deletes a placeholder by ID.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.StaticPlaceholder{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// codeTaken reports whether another placeholder already uses the code within
// the same site scope. excludeID skips the record being updated.
func codeTaken(db *gorm.DB, code string, siteID *uint64, excludeID uint64) (bool, error) {
	tx := db.Model(&models.StaticPlaceholder{}).Where("code = ?", code)

	if siteID == nil {
		tx = tx.Where("site_id IS NULL")
	} else {
		tx = tx.Where("site_id = ?", *siteID)
	}

	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
