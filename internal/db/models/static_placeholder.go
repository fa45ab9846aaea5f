// Package models contains database model definitions.
package models

import (
	"fmt"
	"time"
)

// CreationMethod represents how a static placeholder came into existence.
// It is set by the system at creation time and is never editable through
// the administrative interface.
type CreationMethod string

const (
	// CreationByCode indicates the placeholder was created explicitly,
	// either through the admin interface or programmatically by code.
	CreationByCode CreationMethod = "code"
	// CreationByTemplate indicates the placeholder was created on demand
	// while rendering a template that referenced its code.
	CreationByTemplate CreationMethod = "template"
)

// CreationMethods lists the valid creation method values, in display order.
// Used to build the creation method filter facet.
func CreationMethods() []CreationMethod {
	return []CreationMethod{CreationByCode, CreationByTemplate}
}

// StaticPlaceholder represents a named content region that is shared across
// pages and managed through the admin interface.
type StaticPlaceholder struct {
	// ID is the unique identifier for the placeholder.
	ID uint64 `gorm:"primaryKey"`
	// Name is the human-readable label. May be blank, in which case the
	// code is used for display (see GetName).
	Name string `gorm:"size:255"`
	// Code is the symbolic identifier templates reference the placeholder by.
	Code string `gorm:"size:255;uniqueIndex:idx_code_site"`
	// SiteID is the optional association to a site. A placeholder without a
	// site is shared across all sites.
	SiteID *uint64 `gorm:"column:site_id;uniqueIndex:idx_code_site"`
	// Site is the associated site (loaded via foreign key).
	Site *Site `gorm:"foreignKey:SiteID;references:ID;constraint:OnDelete:CASCADE"`
	// CreationMethod records the placeholder's provenance. The column default
	// applies whenever a record is created through the admin interface.
	CreationMethod CreationMethod `gorm:"type:varchar(20);not null;default:'code'"`
	// Dirty indicates the draft content differs from the published content.
	Dirty bool `gorm:"default:false"`
	// CreatedAt is the timestamp when the placeholder was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the placeholder was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the StaticPlaceholder model.
func (StaticPlaceholder) TableName() string {
	return "static_placeholders"
}

// GetName returns the display name of the placeholder: the name if set,
// otherwise the code, otherwise a synthetic label derived from the ID.
func (s *StaticPlaceholder) GetName() string {
	if s.Name != "" {
		return s.Name
	}

	if s.Code != "" {
		return s.Code
	}

	return fmt.Sprintf("static-%d", s.ID)
}
