package models

import "time"

// Site represents a website served by the CMS. Content objects such as
// static placeholders can be scoped to a single site.
type Site struct {
	// ID is the unique identifier for the site.
	ID uint64 `gorm:"primaryKey"`
	// Domain is the unique fully qualified domain name of the site.
	Domain string `gorm:"unique;size:255;not null"`
	// Name is the human-readable display name of the site.
	Name string `gorm:"size:100;not null"`
	// CreatedAt is the timestamp when the site was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the site was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Site model.
func (Site) TableName() string {
	return "sites"
}

func (s *Site) String() string {
	if s == nil {
		return ""
	}

	if s.Name != "" {
		return s.Name
	}

	return s.Domain
}
