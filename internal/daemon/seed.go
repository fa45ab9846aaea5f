package daemon

import (
	"gorm.io/gorm"

	"github.com/vipulnarang95/django-cms/internal/auth"
	"github.com/vipulnarang95/django-cms/internal/config"
	"github.com/vipulnarang95/django-cms/internal/db/models"
)

// seed populates an empty database with the admin role carrying every
// permission, a default admin user and an example site.
func seed(_ *config.Config, db *gorm.DB) {
	seedPermissions(db)
	adminRole := seedAdminRole(db)
	seedAdminUser(db, adminRole)
	seedDefaultSite(db)
}

func seedPermissions(db *gorm.DB) {
	for _, name := range auth.AllPermissions() {
		resource, action := splitPermission(name)

		var count int64
		db.Model(&models.Permission{}).Where("name = ?", name).Count(&count)

		if count == 0 {
			db.Create(&models.Permission{
				Name:     name,
				Resource: resource,
				Action:   action,
			})
		}
	}
}

func seedAdminRole(db *gorm.DB) *models.Role {
	var role models.Role

	err := db.Where("name = ?", "admin").First(&role).Error
	if err == nil {
		return &role
	}

	role = models.Role{
		Name:        "admin",
		Description: "Full access to the administrative interface",
		IsSystem:    true,
	}
	db.Create(&role)

	// assign every permission to the admin role
	var permissions []models.Permission
	db.Find(&permissions)

	for _, perm := range permissions {
		db.Create(&models.RolePermission{
			RoleID:       role.ID,
			PermissionID: perm.ID,
		})
	}

	return &role
}

func seedAdminUser(db *gorm.DB, role *models.Role) {
	var count int64
	db.Model(&models.User{}).Count(&count)

	if count == 0 {
		// Default credentials, change after first login.
		db.Create(
			&models.User{
				Username: "admin",
				Password: models.HashPassword("changeme"),
				Active:   true,
				RoleID:   role.ID,
			},
		)
	}
}

func seedDefaultSite(db *gorm.DB) {
	var count int64
	db.Model(&models.Site{}).Count(&count)

	if count == 0 {
		db.Create(&models.Site{
			Domain: "example.com",
			Name:   "example.com",
		})
	}
}

// splitPermission splits a resource.action permission name.
func splitPermission(name string) (resource, action string) {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i], name[i+1:]
		}
	}

	return name, ""
}
