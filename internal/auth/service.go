package auth

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/vipulnarang95/django-cms/internal/db/models"
)

// Service provides authentication and authorization functionality.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// HasPermission checks if a user has a specific permission.
// This works by checking if the user's role has the permission assigned.
func (s *Service) HasPermission(userID uint64, permission string) (bool, error) {
	var count int64

	err := s.db.Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN users ON users.role_id = role_permissions.role_id").
		Where("users.id = ? AND permissions.name = ?", userID, permission).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role permission: %w", err)
	}

	return count > 0, nil
}

// HasAnyPermission checks if a user has at least one of the given permissions.
func (s *Service) HasAnyPermission(userID uint64, permissions []string) (bool, error) {
	if len(permissions) == 0 {
		return false, nil
	}

	for _, perm := range permissions {
		has, err := s.HasPermission(userID, perm)
		if err != nil {
			return false, err
		}

		if has {
			return true, nil
		}
	}

	return false, nil
}

// HasAllPermissions checks if a user has all of the given permissions.
func (s *Service) HasAllPermissions(userID uint64, permissions []string) (bool, error) {
	if len(permissions) == 0 {
		return true, nil
	}

	for _, perm := range permissions {
		has, err := s.HasPermission(userID, perm)
		if err != nil {
			return false, err
		}

		if !has {
			return false, nil
		}
	}

	return true, nil
}

// GetUserPermissions retrieves all permissions for a user from their role.
func (s *Service) GetUserPermissions(userID uint64) ([]string, error) {
	var permissions []string

	err := s.db.Table("permissions").
		Select("DISTINCT permissions.name").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN users ON users.role_id = role_permissions.role_id").
		Where("users.id = ?", userID).
		Pluck("permissions.name", &permissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user permissions: %w", err)
	}

	return permissions, nil
}

// AssignRoleToUser assigns a role to a user.
func (s *Service) AssignRoleToUser(userID uint64, roleID uint) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("role_id", roleID).Error
}
