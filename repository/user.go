package repository

import (
	"time"

	"campusops/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and its role assignments in one transaction.
// When no roles are supplied the default "estudiante" role is assigned.
func (r *UserRepository) Create(user *model.User, roleIDs []int) error {
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		if len(roleIDs) == 0 {
			var studentRole model.Role
			if err := tx.Where("name = ?", "estudiante").First(&studentRole).Error; err == nil {
				roleIDs = []int{studentRole.RoleID}
			}
		}

		for _, roleID := range roleIDs {
			if err := tx.Create(&model.UserRole{UserID: user.UserID, RoleID: roleID}).Error; err != nil {
				return err
			}
		}

		return tx.Preload("Roles").First(user, "user_id = ?", user.UserID).Error
	})
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Roles").
		Where("email = ? AND deleted_at IS NULL", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Roles").
		Where("user_id = ? AND deleted_at IS NULL", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(id, passwordHash string) error {
	return r.db.Model(&model.User{}).
		Where("user_id = ?", id).
		Update("password_hash", passwordHash).Error
}

func (r *UserRepository) Save(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) SoftDelete(id string) error {
	now := time.Now()
	return r.db.Model(&model.User{}).
		Where("user_id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{"deleted_at": now, "is_active": false}).Error
}

func (r *UserRepository) ActiveUserIDs() ([]string, error) {
	var ids []string
	err := r.db.Model(&model.User{}).
		Where("is_active = ? AND deleted_at IS NULL", true).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *UserRepository) UserIDsByRole(role string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.User{}).
		Joins("JOIN user_roles ON user_roles.user_id = users.user_id").
		Joins("JOIN roles ON roles.role_id = user_roles.role_id").
		Where("roles.name = ? AND users.is_active = ? AND users.deleted_at IS NULL", role, true).
		Pluck("users.user_id", &ids).Error
	return ids, err
}

func (r *UserRepository) Roles() ([]model.Role, error) {
	var roles []model.Role
	err := r.db.Order("role_id").Find(&roles).Error
	return roles, err
}
