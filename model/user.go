package model

import (
	"time"
)

type User struct {
	UserID       string     `gorm:"column:user_id;type:char(36);primaryKey" json:"id"`
	Name         string     `gorm:"column:name;type:varchar(255);not null" json:"name"`
	// Uniqueness among live accounts is enforced by the duplicate-email
	// check over non-deleted rows, not by a DB constraint: a soft-deleted
	// account's email must stay reusable.
	Email        string     `gorm:"column:email;type:varchar(255);not null;index" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	IsActive     bool       `gorm:"column:is_active;default:true" json:"isActive"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt    *time.Time `gorm:"column:deleted_at" json:"deletedAt,omitempty"`

	// Relations
	Roles []Role `gorm:"many2many:user_roles;foreignKey:UserID;joinForeignKey:UserID;References:RoleID;joinReferences:RoleID" json:"roles,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// HasRole reports whether the user carries the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

type Role struct {
	RoleID int    `gorm:"column:role_id;primaryKey;autoIncrement" json:"id"`
	Name   string `gorm:"column:name;type:varchar(50);not null;uniqueIndex" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

type UserRole struct {
	UserID string `gorm:"column:user_id;type:char(36);primaryKey"`
	RoleID int    `gorm:"column:role_id;primaryKey"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
