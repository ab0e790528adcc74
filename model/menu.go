package model

import (
	"time"
)

type Menu struct {
	MenuID    string     `gorm:"column:menu_id;type:char(36);primaryKey" json:"id"`
	Date      time.Time  `gorm:"column:date;type:date;not null" json:"date"`
	Published bool       `gorm:"column:published;default:false" json:"published"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deletedAt,omitempty"`

	// Relations
	Dishes []MenuDish `gorm:"foreignKey:MenuID;references:MenuID" json:"dishes,omitempty"`
}

func (Menu) TableName() string {
	return "menus"
}

type MenuDish struct {
	DishID int    `gorm:"column:dish_id;primaryKey;autoIncrement" json:"id"`
	MenuID string `gorm:"column:menu_id;type:char(36);not null" json:"menuId"`
	Type   string `gorm:"column:type;type:enum('main','side','drink','dessert');not null" json:"type"`
	Name   string `gorm:"column:name;type:varchar(255);not null" json:"name"`
}

func (MenuDish) TableName() string {
	return "menu_dishes"
}

type MenuRating struct {
	RatingID  int       `gorm:"column:rating_id;primaryKey;autoIncrement" json:"id"`
	MenuID    string    `gorm:"column:menu_id;type:char(36);not null" json:"menuId"`
	UserID    string    `gorm:"column:user_id;type:char(36);not null" json:"userId"`
	Score     int       `gorm:"column:score;not null" json:"score"`
	Comment   string    `gorm:"column:comment;type:text" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (MenuRating) TableName() string {
	return "menu_ratings"
}
