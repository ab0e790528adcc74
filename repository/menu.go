package repository

import (
	"time"

	"campusops/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// Create writes the menu and all its dishes in a single transaction.
func (r *MenuRepository) Create(menu *model.Menu, dishes []model.MenuDish) error {
	if menu.MenuID == "" {
		menu.MenuID = uuid.NewString()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(menu).Error; err != nil {
			return err
		}
		for i := range dishes {
			dishes[i].MenuID = menu.MenuID
			if err := tx.Create(&dishes[i]).Error; err != nil {
				return err
			}
		}
		menu.Dishes = dishes
		return nil
	})
}

func (r *MenuRepository) FindByID(id string) (*model.Menu, error) {
	var menu model.Menu
	if err := r.db.Preload("Dishes").
		Where("menu_id = ? AND deleted_at IS NULL", id).
		First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *MenuRepository) FindByDate(date time.Time) (*model.Menu, error) {
	var menu model.Menu
	if err := r.db.Preload("Dishes").
		Where("date = ? AND deleted_at IS NULL", date.Format("2006-01-02")).
		First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *MenuRepository) List(publishedOnly bool) ([]model.Menu, error) {
	q := r.db.Preload("Dishes").Where("deleted_at IS NULL")
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	var menus []model.Menu
	err := q.Order("date DESC").Find(&menus).Error
	return menus, err
}

func (r *MenuRepository) Save(menu *model.Menu) error {
	return r.db.Omit("Dishes").Save(menu).Error
}

// ReplaceDishes deletes every existing dish for the menu and inserts the
// supplied set, all in one transaction. Full-replace semantics, not a diff.
func (r *MenuRepository) ReplaceDishes(menuID string, dishes []model.MenuDish) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", menuID).Delete(&model.MenuDish{}).Error; err != nil {
			return err
		}
		for i := range dishes {
			dishes[i].DishID = 0
			dishes[i].MenuID = menuID
			if err := tx.Create(&dishes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *MenuRepository) SoftDelete(id string) error {
	now := time.Now()
	return r.db.Model(&model.Menu{}).
		Where("menu_id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now).Error
}

func (r *MenuRepository) Ratings(menuID string) ([]model.MenuRating, error) {
	var ratings []model.MenuRating
	err := r.db.Where("menu_id = ?", menuID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

func (r *MenuRepository) RatingsByUser(userID string) ([]model.MenuRating, error) {
	var ratings []model.MenuRating
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

func (r *MenuRepository) CreateRating(rating *model.MenuRating) error {
	return r.db.Create(rating).Error
}

// AverageScore computes the mean on read; it is never denormalized.
func (r *MenuRepository) AverageScore(menuID string) (float64, int, error) {
	var result struct {
		Avg   float64
		Count int
	}
	err := r.db.Model(&model.MenuRating{}).
		Select("COALESCE(AVG(score), 0) AS avg, COUNT(*) AS count").
		Where("menu_id = ?", menuID).
		Scan(&result).Error
	return result.Avg, result.Count, err
}
