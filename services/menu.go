package services

import (
	"context"
	"errors"
	"time"

	"campusops/model"

	"gorm.io/gorm"
)

// MenuStore is the persistence surface for menus, dishes and ratings.
// Reads never return soft-deleted menus.
type MenuStore interface {
	Create(menu *model.Menu, dishes []model.MenuDish) error
	FindByID(id string) (*model.Menu, error)
	FindByDate(date time.Time) (*model.Menu, error)
	Save(menu *model.Menu) error
	ReplaceDishes(menuID string, dishes []model.MenuDish) error
	Ratings(menuID string) ([]model.MenuRating, error)
	CreateRating(rating *model.MenuRating) error
	AverageScore(menuID string) (float64, int, error)
}

// MenuNotifier is the slice of notification dispatch the menu flow uses.
type MenuNotifier interface {
	MenuPublished(ctx context.Context, menuID string) bool
}

type MenuService struct {
	menus    MenuStore
	notifier MenuNotifier
}

func NewMenuService(menus MenuStore, notifier MenuNotifier) *MenuService {
	return &MenuService{menus: menus, notifier: notifier}
}

// CreateMenu enforces one menu per date among non-deleted menus. The menu
// and its dishes are written in a single transaction by the store. A
// published menu triggers a best-effort broadcast.
func (s *MenuService) CreateMenu(ctx context.Context, date time.Time, dishes []model.MenuDish, published bool) (*model.Menu, error) {
	_, err := s.menus.FindByDate(date)
	if err == nil {
		return nil, ErrDuplicateDate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	menu := &model.Menu{Date: date, Published: published}
	if err := s.menus.Create(menu, dishes); err != nil {
		return nil, err
	}

	if published {
		s.notifier.MenuPublished(ctx, menu.MenuID)
	}
	return menu, nil
}

// UpdateMenu applies a published flag change and, when dishes are supplied,
// replaces the menu's dishes wholesale. Dish replacement is not a diff.
func (s *MenuService) UpdateMenu(ctx context.Context, id string, published *bool, dishes []model.MenuDish) (*model.Menu, error) {
	menu, err := s.menus.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}

	if published != nil {
		menu.Published = *published
		if err := s.menus.Save(menu); err != nil {
			return nil, err
		}
	}

	if dishes != nil {
		if err := s.menus.ReplaceDishes(menu.MenuID, dishes); err != nil {
			return nil, err
		}
	}
	return s.menus.FindByID(id)
}

// RateMenu records a rating, rejecting a second rating from the same user.
// The check scans the menu's existing ratings rather than relying on a
// unique-constraint violation.
func (s *MenuService) RateMenu(ctx context.Context, menuID, userID string, score int, comment string) (*model.MenuRating, error) {
	_, err := s.menus.FindByID(menuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}

	existing, err := s.menus.Ratings(menuID)
	if err != nil {
		return nil, err
	}
	for _, r := range existing {
		if r.UserID == userID {
			return nil, ErrAlreadyRated
		}
	}

	rating := &model.MenuRating{MenuID: menuID, UserID: userID, Score: score, Comment: comment}
	if err := s.menus.CreateRating(rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// MenuStats returns the on-read average score and rating count for a menu.
// The average is never cached or denormalized.
func (s *MenuService) MenuStats(ctx context.Context, menuID string) (float64, int, error) {
	if _, err := s.menus.FindByID(menuID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrMenuNotFound
		}
		return 0, 0, err
	}
	return s.menus.AverageScore(menuID)
}
