package repository

import (
	"time"

	"campusops/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FacilityRepository struct {
	db *gorm.DB
}

func NewFacilityRepository(db *gorm.DB) *FacilityRepository {
	return &FacilityRepository{db: db}
}

func (r *FacilityRepository) Create(facility *model.Facility) error {
	if facility.FacilityID == "" {
		facility.FacilityID = uuid.NewString()
	}
	return r.db.Create(facility).Error
}

func (r *FacilityRepository) FindByID(id string) (*model.Facility, error) {
	var facility model.Facility
	if err := r.db.Where("facility_id = ? AND deleted_at IS NULL", id).
		First(&facility).Error; err != nil {
		return nil, err
	}
	return &facility, nil
}

func (r *FacilityRepository) List() ([]model.Facility, error) {
	var facilities []model.Facility
	err := r.db.Where("is_active = ? AND deleted_at IS NULL", true).
		Order("name").
		Find(&facilities).Error
	return facilities, err
}

func (r *FacilityRepository) Save(facility *model.Facility) error {
	return r.db.Save(facility).Error
}

func (r *FacilityRepository) SoftDelete(id string) error {
	now := time.Now()
	return r.db.Model(&model.Facility{}).
		Where("facility_id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{"deleted_at": now, "is_active": false}).Error
}

// SLAPolicies returns the static resolution-target reference data.
func (r *FacilityRepository) SLAPolicies() ([]model.SLAPolicy, error) {
	var policies []model.SLAPolicy
	err := r.db.Order("policy_id").Find(&policies).Error
	return policies, err
}
