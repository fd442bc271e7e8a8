package postgres

import (
	"context"
	"errors"

	"viralWallet/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	DB *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{
		DB: db,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, service *domain.Service) error {
	return r.DB.WithContext(ctx).Create(service).Error
}

func (r *ServiceRepository) FindByID(ctx context.Context, id uint) (domain.Service, error) {
	var service domain.Service
	err := r.DB.WithContext(ctx).First(&service, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Service{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Service{}, err
	}

	return service, nil
}

func (r *ServiceRepository) FindAll(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	err := r.DB.WithContext(ctx).Order("platform, service_type").Find(&services).Error
	if err != nil {
		return nil, err
	}

	return services, nil
}

func (r *ServiceRepository) FindActive(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	err := r.DB.WithContext(ctx).
		Where("status = ?", domain.ServiceStatusActive).
		Order("platform, service_type").
		Find(&services).Error
	if err != nil {
		return nil, err
	}

	return services, nil
}

func (r *ServiceRepository) Update(ctx context.Context, service *domain.Service) error {
	row := r.DB.WithContext(ctx).Where("id = ?", service.ID).Updates(service)
	if row.Error != nil {
		return row.Error
	}
	if row.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id uint) error {
	row := r.DB.WithContext(ctx).Delete(&domain.Service{}, id)
	if row.Error != nil {
		return row.Error
	}
	if row.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
