package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"viralWallet/domain"
	"viralWallet/pkg/logger"
)

// ServiceRepository contract interface
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	FindByID(ctx context.Context, id uint) (domain.Service, error)
	FindAll(ctx context.Context) ([]domain.Service, error)
	FindActive(ctx context.Context) ([]domain.Service, error)
	Update(ctx context.Context, service *domain.Service) error
	Delete(ctx context.Context, id uint) error
}

type catalogService struct {
	serviceRepo ServiceRepository
}

func NewCatalogService(serviceRepo ServiceRepository) *catalogService {
	return &catalogService{
		serviceRepo: serviceRepo,
	}
}

// PriceFor computes the charge for quantity units. Rounding is always
// upward so partial thousands are never undercharged.
func PriceFor(service domain.Service, quantity int) float64 {
	return math.Ceil(float64(quantity) / 1000 * service.PricePer1000)
}

// ValidateQuantity checks quantity against the service's min/max bounds.
func ValidateQuantity(service domain.Service, quantity int) error {
	if quantity < service.Min || quantity > service.Max {
		return fmt.Errorf("%w: quantity %d not in [%d, %d]", domain.ErrOutOfRange, quantity, service.Min, service.Max)
	}
	return nil
}

// ListActive returns orderable services, optionally narrowed by a platform
// filter and a free-text search. Both filters are case-insensitive
// substring matches on platform/service type.
func (s *catalogService) ListActive(ctx context.Context, platformFilter, searchText string) ([]domain.Service, error) {
	services, err := s.serviceRepo.FindActive(ctx)
	if err != nil {
		logger.Error("Failed to list active services", err)
		return nil, err
	}

	platformFilter = strings.ToLower(platformFilter)
	searchText = strings.ToLower(searchText)

	filtered := make([]domain.Service, 0, len(services))
	for _, svc := range services {
		platform := strings.ToLower(svc.Platform)
		serviceType := strings.ToLower(svc.ServiceType)

		if platformFilter != "" && !strings.Contains(platform, platformFilter) {
			continue
		}
		if searchText != "" && !strings.Contains(platform, searchText) && !strings.Contains(serviceType, searchText) {
			continue
		}

		filtered = append(filtered, svc)
	}

	return filtered, nil
}

// ListAll returns every catalog entry, inactive ones included, for the
// admin settings screen.
func (s *catalogService) ListAll(ctx context.Context, caller domain.Caller) ([]domain.Service, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	return s.serviceRepo.FindAll(ctx)
}

func (s *catalogService) GetServiceByID(ctx context.Context, id uint) (domain.Service, error) {
	if id == 0 {
		logger.Error("invalid service id")
		return domain.Service{}, errors.New("invalid service id")
	}

	service, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find service by id", err)
		return domain.Service{}, err
	}

	return service, nil
}

func (s *catalogService) CreateService(ctx context.Context, caller domain.Caller, service *domain.Service) (*domain.Service, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	if err := validateService(service); err != nil {
		logger.Error("Invalid service data", err)
		return nil, err
	}

	if service.Status == "" {
		service.Status = domain.ServiceStatusActive
	}

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		logger.Error("Failed to create service", err)
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	logger.Info("Service created", "platform", service.Platform, "type", service.ServiceType)
	return service, nil
}

func (s *catalogService) UpdateService(ctx context.Context, caller domain.Caller, service *domain.Service) (*domain.Service, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	if service.ID == 0 {
		logger.Error("Invalid service data: ID is required")
		return nil, errors.New("service ID is required")
	}

	if err := validateService(service); err != nil {
		logger.Error("Invalid service data", err)
		return nil, err
	}

	if _, err := s.serviceRepo.FindByID(ctx, service.ID); err != nil {
		logger.Error("Service not found", err)
		return nil, err
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		logger.Error("Failed to update service", err)
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	updated, err := s.serviceRepo.FindByID(ctx, service.ID)
	if err != nil {
		logger.Error("Failed to fetch updated service", err)
		return nil, err
	}

	return &updated, nil
}

func (s *catalogService) DeleteService(ctx context.Context, caller domain.Caller, id uint) error {
	if !caller.IsAdmin() {
		return domain.ErrUnauthorized
	}

	if id == 0 {
		logger.Error("Invalid service id when deleting service")
		return errors.New("invalid service id")
	}

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete service", err)
		return err
	}

	return nil
}

func validateService(service *domain.Service) error {
	if service.Platform == "" {
		return errors.New("platform is required")
	}
	if service.ServiceType == "" {
		return errors.New("service type is required")
	}
	if service.PricePer1000 <= 0 {
		return errors.New("price per 1000 must be greater than 0")
	}
	if service.Min <= 0 || service.Min > service.Max {
		return errors.New("quantity bounds must satisfy 0 < min <= max")
	}
	if service.Status != "" && service.Status != domain.ServiceStatusActive && service.Status != domain.ServiceStatusInactive {
		return fmt.Errorf("unknown service status %q", service.Status)
	}
	return nil
}
