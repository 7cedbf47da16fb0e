package service

import (
	"context"
	"time"

	"bookingdesk/internal/domain"
	"bookingdesk/internal/logger"
	"bookingdesk/internal/redis"
)

// CatalogClient is the backend surface for reference data.
type CatalogClient interface {
	BookingTypes(ctx context.Context) ([]domain.BookingType, error)
	VehicleTypes(ctx context.Context) ([]domain.VehicleType, error)
	VehicleMakes(ctx context.Context) ([]domain.VehicleMake, error)
	VehicleModels(ctx context.Context, makeID string) ([]domain.VehicleModel, error)
}

// CatalogService serves filter and booking-type reference data through a cache.
type CatalogService struct {
	client CatalogClient
	cache  redis.CacheStoreInterface
	ttl    time.Duration
	log    *logger.Logger
}

// NewCatalogService creates a new CatalogService. cache may be nil.
func NewCatalogService(client CatalogClient, cache redis.CacheStoreInterface, ttl time.Duration, log *logger.Logger) *CatalogService {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogService{client: client, cache: cache, ttl: ttl, log: log}
}

func (s *CatalogService) BookingTypes(ctx context.Context) ([]domain.BookingType, error) {
	return cached(ctx, s, "catalog:booking-types", s.client.BookingTypes)
}

func (s *CatalogService) VehicleTypes(ctx context.Context) ([]domain.VehicleType, error) {
	return cached(ctx, s, "catalog:vehicle-types", s.client.VehicleTypes)
}

func (s *CatalogService) VehicleMakes(ctx context.Context) ([]domain.VehicleMake, error) {
	return cached(ctx, s, "catalog:vehicle-makes", s.client.VehicleMakes)
}

func (s *CatalogService) VehicleModels(ctx context.Context, makeID string) ([]domain.VehicleModel, error) {
	return cached(ctx, s, "catalog:vehicle-models:"+makeID, func(ctx context.Context) ([]domain.VehicleModel, error) {
		return s.client.VehicleModels(ctx, makeID)
	})
}

// cached is a read-through lookup. Cache errors are logged and bypassed.
func cached[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache != nil {
		var items []T
		hit, err := s.cache.Get(ctx, key, &items)
		if err != nil {
			s.log.WithError(err).WithField("key", key).Warn("catalog cache read failed")
		} else if hit {
			return items, nil
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.Set(ctx, key, items, s.ttl); err != nil {
			s.log.WithError(err).WithField("key", key).Warn("catalog cache write failed")
		}
	}
	return items, nil
}
