package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"

	"github.com/safarhub/backoffice/internal/models"
	"github.com/safarhub/backoffice/internal/platform"
	"github.com/safarhub/backoffice/internal/utils"
)

// LookupService serves the airline/sector/bank lookup lists that
// resource screens resolve foreign identifiers against. Lookups change
// rarely, so they are cached in redis with a TTL and re-warmed by a
// background cron.
type LookupService struct {
	client *platform.Client
	rdb    *redis.Client
	ttl    time.Duration
	logger *utils.Logger
}

// NewLookupService creates a lookup service. rdb may be nil, in which
// case every read goes straight to the platform.
func NewLookupService(client *platform.Client, rdb *redis.Client, logger *utils.Logger) *LookupService {
	return &LookupService{
		client: client,
		rdb:    rdb,
		ttl:    time.Hour,
		logger: logger,
	}
}

// Airlines returns the airline lookup list
func (s *LookupService) Airlines(ctx context.Context) ([]models.Airline, error) {
	return cachedList[models.Airline](ctx, s, "lookup:airlines", "/airline", "airlines")
}

// Sectors returns the sector lookup list
func (s *LookupService) Sectors(ctx context.Context) ([]models.Sector, error) {
	return cachedList[models.Sector](ctx, s, "lookup:sectors", "/sector", "sectors")
}

// Banks returns the bank lookup list
func (s *LookupService) Banks(ctx context.Context) ([]models.Bank, error) {
	return cachedList[models.Bank](ctx, s, "lookup:banks", "/bank", "banks")
}

func cachedList[T any](ctx context.Context, s *LookupService, cacheKey, path, listKey string) ([]T, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var items []T
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := platform.GetList[T](ctx, s.client, path, nil, listKey)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if encoded, err := json.Marshal(items); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, encoded, s.ttl).Err(); err != nil {
				s.logger.Errorf("failed to cache %s: %v", cacheKey, err)
			}
		}
	}
	return items, nil
}

// Warm refreshes all lookup caches from the platform
func (s *LookupService) Warm(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	warmOne(ctx, s, "lookup:airlines", func() ([]models.Airline, error) {
		return platform.GetList[models.Airline](ctx, s.client, "/airline", nil, "airlines")
	})
	warmOne(ctx, s, "lookup:sectors", func() ([]models.Sector, error) {
		return platform.GetList[models.Sector](ctx, s.client, "/sector", nil, "sectors")
	})
	warmOne(ctx, s, "lookup:banks", func() ([]models.Bank, error) {
		return platform.GetList[models.Bank](ctx, s.client, "/bank", nil, "banks")
	})
}

func warmOne[T any](ctx context.Context, s *LookupService, cacheKey string, fetch func() ([]T, error)) {
	items, err := fetch()
	if err != nil {
		s.logger.Errorf("lookup refresh for %s failed: %v", cacheKey, err)
		return
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, cacheKey, encoded, s.ttl).Err(); err != nil {
		s.logger.Errorf("failed to cache %s: %v", cacheKey, err)
	}
}

// StartRefreshCron warms the caches now and every 30 minutes after.
// The returned cron is already started.
func (s *LookupService) StartRefreshCron() *cron.Cron {
	c := cron.New()
	c.AddFunc("@every 30m", func() {
		s.Warm(context.Background())
	})
	go s.Warm(context.Background())
	c.Start()
	return c
}
